package state

import (
	"database/sql"
	"errors"
)

// Bounds is a saved window position and size.
type Bounds struct {
	X, Y          int
	Width, Height int
}

// Settings are the player preferences restored at startup.
type Settings struct {
	Volume      float64
	AmpLevel    float64
	FitToWindow bool
	SortOrder   string
	Shuffle     bool
	Bounds      *Bounds // nil until a window size was saved
}

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		Volume:    1.0,
		AmpLevel:  1.0,
		SortOrder: "name-asc",
	}
}

func getSettings(db *sql.DB) (*Settings, error) {
	s := DefaultSettings()
	var x, y, w, h sql.NullInt64

	row := db.QueryRow(`
		SELECT volume, amp_level, fit_to_window, sort_order, shuffle,
			bounds_x, bounds_y, bounds_width, bounds_height
		FROM settings WHERE id = 1
	`)
	err := row.Scan(&s.Volume, &s.AmpLevel, &s.FitToWindow, &s.SortOrder, &s.Shuffle, &x, &y, &w, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return &s, nil
	}
	if err != nil {
		return nil, err
	}

	if w.Valid && h.Valid {
		s.Bounds = &Bounds{
			X:      int(x.Int64),
			Y:      int(y.Int64),
			Width:  int(w.Int64),
			Height: int(h.Int64),
		}
	}
	return &s, nil
}

func saveSettings(db *sql.DB, s Settings) error {
	var x, y, w, h any
	if s.Bounds != nil {
		x, y, w, h = s.Bounds.X, s.Bounds.Y, s.Bounds.Width, s.Bounds.Height
	}
	_, err := db.Exec(`
		INSERT INTO settings (id, volume, amp_level, fit_to_window, sort_order, shuffle,
			bounds_x, bounds_y, bounds_width, bounds_height)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			amp_level = excluded.amp_level,
			fit_to_window = excluded.fit_to_window,
			sort_order = excluded.sort_order,
			shuffle = excluded.shuffle,
			bounds_x = excluded.bounds_x,
			bounds_y = excluded.bounds_y,
			bounds_width = excluded.bounds_width,
			bounds_height = excluded.bounds_height
	`, s.Volume, s.AmpLevel, s.FitToWindow, s.SortOrder, s.Shuffle, x, y, w, h)
	return err
}
