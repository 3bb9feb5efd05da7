package state

import (
	"database/sql"
	"errors"
	"time"
)

// Session is the playlist saved between runs.
type Session struct {
	Paths        []string
	CurrentIndex int
	SavedAt      time.Time
}

// IsEmpty reports whether the session holds no files.
func (s Session) IsEmpty() bool {
	return len(s.Paths) == 0
}

func getSession(db *sql.DB) (*Session, error) {
	var currentIndex int
	var savedAt int64
	row := db.QueryRow(`SELECT current_index, saved_at FROM session_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT path FROM session_files ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Session{
		Paths:        paths,
		CurrentIndex: currentIndex,
		SavedAt:      time.Unix(savedAt, 0),
	}, nil
}

func saveSession(sqlDB *sql.DB, s Session) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	return withTx(sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session_files`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO session_state (id, current_index, saved_at)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				saved_at = excluded.saved_at
		`, s.CurrentIndex, s.SavedAt.Unix())
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO session_files (position, path) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, p := range s.Paths {
			if _, err := stmt.Exec(i, p); err != nil {
				return err
			}
		}
		return nil
	})
}
