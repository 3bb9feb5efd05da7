package playlist

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/llehouerou/reel/internal/media"
)

// SortOrder selects how the playlist is sorted.
type SortOrder string

const (
	NameAsc  SortOrder = "name-asc"
	NameDesc SortOrder = "name-desc"
	DateAsc  SortOrder = "date-asc"
	DateDesc SortOrder = "date-desc"
)

// SortOrders lists all orders in cycling order.
var SortOrders = []SortOrder{NameAsc, NameDesc, DateAsc, DateDesc}

// ParseSortOrder parses a persisted or configured sort order.
func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Next returns the order following o, wrapping around.
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// String returns a short label for display.
func (o SortOrder) String() string {
	switch o {
	case NameAsc:
		return "Name ↑"
	case NameDesc:
		return "Name ↓"
	case DateAsc:
		return "Date ↑"
	case DateDesc:
		return "Date ↓"
	default:
		return "Unsorted"
	}
}

// Sort stably reorders the playlist by order.
// Names compare with locale-aware collation for tag.
func (p *Playlist) Sort(order SortOrder, tag language.Tag) {
	cmp := comparator(order, tag)
	if cmp == nil {
		return
	}
	slices.SortStableFunc(p.files, cmp)
}

func comparator(order SortOrder, tag language.Tag) func(a, b media.File) int {
	switch order {
	case NameAsc, NameDesc:
		col := collate.New(tag)
		if order == NameAsc {
			return func(a, b media.File) int { return col.CompareString(a.Name, b.Name) }
		}
		return func(a, b media.File) int { return col.CompareString(b.Name, a.Name) }
	case DateAsc:
		return func(a, b media.File) int { return a.Date.Compare(b.Date) }
	case DateDesc:
		return func(a, b media.File) int { return b.Date.Compare(a.Date) }
	default:
		return nil
	}
}
