package playlist

// Selection is a set of selected file ids.
type Selection struct {
	ids map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Add selects id.
func (s *Selection) Add(id string) {
	s.ids[id] = true
}

// Toggle flips the selection state of id and returns the new state.
func (s *Selection) Toggle(id string) bool {
	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = true
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Remove deselects ids.
func (s *Selection) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Ordered returns the selected ids in the order of order.
func (s *Selection) Ordered(order []string) []string {
	var out []string
	for _, id := range order {
		if s.ids[id] {
			out = append(out, id)
		}
	}
	return out
}
