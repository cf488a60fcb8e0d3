// Package symbols maintains the dashboard's partition of the tradable
// universe into available and selected symbols.
package symbols

// Set is a string set that preserves insertion order for display.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet creates a set containing items, ignoring duplicates.
func NewSet(items ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends item unless already present. Reports whether it was added.
func (s *Set) Add(item string) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.order = append(s.order, item)
	return true
}

// Remove deletes item. Reports whether it was present.
func (s *Set) Remove(item string) bool {
	if _, ok := s.index[item]; !ok {
		return false
	}
	delete(s.index, item)
	for i, it := range s.order {
		if it == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports membership.
func (s *Set) Has(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of items.
func (s *Set) Len() int {
	return len(s.order)
}

// Items returns the members in insertion order as a fresh slice.
func (s *Set) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
