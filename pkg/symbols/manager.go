package symbols

import (
	"context"
	"errors"
	"strings"
)

// Backend is the slice of the dashboard API the manager needs.
type Backend interface {
	Symbols(ctx context.Context) ([]string, error)
	TradingSymbols(ctx context.Context) ([]string, error)
	SaveTradingSymbols(ctx context.Context, symbols []string) error
}

// ErrSelectedNotLoaded is returned when the universe is requested before the
// persisted selection is known. Populating available first would transiently
// break the disjointness invariant on screen.
var ErrSelectedNotLoaded = errors.New("selected symbols must be loaded before the universe")

// Manager owns the available/selected partition. The selected set is the
// persisted source of truth; available is always derived as
// universe minus selected, so the two sets cannot intersect.
type Manager struct {
	backend Backend

	universe *Set
	selected *Set
	query    string

	selectedLoaded bool
}

// NewManager creates an empty manager backed by b.
func NewManager(b Backend) *Manager {
	return &Manager{
		backend:  b,
		universe: NewSet(),
		selected: NewSet(),
	}
}

// ReplaceSelected replaces the selected set wholesale with the persisted one.
// Callers that fetch off the main goroutine apply the result here.
func (m *Manager) ReplaceSelected(symbols []string) {
	m.selected = NewSet(symbols...)
	m.selectedLoaded = true
}

// ReplaceUniverse installs the tradable universe. The selected set must be
// installed first.
func (m *Manager) ReplaceUniverse(symbols []string) error {
	if !m.selectedLoaded {
		return ErrSelectedNotLoaded
	}
	m.universe = NewSet(symbols...)
	return nil
}

// LoadSelected fetches the persisted selection and installs it.
func (m *Manager) LoadSelected(ctx context.Context) error {
	symbols, err := m.backend.TradingSymbols(ctx)
	if err != nil {
		return err
	}
	m.ReplaceSelected(symbols)
	return nil
}

// LoadAvailable fetches the tradable universe. LoadSelected must have
// completed first.
func (m *Manager) LoadAvailable(ctx context.Context) error {
	if !m.selectedLoaded {
		return ErrSelectedNotLoaded
	}
	symbols, err := m.backend.Symbols(ctx)
	if err != nil {
		return err
	}
	return m.ReplaceUniverse(symbols)
}

// Filter sets the search query. Matching is case-normalized substring
// matching, not prefix matching.
func (m *Manager) Filter(query string) {
	m.query = strings.ToUpper(strings.TrimSpace(query))
}

// Query returns the active search term (already uppercased).
func (m *Manager) Query() string {
	return m.query
}

// Available returns universe minus selected, restricted to the active query.
func (m *Manager) Available() []string {
	var out []string
	for _, sym := range m.universe.Items() {
		if m.selected.Has(sym) {
			continue
		}
		if m.query != "" && !strings.Contains(strings.ToUpper(sym), m.query) {
			continue
		}
		out = append(out, sym)
	}
	return out
}

// Selected returns the selected symbols in insertion order.
func (m *Manager) Selected() []string {
	return m.selected.Items()
}

// IsSelected reports whether sym is in the selected set.
func (m *Manager) IsSelected(sym string) bool {
	return m.selected.Has(sym)
}

// Select moves sym from available to selected. Selecting an already-selected
// symbol is a no-op, and so is selecting a symbol that is not currently
// available. Reports whether the selection changed.
func (m *Manager) Select(sym string) bool {
	if m.selected.Has(sym) {
		return false
	}
	if !m.universe.Has(sym) {
		return false
	}
	return m.selected.Add(sym)
}

// Deselect removes sym from the selected set and returns it to the available
// pool. A symbol that was selected but never part of the fetched universe
// (e.g. delisted) is added back so it stays visible. Reports whether the
// selection changed.
func (m *Manager) Deselect(sym string) bool {
	if !m.selected.Remove(sym) {
		return false
	}
	m.universe.Add(sym)
	return true
}

// PersistSelected sends the current selection to the backend. On failure the
// in-memory state is left untouched so the user can retry.
func (m *Manager) PersistSelected(ctx context.Context) error {
	return m.backend.SaveTradingSymbols(ctx, m.selected.Items())
}
