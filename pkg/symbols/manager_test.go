package symbols

import (
	"context"
	"errors"
	"testing"
)

// fakeBackend implements Backend in memory.
type fakeBackend struct {
	universe []string
	selected []string
	saveErr  error
	loadErr  error
}

func (f *fakeBackend) Symbols(ctx context.Context) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.universe, nil
}

func (f *fakeBackend) TradingSymbols(ctx context.Context) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.selected, nil
}

func (f *fakeBackend) SaveTradingSymbols(ctx context.Context, symbols []string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.selected = append([]string(nil), symbols...)
	return nil
}

func newLoadedManager(t *testing.T, b *fakeBackend) *Manager {
	t.Helper()
	m := NewManager(b)
	if err := m.LoadSelected(context.Background()); err != nil {
		t.Fatalf("load selected: %v", err)
	}
	if err := m.LoadAvailable(context.Background()); err != nil {
		t.Fatalf("load available: %v", err)
	}
	return m
}

func assertDisjoint(t *testing.T, m *Manager) {
	t.Helper()
	sel := make(map[string]bool)
	for _, s := range m.Selected() {
		sel[s] = true
	}
	for _, a := range m.Available() {
		if sel[a] {
			t.Fatalf("symbol %s is both available and selected", a)
		}
	}
}

func TestLoadAvailableRequiresSelected(t *testing.T) {
	m := NewManager(&fakeBackend{universe: []string{"BTCUSDT"}})
	if err := m.LoadAvailable(context.Background()); !errors.Is(err, ErrSelectedNotLoaded) {
		t.Errorf("expected ErrSelectedNotLoaded, got %v", err)
	}
}

func TestDisjointnessAcrossOperations(t *testing.T) {
	b := &fakeBackend{
		universe: []string{"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT"},
		selected: []string{"ETHUSDT"},
	}
	m := newLoadedManager(t, b)
	assertDisjoint(t, m)

	ops := []func(){
		func() { m.Select("BTCUSDT") },
		func() { m.Filter("usd") },
		func() { m.Deselect("ETHUSDT") },
		func() { m.Select("SOLUSDT") },
		func() { m.Filter("") },
		func() { m.Deselect("SOLUSDT") },
		func() { m.Select("BTCUSDT") },
	}
	for _, op := range ops {
		op()
		assertDisjoint(t, m)
	}
}

func TestSelectIdempotent(t *testing.T) {
	b := &fakeBackend{universe: []string{"BTCUSDT", "ETHUSDT"}}
	m := newLoadedManager(t, b)

	if !m.Select("BTCUSDT") {
		t.Fatal("first select should change state")
	}
	if m.Select("BTCUSDT") {
		t.Error("second select should be a no-op")
	}
	if got := m.Selected(); len(got) != 1 || got[0] != "BTCUSDT" {
		t.Errorf("selected = %v, want [BTCUSDT]", got)
	}
}

func TestSelectUnknownSymbolRejectedSilently(t *testing.T) {
	b := &fakeBackend{universe: []string{"BTCUSDT"}}
	m := newLoadedManager(t, b)

	if m.Select("NOPEUSDT") {
		t.Error("selecting a symbol outside the universe should be a no-op")
	}
	if len(m.Selected()) != 0 {
		t.Errorf("selected = %v, want empty", m.Selected())
	}
}

func TestFilterSubstringExcludesSelected(t *testing.T) {
	b := &fakeBackend{
		universe: []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"},
		selected: []string{"ETHUSDT"},
	}
	m := newLoadedManager(t, b)

	m.Filter("BT")
	if got := m.Available(); len(got) != 1 || got[0] != "BTCUSDT" {
		t.Errorf("available = %v, want [BTCUSDT]", got)
	}

	// Substring, not prefix: "USDT" matches everywhere.
	m.Filter("usdt")
	if got := m.Available(); len(got) != 2 {
		t.Errorf("available = %v, want two matches", got)
	}
}

func TestDeselectReappliesFilter(t *testing.T) {
	b := &fakeBackend{
		universe: []string{"BTCUSDT", "ETHUSDT"},
		selected: []string{"ETHUSDT"},
	}
	m := newLoadedManager(t, b)

	m.Filter("BTC")
	m.Deselect("ETHUSDT")
	// ETHUSDT is back in the pool but hidden by the active query.
	if got := m.Available(); len(got) != 1 || got[0] != "BTCUSDT" {
		t.Errorf("available = %v, want [BTCUSDT]", got)
	}

	m.Filter("")
	if got := m.Available(); len(got) != 2 {
		t.Errorf("available = %v, want both symbols", got)
	}
}

func TestDeselectSymbolOutsideUniverse(t *testing.T) {
	b := &fakeBackend{
		universe: []string{"BTCUSDT"},
		selected: []string{"OLDUSDT"},
	}
	m := newLoadedManager(t, b)

	m.Deselect("OLDUSDT")
	found := false
	for _, a := range m.Available() {
		if a == "OLDUSDT" {
			found = true
		}
	}
	if !found {
		t.Error("deselected symbol should re-enter the available pool")
	}
	assertDisjoint(t, m)
}

func TestPersistRoundTrip(t *testing.T) {
	b := &fakeBackend{universe: []string{"BTCUSDT", "ETHUSDT", "BNBUSDT"}}
	m := newLoadedManager(t, b)

	m.Select("BNBUSDT")
	m.Select("BTCUSDT")
	if err := m.PersistSelected(context.Background()); err != nil {
		t.Fatalf("persist: %v", err)
	}

	fresh := NewManager(b)
	if err := fresh.LoadSelected(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := fresh.Selected()
	if len(got) != 2 || got[0] != "BNBUSDT" || got[1] != "BTCUSDT" {
		t.Errorf("round trip = %v, want [BNBUSDT BTCUSDT]", got)
	}
}

func TestPersistFailureLeavesStateUntouched(t *testing.T) {
	b := &fakeBackend{universe: []string{"BTCUSDT"}, saveErr: errors.New("boom")}
	m := newLoadedManager(t, b)

	m.Select("BTCUSDT")
	if err := m.PersistSelected(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if got := m.Selected(); len(got) != 1 || got[0] != "BTCUSDT" {
		t.Errorf("selection must survive a failed save, got %v", got)
	}
}
