package pipeline

import (
	"context"
	"testing"

	"github.com/tdibot/dashboard/pkg/api"
)

// fakeFetcher serves canned payloads or errors per symbol.
type fakeFetcher struct {
	payloads map[string]*api.PerformancePayload
	errs     map[string]error
}

func (f *fakeFetcher) Performance(ctx context.Context, symbol string) (*api.PerformancePayload, error) {
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.payloads[symbol], nil
}

func payloadFor(symbol string) *api.PerformancePayload {
	return &api.PerformancePayload{
		CurrentPosition: api.PositionInfo{Symbol: symbol},
	}
}

func TestLoadedTransition(t *testing.T) {
	p := New(&fakeFetcher{payloads: map[string]*api.PerformancePayload{
		"BTCUSDT": payloadFor("BTCUSDT"),
	}})

	tok := p.Start("BTCUSDT")
	if p.State() != StateLoading {
		t.Fatalf("state = %v, want loading", p.State())
	}

	out := p.Fetch(context.Background(), tok)
	if !p.Apply(out) {
		t.Fatal("outcome for the live token must be applied")
	}
	if p.State() != StateLoaded {
		t.Errorf("state = %v, want loaded", p.State())
	}
	if p.Payload().CurrentPosition.Symbol != "BTCUSDT" {
		t.Errorf("wrong payload applied: %+v", p.Payload())
	}
}

func TestErroredTransitionWithClassification(t *testing.T) {
	p := New(&fakeFetcher{errs: map[string]error{
		"BTCUSDT": &api.BackendError{Message: "Binance client is not initialized. Please check your API keys and connection."},
	}})

	tok := p.Start("BTCUSDT")
	out := p.Fetch(context.Background(), tok)
	p.Apply(out)

	if p.State() != StateErrored {
		t.Fatalf("state = %v, want errored", p.State())
	}
	if p.ErrClass() != api.ClassConnectivity {
		t.Errorf("class = %v, want connectivity", p.ErrClass())
	}
	if p.Guidance() == "" {
		t.Error("errored pipeline must offer guidance")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	// Request for A is in flight; the user switches to B before A settles.
	// B settles first, then A. The stale A outcome must be dropped and the
	// rendered symbol must stay B.
	f := &fakeFetcher{payloads: map[string]*api.PerformancePayload{
		"AUSDT": payloadFor("AUSDT"),
		"BUSDT": payloadFor("BUSDT"),
	}}
	p := New(f)

	tokA := p.Start("AUSDT")
	tokB := p.Start("BUSDT")

	outA := p.Fetch(context.Background(), tokA)
	outB := p.Fetch(context.Background(), tokB)

	if !p.Apply(outB) {
		t.Fatal("live outcome must be applied")
	}
	if p.Apply(outA) {
		t.Error("superseded outcome must be discarded")
	}
	if got := p.Payload().CurrentPosition.Symbol; got != "BUSDT" {
		t.Errorf("rendered symbol = %s, want BUSDT", got)
	}
	if p.State() != StateLoaded {
		t.Errorf("state = %v, want loaded", p.State())
	}
}

func TestLastSettledWinsWithoutCorrelation(t *testing.T) {
	// The legacy dashboard carried no request identity: whichever response
	// settled last overwrote the view, stale or not. The tracker exists to
	// close exactly this gap.
	tr := NewTracker()
	tokA := tr.Begin(PurposePerformance, "AUSDT")
	if !tr.Accept(tokA) {
		t.Fatal("sole outstanding request must be live")
	}
	tokB := tr.Begin(PurposePerformance, "BUSDT")
	if tr.Accept(tokA) {
		t.Error("token A must be superseded by B")
	}
	if !tr.Accept(tokB) {
		t.Error("newest token must stay live")
	}
}

func TestRefreshFromTerminalStates(t *testing.T) {
	f := &fakeFetcher{
		payloads: map[string]*api.PerformancePayload{"BTCUSDT": payloadFor("BTCUSDT")},
		errs:     map[string]error{"ETHUSDT": &api.BackendError{Message: "No data available"}},
	}
	p := New(f)

	p.Apply(p.Fetch(context.Background(), p.Start("ETHUSDT")))
	if p.State() != StateErrored {
		t.Fatalf("state = %v, want errored", p.State())
	}

	// Errored -> Loading -> Loaded
	tok := p.Start("BTCUSDT")
	if p.State() != StateLoading {
		t.Fatalf("refresh must re-enter loading, got %v", p.State())
	}
	p.Apply(p.Fetch(context.Background(), tok))
	if p.State() != StateLoaded {
		t.Errorf("state = %v, want loaded", p.State())
	}
	if p.Err() != nil {
		t.Errorf("error must be cleared after a successful refresh, got %v", p.Err())
	}
}

func TestTrackerPurposesIndependent(t *testing.T) {
	tr := NewTracker()
	perf := tr.Begin(PurposePerformance, "BTCUSDT")
	cfg := tr.Begin(PurposeConfig, "")
	if !tr.Accept(perf) || !tr.Accept(cfg) {
		t.Error("requests of different purposes must not supersede each other")
	}
}
