// Package pipeline orchestrates per-symbol performance refreshes: it issues
// the fetch, classifies the outcome, and exposes the latest loaded payload to
// the renderers. A refresh fully replaces the prior payload; there is no
// incremental merge.
package pipeline

import (
	"context"
	"errors"

	"github.com/tdibot/dashboard/pkg/api"
)

// State is the pipeline's lifecycle for the active symbol.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Fetcher is the slice of the backend client the pipeline needs.
type Fetcher interface {
	Performance(ctx context.Context, symbol string) (*api.PerformancePayload, error)
}

// Outcome is the settled result of one tagged fetch.
type Outcome struct {
	Token   Token
	Payload *api.PerformancePayload
	Err     error
	Class   api.ErrorClass
}

// Pipeline drives performance refreshes for whichever symbol is active.
// Like the tracker it owns, it is mutated only from the update goroutine.
type Pipeline struct {
	fetcher Fetcher
	tracker *Tracker

	state   State
	symbol  string
	payload *api.PerformancePayload
	err     error
	class   api.ErrorClass
}

// New creates an idle pipeline.
func New(f Fetcher) *Pipeline {
	return &Pipeline{fetcher: f, tracker: NewTracker()}
}

// Start enters Loading for symbol and returns the token identifying the new
// request. Any in-flight performance request is superseded; its eventual
// result will be discarded by Apply. Re-entering Loading from Loaded or
// Errored is allowed; a refresh can be triggered from any terminal state.
func (p *Pipeline) Start(symbol string) Token {
	p.state = StateLoading
	p.symbol = symbol
	return p.tracker.Begin(PurposePerformance, symbol)
}

// Fetch performs the network round-trip for tok and classifies the result.
// It runs off the update loop (inside a tea.Cmd) and touches no shared state.
func (p *Pipeline) Fetch(ctx context.Context, tok Token) Outcome {
	payload, err := p.fetcher.Performance(ctx, tok.Symbol)
	out := Outcome{Token: tok, Payload: payload, Err: err}
	if err != nil {
		out.Class = api.Classify(err)
	}
	return out
}

// Apply folds a settled outcome into the pipeline. Outcomes whose token has
// been superseded are dropped without touching state, which closes the
// last-settled-wins overwrite the legacy dashboard suffered from. Reports
// whether the outcome was applied.
func (p *Pipeline) Apply(out Outcome) bool {
	if !p.tracker.Accept(out.Token) {
		return false
	}
	if out.Err != nil {
		p.state = StateErrored
		p.err = out.Err
		p.class = out.Class
		p.payload = nil
		return true
	}
	p.state = StateLoaded
	p.err = nil
	p.payload = out.Payload
	return true
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

// Symbol returns the active symbol, i.e. the one the newest request targets.
func (p *Pipeline) Symbol() string {
	return p.symbol
}

// Payload returns the latest loaded payload, or nil outside StateLoaded.
func (p *Pipeline) Payload() *api.PerformancePayload {
	return p.payload
}

// Err returns the error that put the pipeline into StateErrored.
func (p *Pipeline) Err() error {
	return p.err
}

// ErrClass returns the classification of the current error.
func (p *Pipeline) ErrClass() api.ErrorClass {
	return p.class
}

// Guidance returns the user-facing remediation text for the current error
// state: API-key guidance for connectivity failures, warm-up guidance for
// everything else.
func (p *Pipeline) Guidance() string {
	if p.state != StateErrored {
		return ""
	}
	var be *api.BackendError
	if errors.As(p.err, &be) && p.class == api.ClassConnectivity {
		return "The backend's exchange client is not ready. Check the API key configuration, then retry."
	}
	return "Data for this symbol may still be warming up. If it was just added, give the collector a moment and retry."
}
