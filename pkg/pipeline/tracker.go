package pipeline

import "github.com/google/uuid"

// Purpose identifies a class of outstanding request. Only the newest request
// per purpose is live; results for superseded requests are discarded.
type Purpose string

const (
	PurposePerformance Purpose = "performance"
	PurposeSymbols     Purpose = "symbols"
	PurposeConfig      Purpose = "config"
	PurposeStrategyRun Purpose = "strategy_run"
)

// Token tags one network operation with its identity: what it was issued
// for and which symbol it concerns. Results carry the token back so stale
// responses can be recognized.
type Token struct {
	ID      string
	Purpose Purpose
	Symbol  string
}

// Tracker records the newest token per purpose. It is owned by the single
// update goroutine and is not safe for concurrent use; commands running off
// the loop never touch it, they only carry tokens.
type Tracker struct {
	live map[Purpose]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[Purpose]string)}
}

// Begin registers a new request for purpose, superseding any outstanding
// request of the same purpose.
func (t *Tracker) Begin(purpose Purpose, symbol string) Token {
	tok := Token{ID: uuid.NewString(), Purpose: purpose, Symbol: symbol}
	t.live[purpose] = tok.ID
	return tok
}

// Accept reports whether tok still identifies the live request for its
// purpose. A false return means a newer request superseded it and its result
// must be dropped.
func (t *Tracker) Accept(tok Token) bool {
	return t.live[tok.Purpose] == tok.ID
}
