package api

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError reports a non-2xx HTTP response. Per the contract, a non-2xx
// status is a failure even when the body decodes cleanly.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// BackendError carries the application-level error field from an otherwise
// well-formed response body.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// ErrorClass buckets backend error text for user guidance.
type ErrorClass int

const (
	// ClassTransient covers everything we cannot diagnose: the symbol may
	// have just been added and data collection is still warming up.
	ClassTransient ErrorClass = iota
	// ClassConnectivity means the backend's exchange client is not ready or
	// credentials are missing; the user should check API-key configuration.
	ClassConnectivity
)

func (c ErrorClass) String() string {
	if c == ClassConnectivity {
		return "connectivity"
	}
	return "transient"
}

// Substrings the backend emits when its exchange client is down or keys are
// missing, e.g. "Binance client is not initialized. Please check your API
// keys and connection." Matching on human-readable text is fragile; this
// function is deliberately the only place the heuristic lives so a future
// structured error code only needs one change.
var connectivityHints = []string{
	"not initialized",
	"api key",
	"credentials",
}

// ClassifyMessage buckets a backend error message by substring.
func ClassifyMessage(msg string) ErrorClass {
	lower := strings.ToLower(msg)
	for _, hint := range connectivityHints {
		if strings.Contains(lower, hint) {
			return ClassConnectivity
		}
	}
	return ClassTransient
}

// Classify buckets an error returned by the client. Only application-level
// backend errors carry classifiable text; transport and decode failures are
// always transient.
func Classify(err error) ErrorClass {
	var be *BackendError
	if errors.As(err, &be) {
		return ClassifyMessage(be.Message)
	}
	return ClassTransient
}
