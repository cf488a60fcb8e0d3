package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorClass
	}{
		{"Binance client is not initialized. Please check your API keys and connection.", ClassConnectivity},
		{"Binance API keys are missing in configuration", ClassConnectivity},
		{"invalid credentials", ClassConnectivity},
		{"No data available for BTCUSDT. Please try again later.", ClassTransient},
		{"Strategy not found for SOLUSDT. Please add it to your trading symbols.", ClassTransient},
		{"", ClassTransient},
	}
	for _, tt := range tests {
		if got := ClassifyMessage(tt.msg); got != tt.want {
			t.Errorf("ClassifyMessage(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestClassifyOnlyInspectsBackendErrors(t *testing.T) {
	transport := fmt.Errorf("fetch /api/performance/BTCUSDT: %w", errors.New("connection refused"))
	if got := Classify(transport); got != ClassTransient {
		t.Errorf("transport failure should classify transient, got %v", got)
	}

	status := &StatusError{Code: 502}
	if got := Classify(status); got != ClassTransient {
		t.Errorf("status failure should classify transient, got %v", got)
	}

	wrapped := fmt.Errorf("refresh: %w", &BackendError{Message: "client is not initialized"})
	if got := Classify(wrapped); got != ClassConnectivity {
		t.Errorf("wrapped backend error should classify connectivity, got %v", got)
	}
}
