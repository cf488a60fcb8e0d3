package api

import "testing"

func TestIsTrueCaseInsensitive(t *testing.T) {
	m := ConfigMap{"USE_TESTNET": "true", "USE_ML_FILTER": "False", "BACKTEST_MODE": "TRUE"}
	if !m.IsTrue("USE_TESTNET") {
		t.Error("lowercase true should count as set")
	}
	if m.IsTrue("USE_ML_FILTER") {
		t.Error("False should not count as set")
	}
	if !m.IsTrue("BACKTEST_MODE") {
		t.Error("uppercase TRUE should count as set")
	}
	if m.IsTrue("USE_SENTIMENT_ANALYSIS") {
		t.Error("absent key should not count as set")
	}
}

func TestNormalizeBoolsFillsAbsentFlags(t *testing.T) {
	m := ConfigMap{"USE_TESTNET": "True", "TDI_RSI_LENGTH": "8"}
	m.NormalizeBools()

	for _, key := range BoolKeys {
		v, ok := m[key]
		if !ok {
			t.Errorf("flag %s missing after normalization", key)
			continue
		}
		if v != "True" && v != "False" {
			t.Errorf("flag %s = %q, want True or False", key, v)
		}
	}
	if m["USE_TESTNET"] != "True" {
		t.Errorf("checked flag must stay True, got %q", m["USE_TESTNET"])
	}
	if m["USE_ML_FILTER"] != "False" {
		t.Errorf("absent flag must become False, got %q", m["USE_ML_FILTER"])
	}
	if m["TDI_RSI_LENGTH"] != "8" {
		t.Errorf("non-flag value must pass through, got %q", m["TDI_RSI_LENGTH"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := ConfigMap{"LOG_LEVEL": "INFO"}
	clone := m.Clone()
	clone["LOG_LEVEL"] = "DEBUG"
	if m["LOG_LEVEL"] != "INFO" {
		t.Error("clone mutated the original map")
	}
}
