package api

import (
	"net/url"
	"strings"
)

// ConfigMap is the backend's flat key to value configuration. All values
// travel as strings; boolean flags use the literal strings "True"/"False".
type ConfigMap map[string]string

// BoolKeys lists the configuration keys the dashboard treats as checkbox
// flags. Everything else is free-form text or numeric input.
var BoolKeys = []string{
	"USE_TESTNET",
	"USE_ML_FILTER",
	"USE_SENTIMENT_ANALYSIS",
	"USE_CROSS_MARKET_CORRELATION",
	"BACKTEST_MODE",
}

// IsBoolKey reports whether key is one of the checkbox flags.
func IsBoolKey(key string) bool {
	for _, k := range BoolKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsTrue reports whether the flag at key is set, using the backend's
// case-insensitive string encoding.
func (m ConfigMap) IsTrue(key string) bool {
	return strings.EqualFold(m[key], "True")
}

// SetBool writes the backend encoding of a flag.
func (m ConfigMap) SetBool(key string, v bool) {
	if v {
		m[key] = "True"
	} else {
		m[key] = "False"
	}
}

// NormalizeBools forces every known flag to an explicit "True"/"False". A
// submitted form omits unchecked boxes, so absent or falsy flags must become
// "False" before transmission rather than missing keys.
func (m ConfigMap) NormalizeBools() {
	for _, key := range BoolKeys {
		m.SetBool(key, m.IsTrue(key))
	}
}

// Clone returns an independent copy.
func (m ConfigMap) Clone() ConfigMap {
	out := make(ConfigMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Values encodes the map for a form-encoded POST.
func (m ConfigMap) Values() url.Values {
	vals := make(url.Values, len(m))
	for k, v := range m {
		vals.Set(k, v)
	}
	return vals
}
