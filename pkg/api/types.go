package api

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Position directions as reported by the backend. An empty string means flat.
const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// Stats holds the backend-computed aggregate performance figures for a symbol.
type Stats struct {
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
	AvgProfit   float64 `json:"avg_profit"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// PositionInfo is the snapshot of the currently open position, if any.
// Numeric fields are pointers because the backend sends null when flat.
type PositionInfo struct {
	Symbol           string    `json:"symbol"`
	Position         string    `json:"position"`
	EntryPrice       *float64  `json:"entry_price"`
	PositionSize     *float64  `json:"position_size"`
	StopLoss         *float64  `json:"stop_loss"`
	TakeProfitLevels []float64 `json:"take_profit_levels"`
}

// Open reports whether the snapshot describes an open position.
func (p PositionInfo) Open() bool {
	return p.Position == DirectionLong || p.Position == DirectionShort
}

// Candle is one row of the execution-timeframe price series. The chart only
// consumes Close, but the backend ships the full OHLCV row.
type Candle struct {
	Timestamp Timestamp `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// TDIPoint is one row of the Traders Dynamic Index series, index-aligned with
// the price series on the same timestamps.
type TDIPoint struct {
	Timestamp      Timestamp `json:"timestamp"`
	RSI            float64   `json:"rsi"`
	FastLine       float64   `json:"fast_line"`
	SlowLine       float64   `json:"slow_line"`
	MarketBaseline float64   `json:"market_baseline"`
	UpperBand      float64   `json:"upper_band"`
	LowerBand      float64   `json:"lower_band"`
}

// Trade is one closed trade from the backend's ledger.
type Trade struct {
	EntryTime    Timestamp `json:"entry_time"`
	ExitTime     Timestamp `json:"exit_time"`
	Symbol       string    `json:"symbol"`
	Direction    string    `json:"direction"`
	EntryPrice   float64   `json:"entry_price"`
	ExitPrice    float64   `json:"exit_price"`
	PositionSize float64   `json:"position_size"`
	PnLPct       float64   `json:"pnl_pct"`
	ExitReason   string    `json:"exit_reason"`
}

// PerformancePayload is the per-symbol bundle returned by /api/performance.
// A fresh payload fully replaces the previous one on every refresh.
type PerformancePayload struct {
	Stats           Stats        `json:"stats"`
	Trades          []Trade      `json:"trades"`
	CurrentPosition PositionInfo `json:"current_position"`
	PriceData       []Candle     `json:"price_data"`
	TDIData         []TDIPoint   `json:"tdi_data"`
}

// Timestamp accepts the backend's mixed timestamp encodings: epoch
// milliseconds, RFC 3339, or the stringified pandas form
// "2006-01-02 15:04:05". Values are interpreted in the local timezone, which
// is also how they are displayed.
type Timestamp struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	// Numeric values are epoch milliseconds.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		ms := int64(n)
		t.Time = time.UnixMilli(ms).Local()
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: unrecognized format", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format("2006-01-02 15:04:05") + `"`), nil
}
