package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tdibot/dashboard/pkg/api"
)

// Surface is one rendered chart. Surfaces carry no incremental update path:
// on every refresh the old surface is disposed and a new one built from the
// fresh payload, so the drawing always matches the latest data exactly.
type Surface struct {
	content  string
	disposed bool
}

// View returns the rendered chart. A disposed surface renders nothing.
func (s *Surface) View() string {
	if s == nil || s.disposed {
		return ""
	}
	return s.content
}

// Dispose releases the surface; it must be called before the replacement
// surface is built.
func (s *Surface) Dispose() {
	if s == nil {
		return
	}
	s.disposed = true
	s.content = ""
}

// Sub-character vertical resolution, 1/8 to 8/8 of a cell.
var blockLevels = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// downsample averages data into n buckets so a long series fits the
// terminal width.
func downsample(data []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(data) <= n {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	out := make([]float64, n)
	step := float64(len(data)) / float64(n)
	for i := 0; i < n; i++ {
		lo := int(float64(i) * step)
		hi := int(float64(i+1) * step)
		if hi > len(data) {
			hi = len(data)
		}
		sum := 0.0
		for j := lo; j < hi; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// renderArea draws a filled area chart with unicode block elements. Columns
// at or above baseline use aboveColor, the rest belowColor.
func renderArea(data []float64, baseline float64, width, height int, aboveColor, belowColor lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	cols := downsample(data, width)

	minVal, maxVal := cols[0], cols[0]
	for _, v := range cols {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	levels := height * 8
	scaled := make([]int, len(cols))
	for i, v := range cols {
		s := int((v-minVal)/span*float64(levels-1)) + 1
		if s > levels {
			s = levels
		}
		scaled[i] = s
	}

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		floor := (height - 1 - row) * 8
		var sb strings.Builder
		for col := range scaled {
			fill := scaled[col] - floor
			if fill <= 0 {
				sb.WriteRune(' ')
				continue
			}
			if fill > 8 {
				fill = 8
			}
			color := aboveColor
			if cols[col] < baseline {
				color = belowColor
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(blockLevels[fill])))
		}
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// Series is one line in a multi-series overlay.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
	Marker rune
}

// ErrSeriesMismatch means the overlay series are not index-aligned. The
// renderer never resamples one series to match another.
var ErrSeriesMismatch = errors.New("overlay series must have equal length")

// renderOverlay plots several index-aligned series on one canvas sharing a
// time axis. Later series draw over earlier ones where cells collide.
func renderOverlay(series []Series, width, height int) (string, error) {
	if len(series) == 0 || width <= 0 || height <= 0 {
		return "", nil
	}
	n := len(series[0].Values)
	for _, s := range series[1:] {
		if len(s.Values) != n {
			return "", ErrSeriesMismatch
		}
	}
	if n == 0 {
		return "", nil
	}

	// Shared scale across all series.
	minVal, maxVal := series[0].Values[0], series[0].Values[0]
	cols := make([][]float64, len(series))
	for i, s := range series {
		cols[i] = downsample(s.Values, width)
		for _, v := range cols[i] {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	type cell struct {
		marker rune
		color  lipgloss.Color
	}
	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	for si, s := range series {
		marker := s.Marker
		if marker == 0 {
			marker = '•'
		}
		for x, v := range cols[si] {
			y := int((maxVal - v) / span * float64(height-1))
			if y < 0 {
				y = 0
			}
			if y >= height {
				y = height - 1
			}
			grid[y][x] = cell{marker: marker, color: s.Color}
		}
	}

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			c := grid[y][x]
			if c.marker == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.marker)))
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n"), nil
}

func overlayLegend(series []Series) string {
	parts := make([]string, 0, len(series))
	for _, s := range series {
		marker := s.Marker
		if marker == 0 {
			marker = '•'
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(s.Color).Render(string(marker)+" "+s.Name))
	}
	return strings.Join(parts, "  ")
}

// NewPriceSurface builds the price chart from the close series. The first
// close is the color baseline: columns above it render green, below red.
func NewPriceSurface(candles []api.Candle, width, height int) *Surface {
	if len(candles) == 0 {
		return &Surface{content: dimStyle.Render("no price data")}
	}
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	chart := renderArea(closes, closes[0], width, height, chartUpColor, chartDownColor)
	footer := dimStyle.Render(candles[0].Timestamp.Format("Jan 02 15:04") +
		" — " + candles[len(candles)-1].Timestamp.Format("Jan 02 15:04"))
	return &Surface{content: chart + "\n" + footer}
}

// tdiSeries converts the TDI rows into the six index-aligned overlay series.
func tdiSeries(points []api.TDIPoint) []Series {
	n := len(points)
	rsi := make([]float64, n)
	fast := make([]float64, n)
	slow := make([]float64, n)
	base := make([]float64, n)
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i, p := range points {
		rsi[i] = p.RSI
		fast[i] = p.FastLine
		slow[i] = p.SlowLine
		base[i] = p.MarketBaseline
		upper[i] = p.UpperBand
		lower[i] = p.LowerBand
	}
	// Draw order: bands first so the signal lines stay visible on top.
	return []Series{
		{Name: "upper", Values: upper, Color: bandColor, Marker: '·'},
		{Name: "lower", Values: lower, Color: bandColor, Marker: '·'},
		{Name: "base", Values: base, Color: baselineColor, Marker: '─'},
		{Name: "slow", Values: slow, Color: slowLineColor, Marker: '•'},
		{Name: "fast", Values: fast, Color: fastLineColor, Marker: '•'},
		{Name: "rsi", Values: rsi, Color: rsiColor, Marker: '●'},
	}
}

// NewTDISurface builds the oscillator chart: RSI, fast and slow signal
// lines, market baseline and the two volatility bands on one shared axis.
func NewTDISurface(points []api.TDIPoint, width, height int) *Surface {
	if len(points) == 0 {
		return &Surface{content: dimStyle.Render("no TDI data")}
	}
	series := tdiSeries(points)
	chart, err := renderOverlay(series, width, height)
	if err != nil {
		return &Surface{content: errorStyle.Render("TDI series misaligned: " + err.Error())}
	}
	return &Surface{content: chart + "\n" + overlayLegend(series)}
}
