package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/tdibot/dashboard/pkg/api"
)

func TestDownsampleAverages(t *testing.T) {
	data := []float64{1, 3, 5, 7}
	out := downsample(data, 2)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if math.Abs(out[0]-2) > 1e-9 || math.Abs(out[1]-6) > 1e-9 {
		t.Errorf("buckets = %v, want [2 6]", out)
	}
}

func TestDownsampleShortSeriesUntouched(t *testing.T) {
	data := []float64{1, 2}
	out := downsample(data, 10)
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Errorf("short series should pass through, got %v", out)
	}
}

func TestRenderAreaDimensions(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = float64(i % 17)
	}
	out := renderArea(data, 8, 40, 6, chartUpColor, chartDownColor)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Errorf("height = %d rows, want 6", len(lines))
	}
}

func TestRenderOverlayRejectsMisalignedSeries(t *testing.T) {
	series := []Series{
		{Name: "a", Values: []float64{1, 2, 3}},
		{Name: "b", Values: []float64{1, 2}},
	}
	if _, err := renderOverlay(series, 10, 4); err != ErrSeriesMismatch {
		t.Errorf("expected ErrSeriesMismatch, got %v", err)
	}
}

func TestRenderOverlayAligned(t *testing.T) {
	series := []Series{
		{Name: "a", Values: []float64{1, 2, 3, 4}, Marker: '•'},
		{Name: "b", Values: []float64{4, 3, 2, 1}, Marker: '·'},
	}
	out, err := renderOverlay(series, 4, 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(strings.Split(out, "\n")) != 4 {
		t.Errorf("unexpected height:\n%s", out)
	}
}

func TestSurfaceDispose(t *testing.T) {
	s := &Surface{content: "chart"}
	if s.View() != "chart" {
		t.Fatalf("view = %q", s.View())
	}
	s.Dispose()
	if s.View() != "" {
		t.Error("disposed surface must render nothing")
	}

	var nilSurface *Surface
	if nilSurface.View() != "" {
		t.Error("nil surface must render nothing")
	}
	nilSurface.Dispose() // must not panic
}

func TestTDISeriesAlignment(t *testing.T) {
	points := []api.TDIPoint{
		{RSI: 55, FastLine: 54, SlowLine: 52, MarketBaseline: 50, UpperBand: 68, LowerBand: 32},
		{RSI: 57, FastLine: 55, SlowLine: 53, MarketBaseline: 50, UpperBand: 67, LowerBand: 33},
	}
	series := tdiSeries(points)
	if len(series) != 6 {
		t.Fatalf("series count = %d, want 6", len(series))
	}
	for _, s := range series {
		if len(s.Values) != len(points) {
			t.Errorf("series %s length %d, want %d", s.Name, len(s.Values), len(points))
		}
	}
}

func TestNewSurfacesHandleEmptyPayload(t *testing.T) {
	if NewPriceSurface(nil, 40, 6).View() == "" {
		t.Error("empty price surface should still explain itself")
	}
	if NewTDISurface(nil, 40, 6).View() == "" {
		t.Error("empty TDI surface should still explain itself")
	}
}
