package ui

import (
	"strings"
	"testing"
)

func TestToastsExpireIndependently(t *testing.T) {
	var s ToastStack
	s.Push(ToastInfo, "first")
	s.Push(ToastError, "second")
	s.Push(ToastSuccess, "third")

	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}

	s.Expire(2)
	if s.Len() != 2 {
		t.Fatalf("len = %d after one expiry, want 2", s.Len())
	}
	view := s.View()
	if strings.Contains(view, "second") {
		t.Error("expired toast still rendered")
	}
	if !strings.Contains(view, "first") || !strings.Contains(view, "third") {
		t.Error("surviving toasts must keep rendering")
	}

	// Expiring an already-gone toast is harmless.
	s.Expire(2)
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestRegionsIdempotent(t *testing.T) {
	r := NewRegions()

	r.Show(RegionDashboard)
	r.Show(RegionDashboard)
	if !r.Active(RegionDashboard) {
		t.Error("region should be active")
	}
	if !r.Any() {
		t.Error("Any should report an active region")
	}

	r.Hide(RegionDashboard)
	r.Hide(RegionDashboard)
	if r.Active(RegionDashboard) {
		t.Error("region should be hidden")
	}
	if r.Any() {
		t.Error("no regions should be active")
	}
}

func TestRegionsIndependent(t *testing.T) {
	r := NewRegions()
	r.Show(RegionSymbols)
	r.Show(RegionConfig)
	r.Hide(RegionSymbols)
	if r.Active(RegionSymbols) {
		t.Error("symbols region should be hidden")
	}
	if !r.Active(RegionConfig) {
		t.Error("config region must stay active")
	}
}
