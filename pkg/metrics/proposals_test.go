package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProposalMetricsRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewProposalMetrics(reg)

	m.IncSave("update", "success")
	m.IncSave("update", "success")
	m.IncRender("public")
	m.IncPublicView("expired")
	m.ObserveSaveDuration("update", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.saves.WithLabelValues("update", "success")); got != 2 {
		t.Fatalf("expected 2 saves, got %v", got)
	}
	if got := testutil.ToFloat64(m.renders.WithLabelValues("public")); got != 1 {
		t.Fatalf("expected 1 render, got %v", got)
	}
	if got := testutil.ToFloat64(m.publicViews.WithLabelValues("expired")); got != 1 {
		t.Fatalf("expected 1 public view, got %v", got)
	}
}

func TestProposalMetricsNilSafe(t *testing.T) {
	var m *ProposalMetrics
	m.IncSave("create", "error")
	m.IncRender("editor")
	m.IncPublicView("ok")
	m.ObserveSaveDuration("create", time.Second)

	empty := NewProposalMetrics(nil)
	empty.IncSave("create", "error")
	empty.IncPublicView("ok")
}
