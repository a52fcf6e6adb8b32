package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProposalMetrics records builder and public-page activity.
type ProposalMetrics struct {
	saveDuration *prometheus.HistogramVec
	saves        *prometheus.CounterVec
	renders      *prometheus.CounterVec
	publicViews  *prometheus.CounterVec
}

// NewProposalMetrics registers the proposal metrics on the provided registerer.
func NewProposalMetrics(reg prometheus.Registerer) *ProposalMetrics {
	if reg == nil {
		return &ProposalMetrics{}
	}
	saveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proposal_save_duration_seconds",
		Help:    "Duration of proposal save transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proposal_saves_total",
		Help: "Proposal save attempts by outcome.",
	}, []string{"operation", "outcome"})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proposal_renders_total",
		Help: "Proposal document renders by surface.",
	}, []string{"surface"})
	publicViews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proposal_public_views_total",
		Help: "Public proposal page fetches by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(saveDuration, saves, renders, publicViews)
	return &ProposalMetrics{
		saveDuration: saveDuration,
		saves:        saves,
		renders:      renders,
		publicViews:  publicViews,
	}
}

// ObserveSaveDuration records the duration for the named save operation.
func (p *ProposalMetrics) ObserveSaveDuration(operation string, duration time.Duration) {
	if p == nil || p.saveDuration == nil {
		return
	}
	p.saveDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSave increments the save counter for the operation/outcome pair.
func (p *ProposalMetrics) IncSave(operation, outcome string) {
	if p == nil || p.saves == nil {
		return
	}
	p.saves.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncRender increments the render counter for the named surface.
func (p *ProposalMetrics) IncRender(surface string) {
	if p == nil || p.renders == nil {
		return
	}
	p.renders.WithLabelValues(normalizeLabel(surface)).Inc()
}

// IncPublicView increments the public view counter for the outcome.
func (p *ProposalMetrics) IncPublicView(outcome string) {
	if p == nil || p.publicViews == nil {
		return
	}
	p.publicViews.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
