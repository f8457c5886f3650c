package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pagecluster"

// Pipeline holds the clustering run metrics.
type Pipeline struct {
	documentsTotal  *prometheus.CounterVec
	skipsTotal      *prometheus.CounterVec
	clusters        *prometheus.GaugeVec
	vocabularySize  *prometheus.GaugeVec
	tierDuration    *prometheus.HistogramVec
	tiersTotal      *prometheus.CounterVec
	lastRunDuration prometheus.Gauge
}

// NewPipeline creates the run metrics and registers them in reg.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	m := &Pipeline{
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed per tier by outcome",
		}, []string{"tier", "status"}),

		skipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skips_total",
			Help:      "Documents excluded from clustering",
		}, []string{"tier", "reason"}),

		clusters: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Clusters produced by the last run",
		}, []string{"tier"}),

		vocabularySize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_size",
			Help:      "Vocabulary terms per tier",
		}, []string{"tier"}),

		tierDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tier_duration_seconds",
			Help:      "Tier processing duration",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"tier"}),

		tiersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiers_total",
			Help:      "Tiers processed by outcome",
		}, []string{"status"}),

		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last full run",
		}),
	}

	reg.MustRegister(
		m.documentsTotal, m.skipsTotal,
		m.clusters, m.vocabularySize,
		m.tierDuration, m.tiersTotal,
		m.lastRunDuration,
	)

	return m
}

// DocumentProcessed counts one document outcome ("clustered" / "skipped").
func (m *Pipeline) DocumentProcessed(tier, status string) {
	m.documentsTotal.WithLabelValues(tier, status).Inc()
}

// DocumentSkipped counts one skip by reason class ("decode", "render", "invalid", "duplicate").
func (m *Pipeline) DocumentSkipped(tier, reason string) {
	m.skipsTotal.WithLabelValues(tier, reason).Inc()
}

// TierFinished records the outcome of one tier.
func (m *Pipeline) TierFinished(tier string, clusters, vocabulary int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.tiersTotal.WithLabelValues(status).Inc()
	m.tierDuration.WithLabelValues(tier).Observe(d.Seconds())
	m.clusters.WithLabelValues(tier).Set(float64(clusters))
	m.vocabularySize.WithLabelValues(tier).Set(float64(vocabulary))
}

// RunFinished records the duration of a full run.
func (m *Pipeline) RunFinished(d time.Duration) {
	m.lastRunDuration.Set(d.Seconds())
}
