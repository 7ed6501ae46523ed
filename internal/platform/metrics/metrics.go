// Package metrics holds the Prometheus collectors of the ledger engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Label values shared by callers.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	CacheClosingDates = "closing_dates"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	digestDuration   *prometheus.HistogramVec
	checkpointStates *prometheus.CounterVec
	commitsTotal     *prometheus.CounterVec
	cursorLedgers    *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. A private registry keeps repeated calls (tests)
// from colliding.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
		digestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_digest_duration_seconds",
				Help:    "Duration of digest calls by scope kind.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scope"},
		),
		checkpointStates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_digest_checkpoint_total",
				Help: "Digests by closing entry checkpoint state.",
			},
			[]string{"state"},
		),
		commitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_commits_total",
				Help: "Journal entry commits by origin and status.",
			},
			[]string{"origin", "status"},
		),
		cursorLedgers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_cursor_ledgers_total",
				Help: "Ledgers processed by cursor commits by status.",
			},
			[]string{"status"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an HTTP request.
func (m *Metrics) RecordRequestDuration(route, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// RecordDigest records the duration of a digest and the checkpoint state it used.
func (m *Metrics) RecordDigest(scope, state string, d time.Duration) {
	m.digestDuration.WithLabelValues(scope).Observe(d.Seconds())
	m.checkpointStates.WithLabelValues(state).Inc()
}

// IncrCommit increments the commit counter.
func (m *Metrics) IncrCommit(origin, status string) {
	m.commitsTotal.WithLabelValues(origin, status).Inc()
}

// IncrCursorLedger increments the cursor ledger counter.
func (m *Metrics) IncrCursorLedger(status string) {
	m.cursorLedgers.WithLabelValues(status).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// Snapshot is a summary of the cumulative counters, served on the health endpoint.
type Snapshot struct {
	Commits         float64            `json:"commits"`
	CommitFailures  float64            `json:"commitFailures"`
	CheckpointUsage map[string]float64 `json:"checkpointUsage"`
	CacheHitRate    float64            `json:"cacheHitRate"`
}

// GetSnapshot gathers the current counter values.
func (m *Metrics) GetSnapshot(origins []string, states []string) Snapshot {
	s := Snapshot{CheckpointUsage: make(map[string]float64, len(states))}
	for _, o := range origins {
		s.Commits += getCounterValue(m.commitsTotal, o, StatusSuccess)
		s.CommitFailures += getCounterValue(m.commitsTotal, o, StatusError)
	}
	for _, st := range states {
		s.CheckpointUsage[st] = getCounterValue(m.checkpointStates, st)
	}
	hits := getCounterValue(m.cacheHits, CacheClosingDates)
	misses := getCounterValue(m.cacheMisses, CacheClosingDates)
	if hits+misses > 0 {
		s.CacheHitRate = hits / (hits + misses)
	}
	return s
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
