// Package metrics provides Prometheus metrics for the rating pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the pipeline's Prometheus metrics.
type Manager struct {
	namespace   string
	poolBuckets []float64
	registry    *prometheus.Registry

	matchesParsed  prometheus.Counter
	parseFailures  prometheus.Counter
	matchesRated   prometheus.Counter
	matchesSkipped prometheus.Counter
	playersTracked prometheus.Gauge
	poolPoints     prometheus.Histogram
	runDuration    prometheus.Histogram
}

// Global manager on a custom registry so the default Go collectors never
// pollute the scrape output.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:   "ranked",
		poolBuckets: prometheus.LinearBuckets(25, 25, 16),
		registry:    prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matches_parsed_total",
		Help:      "Match blocks successfully parsed from the input log",
	})
	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "parse_failures_total",
		Help:      "Match blocks rejected by the parser",
	})
	m.matchesRated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matches_rated_total",
		Help:      "Matches folded into the rating ledger",
	})
	m.matchesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matches_skipped_total",
		Help:      "Matches dropped for lacking a full roster on both sides",
	})
	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "players_tracked",
		Help:      "Players with a rating in the ledger",
	})
	m.poolPoints = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pool_points",
		Help:      "Integer pool sized per rated match",
		Buckets:   m.poolBuckets,
	})
	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a full pipeline run",
		Buckets:   prometheus.DefBuckets,
	})
}

// Handler exposes the manager's registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Default returns the global manager.
func Default() *Manager { return globalManager }

// Package-level recording helpers on the global manager.

// AddMatchesParsed counts successfully parsed match blocks.
func AddMatchesParsed(n int) { globalManager.matchesParsed.Add(float64(n)) }

// AddParseFailures counts rejected match blocks.
func AddParseFailures(n int) { globalManager.parseFailures.Add(float64(n)) }

// IncMatchesRated counts a match folded into the ledger.
func IncMatchesRated() { globalManager.matchesRated.Inc() }

// AddMatchesSkipped counts matches dropped by the roster filter.
func AddMatchesSkipped(n int) { globalManager.matchesSkipped.Add(float64(n)) }

// SetPlayersTracked records the ledger population.
func SetPlayersTracked(n int) { globalManager.playersTracked.Set(float64(n)) }

// ObservePool records the pool sized for one match.
func ObservePool(pool float64) { globalManager.poolPoints.Observe(pool) }

// ObserveRunDuration records the wall time of a pipeline run in seconds.
func ObserveRunDuration(seconds float64) { globalManager.runDuration.Observe(seconds) }
