// Package metrics provides Prometheus metrics for the reputation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring
	scoresComputed prometheus.Counter
	scoringErrors  prometheus.Counter
	scoringLatency prometheus.Histogram

	// Credential lifecycle
	credentialMints    prometheus.Counter
	credentialUpdates  prometheus.Counter
	credentialNoops    prometheus.Counter
	credentialBurns    prometheus.Counter
	lifecycleErrors    *prometheus.CounterVec
	transferRejections prometheus.Counter
	chainSubmitLatency prometheus.Histogram
	chainRetries       prometheus.Counter

	// Leaderboard
	leaderboardRebuilds        prometheus.Counter
	leaderboardRebuildDuration prometheus.Histogram
	liveCredentials            prometheus.Gauge

	// Refresh pipeline
	refreshQueueSize    prometheus.Gauge
	refreshQueueDrops   prometheus.Counter
	refreshWorkerErrors prometheus.Counter
	refreshWorkerCount  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry so default Go collectors stay out
// of the scrape unless main registers them explicitly.
var (
	globalManager  *Manager               //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "reflekt",
		subsystem:        "reputation",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total number of reputation scores computed",
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of scoring failures (invalid or unavailable metrics)",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of end-to-end scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.credentialMints = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_mints_total",
		Help:      "Total number of credentials minted",
	})

	m.credentialUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_updates_total",
		Help:      "Total number of credential score/tier updates submitted on-chain",
	})

	m.credentialNoops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_noops_total",
		Help:      "Total number of syncs suppressed by the update dead-band",
	})

	m.credentialBurns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "credential_burns_total",
		Help:      "Total number of credentials burned by their owners",
	})

	m.lifecycleErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "lifecycle_errors_total",
			Help:      "Total number of lifecycle operation failures by error kind",
		},
		[]string{"kind"},
	)

	m.transferRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transfer_rejections_total",
		Help:      "Total number of rejected ownership mutations (soulbound violations)",
	})

	m.chainSubmitLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chain_submit_latency_milliseconds",
		Help:      "Chain submission latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.chainRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chain_retries_total",
		Help:      "Total number of chain submissions retried after a timeout",
	})

	m.leaderboardRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_rebuilds_total",
		Help:      "Total number of leaderboard snapshot rebuilds",
	})

	m.leaderboardRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_rebuild_duration_milliseconds",
		Help:      "Leaderboard snapshot rebuild duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.liveCredentials = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_credentials",
		Help:      "Current number of live (minted, unburned) credentials",
	})

	m.refreshQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_queue_size",
		Help:      "Current size of the re-scoring queue",
	})

	m.refreshQueueDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_queue_drops_total",
		Help:      "Total number of refresh requests dropped by backpressure",
	})

	m.refreshWorkerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_worker_errors_total",
		Help:      "Total number of refresh worker failures",
	})

	m.refreshWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_worker_count",
		Help:      "Number of refresh workers running",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers against the global manager.

// RecordScoreComputed increments the computed-score counter.
func RecordScoreComputed() { globalManager.scoresComputed.Inc() }

// RecordScoringError increments the scoring failure counter.
func RecordScoringError() { globalManager.scoringErrors.Inc() }

// RecordScoringLatency records end-to-end scoring latency.
func RecordScoringLatency(latencyMs float64) { globalManager.scoringLatency.Observe(latencyMs) }

// RecordCredentialMint increments the mint counter.
func RecordCredentialMint() { globalManager.credentialMints.Inc() }

// RecordCredentialUpdate increments the update counter.
func RecordCredentialUpdate() { globalManager.credentialUpdates.Inc() }

// RecordCredentialNoop increments the dead-band suppression counter.
func RecordCredentialNoop() { globalManager.credentialNoops.Inc() }

// RecordCredentialBurn increments the burn counter.
func RecordCredentialBurn() { globalManager.credentialBurns.Inc() }

// RecordLifecycleError counts a lifecycle failure by error kind.
func RecordLifecycleError(kind string) {
	globalManager.lifecycleErrors.WithLabelValues(kind).Inc()
}

// RecordTransferRejected counts a soulbound violation attempt.
func RecordTransferRejected() { globalManager.transferRejections.Inc() }

// RecordChainSubmitLatency records one chain submission round trip.
func RecordChainSubmitLatency(latencyMs float64) {
	globalManager.chainSubmitLatency.Observe(latencyMs)
}

// RecordChainRetry counts a retried chain submission.
func RecordChainRetry() { globalManager.chainRetries.Inc() }

// RecordLeaderboardRebuild records one snapshot rebuild and its duration.
func RecordLeaderboardRebuild(durationMs float64) {
	globalManager.leaderboardRebuilds.Inc()
	globalManager.leaderboardRebuildDuration.Observe(durationMs)
}

// UpdateLiveCredentials sets the live credential gauge.
func UpdateLiveCredentials(count int) { globalManager.liveCredentials.Set(float64(count)) }

// UpdateRefreshQueueSize sets the refresh queue gauge.
func UpdateRefreshQueueSize(size int) { globalManager.refreshQueueSize.Set(float64(size)) }

// RecordRefreshQueueDrop counts a request dropped by backpressure.
func RecordRefreshQueueDrop() { globalManager.refreshQueueDrops.Inc() }

// RecordRefreshWorkerError counts a refresh worker failure.
func RecordRefreshWorkerError() { globalManager.refreshWorkerErrors.Inc() }

// UpdateRefreshWorkerCount sets the worker gauge.
func UpdateRefreshWorkerCount(count int) { globalManager.refreshWorkerCount.Set(float64(count)) }

// RecordHTTPRequest counts one request by endpoint, method, and status.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry exposes the custom registry for the /metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
