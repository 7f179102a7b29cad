package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summarizer metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "summaries_total",
			Help:      "Summaries served by outcome (generated, cached, error)",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end encode, generate and decode duration",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	TokensPerRequest = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "tokens_per_request",
			Help:      "Distribution of token counts per summary",
			Buckets:   []float64{10, 50, 80, 150, 250, 350, 512, 1000, 5000},
		},
		[]string{"type"},
	)

	RuntimeCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "runtime_calls_total",
			Help:      "Calls to the model runtime by operation and status",
		},
		[]string{"op", "status"},
	)

	RuntimeCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "runtime_call_duration_seconds",
			Help:      "Model runtime call duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "model_loaded",
			Help:      "Model load state (1=loaded, 0=not loaded)",
		},
	)

	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "model_loads_total",
			Help:      "Model load attempts by result",
		},
		[]string{"result"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "cache_lookups_total",
			Help:      "Summary cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	PoolRunningWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "pool_running_workers",
			Help:      "Generations currently executing",
		},
	)

	PoolWaitingTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "pool_waiting_tasks",
			Help:      "Generations queued behind the concurrency limit",
		},
	)

	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "summarizer",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordSummary records a summarize outcome and, for fresh generations, its cost.
func RecordSummary(outcome string, inputTokens, outputChars int, durationSec float64) {
	SummariesTotal.WithLabelValues(outcome).Inc()
	if outcome != "generated" {
		return
	}
	GenerationDuration.Observe(durationSec)
	TokensPerRequest.WithLabelValues("input").Observe(float64(inputTokens))
	TokensPerRequest.WithLabelValues("output_chars").Observe(float64(outputChars))
}

// RecordRuntimeCall records one call to the model runtime
func RecordRuntimeCall(op, status string, durationSec float64) {
	RuntimeCallsTotal.WithLabelValues(op, status).Inc()
	RuntimeCallDuration.WithLabelValues(op).Observe(durationSec)
}

// RecordModelLoad records a load attempt
func RecordModelLoad(result string) {
	ModelLoadsTotal.WithLabelValues(result).Inc()
}

// SetModelLoaded sets the model load gauge
func SetModelLoaded(loaded bool) {
	val := 0.0
	if loaded {
		val = 1.0
	}
	ModelLoaded.Set(val)
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		CacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// SetPoolStats publishes worker pool occupancy
func SetPoolStats(running int64, waiting uint64) {
	PoolRunningWorkers.Set(float64(running))
	PoolWaitingTasks.Set(float64(waiting))
}

// RecordUserAgent records the user agent family with low cardinality
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(userAgentFamily(ua)).Inc()
}

func userAgentFamily(ua string) string {
	ua = strings.ToLower(strings.TrimSpace(ua))
	switch {
	case ua == "":
		return "unknown"
	case strings.Contains(ua, "summarizer-cli"):
		return "summarizer_cli"
	case strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") || strings.Contains(ua, "firefox"):
		return "browser"
	case strings.Contains(ua, "curl") || strings.Contains(ua, "wget") || strings.Contains(ua, "httpie"):
		return "cli"
	case strings.Contains(ua, "go-resty") || strings.Contains(ua, "python-requests") || strings.Contains(ua, "go-http-client") || strings.Contains(ua, "axios"):
		return "sdk"
	default:
		return "unknown"
	}
}
