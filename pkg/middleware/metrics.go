package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/dbtabs/pkg/querystore"
	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dbtabs").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// TabBuckets are the histogram buckets for the open-tab count.
	TabBuckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithTabBuckets sets the histogram buckets for the open-tab count.
func WithTabBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.TabBuckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:  "dbtabs",
		TabBuckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		Registry:   prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for dbtabs requests.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	decodeFailures  *prometheus.CounterVec
	openTabs        prometheus.Histogram
}

// globalMetrics is created on the first Prometheus() call; later calls
// share it regardless of options, matching the process-wide nature of a
// Prometheus registry.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total requests seen by the tab-state middleware",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"path"}),

		decodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_failures_total",
			Help:        "Requests whose tab-state payload failed to decode",
			ConstLabels: config.ConstLabels,
		}, []string{"db"}),

		openTabs: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "open_tabs",
			Help:        "Number of open tabs carried by each request",
			ConstLabels: config.ConstLabels,
			Buckets:     config.TabBuckets,
		}),
	}
}

// statusRecorder captures the response status for labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Prometheus creates middleware that collects request metrics for db.
//
// Metrics collected:
//   - dbtabs_requests_total: Counter of requests by path and status
//   - dbtabs_request_duration_seconds: Histogram of request duration
//   - dbtabs_decode_failures_total: Counter of malformed tab-state payloads
//   - dbtabs_open_tabs: Histogram of open-tab counts per request
//
// Example:
//
//	r.Use(middleware.Prometheus("mydb",
//	    middleware.WithNamespace("myapp"),
//	))
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(db string, opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			codec := tabstate.New(querystore.FromRequest(r))
			if entries, err := codec.RawTables(db); err != nil {
				m.decodeFailures.WithLabelValues(db).Inc()
			} else {
				m.openTabs.Observe(float64(len(entries)))
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start).Seconds()

			path := r.URL.Path
			if path == "" {
				path = "/"
			}
			m.requestDuration.WithLabelValues(path).Observe(duration)
			m.requestsTotal.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		})
	}
}
