package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusMiddleware(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewPedanticRegistry()

	handler := Prometheus("mydb", WithRegistry(reg))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("fail") != "" {
				w.WriteHeader(http.StatusTeapot)
				return
			}
			w.WriteHeader(http.StatusOK)
		}),
	)

	serve := func(target string) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	}

	serve("/mydb/tables?t=%5B%5B3%5D%2C%5B7%5D%5D")
	serve("/mydb/tables?t=%5B%5B3%5D%2C%5B7%5D%5D")
	serve("/mydb/tables?t=%7B%7Bnope") // malformed payload
	serve("/mydb/tables?fail=1")

	m := globalMetrics
	if m == nil {
		t.Fatal("middleware did not initialize metrics")
	}

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/mydb/tables", "200")); got != 3 {
		t.Errorf("requests_total{200} = %v, want 3", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/mydb/tables", "418")); got != 1 {
		t.Errorf("requests_total{418} = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.decodeFailures.WithLabelValues("mydb")); got != 1 {
		t.Errorf("decode_failures_total = %v, want 1", got)
	}
	// Three requests decoded cleanly (two with tabs, one without a payload).
	if got := metricHistogramCount(t, m.openTabs); got != 3 {
		t.Errorf("open_tabs sample count = %v, want 3", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("/mydb/tables")); got != 4 {
		t.Errorf("request_duration sample count = %v, want 4", got)
	}
}
