package middleware

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dbtabs/pkg/querystore"
	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

// Default tracer name for dbtabs applications.
const defaultTracerName = "dbtabs"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "dbtabs").
	TracerName string

	// IncludeActive includes the active table id in spans.
	// Enabled by default.
	IncludeActive bool

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeActive enables/disables the active-table span attribute.
func WithIncludeActive(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeActive = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		IncludeActive: true,
	}
}

// OpenTelemetry creates middleware that traces every request through the
// tab-state layer.
//
// Each span carries the database identifier, the number of open tabs, and
// (unless disabled) the active table id. Decode failures are recorded on
// the span and set its status to error; the request itself still proceeds.
func OpenTelemetry(db string, opts ...OTelOption) func(http.Handler) http.Handler {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := config.tracer.Start(r.Context(), "dbtabs.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("dbtabs.db", db),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			codec := tabstate.New(querystore.FromRequest(r))
			if entries, err := codec.RawTables(db); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "tab state decode failed")
			} else {
				span.SetAttributes(attribute.Int("dbtabs.open_tabs", len(entries)))
			}
			if config.IncludeActive {
				if active, ok := codec.ActiveTable(db); ok {
					span.SetAttributes(attribute.String("dbtabs.active_table", strconv.Itoa(active)))
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
