// Package middleware provides net/http middleware around the tab-state
// codec.
//
// All middleware is chi-compatible (func(http.Handler) http.Handler) and
// composes with any mux that accepts standard middleware.
//
// # Tab state extraction
//
// TabState decodes the request URL's tab state once per request and stores
// it in the request context:
//
//	r := chi.NewRouter()
//	r.Use(middleware.TabState("mydb"))
//	r.Get("/mydb/tables", func(w http.ResponseWriter, r *http.Request) {
//	    state := middleware.FromContext(r.Context())
//	    for _, cfg := range state.Configs {
//	        // render one tab per config
//	    }
//	})
//
// A corrupt "t" parameter must not take down the page shell, so decode
// failures are logged and yield an empty state instead of an error page.
//
// # Prometheus metrics
//
// Prometheus collects request counts by path and status, decode failures,
// and a histogram of how many tabs requests carry:
//
//	r.Use(middleware.Prometheus("mydb"))
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// OpenTelemetry opens one span per request with the database, open-tab
// count, and active table as attributes, and injects the span context into
// the request for downstream calls:
//
//	r.Use(middleware.OpenTelemetry("mydb"))
package middleware
