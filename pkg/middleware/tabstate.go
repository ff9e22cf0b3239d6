package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vango-dev/dbtabs/pkg/querystore"
	"github.com/vango-dev/dbtabs/pkg/tabstate"
)

// State is the decoded tab state of one request.
type State struct {
	// DB is the database identifier the middleware was mounted for.
	DB string

	// Configs are the open tables, in stored order. Empty when the request
	// is outside the database path or carries no state.
	Configs []tabstate.TableConfig

	// Active is the active table id; HasActive is false when no valid
	// active table is set.
	Active    int
	HasActive bool
}

// stateKey is the context key for the decoded State.
type stateKey struct{}

// StateConfig configures the TabState middleware.
type StateConfig struct {
	// Logger receives decode-failure warnings (default: slog.Default()).
	Logger *slog.Logger
}

// StateOption configures the TabState middleware.
type StateOption func(*StateConfig)

// WithLogger sets the logger for decode-failure warnings.
func WithLogger(l *slog.Logger) StateOption {
	return func(c *StateConfig) {
		c.Logger = l
	}
}

// TabState decodes the request URL's tab state for db and stores it in the
// request context for handlers to read via FromContext.
//
// Malformed payloads are logged at warn level and produce an empty State:
// a hand-mangled query parameter must not 500 the page shell.
func TabState(db string, opts ...StateOption) func(http.Handler) http.Handler {
	config := StateConfig{Logger: slog.Default()}
	for _, opt := range opts {
		opt(&config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			codec := tabstate.New(querystore.FromRequest(r))

			state := &State{DB: db}
			configs, err := codec.AllConfigs(db)
			if err != nil {
				config.Logger.Warn("dropping malformed tab state",
					"db", db,
					"path", r.URL.Path,
					"err", err,
				)
			} else {
				state.Configs = configs
			}
			state.Active, state.HasActive = codec.ActiveTable(db)

			ctx := context.WithValue(r.Context(), stateKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the State stored by TabState, or nil when the
// middleware did not run for this request.
func FromContext(ctx context.Context) *State {
	s, _ := ctx.Value(stateKey{}).(*State)
	return s
}
