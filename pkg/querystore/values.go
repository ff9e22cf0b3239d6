package querystore

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Values is a Source backed by a url.Values and a path string.
//
// It is the standard implementation for server-side use: build one from an
// incoming request (or any URL string), hand it to a codec, and render the
// possibly-mutated query back out with Encode or String.
type Values struct {
	path   string
	values url.Values
}

// NewValues returns an empty Values for the given path.
func NewValues(path string) *Values {
	return &Values{path: path, values: url.Values{}}
}

// ParseURL parses a full URL, a path with query ("/db/tables?t=..."), or a
// bare query string ("?t=...") into a Values. Parse errors propagate.
func ParseURL(raw string) (*Values, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("querystore: parse %q: %w", raw, err)
	}
	return &Values{path: u.Path, values: u.Query()}, nil
}

// FromRequest builds a Values from an incoming request's URL.
func FromRequest(r *http.Request) *Values {
	return &Values{path: r.URL.Path, values: r.URL.Query()}
}

// Get implements Store.
func (v *Values) Get(key string) (string, bool) {
	if !v.values.Has(key) {
		return "", false
	}
	return v.values.Get(key), true
}

// Set implements Store.
func (v *Values) Set(key, value string) {
	v.values.Set(key, value)
}

// Delete implements Store.
func (v *Values) Delete(key string) {
	v.values.Del(key)
}

// Path implements Location.
func (v *Values) Path() string {
	return v.path
}

// Len returns the number of keys currently stored.
func (v *Values) Len() int {
	return len(v.values)
}

// Encode renders the query component in percent-encoded form, without a
// leading "?". Keys are emitted in sorted order (url.Values semantics).
func (v *Values) Encode() string {
	return v.values.Encode()
}

// String renders "path?query", omitting the "?" when the query is empty.
func (v *Values) String() string {
	var b strings.Builder
	b.WriteString(v.path)
	if enc := v.values.Encode(); enc != "" {
		b.WriteByte('?')
		b.WriteString(enc)
	}
	return b.String()
}
