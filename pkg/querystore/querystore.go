// Package querystore models the browser-owned query string and path as
// injected capabilities.
//
// The query component of the current location is exposed as a string-keyed
// store with get/set/delete primitives, and the path as a read-only accessor.
// Code built on top of these interfaces stays a pure function of its inputs
// plus the capability, so it can be exercised without a real browser or a
// live HTTP server.
//
// Values are opaque strings: the store never encodes or decodes payloads.
// Percent-encoding is owned by whatever renders the store back into a URL
// (url.Values does this for free).
package querystore

// Store is a string-keyed view of a query component.
//
// All operations are single-key, synchronous, and last-write-wins. The host
// environment executes one logical operation at a time per document, so
// implementations do not need to lock.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)
}

// Location exposes the path of the current navigable location.
type Location interface {
	// Path returns the current path, e.g. "/mydb/tables".
	Path() string
}

// Source combines the query store and the location. It is the capability
// consumed by state codecs layered on top of this package.
type Source interface {
	Store
	Location
}
