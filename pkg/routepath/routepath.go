// Package routepath provides path normalization and segment extraction for
// URL-persisted state.
//
// The routines here are deliberately lenient: state codecs guard on path
// segments, and a malformed path should read as "not in this path" rather
// than become an error the caller has to handle on every lookup.
package routepath

import (
	"net/url"
	"strings"
)

// Canonicalize normalizes a URL path:
//   - ensure a leading slash
//   - collapse duplicate slashes (/db//tables → /db/tables)
//   - drop "." segments (/db/./tables → /db/tables)
//   - resolve ".." segments without escaping root
//   - trim the trailing slash (root stays "/")
//
// A query string, if present, is discarded. Canonicalize never fails; the
// worst input canonicalizes to "/".
func Canonicalize(input string) string {
	path, _, _ := strings.Cut(input, "?")
	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	result := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		default:
			result = append(result, seg)
		}
	}

	return "/" + strings.Join(result, "/")
}

// Segments splits a path into its decoded segments. Segments that fail
// percent-decoding are kept verbatim.
func Segments(path string) []string {
	path = strings.TrimPrefix(Canonicalize(path), "/")
	if path == "" {
		return nil
	}

	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		if decoded, err := url.PathUnescape(seg); err == nil {
			seg = decoded
		}
		segments = append(segments, seg)
	}
	return segments
}

// FirstSegment returns the decoded first segment of a path, or "" when the
// path is root or empty.
func FirstSegment(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}
