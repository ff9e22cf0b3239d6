package tabstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrBadPayload reports a "t" parameter that is present but not valid JSON.
// This is an environment fault (hand-edited URL, truncated link), not a
// routine miss, so it surfaces instead of being swallowed.
var ErrBadPayload = errors.New("tabstate: malformed table payload")

// RawEntry is the positional wire form of one open table:
// [id, limit, offset, sortFlatList]. Shorter tuples are valid; a bare [id]
// is the minimal entry.
//
// Entries that round-tripped through JSON carry float64 numbers, and ids
// written by other producers may arrive as strings. All integer reads go
// through asInt so the two shapes compare equal.
type RawEntry []any

// Tuple positions.
const (
	posID = iota
	posLimit
	posOffset
	posSort
)

// ID returns the entry's table id. ok is false for empty entries and for
// ids that do not parse as integers; such entries never match a lookup.
func (e RawEntry) ID() (int, bool) {
	if len(e) <= posID {
		return 0, false
	}
	return asInt(e[posID])
}

// TableConfig is the decoded, structured form of a RawEntry. Limit and
// Offset are -1 when unset.
type TableConfig struct {
	ID     int
	Limit  int
	Offset int
	Sort   SortOrder
}

// HasLimit reports whether the config carries a limit override.
func (c TableConfig) HasLimit() bool { return c.Limit > -1 }

// HasOffset reports whether the config carries an offset override.
func (c TableConfig) HasOffset() bool { return c.Offset > -1 }

// ParseRawEntry decodes a positional entry into a TableConfig.
//
// Limit and offset are only taken when the raw element is truthy (non-zero
// number, non-empty string) and parses to an integer > -1. The sort flat
// list is read in pairs; a duplicate column keeps its first position with
// the last direction winning. A trailing column with no flag reads as
// ascending.
func ParseRawEntry(raw RawEntry) TableConfig {
	cfg := TableConfig{Limit: -1, Offset: -1}

	if id, ok := raw.ID(); ok {
		cfg.ID = id
	}

	if len(raw) > posLimit && truthy(raw[posLimit]) {
		if n, ok := asInt(raw[posLimit]); ok && n > -1 {
			cfg.Limit = n
		}
	}
	if len(raw) > posOffset && truthy(raw[posOffset]) {
		if n, ok := asInt(raw[posOffset]); ok && n > -1 {
			cfg.Offset = n
		}
	}

	if len(raw) > posSort {
		if flat, ok := raw[posSort].([]any); ok && len(flat) > 0 {
			for i := 0; i < len(flat); i += 2 {
				column := asString(flat[i])
				flag := ""
				if i+1 < len(flat) {
					flag = asString(flat[i+1])
				}
				cfg.Sort = cfg.Sort.Set(column, directionFromFlag(flag))
			}
		}
	}

	return cfg
}

// NewRawEntry encodes a table id and options into the positional form.
//
// With nil options the result is the single-element [id]: limit, offset,
// and sort are omitted entirely, not defaulted. With options present the
// full tuple is emitted, using -1 for unset limit/offset and an empty list
// for an empty sort order. The asymmetry is intentional and matches the
// wire format's two ways of saying "nothing configured".
func NewRawEntry(id int, o *TabOptions) RawEntry {
	entry := RawEntry{id}
	if o == nil {
		return entry
	}

	limit := -1
	if o.Limit > 0 {
		limit = o.Limit
	}
	offset := -1
	if o.Offset > 0 {
		offset = o.Offset
	}

	return append(entry, limit, offset, o.Sort.flatten())
}

// decodeEntries parses the JSON payload of the "t" parameter.
func decodeEntries(payload string) ([]RawEntry, error) {
	var entries []RawEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return entries, nil
}

// encodeEntries renders entries back to the JSON payload. The value types
// reachable from RawEntry always marshal, so the error is unreachable.
func encodeEntries(entries []RawEntry) string {
	b, err := json.Marshal(entries)
	if err != nil {
		panic(fmt.Sprintf("tabstate: encode raw entries: %v", err))
	}
	return string(b)
}

// containsID reports whether any entry's id parses equal to id.
func containsID(entries []RawEntry, id int) bool {
	for _, e := range entries {
		if got, ok := e.ID(); ok && got == id {
			return true
		}
	}
	return false
}

// asInt normalizes the number shapes that reach us from JSON decoding and
// string-typed producers. Fractional floats truncate toward zero, matching
// integer parsing at the original boundary.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// asString renders a raw element used as a sort column name.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// truthy applies the wire format's truthiness rule: zero numbers and empty
// strings read as "unset".
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "" && t.String() != "0"
	case string:
		return t != ""
	default:
		return true
	}
}
