// Package tabstate encodes and decodes table-browser tab state into URL
// query parameters.
//
// A database UI keeps a set of open tables, each with an optional limit,
// offset, and ordered sort, plus a single "active" (focused) table. tabstate
// persists that state in two query parameters so it survives reloads and is
// shareable as a link:
//
//   - "t" holds a JSON array of compact positional entries, one per open
//     table, e.g. [[3,-1,-1,["name","a"]],[7]]
//   - "a" holds the decimal id of the active table
//
// The positional entry format is [id, limit, offset, sortFlatList]. Limit
// and offset use -1 for "unset"; the sort flat list alternates column name
// and a one-character order flag ("a" ascending, "d" descending). Trailing
// elements may be omitted, so [7] is a valid entry.
//
// All state is scoped to a database: every read or mutation is guarded by
// the first path segment of the current location matching the caller's
// database identifier. Out-of-path calls are silent no-ops.
//
// The package never touches a real browser or server. It operates through
// the querystore.Source capability, which tests satisfy with an in-memory
// implementation.
//
// # The falsy-zero rule
//
// A limit, offset, or active id of zero is treated the same as "absent"
// throughout. Only values greater than zero are meaningful overrides. This
// is a deliberate compatibility rule with the wire format's origins, not an
// accident of implementation; see the package tests that pin it.
package tabstate
