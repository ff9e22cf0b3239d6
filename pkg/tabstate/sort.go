package tabstate

// Direction is a sort direction for one column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Wire flags for sort directions.
const (
	flagAsc  = "a"
	flagDesc = "d"
)

func (d Direction) flag() string {
	if d == Desc {
		return flagDesc
	}
	return flagAsc
}

// directionFromFlag maps a wire flag to a Direction. Anything other than
// the descending flag reads as ascending.
func directionFromFlag(flag string) Direction {
	if flag == flagDesc {
		return Desc
	}
	return Asc
}

// SortEntry is one column of a sort order.
type SortEntry struct {
	Column    string
	Direction Direction
}

// SortOrder is an order-preserving mapping from column name to direction.
// Ordering is semantically significant: earlier entries are primary sort
// keys. Set keeps mapping semantics, so a duplicate column updates the
// direction at its original position instead of appending.
type SortOrder []SortEntry

// Set returns the order with column mapped to dir. The last write wins, at
// the column's first-inserted position.
func (s SortOrder) Set(column string, dir Direction) SortOrder {
	for i := range s {
		if s[i].Column == column {
			s[i].Direction = dir
			return s
		}
	}
	return append(s, SortEntry{Column: column, Direction: dir})
}

// Get returns the direction for column and whether it is present.
func (s SortOrder) Get(column string) (Direction, bool) {
	for _, e := range s {
		if e.Column == column {
			return e.Direction, true
		}
	}
	return "", false
}

// flatten renders the order as the wire's alternating column/flag list.
// An empty order flattens to an empty (non-nil) list.
func (s SortOrder) flatten() []any {
	flat := make([]any, 0, len(s)*2)
	for _, e := range s {
		flat = append(flat, e.Column, e.Direction.flag())
	}
	return flat
}
