package tabstate

// Status marks whether a newly added tab should become the active one.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// TabOptions collects the per-table settings accepted by AddTable,
// SetTableOptions, and TableLink. Limit, Offset, and Sort are persisted in
// the raw entry; Position and Status only steer the operation itself and
// never reach the URL.
//
// Zero limit and offset mean "unset" (see the package doc's falsy-zero
// rule).
type TabOptions struct {
	Limit    int
	Offset   int
	Sort     SortOrder
	Position int
	Status   Status
}

// TabOption configures a TabOptions.
type TabOption func(*TabOptions)

// WithLimit sets the row limit override. Values <= 0 are ignored at encode
// time.
func WithLimit(n int) TabOption {
	return func(o *TabOptions) {
		o.Limit = n
	}
}

// WithOffset sets the row offset override. Values <= 0 are ignored at
// encode time.
func WithOffset(n int) TabOption {
	return func(o *TabOptions) {
		o.Offset = n
	}
}

// WithSort replaces the sort order wholesale.
func WithSort(order SortOrder) TabOption {
	return func(o *TabOptions) {
		o.Sort = order
	}
}

// WithSortColumn adds one column to the sort order, keeping mapping
// semantics for duplicates.
func WithSortColumn(column string, dir Direction) TabOption {
	return func(o *TabOptions) {
		o.Sort = o.Sort.Set(column, dir)
	}
}

// AtPosition requests insertion at the given index. Indexes outside the
// current list length fall back to appending.
func AtPosition(i int) TabOption {
	return func(o *TabOptions) {
		o.Position = i
	}
}

// Inactive opens the tab without focusing it: AddTable will not touch the
// active-table parameter.
func Inactive() TabOption {
	return func(o *TabOptions) {
		o.Status = StatusInactive
	}
}

// applyOptions materializes a TabOptions from the variadic form. No options
// at all yields nil, which encoders treat differently from an empty
// TabOptions: nil produces the minimal [id] entry, while an empty set
// produces the full [id,-1,-1,[]] tuple.
func applyOptions(opts []TabOption) *TabOptions {
	if len(opts) == 0 {
		return nil
	}
	o := &TabOptions{Position: -1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
