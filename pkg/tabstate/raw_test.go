package tabstate

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseRawEntry(t *testing.T) {
	tests := []struct {
		name string
		raw  RawEntry
		want TableConfig
	}{
		{
			name: "full entry with offset and two sort keys",
			raw:  RawEntry{5, -1, 20, []any{"col1", "d", "col2", "a"}},
			want: TableConfig{
				ID:     5,
				Limit:  -1,
				Offset: 20,
				Sort: SortOrder{
					{Column: "col1", Direction: Desc},
					{Column: "col2", Direction: Asc},
				},
			},
		},
		{
			name: "minimal entry",
			raw:  RawEntry{7},
			want: TableConfig{ID: 7, Limit: -1, Offset: -1},
		},
		{
			name: "string id",
			raw:  RawEntry{"12", 50},
			want: TableConfig{ID: 12, Limit: 50, Offset: -1},
		},
		{
			name: "zero limit and offset are unset",
			raw:  RawEntry{4, 0, 0},
			want: TableConfig{ID: 4, Limit: -1, Offset: -1},
		},
		{
			name: "string zero limit is truthy and parses to zero",
			raw:  RawEntry{4, "0"},
			want: TableConfig{ID: 4, Limit: 0, Offset: -1},
		},
		{
			name: "negative limit is unset",
			raw:  RawEntry{4, -5, 10},
			want: TableConfig{ID: 4, Limit: -1, Offset: 10},
		},
		{
			name: "duplicate sort column keeps first position, last direction",
			raw:  RawEntry{1, -1, -1, []any{"c", "a", "b", "d", "c", "d"}},
			want: TableConfig{
				ID:     1,
				Limit:  -1,
				Offset: -1,
				Sort: SortOrder{
					{Column: "c", Direction: Desc},
					{Column: "b", Direction: Desc},
				},
			},
		},
		{
			name: "trailing column without flag reads as ascending",
			raw:  RawEntry{1, -1, -1, []any{"name"}},
			want: TableConfig{
				ID:     1,
				Limit:  -1,
				Offset: -1,
				Sort:   SortOrder{{Column: "name", Direction: Asc}},
			},
		},
		{
			name: "unknown flag reads as ascending",
			raw:  RawEntry{1, -1, -1, []any{"name", "x"}},
			want: TableConfig{
				ID:     1,
				Limit:  -1,
				Offset: -1,
				Sort:   SortOrder{{Column: "name", Direction: Asc}},
			},
		},
		{
			name: "empty sort list stays nil",
			raw:  RawEntry{1, -1, -1, []any{}},
			want: TableConfig{ID: 1, Limit: -1, Offset: -1},
		},
		{
			name: "unparseable id",
			raw:  RawEntry{"abc", 10},
			want: TableConfig{ID: 0, Limit: 10, Offset: -1},
		},
		{
			name: "empty entry",
			raw:  RawEntry{},
			want: TableConfig{ID: 0, Limit: -1, Offset: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRawEntry(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRawEntry(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewRawEntry(t *testing.T) {
	t.Run("nil options yield the minimal entry", func(t *testing.T) {
		got := NewRawEntry(9, nil)
		if len(got) != 1 {
			t.Fatalf("NewRawEntry(9, nil) = %v, want single-element entry", got)
		}
		if id, ok := got.ID(); !ok || id != 9 {
			t.Errorf("entry id = %d, %v, want 9, true", id, ok)
		}
	})

	t.Run("empty options yield the full tuple", func(t *testing.T) {
		got := NewRawEntry(9, &TabOptions{})
		want := RawEntry{9, -1, -1, []any{}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NewRawEntry(9, empty) = %v, want %v", got, want)
		}
	})

	t.Run("zero limit and offset encode as unset", func(t *testing.T) {
		got := NewRawEntry(9, &TabOptions{Limit: 0, Offset: 0})
		want := RawEntry{9, -1, -1, []any{}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("NewRawEntry(9, zeroed) = %v, want %v", got, want)
		}
	})

	t.Run("wire payload is bit-exact", func(t *testing.T) {
		entries := []RawEntry{
			NewRawEntry(3, &TabOptions{Sort: SortOrder{{Column: "name", Direction: Asc}}}),
			NewRawEntry(7, nil),
		}
		got := encodeEntries(entries)
		want := `[[3,-1,-1,["name","a"]],[7]]`
		if got != want {
			t.Errorf("encodeEntries() = %s, want %s", got, want)
		}
	})
}

// TestRawEntryRoundTrip pushes an encoded entry through real JSON (so
// numbers come back as float64) and checks the decode reproduces the
// options.
func TestRawEntryRoundTrip(t *testing.T) {
	opts := &TabOptions{
		Limit:  500,
		Offset: 25,
		Sort: SortOrder{
			{Column: "last_name", Direction: Desc},
			{Column: "first_name", Direction: Asc},
		},
	}

	payload := encodeEntries([]RawEntry{NewRawEntry(42, opts)})

	entries, err := decodeEntries(payload)
	if err != nil {
		t.Fatalf("decodeEntries(%s) error: %v", payload, err)
	}
	if len(entries) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(entries))
	}

	got := ParseRawEntry(entries[0])
	want := TableConfig{ID: 42, Limit: 500, Offset: 25, Sort: opts.Sort}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestDecodeEntriesMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{{nope"},
		{name: "wrong shape", payload: `{"t":1}`},
		{name: "scalar", payload: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeEntries(tt.payload); err == nil {
				t.Errorf("decodeEntries(%q) = nil error, want ErrBadPayload", tt.payload)
			}
		})
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{name: "int", in: 3, want: 3, wantOK: true},
		{name: "float64", in: float64(3), want: 3, wantOK: true},
		{name: "fractional float truncates", in: 3.9, want: 3, wantOK: true},
		{name: "string", in: "14", want: 14, wantOK: true},
		{name: "negative string", in: "-1", want: -1, wantOK: true},
		{name: "json number", in: json.Number("8"), want: 8, wantOK: true},
		{name: "garbage string", in: "abc", wantOK: false},
		{name: "nil", in: nil, wantOK: false},
		{name: "bool", in: true, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asInt(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("asInt(%v) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSortOrderSet(t *testing.T) {
	var s SortOrder
	s = s.Set("a", Asc)
	s = s.Set("b", Desc)
	s = s.Set("a", Desc) // update in place, keep position

	want := SortOrder{{Column: "a", Direction: Desc}, {Column: "b", Direction: Desc}}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("SortOrder = %v, want %v", s, want)
	}

	if dir, ok := s.Get("b"); !ok || dir != Desc {
		t.Errorf("Get(b) = %v, %v, want desc, true", dir, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
}
