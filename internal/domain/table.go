package domain

// Table provides indexed, lookup-by-key access to survey microdata.
// Column keys for the group and index columns are chosen by the caller
// at aggregation time; the aggregator is generic over column names, not
// over a fixed schema.
//
// Implementations must be safe for concurrent reads. The aggregator
// calls Dimension and Measure in tight loops, so implementations should
// keep both cheap.
type Table interface {
	// Len returns the number of records in the table.
	Len() int

	// Dimension returns the categorical value of a record for the given
	// column key, or "" when the record has no such column.
	Dimension(i int, key string) string

	// Measure returns the numeric value of a record for the given column
	// key. The second return reports presence: a false value marks the
	// record's measure as missing for that column.
	Measure(i int, key string) (float64, bool)
}

// Row is a single generic data record with categorical dimensions and
// numeric measures. A measure key that is absent from Measures is
// treated as missing.
type Row struct {
	Dimensions map[string]string
	Measures   map[string]float64
}

// SliceTable wraps a []Row slice as a Table. It holds a reference to the
// slice; callers must not mutate it while an aggregation is running.
type SliceTable struct {
	rows []Row
}

var _ Table = (*SliceTable)(nil)

// NewSliceTable creates a Table backed by a slice of generic rows.
func NewSliceTable(rows []Row) *SliceTable {
	return &SliceTable{rows: rows}
}

// Len returns the number of rows.
func (t *SliceTable) Len() int { return len(t.rows) }

// Dimension returns the categorical value at row i for key.
func (t *SliceTable) Dimension(i int, key string) string {
	if i < 0 || i >= len(t.rows) {
		return ""
	}
	return t.rows[i].Dimensions[key]
}

// Measure returns the numeric value at row i for key and whether it is
// present.
func (t *SliceTable) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(t.rows) {
		return 0, false
	}
	v, ok := t.rows[i].Measures[key]
	return v, ok
}

// TableAdapter builds a Table from typed structs via registered accessor
// functions, avoiding any copy of the caller's data.
//
// Declare an adapter once, bind it to data slices as needed:
//
//	adapter := domain.NewTableAdapter[Respondent]().
//	    Dimension("district", func(r Respondent) string { return r.District }).
//	    Measure("msni", func(r Respondent) (float64, bool) { return r.Score, r.HasScore })
//
//	table := adapter.Bind(respondents)
type TableAdapter[T any] struct {
	dims map[string]func(T) string
	meas map[string]func(T) (float64, bool)
}

// NewTableAdapter creates a new adapter for type T.
func NewTableAdapter[T any]() *TableAdapter[T] {
	return &TableAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) (float64, bool)),
	}
}

// Dimension registers a categorical column accessor under key.
func (a *TableAdapter[T]) Dimension(key string, fn func(T) string) *TableAdapter[T] {
	a.dims[key] = fn
	return a
}

// Measure registers a numeric column accessor under key. The accessor's
// second return marks missing values.
func (a *TableAdapter[T]) Measure(key string, fn func(T) (float64, bool)) *TableAdapter[T] {
	a.meas[key] = fn
	return a
}

// Bind creates a Table over a data slice. The table holds a reference to
// the slice; no rows are copied.
func (a *TableAdapter[T]) Bind(data []T) Table {
	return &typedTable[T]{data: data, dims: a.dims, meas: a.meas}
}

type typedTable[T any] struct {
	data []T
	dims map[string]func(T) string
	meas map[string]func(T) (float64, bool)
}

func (t *typedTable[T]) Len() int { return len(t.data) }

func (t *typedTable[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(t.data) {
		return ""
	}
	if fn, ok := t.dims[key]; ok {
		return fn(t.data[i])
	}
	return ""
}

func (t *typedTable[T]) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(t.data) {
		return 0, false
	}
	if fn, ok := t.meas[key]; ok {
		return fn(t.data[i])
	}
	return 0, false
}
