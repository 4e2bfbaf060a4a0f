// Package selection implements the cell-granularity selection engine:
// the query/mode/iterator types describing which cells are selected,
// the Idle/MaybeSelecting/Selecting/Complete state machine driving
// mouse-style down/move/up interaction, and the text extraction helper
// built on top of the cell iterators.
package selection

// Mode selects how a selection's cell range is interpreted: as a
// rectangular block, or as a linear (reading-order) span.
type Mode int

const (
	// ModeBlock selects every cell within the rectangle spanned by
	// the selection's two corners, independent per row.
	ModeBlock Mode = iota
	// ModeLinear selects every cell between the two points in
	// reading order (row-major), wrapping through full rows in
	// between.
	ModeLinear
)

// Cell identifies a grid cell by column and row.
type Cell struct {
	Col, Row uint16
}

// Query describes one selection: its mode, its two corner cells (if
// any), and whether extracted text should be trimmed per line.
type Query struct {
	mode  Mode
	start *Cell
	end   *Cell
	trim  bool
}

// NewQuery starts a builder for a selection query in the given mode.
func NewQuery(mode Mode) *Query {
	return &Query{mode: mode}
}

// Start sets the selection's anchor cell.
func (q *Query) Start(c Cell) *Query {
	cc := c
	q.start = &cc
	return q
}

// End sets the selection's current/terminal cell.
func (q *Query) End(c Cell) *Query {
	cc := c
	q.end = &cc
	return q
}

// WithTrimTrailingWhitespace sets whether extracted text trims
// trailing whitespace from every line.
func (q *Query) WithTrimTrailingWhitespace(v bool) *Query {
	q.trim = v
	return q
}

// Mode returns the query's selection mode.
func (q *Query) Mode() Mode {
	return q.mode
}

// TrimTrailingWhitespace reports whether extracted text should trim
// trailing whitespace per line.
func (q *Query) TrimTrailingWhitespace() bool {
	return q.trim
}

// IsEmpty reports whether the query has no anchor cell set yet.
func (q *Query) IsEmpty() bool {
	return q.start == nil
}

// Range returns the query's two corner cells, normalized so the first
// returned cell never sorts after the second in reading order. ok is
// false if either corner is unset.
func (q *Query) Range() (start, end Cell, ok bool) {
	if q.start == nil || q.end == nil {
		return Cell{}, Cell{}, false
	}

	s, e := *q.start, *q.end
	if readingOrderLess(e, s) {
		s, e = e, s
	}

	return s, e, true
}

func readingOrderLess(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
