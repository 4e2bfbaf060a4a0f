package selection

// CellIterator yields the linear cell indices a selection covers, in
// display order, alongside whether a newline belongs after that cell.
type CellIterator interface {
	// Next returns the next (index, newlineAfter) pair. ok is false
	// once the iterator is exhausted.
	Next() (index int, newlineAfter bool, ok bool)
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BlockCellIterator walks every cell in the rectangle spanned by two
// corner cells, row by row, left to right within each row.
type BlockCellIterator struct {
	cols           int32
	minCol, maxCol int32
	row, maxRow    int32
	col            int32
	done           bool
}

// NewBlockCellIterator builds a block iterator over [start, end],
// clamping both corners to the grid described by cols columns and
// maxCells total cells.
func NewBlockCellIterator(cols int32, start, end Cell, maxCells int) *BlockCellIterator {
	if cols <= 0 || maxCells <= 0 {
		return &BlockCellIterator{done: true}
	}

	maxRow := int32(maxCells)/cols - 1
	if maxRow < 0 {
		maxRow = 0
	}

	sc := clamp32(int32(start.Col), 0, cols-1)
	ec := clamp32(int32(end.Col), 0, cols-1)
	sr := clamp32(int32(start.Row), 0, maxRow)
	er := clamp32(int32(end.Row), 0, maxRow)

	minCol, maxCol := sc, ec
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	minRow, maxRowSel := sr, er
	if minRow > maxRowSel {
		minRow, maxRowSel = maxRowSel, minRow
	}

	return &BlockCellIterator{
		cols:   cols,
		minCol: minCol,
		maxCol: maxCol,
		row:    minRow,
		maxRow: maxRowSel,
		col:    minCol,
	}
}

func (it *BlockCellIterator) Next() (int, bool, bool) {
	if it.done || it.row > it.maxRow {
		return 0, false, false
	}

	idx := int(it.row*it.cols + it.col)
	newlineAfter := it.col == it.maxCol && it.row != it.maxRow

	it.col++
	if it.col > it.maxCol {
		it.col = it.minCol
		it.row++
	}

	return idx, newlineAfter, true
}

// LinearCellIterator walks every cell between two linear indices in
// reading order, wrapping across row boundaries.
type LinearCellIterator struct {
	cols        int32
	idx, endIdx int
	done        bool
}

// NewLinearCellIterator builds a linear iterator over [start, end],
// converting both corners to flat indices and clamping the end index
// to the grid's cell count.
func NewLinearCellIterator(cols int32, start, end Cell, maxCells int) *LinearCellIterator {
	if cols <= 0 || maxCells <= 0 {
		return &LinearCellIterator{done: true}
	}

	startIdx := int(start.Row)*int(cols) + int(start.Col)
	endIdx := int(end.Row)*int(cols) + int(end.Col)
	if startIdx > endIdx {
		startIdx, endIdx = endIdx, startIdx
	}
	if endIdx > maxCells-1 {
		endIdx = maxCells - 1
	}
	if startIdx > endIdx {
		return &LinearCellIterator{done: true}
	}

	return &LinearCellIterator{cols: cols, idx: startIdx, endIdx: endIdx}
}

func (it *LinearCellIterator) Next() (int, bool, bool) {
	if it.done || it.idx > it.endIdx {
		return 0, false, false
	}

	idx := it.idx
	newlineAfter := idx != it.endIdx && (int32(idx+1)%it.cols == 0)

	it.idx++

	return idx, newlineAfter, true
}
