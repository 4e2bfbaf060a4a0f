package selection_test

import (
	"testing"

	"github.com/bloeys/beamterm/selection"
)

func collect(it selection.CellIterator) ([]int, []bool) {
	var idxs []int
	var newlines []bool
	for {
		idx, newline, ok := it.Next()
		if !ok {
			break
		}
		idxs = append(idxs, idx)
		newlines = append(newlines, newline)
	}
	return idxs, newlines
}

func TestBlockCellIteratorRectangle(t *testing.T) {

	// 4-wide grid, select rows 0-1, cols 1-2: a 2x2 rectangle.
	it := selection.NewBlockCellIterator(4, selection.Cell{Col: 1, Row: 0}, selection.Cell{Col: 2, Row: 1}, 4*3)
	idxs, newlines := collect(it)

	CheckArr(t, []int{1, 2, 5, 6}, idxs)
	CheckArr(t, []bool{false, true, false, false}, newlines)
}

func TestBlockCellIteratorNormalizesUnorderedCorners(t *testing.T) {

	// Same rectangle, corners given in the opposite order.
	it := selection.NewBlockCellIterator(4, selection.Cell{Col: 2, Row: 1}, selection.Cell{Col: 1, Row: 0}, 4*3)
	idxs, _ := collect(it)

	CheckArr(t, []int{1, 2, 5, 6}, idxs)
}

func TestBlockCellIteratorClampsToGrid(t *testing.T) {

	it := selection.NewBlockCellIterator(4, selection.Cell{Col: 0, Row: 0}, selection.Cell{Col: 99, Row: 99}, 4*2)
	idxs, _ := collect(it)

	CheckArr(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, idxs)
}

func TestLinearCellIteratorWrapsThroughFullRows(t *testing.T) {

	// 4-wide grid, linear span from (col 2, row 0) to (col 1, row 1):
	// indices 2,3,4,5 with a newline after index 3 (end of row 0).
	it := selection.NewLinearCellIterator(4, selection.Cell{Col: 2, Row: 0}, selection.Cell{Col: 1, Row: 1}, 4*2)
	idxs, newlines := collect(it)

	CheckArr(t, []int{2, 3, 4, 5}, idxs)
	CheckArr(t, []bool{false, true, false, false}, newlines)
}

func TestLinearCellIteratorNormalizesUnorderedCorners(t *testing.T) {

	it := selection.NewLinearCellIterator(4, selection.Cell{Col: 1, Row: 1}, selection.Cell{Col: 2, Row: 0}, 4*2)
	idxs, _ := collect(it)

	CheckArr(t, []int{2, 3, 4, 5}, idxs)
}

func TestLinearCellIteratorClampsEndToGrid(t *testing.T) {

	it := selection.NewLinearCellIterator(4, selection.Cell{Col: 0, Row: 0}, selection.Cell{Col: 99, Row: 99}, 4*2)
	idxs, _ := collect(it)

	Check(t, 8, len(idxs))
	Check(t, 7, idxs[len(idxs)-1])
}

func TestLinearCellIteratorNoNewlineAtVeryLastCell(t *testing.T) {

	// End index lands exactly on a row boundary; no trailing newline
	// should be emitted after the final cell.
	it := selection.NewLinearCellIterator(4, selection.Cell{Col: 0, Row: 0}, selection.Cell{Col: 3, Row: 0}, 4*2)
	_, newlines := collect(it)

	CheckArr(t, []bool{false, false, false, false}, newlines)
}

func CheckArr[T comparable](t *testing.T, expected, got []T) {
	if len(expected) != len(got) {
		t.Fatalf("Expected len %d but got len %d\nExpected: %v\nGot: %v\n", len(expected), len(got), expected, got)
	}
	for i := range expected {
		if expected[i] != got[i] {
			t.Fatalf("Mismatch at index %d: expected %v but got %v\nExpected: %v\nGot: %v\n", i, expected[i], got[i], expected, got)
		}
	}
}
