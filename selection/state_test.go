package selection_test

import (
	"testing"

	"github.com/bloeys/beamterm/selection"
)

func TestTrackerBasicSelection(t *testing.T) {

	tr := selection.NewTracker()

	tr.Down(selection.Cell{Col: 1, Row: 1})
	tr.Move(selection.Cell{Col: 4, Row: 1})

	start, end, ok := tr.Up(selection.Cell{Col: 4, Row: 1})
	Check(t, true, ok)
	Check(t, selection.Cell{Col: 1, Row: 1}, start)
	Check(t, selection.Cell{Col: 4, Row: 1}, end)
}

func TestTrackerSingleCellClickCancels(t *testing.T) {

	// A down/up on the same cell with no move in between is a click,
	// not a drag: the tracker must return to Idle with no query.
	tr := selection.NewTracker()

	tr.Down(selection.Cell{Col: 2, Row: 2})
	_, _, ok := tr.Up(selection.Cell{Col: 2, Row: 2})
	Check(t, false, ok)

	_, hasQuery := tr.Query()
	Check(t, false, hasQuery)
}

func TestTrackerReleaseBackOnAnchorCancels(t *testing.T) {

	// Dragging away and releasing back on the anchor cell also
	// cancels: only a release on a different cell completes.
	tr := selection.NewTracker()

	tr.Down(selection.Cell{Col: 2, Row: 2})
	tr.Move(selection.Cell{Col: 4, Row: 2})
	_, _, ok := tr.Up(selection.Cell{Col: 2, Row: 2})
	Check(t, false, ok)

	_, hasQuery := tr.Query()
	Check(t, false, hasQuery)
}

func TestTrackerClickOnCompleteSelectionCancelsWithoutMove(t *testing.T) {

	tr := selection.NewTracker()

	tr.Down(selection.Cell{Col: 0, Row: 0})
	tr.Move(selection.Cell{Col: 3, Row: 0})
	tr.Up(selection.Cell{Col: 3, Row: 0})

	// Next down/up with no move in between, on an already-complete
	// selection, must cancel.
	tr.Down(selection.Cell{Col: 5, Row: 5})
	_, _, ok := tr.Up(selection.Cell{Col: 5, Row: 5})
	Check(t, false, ok)

	_, hasQuery := tr.Query()
	Check(t, false, hasQuery)
}

func TestTrackerClickOnCompleteSelectionThenMoveStartsNewSelection(t *testing.T) {

	tr := selection.NewTracker()

	tr.Down(selection.Cell{Col: 0, Row: 0})
	tr.Move(selection.Cell{Col: 3, Row: 0})
	tr.Up(selection.Cell{Col: 3, Row: 0})

	tr.Down(selection.Cell{Col: 5, Row: 5})
	tr.Move(selection.Cell{Col: 7, Row: 5})
	start, end, ok := tr.Up(selection.Cell{Col: 7, Row: 5})
	Check(t, true, ok)
	Check(t, selection.Cell{Col: 5, Row: 5}, start)
	Check(t, selection.Cell{Col: 7, Row: 5}, end)
}

func TestTrackerMoveBeforeDownIsNoOp(t *testing.T) {

	tr := selection.NewTracker()
	tr.Move(selection.Cell{Col: 1, Row: 1})

	_, ok := tr.Query()
	Check(t, false, ok)
}

func TestTrackerClearDropsQuery(t *testing.T) {

	tr := selection.NewTracker()
	tr.Down(selection.Cell{Col: 0, Row: 0})
	tr.Clear()

	_, ok := tr.Query()
	Check(t, false, ok)
}

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %v but got %v\n", expected, got)
	}
}
