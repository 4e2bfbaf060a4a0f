package selection_test

import (
	"testing"

	"github.com/bloeys/beamterm/selection"
)

func TestTrimTrailingWhitespacePerLine(t *testing.T) {

	in := "hello   \nworld\t\n\nfoo bar   "
	want := "hello\nworld\n\nfoo bar"

	Check(t, want, selection.TrimTrailingWhitespacePerLine(in))
}

func TestTrimTrailingWhitespacePerLineLeavesLeadingWhitespace(t *testing.T) {

	in := "  indented   \n  also  "
	want := "  indented\n  also"

	Check(t, want, selection.TrimTrailingWhitespacePerLine(in))
}
