package glterm

import (
	"testing"

	"github.com/bloeys/beamterm/glyph"
)

func TestCellDynamicByteLayout(t *testing.T) {

	c := NewCellDynamic(0x1234, 0x00AABBCC, 0x00112233)

	want := [8]byte{0x34, 0x12, 0xAA, 0xBB, 0xCC, 0x11, 0x22, 0x33}
	if c.Data != want {
		t.Fatalf("packed cell layout mismatch: got %v, want %v", c.Data, want)
	}

	Check(t, uint16(0x1234), c.GlyphID())
}

func TestFlipColorsTwiceRestoresCell(t *testing.T) {

	c := NewCellDynamic('X', 0x00FF8800, 0x00004477)
	orig := c

	c.FlipColors()
	if c == orig {
		t.Fatalf("expected flipped cell to differ from original")
	}

	c.FlipColors()
	Check(t, orig, c)
}

func TestNewCellDataPacksStyleAndDecorations(t *testing.T) {

	d := NewCellData("A", glyph.StyleBold, glyph.Decorations{Underline: true}, 0xFFFFFF, 0)
	Check(t, glyph.BoldFlag|glyph.UnderlineFlag, d.StyleBits)

	d = NewCellData("A", glyph.StyleBoldItalic, glyph.Decorations{Strikethrough: true}, 0, 0)
	Check(t, glyph.BoldFlag|glyph.ItalicFlag|glyph.StrikethroughFlag, d.StyleBits)
}

func TestCreateStaticGridRowMajor(t *testing.T) {

	cells := createStaticGrid(3, 2)
	Check(t, 6, len(cells))

	want := [][2]uint16{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	for i, w := range want {
		if cells[i].GridXY != w {
			t.Fatalf("cell %d grid position mismatch: got %v, want %v", i, cells[i].GridXY, w)
		}
	}
}

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %v but got %v\n", expected, got)
	}
}
