package glterm

import (
	"testing"

	"github.com/bloeys/beamterm/selection"
)

// testGrid builds a grid with cells and lookup tables but no GL
// resources, enough to exercise text extraction and selection
// inversion.
func testGrid(cols, rows int32) *TerminalGrid {
	g := &TerminalGrid{
		atlas:     testAtlasIndex(),
		cols:      cols,
		rows:      rows,
		selection: selection.NewTracker(),
	}
	g.fallbackGlyphID = g.atlas.FallbackGlyphID()
	g.cells = createTerminalCellData(cols, rows, g.fallbackGlyphID)
	return g
}

func fillRowMajor(g *TerminalGrid, text string) {
	for i, r := range text {
		if i >= len(g.cells) {
			break
		}
		g.cells[i] = NewCellDynamic(uint16(r), 0x00FFFFFF, 0x00000000)
	}
}

func TestGetTextBlockSelection(t *testing.T) {

	// 5x3 grid filled A..O; block (1,0)-(3,1) reads "BCD\nGHI".
	g := testGrid(5, 3)
	fillRowMajor(g, "ABCDEFGHIJKLMNO")

	q := selection.NewQuery(selection.ModeBlock).
		Start(selection.Cell{Col: 1, Row: 0}).
		End(selection.Cell{Col: 3, Row: 1})

	Check(t, "BCD\nGHI", g.GetText(q))
}

func TestGetTextLinearSelectionWithTrim(t *testing.T) {

	// 5x2 grid: row 0 = "he   ", row 1 = "llo  ". A linear span over
	// the whole grid with trim gives "he\nllo".
	g := testGrid(5, 2)
	fillRowMajor(g, "he   llo  ")

	q := selection.NewQuery(selection.ModeLinear).
		Start(selection.Cell{Col: 0, Row: 0}).
		End(selection.Cell{Col: 4, Row: 1}).
		WithTrimTrailingWhitespace(true)

	Check(t, "he\nllo", g.GetText(q))
}

func TestGetTextEmptyQueryRange(t *testing.T) {

	g := testGrid(3, 3)
	Check(t, "", g.GetText(nil))
	Check(t, "", g.GetText(selection.NewQuery(selection.ModeBlock)))
}

func TestSelectionInversionIsTransparent(t *testing.T) {

	// Flipping selected cells twice (the flush protocol without the
	// GPU upload in between) must leave the CPU buffer untouched.
	g := testGrid(4, 2)
	fillRowMajor(g, "ABCDEFGH")

	g.Selection().Down(selection.Cell{Col: 0, Row: 0})
	g.Selection().Move(selection.Cell{Col: 1, Row: 0})
	g.Selection().Up(selection.Cell{Col: 1, Row: 0})

	before := make([]CellDynamic, len(g.cells))
	copy(before, g.cells)

	g.flipSelectedCellColors()

	// The selected cells are inverted in the upload window...
	flipped := before[0]
	flipped.FlipColors()
	Check(t, flipped, g.cells[0])

	g.flipSelectedCellColors()

	// ...and byte-identical again after the second flip.
	for i := range before {
		Check(t, before[i], g.cells[i])
	}
}

func TestResizeCellGridPreservesOverlap(t *testing.T) {

	// 10x5 grid with a marker at (3, 2), grown to 12x6.
	old := make([]CellDynamic, 10*5)
	blank := NewCellDynamic(uint16(' '), 0xFFFFFF, 0x000000)
	for i := range old {
		old[i] = blank
	}
	marker := NewCellDynamic('X', 0x00FF0000, 0x00000000)
	old[2*10+3] = marker

	resized := resizeCellGrid(old, 10, 5, 12, 6)
	Check(t, 12*6, len(resized))

	Check(t, marker, resized[2*12+3])

	// Every cell outside the old grid is the blank default.
	for y := int32(0); y < 6; y++ {
		for x := int32(0); x < 12; x++ {
			if x < 10 && y < 5 {
				continue
			}
			Check(t, blank, resized[y*12+x])
		}
	}
}

func TestResizeCellGridShrinkKeepsTopLeft(t *testing.T) {

	old := make([]CellDynamic, 4*4)
	for i := range old {
		old[i] = NewCellDynamic(uint16('a'+i), 0xFFFFFF, 0)
	}

	resized := resizeCellGrid(old, 4, 4, 2, 2)
	Check(t, 4, len(resized))
	Check(t, old[0], resized[0])
	Check(t, old[1], resized[1])
	Check(t, old[4], resized[2])
	Check(t, old[5], resized[3])
}

func TestOrthoFromSizeMapsCorners(t *testing.T) {

	m := orthoFromSize(800, 600)

	// Column-major: x' = m[0]*x + m[12], y' = m[5]*y + m[13].
	mapX := func(x float32) float32 { return m[0]*x + m[12] }
	mapY := func(y float32) float32 { return m[5]*y + m[13] }

	Check(t, float32(-1), mapX(0))
	Check(t, float32(1), mapX(800))
	Check(t, float32(1), mapY(0))
	Check(t, float32(-1), mapY(600))
}

func TestNewVertUBODataCellSize(t *testing.T) {

	d := NewVertUBOData(640, 480, 8, 16)
	Check(t, float32(8), d.CellSize[0])
	Check(t, float32(16), d.CellSize[1])
}
