package glterm

import (
	"github.com/bloeys/beamterm/assert"
	"github.com/bloeys/beamterm/glyph"
)

// CellStatic is the per-cell grid position, uploaded once as the
// instanced vertex attribute at attribGridXY and never touched again unless
// the grid is resized.
type CellStatic struct {
	GridXY [2]uint16
}

func createStaticGrid(cols, rows int32) []CellStatic {
	cells := make([]CellStatic, 0, cols*rows)
	for y := int32(0); y < rows; y++ {
		for x := int32(0); x < cols; x++ {
			cells = append(cells, CellStatic{GridXY: [2]uint16{uint16(x), uint16(y)}})
		}
	}
	return cells
}

// CellDynamic is the 8-byte packed per-cell payload re-uploaded every
// flush: glyph id (2 bytes, little-endian) followed by the foreground
// and background colors as 3 bytes each (R, G, B).
type CellDynamic struct {
	Data [8]byte
}

// NewCellDynamic packs a glyph id and two 0xRRGGBB colors into the
// 8-byte instanced layout the shader reads at attribute location
// attribPackedDepthFgBg.
func NewCellDynamic(glyphID uint16, fg, bg uint32) CellDynamic {
	var c CellDynamic
	c.Data[0] = byte(glyphID)
	c.Data[1] = byte(glyphID >> 8)
	c.Data[2] = byte(fg >> 16)
	c.Data[3] = byte(fg >> 8)
	c.Data[4] = byte(fg)
	c.Data[5] = byte(bg >> 16)
	c.Data[6] = byte(bg >> 8)
	c.Data[7] = byte(bg)
	return c
}

// GlyphID returns the packed glyph id.
func (c *CellDynamic) GlyphID() uint16 {
	return uint16(c.Data[0]) | uint16(c.Data[1])<<8
}

// FlipColors swaps this cell's foreground and background colors in
// place. Used twice per flush (flip, upload, flip back) so a selected
// cell renders inverted without a second CPU-side copy of the buffer.
func (c *CellDynamic) FlipColors() {
	c.Data[2], c.Data[5] = c.Data[5], c.Data[2]
	c.Data[3], c.Data[6] = c.Data[6], c.Data[3]
	c.Data[4], c.Data[7] = c.Data[7], c.Data[4]
}

// styleBitsReservedMask is the set of bits a caller-supplied
// style-bits value must not touch: the base id (resolved from the
// symbol, never passed in) and the topmost reserved bit.
const styleBitsReservedMask uint16 = 0x81FF

// CellData is the caller-facing description of one cell's contents:
// the symbol to display, the style/decoration bits to OR onto its
// resolved glyph id, and its two colors.
type CellData struct {
	Symbol    string
	StyleBits uint16
	FG        uint32
	BG        uint32
}

// NewCellData builds a CellData from a style and independent
// decoration flags.
func NewCellData(symbol string, style glyph.Style, dec glyph.Decorations, fg, bg uint32) CellData {
	return CellData{
		Symbol:    symbol,
		StyleBits: style.Mask() | dec.Bits(),
		FG:        fg,
		BG:        bg,
	}
}

// NewCellDataWithStyleBits builds a CellData from already-packed style
// bits. styleBits must not collide with styleBitsReservedMask; the
// check is debug-only.
func NewCellDataWithStyleBits(symbol string, styleBits uint16, fg, bg uint32) CellData {
	assert.T(styleBits&styleBitsReservedMask == 0, "style bits %#04x collide with reserved mask %#04x", styleBits, styleBitsReservedMask)
	return CellData{Symbol: symbol, StyleBits: styleBits, FG: fg, BG: bg}
}
