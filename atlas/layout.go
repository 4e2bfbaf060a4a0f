// Package atlas builds, serializes, and describes the font atlas: the
// per-glyph layout into fixed-size cells, the rasterizer that paints
// each style variant into those cells, and the binary wire format the
// built atlas is persisted as.
package atlas

import "github.com/bloeys/beamterm/glyph"

// GlyphsPerSlice is the number of glyph cells packed into one texture
// array layer: a 16-wide, 1-tall grid per slice.
const GlyphsPerSlice = 16

// GridWidth/GridHeight describe the cell arrangement within one slice.
const (
	GridWidth  = 16
	GridHeight = 1
)

// Padding is the number of transparent pixels surrounding every glyph
// cell on every side, absorbing subpixel bleed between neighboring
// cells in the same slice.
const Padding int32 = 1

// Coordinate maps a packed glyph ID to its position within the
// texture array: which layer (slice) it lives on, and which of the 16
// cells in that layer's row it occupies.
type Coordinate struct {
	Layer      uint16
	GlyphIndex uint8
}

// CoordinateFromID derives a Coordinate from a glyph ID via a shift
// and mask: layer = id >> 4, glyph_index = id & 0xF. The id includes
// the style and emoji bits, so every style variant of a grapheme lands
// in its own cell (bold variants 32 layers up, italic 64, emoji 128).
func CoordinateFromID(id uint16) Coordinate {
	return Coordinate{
		Layer:      id >> 4,
		GlyphIndex: uint8(id & 0xF),
	}
}

// XY returns the top-left pixel of this glyph's interior (padded-in)
// drawing area within its slice.
func (c Coordinate) XY(cellWidth int32) (x, y int32) {
	return int32(c.GlyphIndex)*cellWidth + Padding, Padding
}

// CellOffset returns the pixel offset (including the layer index) of
// this glyph's cell origin, ignoring padding — used when addressing
// the full padded cell rather than just its interior.
func (c Coordinate) CellOffset(cellWidth int32) (x, y int32, layer uint16) {
	return int32(c.GlyphIndex) * cellWidth, 0, c.Layer
}

// RasterizationConfig describes the geometry of a built atlas texture:
// its overall dimensions, its layer count, and the size of one glyph
// cell (including the Padding border on every side).
type RasterizationConfig struct {
	TextureWidth  int32
	TextureHeight int32
	Layers        uint32
	CellWidth     int32
	CellHeight    int32
}

// NewRasterizationConfig computes the layout for a set of glyphs and a
// measured (unpadded) cell size: the padded cell size, the number of
// layers needed to hold every glyph id (style and emoji bits
// included), and the resulting texture dimensions. Layer count is
// max_id/16 + 1 so an id landing exactly on a slice boundary still
// gets its layer.
func NewRasterizationConfig(glyphs []glyph.Glyph, unpaddedCellW, unpaddedCellH int32) RasterizationConfig {
	cellW := unpaddedCellW + 2*Padding
	cellH := unpaddedCellH + 2*Padding

	var maxID uint16
	for _, g := range glyphs {
		if g.ID > maxID {
			maxID = g.ID
		}
	}

	layers := uint32(maxID)/GlyphsPerSlice + 1

	return RasterizationConfig{
		TextureWidth:  cellW * GridWidth,
		TextureHeight: cellH * GridHeight,
		Layers:        layers,
		CellWidth:     cellW,
		CellHeight:    cellH,
	}
}

// TextureSizeBytes returns the total byte size of an RGBA8 texture
// array built from this config (width * height * layers * 4).
func (c RasterizationConfig) TextureSizeBytes() int {
	return int(c.TextureWidth) * int(c.TextureHeight) * int(c.Layers) * 4
}
