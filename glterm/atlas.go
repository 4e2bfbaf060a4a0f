package glterm

import (
	srcatlas "github.com/bloeys/beamterm/atlas"
	"github.com/bloeys/beamterm/glyph"
)

// FontAtlas is the render-time view of a built atlas: the uploaded
// texture array plus the lookup tables that translate between a
// symbol and the base glyph ID addressing its texture cell.
type FontAtlas struct {
	Texture *Texture

	cellWidth, cellHeight             int32 // unpadded interior size
	paddedCellWidth, paddedCellHeight int32

	glyphCoords  map[string]uint16
	symbolLookup map[uint16]string

	underline, strikethrough srcatlas.LineDecoration

	fallbackGlyphID uint16
	fallbackSymbol  string
}

// NewFontAtlas uploads data's texture payload and builds the lookup
// tables used by BaseGlyphID/Symbol.
func NewFontAtlas(data *srcatlas.Data) (*FontAtlas, error) {
	tex, err := UploadTexture(data)
	if err != nil {
		return nil, err
	}

	a := newAtlasIndex(data)
	a.Texture = tex

	return a, nil
}

// newAtlasIndex builds the CPU-side half of a FontAtlas: cell metrics,
// decoration config, and the symbol lookup tables. Only the
// Normal-style variant of each non-ASCII grapheme is indexed: ASCII
// has a direct codepoint shortcut (BaseGlyphID below) and every style
// variant of a grapheme shares the same symbol, so indexing the other
// three styles would just duplicate entries.
func newAtlasIndex(data *srcatlas.Data) *FontAtlas {
	a := &FontAtlas{
		cellWidth:        data.CellWidth - 2*srcatlas.Padding,
		cellHeight:       data.CellHeight - 2*srcatlas.Padding,
		paddedCellWidth:  data.CellWidth,
		paddedCellHeight: data.CellHeight,
		glyphCoords:      make(map[string]uint16),
		symbolLookup:     make(map[uint16]string),
		underline:        data.Underline,
		strikethrough:    data.Strikethrough,
		fallbackSymbol:   " ",
	}

	for _, g := range data.Glyphs {
		if g.Style != glyph.StyleNormal {
			continue
		}
		if isAsciiSymbol(g.Symbol) {
			continue
		}
		base := g.BaseID()
		a.glyphCoords[g.Symbol] = base
		a.symbolLookup[base] = g.Symbol
	}

	if id, ok := a.BaseGlyphID(a.fallbackSymbol); ok {
		a.fallbackGlyphID = id
	}

	return a
}

func isAsciiSymbol(s string) bool {
	return len(s) == 1 && s[0] < 0x80
}

// CellSize returns the unpadded interior cell size glyphs are
// rasterized into — the size a caller should use to size a cell
// on-screen.
func (a *FontAtlas) CellSize() (w, h int32) {
	return a.cellWidth, a.cellHeight
}

// PaddedCellSize returns the cell size including the border padding
// every glyph cell carries in the texture.
func (a *FontAtlas) PaddedCellSize() (w, h int32) {
	return a.paddedCellWidth, a.paddedCellHeight
}

// Underline/Strikethrough return the line-decoration metrics carried
// on the atlas.
func (a *FontAtlas) Underline() srcatlas.LineDecoration     { return a.underline }
func (a *FontAtlas) Strikethrough() srcatlas.LineDecoration { return a.strikethrough }

// BaseGlyphID resolves a symbol to its base glyph ID. Single-character
// ASCII symbols take a direct codepoint shortcut without consulting
// glyphCoords at all; the shortcut does not verify the character was
// actually rasterized into the atlas before returning an ID for it.
func (a *FontAtlas) BaseGlyphID(symbol string) (uint16, bool) {
	if isAsciiSymbol(symbol) {
		return uint16(symbol[0]), true
	}
	id, ok := a.glyphCoords[symbol]
	return id, ok
}

// FallbackGlyphID returns the base glyph ID substituted for any symbol
// BaseGlyphID cannot resolve.
func (a *FontAtlas) FallbackGlyphID() uint16 {
	return a.fallbackGlyphID
}

// Symbol resolves a packed glyph ID back to its display symbol, used
// by the text extractor. ASCII printable base ids resolve
// directly; everything else consults symbolLookup, falling back to
// fallbackSymbol if the id is unknown (e.g. it was produced by a
// different, incompatible atlas).
func (a *FontAtlas) Symbol(glyphID uint16) string {
	base := glyphID & (glyph.BaseIDMask | glyph.EmojiFlag)

	if base >= 0x20 && base < 0x80 {
		return string(rune(base))
	}
	if s, ok := a.symbolLookup[base]; ok {
		return s
	}
	return a.fallbackSymbol
}

// Bind activates texture unit `unit` and binds the atlas texture to it.
func (a *FontAtlas) Bind(unit uint32) {
	a.Texture.Bind(unit)
}

// Delete releases the underlying GL texture.
func (a *FontAtlas) Delete() {
	a.Texture.Delete()
}
