package atlas

import (
	"image"

	"github.com/bloeys/beamterm/glyph"
	"github.com/sirupsen/logrus"
)

// Build runs the full offline atlas pipeline: classify the distinct
// graphemes in text into glyphs (glyph.NewGraphemeSet), lay them out
// into fixed-size padded cells across as many texture array layers as
// needed (RasterizationConfig), rasterize every non-emoji glyph's
// style variant into its cell (RasterizeInto), and pack the result
// into a Data ready for Serialize or direct GL upload.
//
// log may be nil; when provided, Build reports glyph counts and final
// texture dimensions at Info level.
func Build(faces FaceSet, text string, isEmoji glyph.EmojiPredicate, fontName string, fontSize float32, underline, strikethrough LineDecoration, log *logrus.Logger) (*Data, error) {
	set, err := glyph.NewGraphemeSet(text, isEmoji)
	if err != nil {
		return nil, err
	}

	glyphs := set.Glyphs()
	if log != nil {
		log.WithField("glyph_count", len(glyphs)).Info("atlas: classified graphemes")
	}

	unpaddedW, unpaddedH := MeasureCell(faces, glyphs)
	cfg := NewRasterizationConfig(glyphs, unpaddedW, unpaddedH)

	if log != nil {
		log.WithFields(logrus.Fields{
			"texture_width":  cfg.TextureWidth,
			"texture_height": cfg.TextureHeight,
			"layers":         cfg.Layers,
			"cell_width":     cfg.CellWidth,
			"cell_height":    cfg.CellHeight,
		}).Info("atlas: computed layout")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, int(cfg.TextureWidth), int(cfg.TextureHeight)*int(cfg.Layers)))

	for i := range glyphs {
		g := &glyphs[i]

		// Full id, so each style variant gets its own cell.
		coord := CoordinateFromID(g.ID)

		cellOriginX, _, _ := coord.CellOffset(cfg.CellWidth)
		cellOriginY := int32(coord.Layer) * cfg.TextureHeight

		// The recorded pixel origin is slice-local: the padded-in
		// interior of the glyph's cell within its own layer. The layer
		// itself is implicit in the glyph id.
		g.PixelX, g.PixelY = coord.XY(cfg.CellWidth)

		interiorX := cellOriginX + Padding
		interiorY := cellOriginY + Padding

		if err := RasterizeInto(canvas, faces, *g, interiorX, interiorY, unpaddedW, unpaddedH); err != nil && err != ErrNoGlyphInFace {
			return nil, err
		}
	}

	return &Data{
		FontName:      fontName,
		FontSize:      fontSize,
		TextureWidth:  uint32(cfg.TextureWidth),
		TextureHeight: uint32(cfg.TextureHeight),
		Layers:        cfg.Layers,
		CellWidth:     cfg.CellWidth,
		CellHeight:    cfg.CellHeight,
		Underline:     underline,
		Strikethrough: strikethrough,
		Glyphs:        glyphs,
		TextureData:   canvas.Pix,
	}, nil
}
