package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/bloeys/beamterm/glyph"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FaceSet supplies one rasterization face per style variant, indexed
// by glyph.Style ordinal. Resolving a font family into these four
// faces is the caller's concern.
type FaceSet [4]font.Face

// Face returns the face for the given style.
func (fs FaceSet) Face(style glyph.Style) font.Face {
	return fs[style]
}

// ErrNoGlyphInFace is returned when a rune has no outline in the
// requested face.
var ErrNoGlyphInFace = fmt.Errorf("atlas: rune not present in face")

// MeasureCell walks every ascii/unicode glyph across all four style
// variants and returns the tightest (advance, ascent+descent) bounding
// box that fits all of them — the unpadded cell size every glyph is
// rasterized into. Emoji glyphs are excluded from the measurement,
// and RasterizeInto does not draw them: their cells stay blank.
func MeasureCell(faces FaceSet, glyphs []glyph.Glyph) (w, h int32) {
	var maxAdvance, maxAscent, maxDescent fixed.Int26_6

	for _, g := range glyphs {
		if g.IsEmoji {
			continue
		}

		r := firstRune(g.Symbol)
		face := faces.Face(g.Style)
		if face == nil {
			continue
		}

		adv, ok := face.GlyphAdvance(r)
		if ok && adv > maxAdvance {
			maxAdvance = adv
		}

		bounds, _, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}

		ascent := absFixed(bounds.Min.Y)
		descent := absFixed(bounds.Max.Y)
		if ascent > maxAscent {
			maxAscent = ascent
		}
		if descent > maxDescent {
			maxDescent = descent
		}
	}

	w = int32(maxAdvance.Ceil())
	h = int32((maxAscent + maxDescent).Ceil())

	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	return w, h
}

func absFixed(x fixed.Int26_6) fixed.Int26_6 {
	if x < 0 {
		return -x
	}
	return x
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// RasterizeInto paints one glyph's face outline into dst at the cell
// whose padded interior begins at (originX, originY) and whose
// unpadded interior is (cellW, cellH). Pixels that would land outside
// that interior are silently dropped — they belong to the padding
// border or a neighboring cell, never a partially-drawn glyph bleeding
// across cell boundaries. Emoji glyphs have no rasterizable outline in
// a text face and are left blank; a color-emoji source fills their
// cells via a separate path outside this module.
func RasterizeInto(dst *image.RGBA, faces FaceSet, g glyph.Glyph, originX, originY, cellW, cellH int32) error {
	if g.IsEmoji {
		return nil
	}

	face := faces.Face(g.Style)
	if face == nil {
		return fmt.Errorf("atlas: no face registered for style %s", g.Style)
	}

	r := firstRune(g.Symbol)

	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return ErrNoGlyphInFace
	}
	ascent := absFixed(bounds.Min.Y).Ceil()

	dot := fixed.P(int(originX), int(originY)+ascent)
	imgRect, mask, maskp, _, ok := face.Glyph(dot, r)
	if !ok {
		return ErrNoGlyphInFace
	}

	cellRect := image.Rect(int(originX), int(originY), int(originX+cellW), int(originY+cellH))
	clipped := imgRect.Intersect(cellRect)
	if clipped.Empty() {
		return nil
	}

	maskp = maskp.Add(clipped.Min.Sub(imgRect.Min))
	draw.DrawMask(dst, clipped, image.White, image.Point{}, mask, maskp, draw.Over)

	return nil
}
