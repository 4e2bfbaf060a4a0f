package glyph_test

import (
	"testing"

	"github.com/bloeys/beamterm/glyph"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {

	cases := []struct {
		base    uint16
		style   glyph.Style
		isEmoji bool
		dec     glyph.Decorations
	}{
		{base: 'A', style: glyph.StyleNormal, dec: glyph.Decorations{}},
		{base: 'A', style: glyph.StyleBold, dec: glyph.Decorations{Underline: true}},
		{base: 'Z', style: glyph.StyleItalic, dec: glyph.Decorations{Strikethrough: true}},
		{base: 42, style: glyph.StyleBoldItalic, dec: glyph.Decorations{Underline: true, Strikethrough: true}},
		{base: glyph.MaxBaseID, style: glyph.StyleNormal, isEmoji: true, dec: glyph.Decorations{}},
	}

	for _, c := range cases {

		id, err := glyph.Encode(c.base, c.style, c.isEmoji, c.dec)
		Check(t, nil, err)

		base, style, isEmoji, dec, err := glyph.Decode(id)
		Check(t, nil, err)
		Check(t, c.base, base)
		Check(t, c.isEmoji, isEmoji)
		Check(t, c.dec, dec)

		if !c.isEmoji {
			Check(t, c.style, style)
		}
	}
}

func TestEncodeBaseOutOfRange(t *testing.T) {

	_, err := glyph.Encode(glyph.MaxBaseID+1, glyph.StyleNormal, false, glyph.Decorations{})
	if err != glyph.ErrBaseIDOutOfRange {
		t.Fatalf("expected ErrBaseIDOutOfRange, got %v", err)
	}
}

func TestDecodeRejectsReservedBits(t *testing.T) {

	_, _, _, _, err := glyph.Decode(0xC000)
	if err != glyph.ErrInvalidBits {
		t.Fatalf("expected ErrInvalidBits, got %v", err)
	}
}

func TestDecodeRejectsEmojiWithStyleBits(t *testing.T) {

	// The emoji flag replaces style selection, so an id carrying both
	// is malformed.
	_, _, _, _, err := glyph.Decode(glyph.EmojiFlag | glyph.BoldFlag | 5)
	if err != glyph.ErrInvalidBits {
		t.Fatalf("expected ErrInvalidBits, got %v", err)
	}
}

func TestDecodeAcceptsIDZero(t *testing.T) {

	// Glyph ID 0 is a legitimate atlas coordinate (layer 0, slot 0)
	// and must decode cleanly.
	base, style, isEmoji, dec, err := glyph.Decode(0)
	Check(t, nil, err)
	Check(t, uint16(0), base)
	Check(t, glyph.StyleNormal, style)
	Check(t, false, isEmoji)
	Check(t, glyph.Decorations{}, dec)
}

func TestEmojiFlagOverridesStyleBits(t *testing.T) {

	id, err := glyph.Encode(5, glyph.StyleBoldItalic, true, glyph.Decorations{})
	Check(t, nil, err)

	if id&glyph.StyleMask != 0 {
		t.Fatalf("expected style bits to be absent from an emoji id, got %#04x", id)
	}
	if id&glyph.EmojiFlag == 0 {
		t.Fatalf("expected emoji flag set")
	}
}

func TestDecorationsIndependentOfCollapsedEffect(t *testing.T) {

	// Both flags set must decode as both true, never collapse to a
	// single value.
	id, err := glyph.Encode(1, glyph.StyleNormal, false, glyph.Decorations{Underline: true, Strikethrough: true})
	Check(t, nil, err)

	_, _, _, dec, err := glyph.Decode(id)
	Check(t, nil, err)
	Check(t, true, dec.Underline)
	Check(t, true, dec.Strikethrough)
}

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %v but got %v\n", expected, got)
	}
}
