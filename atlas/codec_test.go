package atlas_test

import (
	"testing"

	"github.com/bloeys/beamterm/atlas"
	"github.com/bloeys/beamterm/glyph"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {

	d := &atlas.Data{
		FontName:      "JetBrains Mono",
		FontSize:      14.5,
		TextureWidth:  160,
		TextureHeight: 24,
		Layers:        2,
		CellWidth:     10,
		CellHeight:    24,
		Underline:     atlas.LineDecoration{Position: 0.9, Thickness: 0.08},
		Strikethrough: atlas.LineDecoration{Position: 0.5, Thickness: 0.08},
		Glyphs: []glyph.Glyph{
			{ID: 'A', Style: glyph.StyleNormal, Symbol: "A", PixelX: 0, PixelY: 0},
			{ID: 'A' | glyph.BoldFlag, Style: glyph.StyleBold, Symbol: "A", PixelX: 10, PixelY: 0},
			{ID: 0 | glyph.EmojiFlag, Style: glyph.StyleNormal, Symbol: "\U0001F600", IsEmoji: true, PixelX: 0, PixelY: 24},
		},
		TextureData: make([]byte, 160*24*2*4),
	}

	for i := range d.TextureData {
		d.TextureData[i] = byte(i % 251)
	}

	encoded, err := atlas.Serialize(d)
	Check(t, nil, err)

	decoded, err := atlas.Deserialize(encoded)
	Check(t, nil, err)

	Check(t, d.FontName, decoded.FontName)
	Check(t, d.FontSize, decoded.FontSize)
	Check(t, d.TextureWidth, decoded.TextureWidth)
	Check(t, d.TextureHeight, decoded.TextureHeight)
	Check(t, d.Layers, decoded.Layers)
	Check(t, d.CellWidth, decoded.CellWidth)
	Check(t, d.CellHeight, decoded.CellHeight)
	Check(t, d.Underline, decoded.Underline)
	Check(t, d.Strikethrough, decoded.Strikethrough)
	Check(t, len(d.Glyphs), len(decoded.Glyphs))

	for i := range d.Glyphs {
		Check(t, d.Glyphs[i], decoded.Glyphs[i])
	}

	Check(t, len(d.TextureData), len(decoded.TextureData))
	for i := range d.TextureData {
		if d.TextureData[i] != decoded.TextureData[i] {
			t.Fatalf("texture byte %d mismatch: %d != %d", i, d.TextureData[i], decoded.TextureData[i])
		}
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {

	_, err := atlas.Deserialize([]byte{0, 0, 0, 0, atlas.Version})
	if err != atlas.ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {

	data := append(append([]byte{}, atlas.Header[:]...), 0x01)
	_, err := atlas.Deserialize(data)
	if err != atlas.ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDeserializeRejectsInvalidStyleOrdinal(t *testing.T) {

	d := &atlas.Data{
		FontName:      "x",
		TextureWidth:  1,
		TextureHeight: 1,
		Layers:        1,
		CellWidth:     1,
		CellHeight:    1,
		Glyphs:        []glyph.Glyph{{ID: 'A', Style: glyph.StyleNormal, Symbol: "A"}},
		TextureData:   make([]byte, 4),
	}

	encoded, err := atlas.Serialize(d)
	Check(t, nil, err)

	// The style ordinal byte sits right after the glyph count (u16)
	// and the glyph id (u16).
	styleOffset := 4 + 1 + // magic, version
		1 + len(d.FontName) + // font name
		4 + // font size
		3*4 + // texture dims
		2*4 + // cell dims
		4*4 + // line decorations
		2 + // glyph count
		2 // glyph id
	encoded[styleOffset] = 99

	_, err = atlas.Deserialize(encoded)
	if err != atlas.ErrInvalidStyle {
		t.Fatalf("expected ErrInvalidStyle, got %v", err)
	}
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {

	data := append(append([]byte{}, atlas.Header[:]...), atlas.Version)
	_, err := atlas.Deserialize(data)
	if err != atlas.ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func Check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("Expected %+v but got %+v\n", expected, got)
	}
}
