package atlas_test

import (
	"testing"

	"github.com/bloeys/beamterm/atlas"
)

func TestCoordinateFromID(t *testing.T) {

	cases := []struct {
		id        uint16
		wantLayer uint16
		wantIndex uint8
	}{
		{id: 0, wantLayer: 0, wantIndex: 0},
		{id: 15, wantLayer: 0, wantIndex: 15},
		{id: 16, wantLayer: 1, wantIndex: 0},
		{id: 31, wantLayer: 1, wantIndex: 15},
		{id: 511, wantLayer: 31, wantIndex: 15},
	}

	for _, c := range cases {
		coord := atlas.CoordinateFromID(c.id)
		if coord.Layer != c.wantLayer || coord.GlyphIndex != c.wantIndex {
			t.Fatalf("CoordinateFromID(%d) = {%d %d}, want {%d %d}", c.id, coord.Layer, coord.GlyphIndex, c.wantLayer, c.wantIndex)
		}
	}
}

func TestRasterizationConfigLayers(t *testing.T) {

	cfg := atlas.NewRasterizationConfig(nil, 8, 16)
	if cfg.Layers != 1 {
		t.Fatalf("expected 1 layer for an empty glyph set, got %d", cfg.Layers)
	}
	if cfg.CellWidth != 8+2*atlas.Padding || cfg.CellHeight != 16+2*atlas.Padding {
		t.Fatalf("unexpected padded cell size: %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.TextureWidth != cfg.CellWidth*atlas.GridWidth {
		t.Fatalf("unexpected texture width: %d", cfg.TextureWidth)
	}
}
