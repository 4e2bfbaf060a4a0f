// Package glterm is the GPU-facing half of the renderer: uploading the
// built atlas as a texture array, looking up glyph ids by symbol at
// render time, the packed static/dynamic cell instance buffers, and
// the terminal grid that draws them in one instanced call.
package glterm

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/bloeys/beamterm/atlas"
)

// Texture owns a GL_TEXTURE_2D_ARRAY holding every glyph cell, one
// 16-wide row of cells per array layer.
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
	Layers int32
}

// UploadTexture creates a GL_TEXTURE_2D_ARRAY and uploads the full
// atlas payload in a single TexImage3D call, then sets the filtering
// mode every glyph cell needs: nearest-neighbor sampling and
// clamp-to-edge wrapping, since any interpolation across a cell
// boundary would bleed a neighboring glyph into frame.
//
// TexImage3D rather than the immutable TexStorage3D: texture storage
// objects are a GL 4.2 addition, and the v4.1-core binding this module
// targets does not expose them.
func UploadTexture(data *atlas.Data) (*Texture, error) {
	if len(data.TextureData) != int(data.TextureWidth)*int(data.TextureHeight)*int(data.Layers)*4 {
		return nil, dataErr("texture payload size mismatch: got %d bytes, want %d", len(data.TextureData), int(data.TextureWidth)*int(data.TextureHeight)*int(data.Layers)*4)
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return nil, resourceErr("failed to create atlas texture object")
	}
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)

	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.RGBA,
		int32(data.TextureWidth),
		int32(data.TextureHeight),
		int32(data.Layers),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&data.TextureData[0]),
	)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	return &Texture{
		ID:     id,
		Width:  int32(data.TextureWidth),
		Height: int32(data.TextureHeight),
		Layers: int32(data.Layers),
	}, nil
}

// Bind activates texture unit `unit` and binds this array texture to it.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)
}

// Delete releases the GL texture object. Safe to call once; the
// texture ID is zeroed afterward so a stray second call is a no-op.
func (t *Texture) Delete() {
	if t.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}
