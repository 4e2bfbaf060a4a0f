package glterm

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	srcatlas "github.com/bloeys/beamterm/atlas"
)

// UniformBufferObject wraps a GL uniform buffer bound at a fixed
// binding point, matching the std140-compatible upload pattern the
// vertex and fragment UBOs below both use.
type UniformBufferObject struct {
	id           uint32
	bindingPoint uint32
}

// NewUBO creates a uniform buffer bound to the given binding point.
func NewUBO(bindingPoint uint32) *UniformBufferObject {
	var id uint32
	gl.GenBuffers(1, &id)

	u := &UniformBufferObject{id: id, bindingPoint: bindingPoint}
	u.Bind()
	gl.BindBufferBase(gl.UNIFORM_BUFFER, bindingPoint, id)
	u.Unbind()

	return u
}

func (u *UniformBufferObject) Bind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
}

func (u *UniformBufferObject) Unbind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// BindToShader looks up blockName's uniform block index in program and
// binds it to this UBO's binding point.
func (u *UniformBufferObject) BindToShader(program uint32, blockName string) error {
	idx := gl.GetUniformBlockIndex(program, gl.Str(blockName+"\x00"))
	if idx == gl.INVALID_INDEX {
		return shaderErr("uniform block %q not found in program", blockName)
	}
	gl.UniformBlockBinding(program, idx, u.bindingPoint)
	return nil
}

// Upload replaces the UBO's contents with size bytes starting at ptr.
func (u *UniformBufferObject) Upload(ptr unsafe.Pointer, size int) {
	u.Bind()
	gl.BufferData(gl.UNIFORM_BUFFER, size, ptr, gl.STATIC_DRAW)
	u.Unbind()
}

// Delete releases the underlying GL buffer.
func (u *UniformBufferObject) Delete() {
	gl.DeleteBuffers(1, &u.id)
}

// VertUBOBindingPoint/FragUBOBindingPoint are the fixed binding points
// the shader ABI expects (see the module's rendering contract).
const (
	VertUBOBindingPoint = 0
	FragUBOBindingPoint = 1
)

// VertUBOData is the std140 payload bound at VertUBOBindingPoint: an
// orthographic projection matrix sized to the canvas, and the on-screen
// pixel size of one cell. Padded to a 16-byte-aligned struct so the Go
// layout matches std140's vec2-after-mat4 alignment rules.
type VertUBOData struct {
	Projection [16]float32
	CellSize   [2]float32
	_padding   [2]float32
}

// NewVertUBOData builds the vertex UBO payload for a canvas of
// canvasW x canvasH pixels and the given on-screen cell size.
func NewVertUBOData(canvasW, canvasH int32, cellW, cellH int32) VertUBOData {
	var data VertUBOData
	data.Projection = orthoFromSize(float32(canvasW), float32(canvasH))
	data.CellSize = [2]float32{float32(cellW), float32(cellH)}

	return data
}

// orthoFromSize builds a column-major orthographic projection mapping
// pixel space (0,0)-(width,height), origin top-left, onto clip space.
func orthoFromSize(width, height float32) [16]float32 {
	const near, far float32 = -1, 1

	var m [16]float32
	m[0] = 2 / width
	m[5] = -2 / height
	m[10] = -2 / (far - near)
	m[12] = -1
	m[13] = 1
	m[14] = -(far + near) / (far - near)
	m[15] = 1

	return m
}

// FragUBOData is the std140 payload bound at FragUBOBindingPoint: the
// padding fraction (border pixels as a fraction of cell size, used by
// the shader to sample only the glyph's interior) and the
// underline/strikethrough line metrics carried on the atlas.
type FragUBOData struct {
	PaddingFrac            [2]float32
	UnderlinePosition      float32
	UnderlineThickness     float32
	StrikethroughPosition  float32
	StrikethroughThickness float32
	_padding               [2]float32
}

// NewFragUBOData builds the fragment UBO payload from an atlas's
// padded/unpadded cell sizes and line-decoration metrics.
func NewFragUBOData(a *FontAtlas) FragUBOData {
	paddedW, paddedH := a.PaddedCellSize()
	underline := a.Underline()
	strike := a.Strikethrough()

	return FragUBOData{
		PaddingFrac: [2]float32{
			float32(srcatlas.Padding) / float32(paddedW),
			float32(srcatlas.Padding) / float32(paddedH),
		},
		UnderlinePosition:      underline.Position,
		UnderlineThickness:     underline.Thickness,
		StrikethroughPosition:  strike.Position,
		StrikethroughThickness: strike.Thickness,
	}
}
