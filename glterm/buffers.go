package glterm

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations the shader ABI binds against.
const (
	attribPos             uint32 = 0
	attribUV              uint32 = 1
	attribGridXY          uint32 = 2
	attribPackedDepthFgBg uint32 = 3
)

type terminalBuffers struct {
	vao          uint32
	vertices     uint32
	instancePos  uint32
	instanceCell uint32
	indices      uint32
}

// vertex is one corner of the shared unit quad every cell instance
// re-uses: position (x,y) and texture coordinate (u,v).
type vertex struct {
	x, y, u, v float32
}

// UVs track positions directly: the projection puts the origin at the
// top-left and the texture rows are stored top-down, so v = 0 at the
// top edge of the cell.
var quadVertices = [4]vertex{
	{x: 0, y: 0, u: 0, v: 0},
	{x: 1, y: 0, u: 1, v: 0},
	{x: 1, y: 1, u: 1, v: 1},
	{x: 0, y: 1, u: 0, v: 1},
}

var quadIndices = [6]uint8{0, 1, 2, 0, 2, 3}

func createVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func setupBuffers(cellsWide, cellsTall int32, cellData []CellDynamic) *terminalBuffers {
	b := &terminalBuffers{vao: createVAO()}
	gl.BindVertexArray(b.vao)

	// Shared quad: positions + UVs, one copy for every instance.
	gl.GenBuffers(1, &b.vertices)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vertices)
	gl.BufferData(gl.ARRAY_BUFFER, int(unsafe.Sizeof(quadVertices)), gl.Ptr(&quadVertices[0]), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(vertex{}))
	gl.EnableVertexAttribArray(attribPos)
	gl.VertexAttribPointer(attribPos, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attribUV)
	gl.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Sizeof(float32(0))*2)))

	// Static per-instance grid position.
	staticCells := createStaticGrid(cellsWide, cellsTall)
	b.instancePos = createStaticInstanceBuffer(staticCells)

	// Dynamic per-instance packed cell data.
	b.instanceCell = createDynamicInstanceBuffer(cellData)

	// Shared index buffer (two triangles per quad).
	gl.GenBuffers(1, &b.indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(unsafe.Sizeof(quadIndices)), gl.Ptr(&quadIndices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	return b
}

func createStaticInstanceBuffer(cells []CellStatic) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(cells)*int(unsafe.Sizeof(CellStatic{})), gl.Ptr(&cells[0]), gl.STATIC_DRAW)

	// Integer pointer: the shader reads a_gridXY as uvec2.
	gl.EnableVertexAttribArray(attribGridXY)
	gl.VertexAttribIPointer(attribGridXY, 2, gl.UNSIGNED_SHORT, int32(unsafe.Sizeof(CellStatic{})), gl.PtrOffset(0))
	gl.VertexAttribDivisor(attribGridXY, 1)

	return id
}

func createDynamicInstanceBuffer(cells []CellDynamic) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(cells)*int(unsafe.Sizeof(CellDynamic{})), gl.Ptr(&cells[0]), gl.DYNAMIC_DRAW)

	// 8 bytes == two uint32 components, matching the shader's packed
	// uvec2 attribute at attribPackedDepthFgBg.
	gl.EnableVertexAttribArray(attribPackedDepthFgBg)
	gl.VertexAttribIPointer(attribPackedDepthFgBg, 2, gl.UNSIGNED_INT, int32(unsafe.Sizeof(CellDynamic{})), gl.PtrOffset(0))
	gl.VertexAttribDivisor(attribPackedDepthFgBg, 1)

	return id
}

// uploadInstanceCells orphans the dynamic instance buffer and uploads
// cells in full. No VAO bind: ARRAY_BUFFER binding is not VAO state,
// and the attribute pointer into this buffer object is unchanged.
func (b *terminalBuffers) uploadInstanceCells(cells []CellDynamic) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceCell)
	gl.BufferData(gl.ARRAY_BUFFER, len(cells)*int(unsafe.Sizeof(CellDynamic{})), gl.Ptr(&cells[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *terminalBuffers) deleteInstanceBuffers() {
	gl.DeleteBuffers(1, &b.instancePos)
	gl.DeleteBuffers(1, &b.instanceCell)
}

func (b *terminalBuffers) delete() {
	gl.DeleteBuffers(1, &b.vertices)
	gl.DeleteBuffers(1, &b.indices)
	b.deleteInstanceBuffers()
	gl.DeleteVertexArrays(1, &b.vao)
}
