package glterm

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/bloeys/beamterm/selection"
)

// TerminalGrid is the single owner of the cell instance data and the
// draw call that paints an entire terminal in one instanced pass.
type TerminalGrid struct {
	programID  uint32
	samplerLoc int32

	atlas *FontAtlas

	cols, rows       int32
	canvasW, canvasH int32

	cells []CellDynamic

	buffers *terminalBuffers
	vertUBO *UniformBufferObject
	fragUBO *UniformBufferObject

	fallbackGlyphID uint16

	selection *selection.Tracker
}

// NewTerminalGrid creates a terminal grid sized to fill canvasW x
// canvasH pixels at atlas's cell size, using program (already compiled
// and linked elsewhere — the shader ABI's bindings, not its source,
// are this module's concern) to resolve uniform locations and block
// bindings.
func NewTerminalGrid(program uint32, atlas *FontAtlas, canvasW, canvasH int32) (*TerminalGrid, error) {
	cellW, cellH := atlas.CellSize()
	cols, rows := canvasW/cellW, canvasH/cellH
	if cols <= 0 || rows <= 0 {
		return nil, initErr("canvas %dx%d too small for cell size %dx%d", canvasW, canvasH, cellW, cellH)
	}

	g := &TerminalGrid{
		programID: program,
		atlas:     atlas,
		cols:      cols,
		rows:      rows,
		canvasW:   canvasW,
		canvasH:   canvasH,
		selection: selection.NewTracker(),
	}

	g.fallbackGlyphID = atlas.FallbackGlyphID()
	g.cells = createTerminalCellData(cols, rows, g.fallbackGlyphID)
	g.buffers = setupBuffers(cols, rows, g.cells)

	g.vertUBO = NewUBO(VertUBOBindingPoint)
	g.fragUBO = NewUBO(FragUBOBindingPoint)
	if err := g.vertUBO.BindToShader(program, "VertUbo"); err != nil {
		return nil, err
	}
	if err := g.fragUBO.BindToShader(program, "FragUbo"); err != nil {
		return nil, err
	}

	g.samplerLoc = gl.GetUniformLocation(program, gl.Str("u_sampler\x00"))
	if g.samplerLoc < 0 {
		return nil, shaderErr("sampler uniform u_sampler not found in program")
	}

	g.uploadUBOData()

	return g, nil
}

func createTerminalCellData(cols, rows int32, fillGlyph uint16) []CellDynamic {
	cells := make([]CellDynamic, cols*rows)
	for i := range cells {
		cells[i] = NewCellDynamic(fillGlyph, 0x00FFFFFF, 0x00000000)
	}
	return cells
}

func (g *TerminalGrid) uploadUBOData() {
	cellW, cellH := g.atlas.CellSize()
	vertData := NewVertUBOData(g.canvasW, g.canvasH, cellW, cellH)
	g.vertUBO.Upload(unsafe.Pointer(&vertData), int(unsafe.Sizeof(vertData)))

	fragData := NewFragUBOData(g.atlas)
	g.fragUBO.Upload(unsafe.Pointer(&fragData), int(unsafe.Sizeof(fragData)))
}

// CellCount returns the number of cells (and instances drawn per frame).
func (g *TerminalGrid) CellCount() int32 {
	return g.cols * g.rows
}

// Dimensions returns the current column/row count.
func (g *TerminalGrid) Dimensions() (cols, rows int32) {
	return g.cols, g.rows
}

// CellSize returns the atlas's unpadded cell size, the unit callers
// should use to convert a pixel coordinate into a grid cell.
func (g *TerminalGrid) CellSize() (w, h int32) {
	return g.atlas.CellSize()
}

func (g *TerminalGrid) index(x, y int32) (int32, bool) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return 0, false
	}
	return y*g.cols + x, true
}

func (g *TerminalGrid) resolveGlyphID(data CellData) uint16 {
	base, ok := g.atlas.BaseGlyphID(data.Symbol)
	if !ok {
		base = g.fallbackGlyphID
	}
	return base | data.StyleBits
}

// UpdateCell writes data into the cell at (x, y). Out-of-range
// coordinates are a silent no-op; callers wanting the write to become
// visible must call Flush afterward.
func (g *TerminalGrid) UpdateCell(x, y int32, data CellData) {
	idx, ok := g.index(x, y)
	if !ok {
		return
	}
	g.UpdateCellByIndex(idx, data)
}

// UpdateCellByIndex writes data into the cell at the given linear
// index. Out-of-range indices are a silent no-op.
func (g *TerminalGrid) UpdateCellByIndex(idx int32, data CellData) {
	if idx < 0 || idx >= int32(len(g.cells)) {
		return
	}
	g.cells[idx] = NewCellDynamic(g.resolveGlyphID(data), data.FG, data.BG)
}

// UpdateCells overwrites cells 0..len(data) in row-major order. Like
// every update method, the write stays CPU-side until the next Flush.
func (g *TerminalGrid) UpdateCells(data []CellData) {
	n := len(data)
	if n > len(g.cells) {
		n = len(g.cells)
	}
	for i := 0; i < n; i++ {
		g.cells[i] = NewCellDynamic(g.resolveGlyphID(data[i]), data[i].FG, data[i].BG)
	}
}

// PositionedCellUpdate pairs a cell coordinate with the data to write
// there, for UpdateCellsByPosition's sparse-update form.
type PositionedCellUpdate struct {
	X, Y int32
	Data CellData
}

// UpdateCellsByPosition writes each update at its (X, Y) coordinate,
// silently filtering out any that falls outside the grid.
func (g *TerminalGrid) UpdateCellsByPosition(updates []PositionedCellUpdate) {
	for _, u := range updates {
		idx, ok := g.index(u.X, u.Y)
		if !ok {
			continue
		}
		g.cells[idx] = NewCellDynamic(g.resolveGlyphID(u.Data), u.Data.FG, u.Data.BG)
	}
}

// Flush uploads the current cell buffer to the GPU. Any cell inside
// the active selection is flipped (fg/bg swapped) before upload and
// flipped back immediately after, so the GPU sees the inverted colors
// for exactly one upload without a second CPU-side copy of the buffer.
func (g *TerminalGrid) Flush() {
	g.flipSelectedCellColors()
	g.buffers.uploadInstanceCells(g.cells)
	g.flipSelectedCellColors()
}

func (g *TerminalGrid) flipSelectedCellColors() {
	it, ok := g.selectedCellIter()
	if !ok {
		return
	}
	for {
		idx, _, ok := it.Next()
		if !ok {
			break
		}
		if idx >= 0 && idx < len(g.cells) {
			g.cells[idx].FlipColors()
		}
	}
}

func (g *TerminalGrid) selectedCellIter() (selection.CellIterator, bool) {
	q, ok := g.selection.Query()
	if !ok {
		return nil, false
	}
	start, end, ok := q.Range()
	if !ok {
		return nil, false
	}
	return g.CellIter(start, end, q.Mode()), true
}

// Selection returns the grid's selection tracker, used to drive and
// query the current selection state.
func (g *TerminalGrid) Selection() *selection.Tracker {
	return g.selection
}

// CellIter dispatches to the block or linear cell iterator over the
// inclusive range [start, end].
func (g *TerminalGrid) CellIter(start, end selection.Cell, mode selection.Mode) selection.CellIterator {
	maxCells := len(g.cells)
	switch mode {
	case selection.ModeLinear:
		return selection.NewLinearCellIterator(g.cols, start, end, maxCells)
	default:
		return selection.NewBlockCellIterator(g.cols, start, end, maxCells)
	}
}

// cellSymbol resolves the display symbol at idx, falling back to the
// atlas's fallback symbol for out-of-range indices.
func (g *TerminalGrid) cellSymbol(idx int) string {
	if idx < 0 || idx >= len(g.cells) {
		return g.atlas.Symbol(g.fallbackGlyphID)
	}
	return g.atlas.Symbol(g.cells[idx].GlyphID())
}

// GetText extracts the text content described by q, trimming trailing
// whitespace per-line when q.TrimTrailingWhitespace() is set.
func (g *TerminalGrid) GetText(q *selection.Query) string {
	if q == nil {
		return ""
	}
	start, end, ok := q.Range()
	if !ok {
		return ""
	}

	it := g.CellIter(start, end, q.Mode())
	text := g.symbolsFromIter(it)

	if q.TrimTrailingWhitespace() {
		return selection.TrimTrailingWhitespacePerLine(text)
	}
	return text
}

func (g *TerminalGrid) symbolsFromIter(it selection.CellIterator) string {
	var b []byte
	for {
		idx, newline, ok := it.Next()
		if !ok {
			break
		}
		b = append(b, g.cellSymbol(idx)...)
		if newline {
			b = append(b, '\n')
		}
	}
	return string(b)
}

// Resize changes the canvas size, recomputing the column/row count and
// preserving the overlapping sub-rectangle of prior cell content. New
// cells beyond the old grid are filled with a blank space, white
// foreground, black background. A resize that does not change the
// cell grid dimensions only updates the projection UBO and returns.
func (g *TerminalGrid) Resize(canvasW, canvasH int32) {
	g.canvasW, g.canvasH = canvasW, canvasH
	g.uploadUBOData()

	cellW, cellH := g.atlas.CellSize()
	newCols, newRows := canvasW/cellW, canvasH/cellH
	if newCols == g.cols && newRows == g.rows {
		return
	}

	oldCols, oldRows := g.cols, g.rows
	newCells := resizeCellGrid(g.cells, oldCols, oldRows, newCols, newRows)

	gl.BindVertexArray(g.buffers.vao)
	g.buffers.deleteInstanceBuffers()

	g.cols, g.rows = newCols, newRows
	g.cells = newCells

	staticCells := createStaticGrid(newCols, newRows)
	g.buffers.instancePos = createStaticInstanceBuffer(staticCells)
	g.buffers.instanceCell = createDynamicInstanceBuffer(g.cells)

	gl.BindVertexArray(0)
}

func resizeCellGrid(old []CellDynamic, oldCols, oldRows, newCols, newRows int32) []CellDynamic {
	blank := NewCellDynamic(uint16(' '), 0xFFFFFF, 0x000000)

	newCells := make([]CellDynamic, newCols*newRows)
	for i := range newCells {
		newCells[i] = blank
	}

	minCols := oldCols
	if newCols < minCols {
		minCols = newCols
	}
	minRows := oldRows
	if newRows < minRows {
		minRows = newRows
	}

	for y := int32(0); y < minRows; y++ {
		for x := int32(0); x < minCols; x++ {
			newCells[y*newCols+x] = old[y*oldCols+x]
		}
	}

	return newCells
}

// SetFallbackGlyph sets the glyph substituted whenever a symbol cannot
// be resolved in the atlas.
func (g *TerminalGrid) SetFallbackGlyph(symbol string) {
	if id, ok := g.atlas.BaseGlyphID(symbol); ok {
		g.fallbackGlyphID = id
		return
	}
	g.fallbackGlyphID = uint16(' ')
}

// Prepare binds the program, VAO, atlas texture, and both UBOs ahead
// of Draw — the first third of the prepare/draw/cleanup contract. st
// may be nil; when provided, binds the cache knows are already in
// place are skipped.
func (g *TerminalGrid) Prepare(st *State) {
	st.UseProgram(g.programID)
	st.BindVertexArray(g.buffers.vao)
	st.BindTexture2DArray(0, g.atlas.Texture.ID)
	g.vertUBO.Bind()
	g.fragUBO.Bind()
	gl.Uniform1i(g.samplerLoc, 0)
}

// Draw issues the single instanced draw call painting every cell.
func (g *TerminalGrid) Draw() {
	gl.DrawElementsInstanced(gl.TRIANGLES, 6, gl.UNSIGNED_BYTE, gl.PtrOffset(0), g.CellCount())
}

// Cleanup unbinds the VAO, atlas texture, and both UBOs Prepare bound,
// through the same cache. The program stays in use.
func (g *TerminalGrid) Cleanup(st *State) {
	st.BindVertexArray(0)
	st.BindTexture2DArray(0, 0)
	g.vertUBO.Unbind()
	g.fragUBO.Unbind()
}

// Delete releases every GL resource the grid owns.
func (g *TerminalGrid) Delete() {
	g.buffers.delete()
	g.vertUBO.Delete()
	g.fragUBO.Delete()
}
