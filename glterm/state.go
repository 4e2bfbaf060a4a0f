package glterm

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// State caches the most recently bound GL program, vertex array, and
// array texture so a render loop that draws the same grid every frame
// can skip redundant bind calls. All methods are nil-receiver safe: a
// nil *State performs every bind unconditionally, so callers that
// don't care about redundant state changes can pass nil throughout.
//
// The cache only stays coherent while every bind goes through it.
// After any GL work that binds objects directly (another renderer, a
// UI overlay pass, texture/buffer creation), call Invalidate before
// the next Prepare.
type State struct {
	program    uint32
	hasProgram bool

	vao    uint32
	hasVAO bool

	texture2DArray uint32
	hasTexture     bool
}

// Invalidate forgets everything the cache knows, forcing the next
// bind of each kind to hit GL.
func (s *State) Invalidate() {
	if s == nil {
		return
	}
	*s = State{}
}

// UseProgram binds program id unless the cache knows it is already
// bound.
func (s *State) UseProgram(id uint32) {
	if s != nil && s.hasProgram && s.program == id {
		return
	}
	gl.UseProgram(id)
	if s != nil {
		s.program, s.hasProgram = id, true
	}
}

// BindVertexArray binds the VAO unless the cache knows it is already
// bound.
func (s *State) BindVertexArray(id uint32) {
	if s != nil && s.hasVAO && s.vao == id {
		return
	}
	gl.BindVertexArray(id)
	if s != nil {
		s.vao, s.hasVAO = id, true
	}
}

// BindTexture2DArray activates texture unit `unit` and binds the
// array texture to it unless the cache knows it is already bound.
func (s *State) BindTexture2DArray(unit, id uint32) {
	if s != nil && s.hasTexture && s.texture2DArray == id {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)
	if s != nil {
		s.texture2DArray, s.hasTexture = id, true
	}
}
