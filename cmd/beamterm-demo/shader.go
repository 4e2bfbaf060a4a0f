package main

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// vertexShaderSrc and fragmentShaderSrc implement the instanced-quad ABI
// glterm.TerminalGrid expects: attribute locations 0-3 (pos, uv,
// grid_xy, packed glyph/fg/bg), a VertUbo/FragUbo pair at binding
// points 0/1, and a u_sampler uniform bound to the atlas texture array.
// Shader source is this demo's concern, not the library's -- a real
// embedder supplies its own program to glterm.NewTerminalGrid.
const vertexShaderSrc = `#version 410 core
layout (location = 0) in vec2 a_pos;
layout (location = 1) in vec2 a_uv;
layout (location = 2) in uvec2 a_gridXY;
layout (location = 3) in uvec2 a_packed;

layout (std140) uniform VertUbo {
	mat4 u_projection;
	vec2 u_cellSize;
};

out vec2 v_uv;
flat out uint v_glyphID;
flat out vec3 v_fg;
flat out vec3 v_bg;

// The 8-byte instance layout, read as two little-endian uints:
//   a_packed.x = glyph_id | fg_r << 16 | fg_g << 24
//   a_packed.y = fg_b | bg_r << 8 | bg_g << 16 | bg_b << 24
void main() {
	vec2 cellOrigin = vec2(a_gridXY) * u_cellSize;
	gl_Position = u_projection * vec4(cellOrigin + a_pos * u_cellSize, 0.0, 1.0);

	v_uv = a_uv;
	v_glyphID = a_packed.x & 0xFFFFu;

	v_fg = vec3(
		float((a_packed.x >> 16) & 0xFFu),
		float((a_packed.x >> 24) & 0xFFu),
		float(a_packed.y & 0xFFu)) / 255.0;
	v_bg = vec3(
		float((a_packed.y >> 8) & 0xFFu),
		float((a_packed.y >> 16) & 0xFFu),
		float((a_packed.y >> 24) & 0xFFu)) / 255.0;
}
`

const fragmentShaderSrc = `#version 410 core
in vec2 v_uv;
flat in uint v_glyphID;
flat in vec3 v_fg;
flat in vec3 v_bg;

layout (std140) uniform FragUbo {
	vec2 u_paddingFrac;
	float u_underlinePos;
	float u_underlineThickness;
	float u_strikethroughPos;
	float u_strikethroughThickness;
};

uniform sampler2DArray u_sampler;

out vec4 fragColor;

void main() {
	// Decoration bits don't participate in the texture coordinate;
	// style and emoji bits do (each variant has its own cell).
	uint texId = v_glyphID & 0x0FFFu;
	float layer = float(texId >> 4);
	float slot = float(texId & 0xFu);

	// Sample only the padded-in interior of the glyph cell.
	vec2 inner = u_paddingFrac + v_uv * (1.0 - 2.0 * u_paddingFrac);
	vec2 atlasUV = vec2((slot + inner.x) / 16.0, inner.y);
	vec4 texel = texture(u_sampler, vec3(atlasUV, layer));

	// Texel colors are premultiplied. Emoji keep their own colors;
	// text glyphs are tinted by the foreground.
	bool isEmoji = (v_glyphID & 0x800u) != 0u;
	vec3 glyph = isEmoji ? texel.rgb : v_fg * texel.a;
	vec3 color = glyph + v_bg * (1.0 - texel.a);

	if ((v_glyphID & 0x1000u) != 0u &&
		abs(v_uv.y - u_underlinePos) < u_underlineThickness * 0.5) {
		color = v_fg;
	}
	if ((v_glyphID & 0x2000u) != 0u &&
		abs(v_uv.y - u_strikethroughPos) < u_strikethroughThickness * 0.5) {
		color = v_fg;
	}

	fragColor = vec4(color, 1.0);
}
`

// compileProgram links a vertex/fragment pair into a usable GL program,
// following the standard go-gl compile/link-with-info-log idiom.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}
