package atlas

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bloeys/beamterm/glyph"
	"github.com/klauspost/compress/flate"
)

// Header identifies the atlas binary format.
var Header = [4]byte{0xBA, 0xB1, 0xF0, 0xA5}

// Version is the current wire format version. Version 2 adds the four
// line-decoration fields after the cell dimensions; version 1 did not
// carry them. A v1 file is rejected outright rather than misparsed
// under the wider schema.
const Version uint8 = 0x02

// LineDecoration describes one line-style decoration's vertical
// position and thickness, both expressed as a fraction of cell height.
type LineDecoration struct {
	Position  float32
	Thickness float32
}

// Data is the complete, in-memory representation of a built font
// atlas: its metadata, its glyph table, and its (uncompressed) texture
// pixels. Serialize/Deserialize convert this to and from the wire
// format; the GL-facing runtime atlas (glterm package) is built from
// one of these.
type Data struct {
	FontName      string
	FontSize      float32
	TextureWidth  uint32
	TextureHeight uint32
	Layers        uint32
	CellWidth     int32
	CellHeight    int32
	Underline     LineDecoration
	Strikethrough LineDecoration
	Glyphs        []glyph.Glyph
	TextureData   []byte // RGBA8, TextureWidth*TextureHeight*Layers*4 bytes
}

// TerminalSize returns how many whole columns and rows of cells fit in
// a viewport of the given pixel size.
func (d *Data) TerminalSize(viewportW, viewportH int32) (cols, rows int32) {
	return viewportW / d.CellWidth, viewportH / d.CellHeight
}

// CellSize returns the atlas's padded cell dimensions.
func (d *Data) CellSize() (w, h int32) {
	return d.CellWidth, d.CellHeight
}

var (
	ErrBadMagic            = fmt.Errorf("atlas: bad magic header")
	ErrUnsupportedVersion  = fmt.Errorf("atlas: unsupported version")
	ErrTruncated           = fmt.Errorf("atlas: truncated data")
	ErrInvalidStyle        = fmt.Errorf("atlas: invalid glyph style ordinal")
	ErrTooManyGlyphsForU16 = fmt.Errorf("atlas: glyph count exceeds uint16 range")
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *writer) u16(v uint16) { var b [2]byte; binary.LittleEndian.PutUint16(b[:], v); w.buf.Write(b[:]) }
func (w *writer) u32(v uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); w.buf.Write(b[:]) }
func (w *writer) i32(v int32)  { w.u32(uint32(v)) }
func (w *writer) f32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.buf.Write(b[:])
}
func (w *writer) str(s string) {
	w.u8(uint8(len(s)))
	w.buf.WriteString(s)
}
func (w *writer) bytesLenPrefixed(b []byte) {
	w.u32(uint32(len(b)))
	w.buf.Write(b)
}

type reader struct {
	b   []byte
	pos int
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.b) {
		return ErrTruncated
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) str() (string, error) {
	n, err := r.u8()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.b[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *reader) bytesLenPrefixed() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	out := r.b[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return out, nil
}

// Serialize encodes d into the atlas wire format, deflate-compressing
// the texture payload at the highest compression level.
func Serialize(d *Data) ([]byte, error) {
	if len(d.Glyphs) > 0xFFFF {
		return nil, ErrTooManyGlyphsForU16
	}

	compressed, err := deflate(d.TextureData)
	if err != nil {
		return nil, fmt.Errorf("atlas: compressing texture payload: %w", err)
	}

	w := &writer{}
	w.buf.Write(Header[:])
	w.u8(Version)
	w.str(d.FontName)
	w.f32(d.FontSize)
	w.u32(d.TextureWidth)
	w.u32(d.TextureHeight)
	w.u32(d.Layers)
	w.i32(d.CellWidth)
	w.i32(d.CellHeight)
	w.f32(d.Underline.Position)
	w.f32(d.Underline.Thickness)
	w.f32(d.Strikethrough.Position)
	w.f32(d.Strikethrough.Thickness)
	w.u16(uint16(len(d.Glyphs)))

	for _, g := range d.Glyphs {
		w.u16(g.ID)
		w.u8(uint8(g.Style))
		if g.IsEmoji {
			w.u8(1)
		} else {
			w.u8(0)
		}
		w.i32(g.PixelX)
		w.i32(g.PixelY)
		w.str(g.Symbol)
	}

	w.bytesLenPrefixed(compressed)

	return w.buf.Bytes(), nil
}

// Deserialize decodes the atlas wire format produced by Serialize.
func Deserialize(data []byte) (*Data, error) {
	r := &reader{b: data}

	if err := r.need(4); err != nil {
		return nil, err
	}
	var hdr [4]byte
	copy(hdr[:], r.b[r.pos:r.pos+4])
	r.pos += 4
	if hdr != Header {
		return nil, ErrBadMagic
	}

	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, ErrUnsupportedVersion
	}

	d := &Data{}

	if d.FontName, err = r.str(); err != nil {
		return nil, err
	}
	if d.FontSize, err = r.f32(); err != nil {
		return nil, err
	}
	if d.TextureWidth, err = r.u32(); err != nil {
		return nil, err
	}
	if d.TextureHeight, err = r.u32(); err != nil {
		return nil, err
	}
	if d.Layers, err = r.u32(); err != nil {
		return nil, err
	}
	if d.CellWidth, err = r.i32(); err != nil {
		return nil, err
	}
	if d.CellHeight, err = r.i32(); err != nil {
		return nil, err
	}
	if d.Underline.Position, err = r.f32(); err != nil {
		return nil, err
	}
	if d.Underline.Thickness, err = r.f32(); err != nil {
		return nil, err
	}
	if d.Strikethrough.Position, err = r.f32(); err != nil {
		return nil, err
	}
	if d.Strikethrough.Thickness, err = r.f32(); err != nil {
		return nil, err
	}

	glyphCount, err := r.u16()
	if err != nil {
		return nil, err
	}

	d.Glyphs = make([]glyph.Glyph, glyphCount)
	for i := range d.Glyphs {
		id, err := r.u16()
		if err != nil {
			return nil, err
		}
		styleOrdinal, err := r.u8()
		if err != nil {
			return nil, err
		}
		if styleOrdinal >= uint8(len(glyph.AllStyles)) {
			return nil, ErrInvalidStyle
		}
		isEmojiByte, err := r.u8()
		if err != nil {
			return nil, err
		}
		px, err := r.i32()
		if err != nil {
			return nil, err
		}
		py, err := r.i32()
		if err != nil {
			return nil, err
		}
		symbol, err := r.str()
		if err != nil {
			return nil, err
		}

		d.Glyphs[i] = glyph.Glyph{
			ID:      id,
			Style:   glyph.Style(styleOrdinal),
			Symbol:  symbol,
			IsEmoji: isEmojiByte != 0,
			PixelX:  px,
			PixelY:  py,
		}
	}

	compressed, err := r.bytesLenPrefixed()
	if err != nil {
		return nil, err
	}

	d.TextureData, err = inflate(compressed)
	if err != nil {
		return nil, fmt.Errorf("atlas: inflating texture payload: %w", err)
	}

	return d, nil
}

func deflate(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(raw); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(compressed []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	return io.ReadAll(fr)
}
