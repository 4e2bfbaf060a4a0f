// Package glyph implements the glyph identity model: the 16-bit glyph
// ID encoding and the grapheme-to-glyph classifier/allocator.
package glyph

import "fmt"

// Style selects which of the four rasterized variants a glyph ID names.
type Style uint8

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// AllStyles enumerates every style variant a grapheme is rasterized in,
// in ordinal order.
var AllStyles = [4]Style{StyleNormal, StyleBold, StyleItalic, StyleBoldItalic}

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleBoldItalic:
		return "bold_italic"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// Mask returns the bits this style contributes to a packed glyph ID.
func (s Style) Mask() uint16 {
	switch s {
	case StyleBold:
		return BoldFlag
	case StyleItalic:
		return ItalicFlag
	case StyleBoldItalic:
		return BoldFlag | ItalicFlag
	default:
		return 0
	}
}

// Bit layout of a packed 16-bit glyph ID. Bits 14-15 are reserved and
// must always be zero.
const (
	BaseIDMask        uint16 = 0x01FF // bits 0-8
	BoldFlag          uint16 = 0x0200 // bit 9
	ItalicFlag        uint16 = 0x0400 // bit 10
	EmojiFlag         uint16 = 0x0800 // bit 11, overrides style
	UnderlineFlag     uint16 = 0x1000 // bit 12
	StrikethroughFlag uint16 = 0x2000 // bit 13
	ReservedMask      uint16 = 0xC000 // bits 14-15, must be zero
	StyleMask         uint16 = BoldFlag | ItalicFlag

	// MaxBaseID is the largest value BaseIDMask can hold (511).
	MaxBaseID uint16 = BaseIDMask

	// UnassignedID is a sentinel outside every valid glyph ID. The
	// classifier does not produce it: running out of base IDs is
	// reported as ErrTooManyGraphemes instead.
	UnassignedID uint16 = 0xFFFF
)

// Decorations carries the underline/strikethrough bits independently
// rather than as one enum, so a shader (or any caller) can see and act
// on either, both, or neither.
type Decorations struct {
	Underline     bool
	Strikethrough bool
}

// Bits returns the packed underline/strikethrough flag bits for these
// decorations.
func (d Decorations) Bits() uint16 {
	return d.bits()
}

func (d Decorations) bits() uint16 {
	var b uint16
	if d.Underline {
		b |= UnderlineFlag
	}
	if d.Strikethrough {
		b |= StrikethroughFlag
	}
	return b
}

// ErrInvalidBits is returned by Decode when reserved bits 14-15 are
// set, or when the emoji flag and style bits are both nonzero (the
// emoji flag replaces style selection; an id carrying both names no
// atlas cell).
var ErrInvalidBits = fmt.Errorf("glyph: invalid glyph id bits")

// ErrBaseIDOutOfRange is returned by Encode when base exceeds MaxBaseID.
var ErrBaseIDOutOfRange = fmt.Errorf("glyph: base id exceeds %d", MaxBaseID)

// Encode packs a base glyph id, style, emoji flag and decorations into
// a 16-bit glyph ID. When isEmoji is true, style is ignored in the
// resulting bit pattern (the emoji flag overrides style selection) but
// decorations still apply.
func Encode(base uint16, style Style, isEmoji bool, dec Decorations) (uint16, error) {
	if base > MaxBaseID {
		return 0, ErrBaseIDOutOfRange
	}

	id := base | dec.bits()
	if isEmoji {
		id |= EmojiFlag
	} else {
		id |= style.Mask()
	}

	return id, nil
}

// Decode unpacks a glyph ID into its base id, style, emoji flag and
// decorations. Style is meaningful only when isEmoji is false: emoji
// glyphs are always rasterized as a single normal-style variant.
func Decode(id uint16) (base uint16, style Style, isEmoji bool, dec Decorations, err error) {
	if id&ReservedMask != 0 {
		return 0, 0, false, Decorations{}, ErrInvalidBits
	}

	base = id & BaseIDMask
	isEmoji = id&EmojiFlag != 0

	if isEmoji && id&StyleMask != 0 {
		return 0, 0, false, Decorations{}, ErrInvalidBits
	}

	if !isEmoji {
		switch id & StyleMask {
		case BoldFlag:
			style = StyleBold
		case ItalicFlag:
			style = StyleItalic
		case BoldFlag | ItalicFlag:
			style = StyleBoldItalic
		default:
			style = StyleNormal
		}
	}

	dec = Decorations{
		Underline:     id&UnderlineFlag != 0,
		Strikethrough: id&StrikethroughFlag != 0,
	}

	return base, style, isEmoji, dec, nil
}

// Glyph is a single rasterized atlas entry: a symbol (one grapheme
// cluster), the style/emoji variant it represents, its packed ID, and
// the pixel offset of its cell within the atlas texture.
type Glyph struct {
	ID      uint16
	Style   Style
	Symbol  string
	IsEmoji bool
	PixelX  int32
	PixelY  int32
}

// New builds a Glyph from an already-assigned base id.
func New(base uint16, symbol string, style Style, isEmoji bool) Glyph {
	id := base
	if isEmoji {
		id |= EmojiFlag
	} else {
		id |= style.Mask()
	}

	return Glyph{
		ID:      id,
		Style:   style,
		Symbol:  symbol,
		IsEmoji: isEmoji,
	}
}

// BaseID strips the style and decoration bits, returning the id every
// variant of this grapheme shares. The emoji flag stays: emoji ids
// occupy their own 0x800+ range.
func (g Glyph) BaseID() uint16 {
	return g.ID & (BaseIDMask | EmojiFlag)
}
