package glyph

import (
	"fmt"
	"sort"

	"github.com/bloeys/beamterm/assert"
	"github.com/rivo/uniseg"
)

// EmojiPredicate reports whether a grapheme cluster should be treated
// as an emoji glyph (single Normal-style variant, no bold/italic
// rasterization). The font-discovery/emoji-data collaborator that
// backs this predicate lives outside this module; callers supply it.
type EmojiPredicate func(grapheme string) bool

// MaxClassifiableGraphemes is the largest number of distinct ASCII +
// non-ASCII, non-emoji graphemes a single atlas can hold: base IDs are
// 9 bits wide (BaseIDMask), so there are MaxBaseID+1 slots.
const MaxClassifiableGraphemes = int(MaxBaseID) + 1

// ErrTooManyGraphemes is returned when the ascii+unicode grapheme
// count would exceed MaxClassifiableGraphemes.
var ErrTooManyGraphemes = fmt.Errorf("glyph: more than %d distinct ascii/unicode graphemes", MaxClassifiableGraphemes)

// GraphemeSet partitions the distinct grapheme clusters of an input
// string into three buckets: single-codepoint ASCII, other Unicode,
// and emoji (as reported by the caller's EmojiPredicate).
type GraphemeSet struct {
	ascii   []string
	unicode []string
	emoji   []string
}

// NewGraphemeSet segments input into grapheme clusters via uniseg,
// dedupes and sorts each bucket, and validates the ascii+unicode count
// against MaxClassifiableGraphemes.
func NewGraphemeSet(input string, isEmoji EmojiPredicate) (*GraphemeSet, error) {
	seen := make(map[string]struct{})

	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		g := gr.Str()
		if g == "" {
			continue
		}
		seen[g] = struct{}{}
	}

	set := &GraphemeSet{}
	for g := range seen {
		switch {
		case isAsciiGrapheme(g):
			set.ascii = append(set.ascii, g)
		case isEmoji != nil && isEmoji(g):
			set.emoji = append(set.emoji, g)
		default:
			set.unicode = append(set.unicode, g)
		}
	}

	sort.Strings(set.ascii)
	sort.Strings(set.unicode)
	sort.Strings(set.emoji)

	if len(set.ascii)+len(set.unicode) > MaxClassifiableGraphemes {
		return nil, ErrTooManyGraphemes
	}

	return set, nil
}

func isAsciiGrapheme(g string) bool {
	if len(g) != 1 {
		return false
	}
	return g[0] < 0x80
}

// Glyphs allocates base glyph IDs for every grapheme in the set and
// expands each into its rasterized variants: ASCII and Unicode
// graphemes get one Glyph per Style (4 variants each), emoji get a
// single Normal-style variant with the emoji flag set. The result is
// sorted by packed glyph ID, matching the wire format's expectation
// that glyph records are written in ascending ID order.
func (s *GraphemeSet) Glyphs() []Glyph {
	used := make(map[uint16]struct{}, len(s.ascii)+len(s.unicode))

	var glyphs []Glyph

	for _, g := range s.ascii {
		base := uint16(g[0])
		used[base] = struct{}{}
		for _, style := range AllStyles {
			glyphs = append(glyphs, New(base, g, style, false))
		}
	}

	nextID := nextFreeIDCounter(used)
	for _, g := range s.unicode {
		base := nextID()
		used[base] = struct{}{}
		for _, style := range AllStyles {
			glyphs = append(glyphs, New(base, g, style, false))
		}
	}

	for i, g := range s.emoji {
		assert.T(i <= int(MaxBaseID), "emoji index %d exceeds base id range", i)
		glyphs = append(glyphs, New(uint16(i), g, StyleNormal, true))
	}

	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].ID < glyphs[j].ID })

	return glyphs
}

// nextFreeIDCounter returns a closure producing a monotonically
// increasing base ID, skipping any id already present in used. Callers
// must insert each returned id into used themselves if it should not
// be handed out again (Glyphs does this per-grapheme since unicode
// graphemes consume a single shared id for all 4 style variants).
func nextFreeIDCounter(used map[uint16]struct{}) func() uint16 {
	next := uint16(0)

	return func() uint16 {
		for {
			if _, taken := used[next]; !taken {
				return next
			}
			next++
		}
	}
}
