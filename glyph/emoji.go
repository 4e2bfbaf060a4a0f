package glyph

import "unicode"

// emojiRanges covers the Unicode blocks that hold the overwhelming
// majority of emoji presentation code points. A code-point range
// check, not a full emoji-sequence/ZWJ-cluster classifier; callers
// needing exact emoji-data semantics supply their own EmojiPredicate.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // ZWJ, part of multi-codepoint emoji sequences
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1}, // misc symbols & dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // misc symbols and arrows (stars, etc.)
		{Lo: 0xFE0F, Hi: 0xFE0F, Stride: 1}, // variation selector-16
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators (flags)
		{Lo: 0x1F300, Hi: 0x1FAFF, Stride: 1}, // misc symbols, pictographs, emoticons, transport, supplemental
	},
}

// DefaultIsEmoji is the EmojiPredicate used when no caller-supplied
// font/emoji-data collaborator is available: a grapheme is treated as
// emoji if any of its runes falls in emojiRanges.
func DefaultIsEmoji(grapheme string) bool {
	for _, r := range grapheme {
		if unicode.Is(emojiRanges, r) {
			return true
		}
	}
	return false
}
