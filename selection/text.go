package selection

import "strings"

// TrimTrailingWhitespacePerLine trims trailing whitespace from every
// line of text without touching leading whitespace or blank lines
// between content. Used by GetText when a query requests it.
func TrimTrailingWhitespacePerLine(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
