package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the source line containing pos with a caret under
// the offending column. Tabs in the prefix are kept so the caret lines up in
// a terminal.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := max(pos.Column, 1)
	column = min(column, len(lineRunes)+1)

	var caretPad strings.Builder
	for _, r := range lineRunes[:column-1] {
		if r == '\t' {
			caretPad.WriteRune('\t')
		} else {
			caretPad.WriteRune(' ')
		}
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	return fmt.Sprintf(
		"  --> %s\n %s | %s\n %s | %s^",
		Position{Line: pos.Line, Column: column},
		lineLabel,
		lineText,
		gutterPad,
		caretPad.String(),
	)
}
