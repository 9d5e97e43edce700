package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"

	"github.com/matzehuels/mindmap/pkg/measure"
)

// FontSize returns the label font size in pixels for a node at depth.
func FontSize(depth int) float64 { return measure.FontSize(depth) }

// TruncateLabel shortens label to at most maxChars runes, marking the cut
// with "..". maxChars below 3 is raised to 3.
func TruncateLabel(label string, maxChars int) string {
	maxChars = max(maxChars, 3)
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
