package measure

import (
	"unicode"

	"github.com/matzehuels/mindmap/pkg/outline"
)

// MinWidth is the narrowest box any node is given.
const MinWidth = 60

// MinHeight is the smallest base height in the font table.
const MinHeight = 32

const (
	wrapThreshold  = 180.0
	steepThreshold = 350.0
	wrapRate       = 0.1
	steepRate      = 0.2
)

// Dimension is the estimated box size of one node.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dimensions maps node IDs to their estimated size.
type Dimensions map[string]Dimension

// FontMetrics holds the sizing constants for one depth.
type FontMetrics struct {
	CJKWidth   float64 // per CJK character; doubles as the font size in pixels
	LatinWidth float64 // per non-CJK character
	Padding    float64 // horizontal padding added to the text width
	BaseHeight float64
}

// DefaultFontTable lists metrics for depths 0 through 3; the last row applies
// to depth 4 and deeper.
var DefaultFontTable = []FontMetrics{
	{CJKWidth: 20, LatinWidth: 11, Padding: 48, BaseHeight: 52},
	{CJKWidth: 16, LatinWidth: 9, Padding: 36, BaseHeight: 40},
	{CJKWidth: 14, LatinWidth: 8, Padding: 28, BaseHeight: 34},
	{CJKWidth: 13, LatinWidth: 7.5, Padding: 24, BaseHeight: 32},
	{CJKWidth: 12, LatinWidth: 7, Padding: 20, BaseHeight: 32},
}

// Metrics returns the font table row for depth. Negative depths use the root row.
func Metrics(depth int) FontMetrics {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(DefaultFontTable) {
		depth = len(DefaultFontTable) - 1
	}
	return DefaultFontTable[depth]
}

// FontSize returns the label font size in pixels for depth.
func FontSize(depth int) float64 {
	return Metrics(depth).CJKWidth
}

// IsCJK reports whether r is charged the wide per-character width: Han
// ideographs, kana, Hangul, CJK symbols and punctuation, and fullwidth forms.
func IsCJK(r rune) bool {
	switch {
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
		return true
	case r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // halfwidth and fullwidth forms
		return true
	}
	return false
}

// Measurer reports the width of a label's text, without padding, at a depth.
type Measurer interface {
	TextWidth(text string, depth int) float64
}

// Heuristic measures text with the fixed per-character widths of
// [DefaultFontTable].
type Heuristic struct{}

// TextWidth implements [Measurer].
func (Heuristic) TextWidth(text string, depth int) float64 {
	m := Metrics(depth)
	w := 0.0
	for _, r := range text {
		if IsCJK(r) {
			w += m.CJKWidth
		} else {
			w += m.LatinWidth
		}
	}
	return w
}

// Size estimates the box for a label at depth using m, or [Heuristic] when m
// is nil.
func Size(text string, depth int, m Measurer) Dimension {
	if m == nil {
		m = Heuristic{}
	}
	w := max(Metrics(depth).Padding+m.TextWidth(text, depth), MinWidth)
	return Dimension{Width: w, Height: Height(w, depth)}
}

// Height returns the box height for a node of the given width at depth.
func Height(width float64, depth int) float64 {
	base := Metrics(depth).BaseHeight
	if depth <= 0 {
		return base
	}
	extra := 0.0
	if width > wrapThreshold {
		extra += wrapRate * (min(width, steepThreshold) - wrapThreshold)
	}
	if width > steepThreshold {
		extra += steepRate * (width - steepThreshold)
	}
	return base + extra
}

// Estimate sizes every node in the tree with the [Heuristic] measurer,
// regardless of expand state.
func Estimate(root *outline.Node) Dimensions {
	return EstimateWith(root, Heuristic{})
}

// EstimateWith sizes every node in the tree with m.
func EstimateWith(root *outline.Node, m Measurer) Dimensions {
	dims := make(Dimensions)
	root.Walk(func(n *outline.Node) bool {
		dims[n.ID] = Size(n.Text, n.Depth, m)
		return true
	})
	return dims
}
