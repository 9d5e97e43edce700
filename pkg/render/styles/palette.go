package styles

// Palette holds the colors of a style as CSS hex strings. Per-depth slices
// are indexed by depth; deeper nodes reuse the last entry.
type Palette struct {
	Background string
	Edge       string
	Badge      string
	Fill       []string
	Stroke     []string
	Text       []string
}

// FillAt returns the box fill for depth.
func (p Palette) FillAt(depth int) string { return at(p.Fill, depth) }

// StrokeAt returns the box outline color for depth.
func (p Palette) StrokeAt(depth int) string { return at(p.Stroke, depth) }

// TextAt returns the label color for depth.
func (p Palette) TextAt(depth int) string { return at(p.Text, depth) }

func at(colors []string, depth int) string {
	if len(colors) == 0 {
		return "#000000"
	}
	return colors[max(0, min(depth, len(colors)-1))]
}

var simplePalette = Palette{
	Background: "#ffffff",
	Edge:       "#9aa5b1",
	Badge:      "#52606d",
	Fill:       []string{"#3e4c59", "#e3f2fd", "#e8f5e9", "#fff8e1", "#fce4ec"},
	Stroke:     []string{"#1f2933", "#64b5f6", "#81c784", "#ffd54f", "#f06292"},
	Text:       []string{"#ffffff", "#1f2933", "#1f2933", "#323f4b", "#3e4c59"},
}

var darkPalette = Palette{
	Background: "#1f2933",
	Edge:       "#7b8794",
	Badge:      "#cbd2d9",
	Fill:       []string{"#f5f7fa", "#243b53", "#1c3d2e", "#3d3421", "#3d2130"},
	Stroke:     []string{"#e4e7eb", "#4098d7", "#3ebd93", "#f0b429", "#e12d39"},
	Text:       []string{"#1f2933", "#f5f7fa", "#f5f7fa", "#e4e7eb", "#e4e7eb"},
}
