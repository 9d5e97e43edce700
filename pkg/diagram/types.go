package diagram

import (
	"slices"

	"github.com/matzehuels/mindmap/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatHTML = "html"
)

// Styles lists every supported style.
var Styles = []string{StyleSimple, StyleDark}

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatPDF, FormatPNG, FormatDOT, FormatHTML}

// IsValidStyle reports whether s names a supported style.
func IsValidStyle(s string) bool { return slices.Contains(Styles, s) }

// IsValidFormat reports whether f names a supported output format.
func IsValidFormat(f string) bool { return slices.Contains(Formats, f) }

// ContentType returns the MIME type of a format, or "application/octet-stream".
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Diagram - Laid-Out Mind Map
// =============================================================================

// Diagram is the canonical serialization format for a laid-out mind map.
type Diagram struct {
	Title   string       `json:"title" bson:"title"`
	Style   string       `json:"style,omitempty" bson:"style,omitempty"`
	Options Options      `json:"options" bson:"options"`
	Bounds  Bounds       `json:"bounds" bson:"bounds"`
	Nodes   []Node       `json:"nodes" bson:"nodes"`
	Edges   []Edge       `json:"edges,omitempty" bson:"edges,omitempty"`
	Outline *OutlineNode `json:"outline,omitempty" bson:"outline,omitempty"`
}

// Root returns the root node. Diagrams built by [FromLayout] or accepted by
// [UnmarshalDiagram] always have one.
func (d *Diagram) Root() (Node, bool) {
	for _, n := range d.Nodes {
		if n.ParentID == "" {
			return n, true
		}
	}
	return Node{}, false
}

// Options records the layout options a diagram was computed with.
type Options struct {
	Direction              string  `json:"direction" bson:"direction"`
	HorizontalSpacing      float64 `json:"horizontal_spacing" bson:"horizontal_spacing"`
	VerticalSpacing        float64 `json:"vertical_spacing" bson:"vertical_spacing"`
	LevelSpacingMultiplier float64 `json:"level_spacing_multiplier,omitempty" bson:"level_spacing_multiplier,omitempty"`
	CenterOffset           float64 `json:"center_offset,omitempty" bson:"center_offset,omitempty"`
}

// Bounds is the box enclosing every node.
type Bounds struct {
	MinX   float64 `json:"min_x" bson:"min_x"`
	MaxX   float64 `json:"max_x" bson:"max_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	MaxY   float64 `json:"max_y" bson:"max_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// =============================================================================
// Node, Edge - Positioned Elements
// =============================================================================

// Node is a positioned, labelled box. X and Y are the box center.
type Node struct {
	ID          string  `json:"id" bson:"id"`
	Label       string  `json:"label" bson:"label"`
	ParentID    string  `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Depth       int     `json:"depth" bson:"depth"`
	Side        string  `json:"side" bson:"side"`
	HasChildren bool    `json:"has_children,omitempty" bson:"has_children,omitempty"`
	Expanded    bool    `json:"expanded,omitempty" bson:"expanded,omitempty"`
}

// IsRoot reports whether n is the diagram root.
func (n Node) IsRoot() bool { return n.ParentID == "" }

// IsCollapsed reports whether n hides children.
func (n Node) IsCollapsed() bool { return n.HasChildren && !n.Expanded }

// Edge is a connector from a parent to a child.
type Edge struct {
	From     string `json:"from" bson:"from"`
	To       string `json:"to" bson:"to"`
	Side     string `json:"side" bson:"side"`
	Path     string `json:"path" bson:"path"`
	Start    Point  `json:"start" bson:"start"`
	Control1 Point  `json:"control1" bson:"control1"`
	Control2 Point  `json:"control2" bson:"control2"`
	End      Point  `json:"end" bson:"end"`
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// =============================================================================
// OutlineNode - Serialized Tree
// =============================================================================

// OutlineNode is the serialized outline tree, collapsed nodes included.
type OutlineNode struct {
	ID       string         `json:"id" bson:"id"`
	Text     string         `json:"text" bson:"text"`
	Depth    int            `json:"depth" bson:"depth"`
	Level    int            `json:"level,omitempty" bson:"level,omitempty"`
	Expanded bool           `json:"expanded,omitempty" bson:"expanded,omitempty"`
	Children []*OutlineNode `json:"children,omitempty" bson:"children,omitempty"`
}

func fromPoint(p layout.Point) Point { return Point{X: p.X, Y: p.Y} }

func (p Point) layout() layout.Point { return layout.Point{X: p.X, Y: p.Y} }
