package styles

import (
	"bytes"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
)

// Style defines the visual appearance of a mind map.
// Implementations control how boxes, connectors and labels are drawn.
type Style interface {
	// Name returns the style identifier used in flags and serialized diagrams.
	Name() string
	// Palette returns the colors the style draws with.
	Palette() Palette
	// RenderDefs writes SVG <defs> content (filters, markers, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderNode writes the SVG for a single node box.
	RenderNode(buf *bytes.Buffer, b Box)
	// RenderEdge writes the SVG for a parent/child connector.
	RenderEdge(buf *bytes.Buffer, c Connector)
	// RenderText writes the SVG for a node's label.
	RenderText(buf *bytes.Buffer, b Box)
}

// Box contains all data needed to render a single node.
type Box struct {
	ID         string  // Node identifier
	Label      string  // Display text
	X, Y, W, H float64 // Top-left corner and size
	CX, CY     float64 // Center coordinates (for text)
	Depth      int     // Tree depth, 0 for the root
	Side       string  // "left", "right" or "center"
	Collapsed  bool    // Has hidden children
}

// BoxFromNode converts a diagram node into a Box.
func BoxFromNode(n diagram.Node) Box {
	return Box{
		ID:        n.ID,
		Label:     n.Label,
		X:         n.X - n.Width/2,
		Y:         n.Y - n.Height/2,
		W:         n.Width,
		H:         n.Height,
		CX:        n.X,
		CY:        n.Y,
		Depth:     n.Depth,
		Side:      n.Side,
		Collapsed: n.IsCollapsed(),
	}
}

// Connector contains the data for rendering one edge.
type Connector struct {
	FromID, ToID string
	Path         string // SVG path data
	Depth        int    // Depth of the child end
}

// ForName returns the style registered under name. The empty name selects [Simple].
func ForName(name string) (Style, error) {
	switch name {
	case "", diagram.StyleSimple:
		return Simple{}, nil
	case diagram.StyleDark:
		return Dark{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", name)
	}
}
