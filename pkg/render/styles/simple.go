package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/fonts"
)

const (
	cornerRadius = 8.0
	edgeWidth    = 2.0
	strokeWidth  = 1.5
	badgeRadius  = 7.0
)

// Simple is a clean style with pastel boxes on white.
type Simple struct{}

func (Simple) Name() string                              { return diagram.StyleSimple }
func (Simple) Palette() Palette                          { return simplePalette }
func (Simple) RenderDefs(buf *bytes.Buffer)              {}
func (Simple) RenderNode(buf *bytes.Buffer, b Box)       { renderNode(buf, simplePalette, b) }
func (Simple) RenderEdge(buf *bytes.Buffer, c Connector) { renderEdge(buf, simplePalette, c) }
func (Simple) RenderText(buf *bytes.Buffer, b Box)       { renderText(buf, simplePalette, b) }

// Dark uses the Simple geometry on a dark background.
type Dark struct{}

func (Dark) Name() string                              { return diagram.StyleDark }
func (Dark) Palette() Palette                          { return darkPalette }
func (Dark) RenderDefs(buf *bytes.Buffer)              {}
func (Dark) RenderNode(buf *bytes.Buffer, b Box)       { renderNode(buf, darkPalette, b) }
func (Dark) RenderEdge(buf *bytes.Buffer, c Connector) { renderEdge(buf, darkPalette, c) }
func (Dark) RenderText(buf *bytes.Buffer, b Box)       { renderText(buf, darkPalette, b) }

// Radius returns the corner radius of a box. The root is drawn as a pill.
func Radius(b Box) float64 {
	if b.Depth == 0 {
		return b.H / 2
	}
	return min(cornerRadius, b.H/2)
}

// BadgeCenter returns where the collapsed-children badge sits: on the box's
// outer edge, away from the parent.
func BadgeCenter(b Box) (float64, float64) {
	if b.Side == "left" {
		return b.X, b.CY
	}
	return b.X + b.W, b.CY
}

func renderNode(buf *bytes.Buffer, p Palette, b Box) {
	r := Radius(b)
	fmt.Fprintf(buf, `    <rect id="node-%s" class="node depth-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		EscapeXML(b.ID), min(b.Depth, 4), b.X, b.Y, b.W, b.H, r, r, p.FillAt(b.Depth), p.StrokeAt(b.Depth), strokeWidth)

	if b.Collapsed {
		bx, by := BadgeCenter(b)
		fmt.Fprintf(buf, `    <g class="badge" data-node="%s"><circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`,
			EscapeXML(b.ID), bx, by, badgeRadius, p.Badge)
		fmt.Fprintf(buf, `<path d="M %.2f %.2f h %.1f M %.2f %.2f v %.1f" stroke="%s" stroke-width="1.5"/></g>`+"\n",
			bx-badgeRadius/2, by, badgeRadius, bx, by-badgeRadius/2, badgeRadius, p.Background)
	}
}

func renderEdge(buf *bytes.Buffer, p Palette, c Connector) {
	fmt.Fprintf(buf, `    <path class="edge" data-from="%s" data-to="%s" d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		EscapeXML(c.FromID), EscapeXML(c.ToID), c.Path, p.Edge, edgeWidth)
}

func renderText(buf *bytes.Buffer, p Palette, b Box) {
	weight := "normal"
	if b.Depth == 0 {
		weight = "bold"
	}
	fmt.Fprintf(buf, `    <text class="label" data-node="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s">%s</text>`+"\n",
		EscapeXML(b.ID), b.CX, b.CY, EscapeXML(fonts.FallbackFontFamily), FontSize(b.Depth), weight, p.TextAt(b.Depth), EscapeXML(b.Label))
}
