package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// DefaultPadding is the margin around the diagram, in pixels.
const DefaultPadding = 40.0

const nodeInteractionCSS = `
    .node { transition: stroke-width 0.2s ease; }
    .node.highlight { stroke-width: 3; }
    .edge.highlight { stroke-width: 3; }
    .badge { cursor: pointer; }`

const nodeInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.id === 'node-' + id));
      document.querySelectorAll('.edge').forEach(e => e.classList.toggle('highlight', e.dataset.from === id || e.dataset.to === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .edge').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.id.replace('node-', '')));
      el.addEventListener('mouseleave', clearHighlight);
    });
    document.querySelectorAll('.badge').forEach(el => {
      el.addEventListener('click', () => document.dispatchEvent(new CustomEvent('mindmap:toggle', { detail: el.dataset.node })));
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	padding     float64
	interactive bool
	embedFont   bool
	background  bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithPadding(p float64) SVGOption    { return func(r *svgRenderer) { r.padding = p } }

// WithInteraction adds hover highlighting and a "mindmap:toggle" event fired
// when a collapsed badge is clicked.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithEmbeddedFont inlines the Go Regular font as a base64 @font-face rule so
// the SVG renders identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithTransparentBackground omits the background rectangle.
func WithTransparentBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// RenderSVG renders d as a standalone SVG document. The viewBox is the
// diagram's bounds grown by the padding, so the root stays at the layout
// origin in user coordinates.
func RenderSVG(d diagram.Diagram, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	vb := d.LayoutBounds().Pad(r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		vb.MinX, vb.MinY, vb.Width, vb.Height, vb.Width, vb.Height)
	if d.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(d.Title))
	}

	buf.WriteString("  <defs>\n")
	if r.embedFont {
		fmt.Fprintf(&buf, "    <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	r.style.RenderDefs(&buf)
	buf.WriteString("  </defs>\n")

	if r.background {
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			vb.MinX, vb.MinY, vb.Width, vb.Height, r.style.Palette().Background)
	}
	renderContent(&buf, r.style, d)
	if r.interactive {
		renderNodeInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, padding: DefaultPadding, background: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// renderContent draws edges first so boxes cover the connector ends.
func renderContent(buf *bytes.Buffer, style styles.Style, d diagram.Diagram) {
	buf.WriteString("  <g class=\"edges\">\n")
	for _, c := range buildConnectors(d) {
		style.RenderEdge(buf, c)
	}
	buf.WriteString("  </g>\n  <g class=\"nodes\">\n")
	boxes := buildBoxes(d)
	for _, b := range boxes {
		style.RenderNode(buf, b)
	}
	for _, b := range boxes {
		style.RenderText(buf, b)
	}
	buf.WriteString("  </g>\n")
}

func renderNodeInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
}

func buildBoxes(d diagram.Diagram) []styles.Box {
	boxes := make([]styles.Box, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		boxes = append(boxes, styles.BoxFromNode(n))
	}
	return boxes
}

func buildConnectors(d diagram.Diagram) []styles.Connector {
	depth := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		depth[n.ID] = n.Depth
	}
	conns := make([]styles.Connector, 0, len(d.Edges))
	for _, e := range d.Edges {
		conns = append(conns, styles.Connector{FromID: e.From, ToID: e.To, Path: e.Path, Depth: depth[e.To]})
	}
	return conns
}
