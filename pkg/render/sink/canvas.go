package sink

import (
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// Layout units are CSS pixels; canvas works in millimetres.
const (
	pxToMM = 25.4 / 96
	pxToPt = 0.75
)

type canvasOptions struct {
	style   styles.Style
	padding float64
}

func defaultCanvasOptions() canvasOptions {
	return canvasOptions{style: styles.Simple{}, padding: DefaultPadding}
}

// drawCanvas paints d onto a fresh canvas sized to the padded bounds.
// The context uses a top-left origin so layout coordinates map directly.
func drawCanvas(d diagram.Diagram, o canvasOptions) (*canvas.Canvas, error) {
	family, err := fonts.Family()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	vb := d.LayoutBounds().Pad(o.padding)
	c := canvas.New(vb.Width*pxToMM, vb.Height*pxToMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	p := o.style.Palette()
	dr := drawer{ctx: ctx, origin: vb, palette: p, family: family}

	ctx.SetFillColor(canvas.Hex(p.Background))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(vb.Width*pxToMM, vb.Height*pxToMM))

	for _, e := range d.Edges {
		dr.edge(e)
	}
	for _, n := range d.Nodes {
		dr.node(styles.BoxFromNode(n))
	}
	return c, nil
}

type drawer struct {
	ctx     *canvas.Context
	origin  layout.Bounds
	palette styles.Palette
	family  *canvas.FontFamily
}

func (d drawer) x(v float64) float64 { return (v - d.origin.MinX) * pxToMM }
func (d drawer) y(v float64) float64 { return (v - d.origin.MinY) * pxToMM }

func (d drawer) edge(e diagram.Edge) {
	d.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	d.ctx.SetStrokeColor(canvas.Hex(d.palette.Edge))
	d.ctx.SetStrokeWidth(2 * pxToMM)
	p := &canvas.Path{}
	p.MoveTo(d.x(e.Start.X), d.y(e.Start.Y))
	p.CubeTo(d.x(e.Control1.X), d.y(e.Control1.Y), d.x(e.Control2.X), d.y(e.Control2.Y), d.x(e.End.X), d.y(e.End.Y))
	d.ctx.DrawPath(0, 0, p)
}

func (d drawer) node(b styles.Box) {
	d.ctx.SetFillColor(canvas.Hex(d.palette.FillAt(b.Depth)))
	d.ctx.SetStrokeColor(canvas.Hex(d.palette.StrokeAt(b.Depth)))
	d.ctx.SetStrokeWidth(1.5 * pxToMM)
	r := styles.Radius(b) * pxToMM
	d.ctx.DrawPath(d.x(b.X), d.y(b.Y), canvas.RoundedRectangle(b.W*pxToMM, b.H*pxToMM, r))

	face := d.family.Face(styles.FontSize(b.Depth)*pxToPt, canvas.Hex(d.palette.TextAt(b.Depth)), canvas.FontRegular, canvas.FontNormal)
	m := face.Metrics()
	line := canvas.NewTextLine(face, b.Label, canvas.Center)
	d.ctx.DrawText(d.x(b.CX), d.y(b.CY)+(m.Ascent-m.Descent)/2, line)

	if b.Collapsed {
		d.badge(b)
	}
}

func (d drawer) badge(b styles.Box) {
	const radius = 7.0
	bx, by := styles.BadgeCenter(b)
	cx, cy := d.x(bx), d.y(by)
	d.ctx.SetFillColor(canvas.Hex(d.palette.Badge))
	d.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	d.ctx.DrawPath(cx, cy, canvas.Circle(radius*pxToMM))

	arm := radius / 2 * pxToMM
	d.ctx.SetStrokeColor(canvas.Hex(d.palette.Background))
	d.ctx.SetStrokeWidth(1.5 * pxToMM)
	p := &canvas.Path{}
	p.MoveTo(-arm, 0)
	p.LineTo(arm, 0)
	p.MoveTo(0, -arm)
	p.LineTo(0, arm)
	d.ctx.DrawPath(cx, cy, p)
}
