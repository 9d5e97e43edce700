package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/mindmap/pkg/outline"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is a cubic Bézier connector from a parent to one of its children.
type Curve struct {
	FromID   string `json:"from"`
	ToID     string `json:"to"`
	Start    Point  `json:"start"`
	Control1 Point  `json:"control1"`
	Control2 Point  `json:"control2"`
	End      Point  `json:"end"`
	Side     Side   `json:"side"`
}

// EdgePath builds the connector from a parent box to a child box.
//
// The child is on the left when its center lies strictly left of the parent's.
// The curve leaves the parent's near edge at the parent's center line and
// enters the child's near edge at the child's center line. Both control
// points sit halfway between the endpoints horizontally, which yields an S
// curve that stays clear of both boxes.
func EdgePath(from, to Position) Curve {
	side := SideRight
	start := Point{X: from.Right(), Y: from.Y}
	end := Point{X: to.Left(), Y: to.Y}
	if to.X < from.X {
		side = SideLeft
		start.X = from.Left()
		end.X = to.Right()
	}

	dx := (end.X - start.X) / 2
	return Curve{
		FromID:   from.ID,
		ToID:     to.ID,
		Start:    start,
		Control1: Point{X: start.X + dx, Y: start.Y},
		Control2: Point{X: end.X - dx, Y: end.Y},
		End:      end,
		Side:     side,
	}
}

// SVG returns the curve as SVG path data, "M x y C x1 y1, x2 y2, x y".
// Coordinates are rounded to two decimals.
func (c Curve) SVG() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, c.Start)
	b.WriteString(" C ")
	writePoint(&b, c.Control1)
	b.WriteString(", ")
	writePoint(&b, c.Control2)
	b.WriteString(", ")
	writePoint(&b, c.End)
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatCoord(p.X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(p.Y))
}

func formatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Edges returns one curve per positioned node that has a positioned parent,
// in pre-order of the tree.
func Edges(root *outline.Node, pos Positions) []Curve {
	var out []Curve
	root.Walk(func(n *outline.Node) bool {
		from, ok := pos[n.ID]
		if !ok {
			return false
		}
		for _, c := range n.Children {
			if to, ok := pos[c.ID]; ok {
				out = append(out, EdgePath(from, to))
			}
		}
		return true
	})
	return out
}
