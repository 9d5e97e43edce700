package layout

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// MinBranchHeight is the smallest vertical slot a node occupies.
const MinBranchHeight = 32

const (
	anchorFactor    = 0.6
	shallowSpacing  = 0.8
	deepSpacing     = 1.0
	deepSpacingFrom = 2
)

// Side records which side of the root a node was placed on.
type Side string

// Node sides. The root is the only node on SideCenter.
const (
	SideCenter Side = "center"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Position is the placed geometry of one node. X and Y are the box center.
type Position struct {
	ID          string  `json:"id"`
	ParentID    string  `json:"parent_id,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Depth       int     `json:"depth"`
	HasChildren bool    `json:"has_children"`
	Expanded    bool    `json:"expanded"`
	Side        Side    `json:"side"`
}

// Left returns the x coordinate of the box's left edge.
func (p Position) Left() float64 { return p.X - p.Width/2 }

// Right returns the x coordinate of the box's right edge.
func (p Position) Right() float64 { return p.X + p.Width/2 }

// Top returns the y coordinate of the box's top edge.
func (p Position) Top() float64 { return p.Y - p.Height/2 }

// Bottom returns the y coordinate of the box's bottom edge.
func (p Position) Bottom() float64 { return p.Y + p.Height/2 }

// Positions maps node IDs to their placed geometry.
type Positions map[string]Position

// Compute places every visible node of the tree.
//
// dims must hold an entry for every node of the tree; [measure.Estimate]
// guarantees that. A missing entry is a programming error and panics.
// Options are defaulted with [Options.SetDefaults] and never rejected.
func Compute(root *outline.Node, dims measure.Dimensions, opts Options) Positions {
	opts.SetDefaults()
	e := newEngine(dims, opts)

	rd := e.dim(root)
	rp := Position{
		ID:          root.ID,
		X:           opts.CenterOffset,
		Y:           0,
		Width:       rd.Width,
		Height:      rd.Height,
		Depth:       root.Depth,
		HasChildren: root.HasChildren(),
		Expanded:    root.Expanded,
		Side:        SideCenter,
	}
	e.pos[root.ID] = rp

	if !root.Expanded || !root.HasChildren() {
		return e.pos
	}

	switch opts.Direction {
	case DirectionLeft:
		e.place(rp, root.Children, SideLeft)
	case DirectionRight:
		e.place(rp, root.Children, SideRight)
	default:
		split := (len(root.Children) + 1) / 2
		e.place(rp, root.Children[:split], SideLeft)
		if split < len(root.Children) {
			e.place(rp, root.Children[split:], SideRight)
		}
	}
	return e.pos
}

// BranchHeight returns the vertical slot n occupies: the larger of its own
// height (at least [MinBranchHeight]) and the stacked height of its expanded
// children.
func BranchHeight(n *outline.Node, dims measure.Dimensions, opts Options) float64 {
	opts.SetDefaults()
	return newEngine(dims, opts).branch(n)
}

// StackHeight returns the total height of a sibling group: the sum of the
// branch heights plus VerticalSpacing between adjacent slots.
func StackHeight(children []*outline.Node, dims measure.Dimensions, opts Options) float64 {
	opts.SetDefaults()
	return newEngine(dims, opts).stack(children)
}

// Ordered returns the positioned nodes of root in pre-order.
func Ordered(root *outline.Node, pos Positions) []Position {
	out := make([]Position, 0, len(pos))
	root.Walk(func(n *outline.Node) bool {
		p, ok := pos[n.ID]
		if !ok {
			return false
		}
		out = append(out, p)
		return true
	})
	return out
}

// =============================================================================
// Placement
// =============================================================================

type engine struct {
	dims     measure.Dimensions
	opts     Options
	pos      Positions
	branches map[string]float64
}

func newEngine(dims measure.Dimensions, opts Options) *engine {
	return &engine{
		dims:     dims,
		opts:     opts,
		pos:      make(Positions),
		branches: make(map[string]float64),
	}
}

func (e *engine) dim(n *outline.Node) measure.Dimension {
	d, ok := e.dims[n.ID]
	if !ok {
		panic(fmt.Sprintf("layout: no dimension for node %q (%q)", n.ID, n.Text))
	}
	return d
}

func (e *engine) branch(n *outline.Node) float64 {
	if h, ok := e.branches[n.ID]; ok {
		return h
	}
	h := max(e.dim(n).Height, MinBranchHeight)
	if n.Expanded && n.HasChildren() {
		h = max(h, e.stack(n.Children))
	}
	e.branches[n.ID] = h
	return h
}

func (e *engine) stack(children []*outline.Node) float64 {
	if len(children) == 0 {
		return 0
	}
	total := float64(len(children)-1) * e.opts.VerticalSpacing
	for _, c := range children {
		total += e.branch(c)
	}
	return total
}

// place stacks children beside parent on side and recurses into expanded children.
func (e *engine) place(parent Position, children []*outline.Node, side Side) {
	mult := shallowSpacing
	if parent.Depth+1 >= deepSpacingFrom {
		mult = deepSpacing
	}
	gap := e.opts.HorizontalSpacing * mult * anchorFactor

	anchor := parent.Right() + gap
	if side == SideLeft {
		anchor = parent.Left() - gap
	}

	y := parent.Y - e.stack(children)/2
	for _, c := range children {
		bh := e.branch(c)
		d := e.dim(c)

		x := anchor + d.Width/2
		if side == SideLeft {
			x = anchor - d.Width/2
		}
		p := Position{
			ID:          c.ID,
			ParentID:    parent.ID,
			X:           x,
			Y:           y + bh/2,
			Width:       d.Width,
			Height:      d.Height,
			Depth:       c.Depth,
			HasChildren: c.HasChildren(),
			Expanded:    c.Expanded,
			Side:        side,
		}
		e.pos[c.ID] = p

		if c.Expanded && c.HasChildren() {
			e.place(p, c.Children, side)
		}
		y += bh + e.opts.VerticalSpacing
	}
}
