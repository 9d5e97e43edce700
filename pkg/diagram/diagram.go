package diagram

import (
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// FromLayout builds a Diagram from a tree and the positions computed for it.
// Nodes and edges follow the pre-order of the tree, so equal inputs always
// serialize to equal bytes. Style is left empty for the caller to set.
func FromLayout(root *outline.Node, pos layout.Positions, opts layout.Options) Diagram {
	opts.SetDefaults()

	labels := make(map[string]string, len(pos))
	root.Walk(func(n *outline.Node) bool {
		labels[n.ID] = n.Text
		return true
	})

	ordered := layout.Ordered(root, pos)
	nodes := make([]Node, 0, len(ordered))
	for _, p := range ordered {
		nodes = append(nodes, Node{
			ID:          p.ID,
			Label:       labels[p.ID],
			ParentID:    p.ParentID,
			X:           p.X,
			Y:           p.Y,
			Width:       p.Width,
			Height:      p.Height,
			Depth:       p.Depth,
			Side:        string(p.Side),
			HasChildren: p.HasChildren,
			Expanded:    p.Expanded,
		})
	}

	curves := layout.Edges(root, pos)
	edges := make([]Edge, 0, len(curves))
	for _, c := range curves {
		edges = append(edges, Edge{
			From:     c.FromID,
			To:       c.ToID,
			Side:     string(c.Side),
			Path:     c.SVG(),
			Start:    fromPoint(c.Start),
			Control1: fromPoint(c.Control1),
			Control2: fromPoint(c.Control2),
			End:      fromPoint(c.End),
		})
	}

	b := layout.ComputeBounds(pos)
	return Diagram{
		Title: root.Text,
		Options: Options{
			Direction:              string(opts.Direction),
			HorizontalSpacing:      opts.HorizontalSpacing,
			VerticalSpacing:        opts.VerticalSpacing,
			LevelSpacingMultiplier: opts.LevelSpacingMultiplier,
			CenterOffset:           opts.CenterOffset,
		},
		Bounds: Bounds{
			MinX: b.MinX, MaxX: b.MaxX,
			MinY: b.MinY, MaxY: b.MaxY,
			Width: b.Width, Height: b.Height,
		},
		Nodes:   nodes,
		Edges:   edges,
		Outline: FromOutline(root),
	}
}

// FromOutline converts a tree into its serialized form.
func FromOutline(n *outline.Node) *OutlineNode {
	if n == nil {
		return nil
	}
	out := &OutlineNode{
		ID:       n.ID,
		Text:     n.Text,
		Depth:    n.Depth,
		Level:    n.Level,
		Expanded: n.Expanded,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, FromOutline(c))
	}
	return out
}

// ToOutline converts a serialized tree back into outline nodes.
func ToOutline(n *OutlineNode) *outline.Node {
	if n == nil {
		return nil
	}
	out := &outline.Node{
		ID:       n.ID,
		Text:     n.Text,
		Depth:    n.Depth,
		Level:    n.Level,
		Expanded: n.Expanded,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, ToOutline(c))
	}
	return out
}

// Tree returns the diagram's outline as outline nodes, or nil when the
// diagram carries none.
func (d *Diagram) Tree() *outline.Node {
	return ToOutline(d.Outline)
}

// Positions rebuilds the position map the diagram was made from.
func (d *Diagram) Positions() layout.Positions {
	pos := make(layout.Positions, len(d.Nodes))
	for _, n := range d.Nodes {
		pos[n.ID] = layout.Position{
			ID:          n.ID,
			ParentID:    n.ParentID,
			X:           n.X,
			Y:           n.Y,
			Width:       n.Width,
			Height:      n.Height,
			Depth:       n.Depth,
			HasChildren: n.HasChildren,
			Expanded:    n.Expanded,
			Side:        layout.Side(n.Side),
		}
	}
	return pos
}

// Curves returns the edges as layout curves.
func (d *Diagram) Curves() []layout.Curve {
	out := make([]layout.Curve, 0, len(d.Edges))
	for _, e := range d.Edges {
		out = append(out, layout.Curve{
			FromID:   e.From,
			ToID:     e.To,
			Start:    e.Start.layout(),
			Control1: e.Control1.layout(),
			Control2: e.Control2.layout(),
			End:      e.End.layout(),
			Side:     layout.Side(e.Side),
		})
	}
	return out
}

// LayoutBounds returns the bounds as a layout.Bounds.
func (d *Diagram) LayoutBounds() layout.Bounds {
	b := d.Bounds
	return layout.Bounds{
		MinX: b.MinX, MaxX: b.MaxX,
		MinY: b.MinY, MaxY: b.MaxY,
		Width: b.Width, Height: b.Height,
	}
}

// LayoutOptions returns the recorded options as layout.Options.
func (d *Diagram) LayoutOptions() layout.Options {
	o := d.Options
	return layout.Options{
		Direction:              layout.Direction(o.Direction),
		HorizontalSpacing:      o.HorizontalSpacing,
		VerticalSpacing:        o.VerticalSpacing,
		LevelSpacingMultiplier: o.LevelSpacingMultiplier,
		CenterOffset:           o.CenterOffset,
	}
}
