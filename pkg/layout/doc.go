// Package layout positions a parsed outline as a horizontal mind map.
//
// # Overview
//
// [Compute] takes a tree from [outline.Parse], a dimension table from
// [measure.Estimate] and [Options], and returns a [Position] for every node
// reachable from the root through expanded ancestors. Descendants of a
// collapsed node get no position at all. Coordinates are node centers; the
// root always sits at (CenterOffset, 0).
//
// # Directions
//
//   - [DirectionRight]: every branch grows to the right of the root
//   - [DirectionLeft]: every branch grows to the left
//   - [DirectionBoth] (default): the first ceil(n/2) children of the root go
//     left and the rest go right, each half keeping source order
//
// # Branch Placement
//
// Each node reserves a vertical slot, its branch height: the larger of its own
// height (at least 32) and the stacked height of its expanded children. A
// sibling group stacks its slots top to bottom with VerticalSpacing between
// them, centered on the parent's y. The near edges of the group line up on an
// anchor line placed HorizontalSpacing x 0.6 beyond the parent's edge, scaled
// by 0.8 for the root's children and by 1.0 deeper down.
//
// Slots never overlap by construction, so no collision pass runs afterwards.
//
// # Edges and Bounds
//
// [Edges] produces one cubic Bézier per parent/child pair, leaving the
// parent's near edge at its center line and entering the child's near edge.
// [ComputeBounds] reduces a position map to the box that encloses every node.
//
// Everything in this package is a pure function of its inputs. Calling
// [Compute] twice with the same tree, dimensions and options yields identical
// maps, and concurrent calls on different trees share no state.
package layout
