// Package measure estimates the on-screen footprint of outline nodes.
//
// Every node gets a width and height before layout begins, collapsed subtrees
// included, so that expanding a node never requires re-measuring its ancestors.
// Sizes depend on the node's tree depth: the root is drawn largest and each
// level below it uses a smaller font, down to a floor at depth four.
//
// # Width
//
// Width is the depth's horizontal padding plus the width of the label,
// clamped to [MinWidth]. The default [Heuristic] measurer charges a fixed
// width per character, with CJK characters charged more than others. The
// [FaceMeasurer] measures non-CJK runs with the embedded font instead.
//
// # Height
//
// The root uses its base height unchanged. Other nodes grow taller once their
// width passes 180 units, gently up to 350 and more steeply beyond, so long
// labels get room for a conceptual line wrap. Height never decreases as width
// grows, for any [Measurer].
package measure
