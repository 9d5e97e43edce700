// Package nodelink renders mind maps as traditional node-link diagrams.
//
// # Overview
//
// This package lays the visible part of an outline out with Graphviz instead
// of the built-in balanced layout. Nodes appear as rounded boxes joined by
// arrows from parent to child, ranked left to right by depth.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// Collapsed nodes that hide children are drawn dashed with a "+" suffix.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
