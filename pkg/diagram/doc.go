// Package diagram provides the serialization format for laid-out mind maps.
//
// This package defines the canonical wire format for mindmap data, used for
// JSON files, API responses, the render cache and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the pure core and
// everything that stores or transmits its results:
//
//   - [Diagram]: Serialization type (this package)
//   - pkg/outline.Node: Parsed tree
//   - pkg/layout.Positions, layout.Curve, layout.Bounds: Computed geometry
//
// Use [FromLayout] to build a Diagram and [Diagram.Positions],
// [Diagram.Curves] and [Diagram.Tree] to get the core types back.
//
// # Constants
//
// This package is the single source of truth for rendering constants:
//
//	diagram.StyleSimple    // "simple"
//	diagram.FormatSVG      // "svg"
//	diagram.FormatPNG      // "png"
//
// # Format
//
// Nodes are listed in pre-order of the tree, so the first node is always the
// root. Edges carry both their control points and ready-to-use SVG path data:
//
//	{
//	  "title": "Topic",
//	  "nodes": [{"id": "node-0", "label": "Topic", "x": 0, "y": 0, ...}],
//	  "edges": [{"from": "node-0", "to": "node-1", "path": "M 51.5 0 C ..."}]
//	}
//
// Common operations:
//
//	d := diagram.FromLayout(root, positions, opts)  // Core → Diagram
//	data, _ := diagram.MarshalDiagram(d)            // Diagram → []byte
//	d, _ = diagram.ReadDiagramFile("plan.json")     // File → Diagram
package diagram
