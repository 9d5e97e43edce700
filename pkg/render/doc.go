// Package render groups the output stages for laid-out mind maps.
//
// # Overview
//
// Rendering consumes a [diagram.Diagram] (or, for node-link output, the
// outline tree) and never changes layout. The subpackages are:
//
//   - [styles]: colors and SVG fragments per visual style (simple, dark)
//   - [sink]: output formats (SVG, JSON, PDF, PNG, HTML)
//   - [nodelink]: Graphviz node-link diagrams as an alternative layout
//
// # Usage
//
//	d := diagram.FromLayout(root, positions, opts)
//	svg := sink.RenderSVG(d, sink.WithStyle(styles.Dark{}))
//	pdf, err := sink.RenderPDF(d)
//	png, err := sink.RenderPNG(d, sink.WithScale(2))
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output is drawn directly with tdewolff/canvas, so no external
// converter is needed.
//
// [diagram.Diagram]: github.com/matzehuels/mindmap/pkg/diagram
// [styles]: github.com/matzehuels/mindmap/pkg/render/styles
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
