// Package sink renders laid-out mind maps into output formats.
//
// Every renderer consumes a [diagram.Diagram], so artifacts can be produced
// from a fresh layout or from a diagram read back from JSON:
//
//   - [RenderSVG]: hand-written SVG with optional hover highlighting and an
//     embedded font
//   - [RenderJSON]: the diagram wire format
//   - [RenderPDF], [RenderPNG]: vector and raster output drawn with
//     tdewolff/canvas, no external tools required
//   - [RenderHTML]: the outline as a nested HTML document via goldmark
//
// Collapsed nodes that hide children carry a "+" badge on their outer edge.
package sink
