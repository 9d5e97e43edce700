// Package styles defines the visual appearance of rendered mind maps.
//
// A [Style] writes SVG fragments for node boxes, connectors and labels, and
// exposes its [Palette] so raster and PDF output can reuse the same colors.
// Two styles ship with the package:
//
//   - [Simple]: white canvas, pastel boxes shaded by depth, a pill-shaped root
//   - [Dark]: the same geometry on a dark background
//
// Use [ForName] to look one up from a CLI flag or API field.
package styles
