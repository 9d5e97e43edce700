package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// DefaultMaxLabel is the label length used when Options.MaxLabel is zero.
const DefaultMaxLabel = 40

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends the node ID and source level to each label.
	Detailed bool
	// MaxLabel truncates labels to this many characters.
	MaxLabel int
}

// ToDOT converts the visible part of the tree under root to Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(root *outline.Node, opts Options) string {
	if opts.MaxLabel <= 0 {
		opts.MaxLabel = DefaultMaxLabel
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	visible := root.Visible()
	for _, n := range visible {
		attrs := fmtAttrs(n, fmtLabel(n, opts))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range visible {
		if !n.Expanded {
			continue
		}
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *outline.Node, opts Options) string {
	label := styles.TruncateLabel(n.Text, opts.MaxLabel)
	if n.HasChildren() && !n.Expanded {
		label += " +"
	}
	if !opts.Detailed {
		return label
	}
	return fmt.Sprintf("%s\n%s (level %d)", label, n.ID, n.Level)
}

func fmtAttrs(n *outline.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Depth == 0:
		attrs = append(attrs, "fillcolor=\"#3e4c59\"", "fontcolor=white", "fontsize=18")
	case n.HasChildren() && !n.Expanded:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with a unitless
// one so the output scales like the native renderer's.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
