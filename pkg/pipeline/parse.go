package pipeline

import (
	"github.com/matzehuels/mindmap/pkg/outline"
)

// Parse builds the outline tree for opts and applies its expand options.
// Parse never fails; invalid text is rejected earlier by ValidateForParse.
func Parse(opts Options) *outline.Node {
	root := outline.Parse(opts.Outline)
	if opts.Title != "" {
		root.Text = opts.Title
	}
	ApplyExpand(root, opts)
	return root
}

// ApplyExpand sets the expand state of root from opts. The root always
// stays expanded.
func ApplyExpand(root *outline.Node, opts Options) {
	switch {
	case opts.ExpandAll:
		root.ExpandAll()
	case opts.ExpandDepth > 0:
		root.ExpandToDepth(opts.ExpandDepth)
	}
	if len(opts.ExpandState) > 0 {
		root.ApplyPathState(opts.ExpandState)
	}
	root.Expanded = true
}
