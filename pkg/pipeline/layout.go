package pipeline

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// ComputeLayout estimates node sizes and places the visible nodes of root.
// It is the uncached layout stage; see [Runner.Layout].
func ComputeLayout(root *outline.Node, opts Options) (diagram.Diagram, error) {
	m, err := newMeasurer(opts.Measure)
	if err != nil {
		return diagram.Diagram{}, err
	}
	lo := opts.LayoutOptions()
	pos := layout.Compute(root, measure.EstimateWith(root, m), lo)
	d := diagram.FromLayout(root, pos, lo)
	d.Style = opts.Style
	return d, nil
}

func newMeasurer(mode string) (measure.Measurer, error) {
	if mode != MeasureFont {
		return measure.Heuristic{}, nil
	}
	m, err := measure.NewFaceMeasurer()
	if err != nil {
		return nil, fmt.Errorf("load font metrics: %w", err)
	}
	return m, nil
}
