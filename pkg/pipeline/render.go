package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/render/sink"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// RenderArtifacts generates every requested format from d concurrently.
// It is the uncached render stage; see [Runner.Render].
func RenderArtifacts(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, error) {
	style, err := styles.ForName(opts.Style)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, d, format, style, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, d diagram.Diagram, format string, style styles.Style, opts Options) ([]byte, error) {
	switch format {
	case diagram.FormatSVG:
		return sink.RenderSVG(d, svgOptions(style, opts)...), nil
	case diagram.FormatJSON:
		return sink.RenderJSON(d)
	case diagram.FormatPDF:
		return sink.RenderPDF(d, sink.WithPDFStyle(style), sink.WithPDFPadding(opts.Padding))
	case diagram.FormatPNG:
		return sink.RenderPNG(d, sink.WithPNGStyle(style), sink.WithPNGPadding(opts.Padding), sink.WithScale(opts.Scale))
	case diagram.FormatDOT:
		root, err := treeOf(d)
		if err != nil {
			return nil, err
		}
		return []byte(nodelink.ToDOT(root, nodelink.Options{})), nil
	case diagram.FormatHTML:
		root, err := treeOf(d)
		if err != nil {
			return nil, err
		}
		return sink.RenderHTML(root)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func svgOptions(style styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithPadding(opts.Padding)}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}

func treeOf(d diagram.Diagram) (*outline.Node, error) {
	root := d.Tree()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "diagram has no outline")
	}
	return root, nil
}
