// Package pkg provides the core libraries for mindmap outline visualization.
//
// # Overview
//
// mindmap turns an indented outline (Markdown headings and bullet lists) into
// a horizontal mind map: the root sits in the middle, first-level branches
// fan out left and right, and every expanded subtree is stacked so sibling
// branches never overlap. The pkg directory is organized into four areas:
//
//  1. Domain - [outline], [measure], [layout]
//  2. Serialization - [diagram]
//  3. Output - [render] and its subpackages
//  4. Infrastructure - [pipeline], [cache], [config], [io], [errors],
//     [observability], [buildinfo], [fonts]
//
// # Architecture
//
// The typical data flow:
//
//	Outline text (Markdown / HTML import)
//	         ↓
//	    [outline] package (parse into a tree, expand/collapse state)
//	         ↓
//	    [measure] package (node sizes from label text and depth)
//	         ↓
//	    [layout] package (positions, edge curves, bounds)
//	         ↓
//	    [diagram] package (serializable positioned map)
//	         ↓
//	    [render] packages (SVG/JSON/PDF/PNG/DOT/HTML)
//
// [pipeline] ties these stages together behind a [cache.Cache], and is what
// the CLI and the HTTP server both call.
//
// # Quick Start
//
//	root := outline.Parse("# Trip\n## Packing\n- Tent\n## Route\n")
//	root.ExpandAll()
//
//	dims := measure.Estimate(root)
//	pos := layout.Compute(root, dims, layout.DefaultOptions())
//
//	d := diagram.FromLayout(root, pos, layout.DefaultOptions())
//	svg := sink.RenderSVG(d)
//
// Or through the pipeline, with caching:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Outline:   text,
//	    ExpandAll: true,
//	    Formats:   []string{"svg", "png"},
//	})
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [outline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/outline
// [measure]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/measure
// [layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/layout
// [diagram]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/cache#Cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/buildinfo
// [fonts]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/fonts
package pkg
