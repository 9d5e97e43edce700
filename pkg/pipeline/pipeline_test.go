package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/outline"
)

const testOutline = `# Launch Plan
## Research
- Users
- Market
## Build
### Backend
### Frontend
## Ship
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"html", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"dark", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Outline: testOutline}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Direction != "both" {
		t.Errorf("Direction = %q, want both", opts.Direction)
	}
	if opts.HorizontalSpacing != 140 || opts.VerticalSpacing != 18 {
		t.Errorf("spacing = %v/%v, want 140/18", opts.HorizontalSpacing, opts.VerticalSpacing)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.Padding != DefaultPadding || opts.Scale != DefaultScale {
		t.Errorf("render defaults = %q/%v/%v", opts.Style, opts.Padding, opts.Scale)
	}
	if opts.Measure != MeasureHeuristic {
		t.Errorf("Measure = %q, want %q", opts.Measure, MeasureHeuristic)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad direction", Options{Direction: "up"}, errors.ErrCodeInvalidDirection},
		{"negative spacing", Options{HorizontalSpacing: -1}, errors.ErrCodeInvalidOption},
		{"bad measure", Options{Measure: "ruler"}, errors.ErrCodeInvalidOption},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"negative expand depth", Options{ExpandDepth: -2}, errors.ErrCodeInvalidOption},
		{"null byte", Options{Outline: "# a\x00"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDirectionIsNormalized(t *testing.T) {
	opts := Options{Direction: " LEFT "}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	if opts.Direction != "left" {
		t.Errorf("Direction = %q, want left", opts.Direction)
	}
}

func TestParse(t *testing.T) {
	t.Run("default expand state", func(t *testing.T) {
		root := Parse(Options{Outline: testOutline})
		if root.Text != "Launch Plan" {
			t.Errorf("root = %q, want Launch Plan", root.Text)
		}
		if got := root.VisibleCount(); got != 4 {
			t.Errorf("VisibleCount = %d, want 4", got)
		}
	})

	t.Run("title override", func(t *testing.T) {
		root := Parse(Options{Outline: testOutline, Title: "Q3"})
		if root.Text != "Q3" {
			t.Errorf("root = %q, want Q3", root.Text)
		}
	})

	t.Run("expand all", func(t *testing.T) {
		root := Parse(Options{Outline: testOutline, ExpandAll: true})
		if got, want := root.VisibleCount(), root.Count(); got != want {
			t.Errorf("VisibleCount = %d, want %d", got, want)
		}
	})

	t.Run("expand state by path", func(t *testing.T) {
		root := Parse(Options{
			Outline:     testOutline,
			ExpandState: outline.State{"Launch Plan/Build": true},
		})
		if got := root.VisibleCount(); got != 6 {
			t.Errorf("VisibleCount = %d, want 6", got)
		}
	})

	t.Run("root stays expanded", func(t *testing.T) {
		root := Parse(Options{
			Outline:     testOutline,
			ExpandState: outline.State{"Launch Plan": false},
		})
		if !root.Expanded {
			t.Error("root should stay expanded")
		}
	})
}

func TestComputeLayout(t *testing.T) {
	opts := Options{Outline: testOutline, ExpandAll: true, Style: "dark"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	root := Parse(opts)

	d, err := ComputeLayout(root, opts)
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if len(d.Nodes) != root.Count() {
		t.Errorf("nodes = %d, want %d", len(d.Nodes), root.Count())
	}
	if len(d.Edges) != root.Count()-1 {
		t.Errorf("edges = %d, want %d", len(d.Edges), root.Count()-1)
	}
	if d.Style != "dark" {
		t.Errorf("Style = %q, want dark", d.Style)
	}
	if d.Title != "Launch Plan" {
		t.Errorf("Title = %q", d.Title)
	}
}

func TestComputeLayoutFontMeasure(t *testing.T) {
	opts := Options{Outline: testOutline, Measure: MeasureFont}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	d, err := ComputeLayout(Parse(opts), opts)
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	for _, n := range d.Nodes {
		if n.Width <= 0 || n.Height <= 0 {
			t.Errorf("node %s has size %vx%v", n.ID, n.Width, n.Height)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Style: "simple", Padding: 40, Scale: 2}
	b := Options{Style: "dark", Padding: 10, Scale: 3}

	if a.ArtifactKeyOpts("json") != b.ArtifactKeyOpts("json") {
		t.Error("json key should not depend on style, padding or scale")
	}
	if a.ArtifactKeyOpts("svg") == b.ArtifactKeyOpts("svg") {
		t.Error("svg key should depend on style")
	}
	c := a
	c.Scale = 4
	if a.ArtifactKeyOpts("pdf") != c.ArtifactKeyOpts("pdf") {
		t.Error("pdf key should not depend on scale")
	}
	if a.ArtifactKeyOpts("png") == c.ArtifactKeyOpts("png") {
		t.Error("png key should depend on scale")
	}
}

func TestRenderArtifacts(t *testing.T) {
	opts := Options{
		Outline:     testOutline,
		Formats:     []string{"svg", "json", "dot", "html", "pdf"},
		Interactive: true,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	d, err := ComputeLayout(Parse(opts), opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderArtifacts(context.Background(), d, opts)
	if err != nil {
		t.Fatalf("RenderArtifacts: %v", err)
	}
	if len(artifacts) != len(opts.Formats) {
		t.Fatalf("got %d artifacts, want %d", len(artifacts), len(opts.Formats))
	}

	checks := map[string]string{
		"svg":  "<svg",
		"json": `"title": "Launch Plan"`,
		"dot":  "digraph",
		"html": "<h1>Launch Plan</h1>",
		"pdf":  "%PDF-",
	}
	for format, want := range checks {
		if !bytes.Contains(artifacts[format], []byte(want)) {
			t.Errorf("%s artifact does not contain %q", format, want)
		}
	}
	if !bytes.Contains(artifacts["svg"], []byte("<script")) {
		t.Error("interactive svg should carry a script")
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	runner := NewRunner(mem, nil, nil)
	defer runner.Close()

	opts := Options{Outline: testOutline, Formats: []string{"svg", "json"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != 8 || first.Stats.VisibleCount != 4 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.TreeHash == "" {
		t.Error("TreeHash should be set")
	}
	if first.Stats.ParseTime <= 0 || first.Stats.LayoutTime <= 0 || first.Stats.RenderTime <= 0 {
		t.Errorf("stage timings should all be recorded: %+v", first.Stats)
	}
	// One layout plus one entry per format.
	if got := mem.Len(); got != 3 {
		t.Errorf("cache entries = %d, want 3", got)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestRunnerExpandStateChangesKey(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)

	collapsed, err := runner.Execute(ctx, Options{Outline: testOutline})
	if err != nil {
		t.Fatal(err)
	}
	expanded, err := runner.Execute(ctx, Options{Outline: testOutline, ExpandAll: true})
	if err != nil {
		t.Fatal(err)
	}
	if collapsed.TreeHash == expanded.TreeHash {
		t.Error("expand state should change the tree hash")
	}
	if expanded.CacheInfo.LayoutHit {
		t.Error("expanded tree should not reuse the collapsed layout")
	}
	if len(expanded.Diagram.Nodes) != 8 {
		t.Errorf("expanded nodes = %d, want 8", len(expanded.Diagram.Nodes))
	}
}

func TestRunnerPartialRenderHit(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)

	if _, err := runner.Execute(ctx, Options{Outline: testOutline, Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(ctx, Options{Outline: testOutline, Formats: []string{"svg", "dot"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("render should not count as a hit when one format was missing")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	opts := Options{Outline: testOutline}

	if _, err := runner.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache reads: %+v", res.CacheInfo)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Outline: testOutline, Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("error should be wrapped: %v", err)
	}
}

func TestRunnerRenderFromStoredDiagram(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(ctx, Options{Outline: testOutline, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	d, err := diagram.UnmarshalDiagram(res.Artifacts["json"])
	if err != nil {
		t.Fatalf("UnmarshalDiagram: %v", err)
	}
	out, err := runner.Render(ctx, d, Options{Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out["dot"], []byte("Research")) {
		t.Error("dot from stored diagram should include outline labels")
	}
}
