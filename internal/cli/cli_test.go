package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const sampleOutline = `# Trip
## Packing
- Clothes
- Camera
## Route
### Day 1
### Day 2
## Budget
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty uses config", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ", []string{"svg", "dot"}},
		{"empty items dropped", "svg,,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "notes/plan.md", "notes/plan"},
		{"", "-", "mindmap"},
		{"out/map.svg", "plan.md", "out/map"},
		{"out/map", "plan.md", "out/map"},
		{"out/map.v2", "plan.md", "out/map.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		format  string
		formats int
		want    string
	}{
		{"derived", "", "svg", 1, "plan.svg"},
		{"exact single", "out/x.pdf", "pdf", 1, "out/x.pdf"},
		{"base for multiple", "out/x.svg", "png", 2, "out/x.png"},
		{"no extension", "out/x", "svg", 1, "out/x.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "plan.md", tt.format, tt.formats); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOptsOverrideConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Render.Style = "dark"
	c.Config.Layout.Direction = "left"

	ro := renderOpts{formats: "png", padding: 12}
	ro.direction = "right"
	opts := ro.pipelineOptions(c.baseOptions())

	if opts.Direction != "right" {
		t.Errorf("Direction = %q, want flag value right", opts.Direction)
	}
	if opts.Style != "dark" {
		t.Errorf("Style = %q, want config value dark", opts.Style)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" || opts.Padding != 12 {
		t.Errorf("render flags not applied: %v %v", opts.Formats, opts.Padding)
	}
}

// runCLI executes the root command with a config that keeps the cache in memory.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	t.Setenv(config.EnvCacheBackend, "")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\nbackend = \"memory\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeOutline(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trip.md")
	if err := os.WriteFile(path, []byte(sampleOutline), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	input := writeOutline(t)

	out, err := runCLI(t, "parse", input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "- Trip\n  + Packing\n  + Route\n    Budget\n"
	if out != want {
		t.Errorf("parse output:\n%s\nwant:\n%s", out, want)
	}
}

func TestParseCommandJSON(t *testing.T) {
	input := writeOutline(t)
	md := filepath.Join(t.TempDir(), "normalized.md")

	out, err := runCLI(t, "parse", input, "--json", "--expand-all", "--markdown", md)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var tree diagram.OutlineNode
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tree.Text != "Trip" || len(tree.Children) != 3 {
		t.Errorf("tree = %s with %d children", tree.Text, len(tree.Children))
	}
	if !tree.Children[0].Expanded {
		t.Error("--expand-all should expand children")
	}
	if _, err := os.Stat(md); err != nil {
		t.Errorf("markdown export missing: %v", err)
	}
}

func TestParseCommandMissingFile(t *testing.T) {
	if _, err := runCLI(t, "parse", filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeOutline(t)

	out, err := runCLI(t, "layout", input, "--expand-depth", "2")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"Trip", "Day 1", "bounds"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	input := writeOutline(t)

	out, err := runCLI(t, "layout", input, "--json", "--direction", "left")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	d, err := diagram.UnmarshalDiagram([]byte(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Options.Direction != "left" {
		t.Errorf("direction = %q", d.Options.Direction)
	}
	if len(d.Nodes) != 4 {
		t.Errorf("nodes = %d, want 4", len(d.Nodes))
	}
}

func TestLayoutCommandInvalidDirection(t *testing.T) {
	input := writeOutline(t)
	if _, err := runCLI(t, "layout", input, "--direction", "up"); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeOutline(t)
	base := filepath.Join(t.TempDir(), "out", "trip")

	out, err := runCLI(t, "render", input, "-f", "svg,json,html", "-o", base, "--expand-all")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rendered Trip", base + ".svg", base + ".html", "8 nodes", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q should contain %q", out, want)
		}
	}
	if strings.Contains(out, "visible") {
		t.Errorf("fully expanded map should not report a visible count: %q", out)
	}

	for _, ext := range []string{"svg", "json", "html"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if !bytes.Contains(data, []byte("Day 2")) {
			t.Errorf("%s output should contain every expanded label", ext)
		}
	}
}

func TestRenderCommandSingleExactPath(t *testing.T) {
	input := writeOutline(t)
	out := filepath.Join(t.TempDir(), "map.dot")

	if _, err := runCLI(t, "render", input, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("digraph")) {
		t.Errorf("dot output = %q", data[:min(len(data), 20)])
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeOutline(t)
	if _, err := runCLI(t, "render", input, "-f", "gif"); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("cache path = %q, should contain %q", out, appName)
	}
}

func TestCacheClearRequiresFileBackend(t *testing.T) {
	if _, err := runCLI(t, "cache", "clear"); err == nil {
		t.Fatal("cache clear should fail on the memory backend")
	}
}

func TestNewRunnerUsesConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Backend = "memory"
	c.Config.Cache.Prefix = "test:"

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if got := r.Keyer.DiagramKey("x"); !strings.HasPrefix(got, "test:") {
		t.Errorf("DiagramKey = %q, want test: prefix", got)
	}
	res, err := r.Execute(context.Background(), pipeline.Options{Outline: sampleOutline})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree.Text != "Trip" {
		t.Errorf("root = %q", res.Tree.Text)
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Backend = "redis"
	c.Config.Cache.RedisAddr = ""

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatalf("--no-cache should never fail: %v", err)
	}
	r.Close()
}
