package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

const sample = "# Plan\n## Research\n### Users\n### Market\n## Build\n## Ship"

func testDiagram(t *testing.T) diagram.Diagram {
	t.Helper()
	root := outline.Parse(sample)
	opts := layout.DefaultOptions()
	pos := layout.Compute(root, measure.Estimate(root), opts)
	d := diagram.FromLayout(root, pos, opts)
	d.Title = root.Text
	return d
}

func TestRenderSVG(t *testing.T) {
	d := testDiagram(t)
	out := string(RenderSVG(d))

	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if got := strings.Count(out, `class="node `); got != len(d.Nodes) {
		t.Errorf("rendered %d nodes, want %d", got, len(d.Nodes))
	}
	if got := strings.Count(out, `class="edge"`); got != len(d.Edges) {
		t.Errorf("rendered %d edges, want %d", got, len(d.Edges))
	}
	// "Research" is collapsed and hides two children.
	if got := strings.Count(out, `class="badge"`); got != 1 {
		t.Errorf("badges = %d, want 1", got)
	}
	if !strings.Contains(out, "<title>Plan</title>") {
		t.Error("missing title")
	}
	if strings.Contains(out, "<script") {
		t.Error("script present without WithInteraction")
	}
}

func TestRenderSVGViewBox(t *testing.T) {
	d := testDiagram(t)
	b := d.LayoutBounds().Pad(10)

	out := string(RenderSVG(d, WithPadding(10)))
	want := `viewBox="` + strings.Join([]string{f2(b.MinX), f2(b.MinY), f2(b.Width), f2(b.Height)}, " ") + `"`
	if !strings.Contains(out, want) {
		t.Errorf("missing %s in\n%s", want, out[:200])
	}
}

func TestRenderSVGOptions(t *testing.T) {
	d := testDiagram(t)
	out := string(RenderSVG(d,
		WithStyle(styles.Dark{}),
		WithInteraction(),
		WithEmbeddedFont(),
		WithTransparentBackground(),
	))

	for _, want := range []string{"<script", "mindmap:toggle", "@font-face", "data:font/ttf;base64,"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "  <rect x=") {
		t.Error("background drawn despite WithTransparentBackground")
	}
}

func TestRenderJSON(t *testing.T) {
	d := testDiagram(t)
	data, err := RenderJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	back, err := diagram.UnmarshalDiagram(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Nodes) != len(d.Nodes) || back.Title != "Plan" {
		t.Errorf("round trip lost data: %d nodes, title %q", len(back.Nodes), back.Title)
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testDiagram(t), WithPDFStyle(styles.Dark{}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a pdf: %q", data[:min(len(data), 16)])
	}
}

func TestRenderPNG(t *testing.T) {
	d := testDiagram(t)
	tests := []struct {
		name  string
		scale float64
	}{
		{"1x", 1},
		{"2x", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(d, WithScale(tt.scale), WithPNGPadding(20))
			if err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			wantW := (d.Bounds.Width + 40) * tt.scale
			if got := float64(img.Bounds().Dx()); got < wantW-2 || got > wantW+2 {
				t.Errorf("width = %v, want about %v", got, wantW)
			}
		})
	}
}

func TestRenderHTML(t *testing.T) {
	root := outline.Parse(sample)
	data, err := RenderHTML(root)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"<title>Plan</title>", "<h1>Plan</h1>", "<li>Users</li>", "<li>Ship</li>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}

	if _, err := RenderHTML(nil); err == nil {
		t.Error("RenderHTML(nil) should fail")
	}
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
