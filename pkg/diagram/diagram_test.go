package diagram

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/measure"
	"github.com/matzehuels/mindmap/pkg/outline"
)

const sample = "# Topic\n## A\n### A1\n### A2\n## B\n- B1\n## C"

func build(t *testing.T, expandAll bool) (*outline.Node, layout.Positions, Diagram) {
	t.Helper()
	root := outline.Parse(sample)
	if expandAll {
		root.ExpandAll()
	}
	opts := layout.DefaultOptions()
	pos := layout.Compute(root, measure.Estimate(root), opts)
	return root, pos, FromLayout(root, pos, opts)
}

func TestFromLayout(t *testing.T) {
	tests := []struct {
		name      string
		expandAll bool
		wantNodes int
	}{
		{"Collapsed", false, 4},
		{"Expanded", true, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, d := build(t, tt.expandAll)

			if d.Title != "Topic" {
				t.Errorf("Title = %q, want Topic", d.Title)
			}
			if len(d.Nodes) != tt.wantNodes {
				t.Fatalf("len(Nodes) = %d, want %d", len(d.Nodes), tt.wantNodes)
			}
			if len(d.Edges) != tt.wantNodes-1 {
				t.Errorf("len(Edges) = %d, want %d", len(d.Edges), tt.wantNodes-1)
			}
			if !d.Nodes[0].IsRoot() || d.Nodes[0].Label != "Topic" {
				t.Errorf("first node = %+v, want root", d.Nodes[0])
			}
			if d.Outline == nil || len(d.Outline.Children) != len(root.Children) {
				t.Errorf("Outline not carried over")
			}
			if d.Options.Direction != "both" || d.Options.HorizontalSpacing != 140 {
				t.Errorf("Options = %+v", d.Options)
			}
			if d.Bounds.Width <= 0 || d.Bounds.Height <= 0 {
				t.Errorf("Bounds = %+v", d.Bounds)
			}
			for _, e := range d.Edges {
				if !strings.HasPrefix(e.Path, "M ") {
					t.Errorf("edge path %q", e.Path)
				}
			}
		})
	}
}

func TestFromLayoutCollapsedFlags(t *testing.T) {
	_, _, d := build(t, false)
	a := d.Nodes[1]
	if a.Label != "A" || !a.IsCollapsed() {
		t.Errorf("A = %+v, want collapsed with children", a)
	}
	c := d.Nodes[3]
	if c.Label != "C" || c.IsCollapsed() {
		t.Errorf("C = %+v, want leaf", c)
	}
}

func TestDiagramRebuildsCoreTypes(t *testing.T) {
	root, pos, d := build(t, true)

	if got := d.Positions(); !reflect.DeepEqual(got, pos) {
		t.Errorf("Positions() differs from computed positions")
	}
	if got, want := d.Curves(), layout.Edges(root, pos); !reflect.DeepEqual(got, want) {
		t.Errorf("Curves() differs from computed edges")
	}
	if got, want := d.LayoutBounds(), layout.ComputeBounds(pos); got != want {
		t.Errorf("LayoutBounds() = %+v, want %+v", got, want)
	}
	tree := d.Tree()
	if tree.Count() != root.Count() || tree.Children[0].Children[1].Text != "A2" {
		t.Errorf("Tree() = %s", tree)
	}
	if got := d.LayoutOptions(); got != layout.DefaultOptions() {
		t.Errorf("LayoutOptions() = %+v", got)
	}
}

func TestDiagramFileRoundTrip(t *testing.T) {
	_, pos, d := build(t, true)
	d.Style = StyleSimple
	path := filepath.Join(t.TempDir(), "plan.json")

	if err := WriteDiagramFile(d, path); err != nil {
		t.Fatalf("WriteDiagramFile() error = %v", err)
	}
	got, err := ReadDiagramFile(path)
	if err != nil {
		t.Fatalf("ReadDiagramFile() error = %v", err)
	}
	if !reflect.DeepEqual(got.Positions(), pos) {
		t.Error("positions changed across the file round trip")
	}
	if got.Style != StyleSimple || got.Title != d.Title {
		t.Errorf("metadata lost: %+v", got)
	}

	var buf bytes.Buffer
	if err := WriteDiagram(got, &buf); err != nil {
		t.Fatalf("WriteDiagram() error = %v", err)
	}
	again, err := ReadDiagram(&buf)
	if err != nil {
		t.Fatalf("ReadDiagram() error = %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Error("stream round trip changed the diagram")
	}
}

func TestUnmarshalDiagramValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"Malformed", `{`, "unmarshal"},
		{"NoNodes", `{"nodes":[]}`, "must contain nodes"},
		{"TwoRoots", `{"nodes":[{"id":"a"},{"id":"b"}]}`, "exactly one root"},
		{"Duplicate", `{"nodes":[{"id":"a"},{"id":"a","parent_id":"a"}]}`, "duplicate"},
		{"UnknownParent", `{"nodes":[{"id":"a"},{"id":"b","parent_id":"x"}]}`, "unknown parent"},
		{"UnknownEdge", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"z"}]}`, "unknown node"},
		{"Valid", `{"nodes":[{"id":"a"},{"id":"b","parent_id":"a"}],"edges":[{"from":"a","to":"b"}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDiagram([]byte(tt.json))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("UnmarshalDiagram() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("UnmarshalDiagram() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatsAndStyles(t *testing.T) {
	for _, f := range Formats {
		if !IsValidFormat(f) {
			t.Errorf("IsValidFormat(%q) = false", f)
		}
		if f != FormatJSON && ContentType(f) == "application/json" {
			t.Errorf("ContentType(%q) = json", f)
		}
	}
	if IsValidFormat("gif") || IsValidStyle("handdrawn") {
		t.Error("unsupported values accepted")
	}
	if ContentType(FormatSVG) != "image/svg+xml" {
		t.Errorf("ContentType(svg) = %q", ContentType(FormatSVG))
	}
}
