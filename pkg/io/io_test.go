package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/outline"
)

func TestImportHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "headings",
			in:   "<h1>Plan</h1><p>ignored</p><h2>Research</h2><h3>Users</h3>",
			want: "# Plan\n## Research\n### Users\n",
		},
		{
			name: "nested lists",
			in:   "<h1>Plan</h1><ul><li>Build<ul><li>API</li><li>UI</li></ul></li><li>Ship</li></ul>",
			want: "# Plan\n- Build\n  - API\n  - UI\n- Ship\n",
		},
		{
			name: "inline markup and whitespace",
			in:   "<h1>  Big   <em>idea</em> </h1><ol><li><a href=\"#\">Step</a>\n one</li></ol>",
			want: "# Big idea\n- Step one\n",
		},
		{
			name: "scripts dropped",
			in:   "<head><title>T</title></head><body><script>var x</script><h1>A</h1></body>",
			want: "# A\n",
		},
		{
			name: "empty items skipped",
			in:   "<h1>A</h1><ul><li></li><li>B</li></ul>",
			want: "# A\n- B\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportHTML(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ImportHTML =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestImportHTMLParses(t *testing.T) {
	text, err := ImportHTML(strings.NewReader("<h1>Plan</h1><ul><li>Build<ul><li>API</li></ul></li></ul>"))
	if err != nil {
		t.Fatal(err)
	}
	root := outline.Parse(text)
	if root.Text != "Plan" || root.Count() != 3 || root.MaxDepth() != 2 {
		t.Errorf("parsed %q with %d nodes, depth %d", root.Text, root.Count(), root.MaxDepth())
	}
}

func TestImportOutline(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "plan.md")
	htm := filepath.Join(dir, "plan.HTML")
	bin := filepath.Join(dir, "blob.md")
	if err := os.WriteFile(md, []byte("# Plan\n- A\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(htm, []byte("<h1>Plan</h1><ul><li>A</li></ul>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bin, []byte("# a\x00b"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		want     string
		wantCode errors.Code
	}{
		{"markdown", md, "# Plan\n- A\n", ""},
		{"html", htm, "# Plan\n- A\n", ""},
		{"missing", filepath.Join(dir, "nope.md"), "", errors.ErrCodeFileNotFound},
		{"binary", bin, "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportOutline(tt.path)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ImportOutline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadOutlineTooLarge(t *testing.T) {
	big := strings.Repeat("x", errors.MaxOutlineBytes+10)
	if _, err := ReadOutline(strings.NewReader(big)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "map.svg")
	if err := WriteFile(path, []byte("<svg/>")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read back %q, %v", data, err)
	}
}

func TestExportMarkdown(t *testing.T) {
	root := outline.Parse("# Plan\n## A\n### A1")
	path := filepath.Join(t.TempDir(), "plan.md")
	if err := ExportMarkdown(root, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# Plan\n- A\n  - A1\n" {
		t.Errorf("exported %q", data)
	}
}
