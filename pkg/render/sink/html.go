package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"

	"github.com/matzehuels/mindmap/pkg/outline"
)

const documentCSS = `
    body { font-family: 'Helvetica Neue', Arial, 'PingFang SC', sans-serif; max-width: 48rem; margin: 2rem auto; color: #1f2933; }
    ul { list-style: disc; padding-left: 1.5rem; }
    li { margin: 0.2rem 0; }`

// RenderHTML renders the outline under root as a standalone HTML document:
// the root becomes the heading and every descendant a nested list item.
// Collapse state is ignored; the document always shows the full tree.
func RenderHTML(root *outline.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("render html: nil outline")
	}

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(outline.Markdown(root)), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(root.Text))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", documentCSS)
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
