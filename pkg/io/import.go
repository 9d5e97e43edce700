package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Stdin is the path that makes [ImportOutline] read standard input.
const Stdin = "-"

// ReadOutline reads outline text from r and validates it.
// ReadOutline does not close r.
func ReadOutline(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxOutlineBytes+1))
	if err != nil {
		return "", fmt.Errorf("read outline: %w", err)
	}
	text := string(data)
	if err := errors.ValidateOutline(text); err != nil {
		return "", err
	}
	return text, nil
}

// ImportOutline reads outline text from path. HTML files are converted
// with [ImportHTML]; "-" reads os.Stdin.
func ImportOutline(path string) (string, error) {
	if path == Stdin {
		return ReadOutline(os.Stdin)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "outline %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := ImportHTML(io.LimitReader(f, errors.MaxOutlineBytes+1))
		if err != nil {
			return "", err
		}
		return text, errors.ValidateOutline(text)
	default:
		return ReadOutline(f)
	}
}

// ImportHTML converts an HTML document into outline text.
func ImportHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html")
	}

	var c htmlConverter
	c.walk(doc)
	return c.buf.String(), nil
}

type htmlConverter struct {
	buf       bytes.Buffer
	listDepth int
}

func (c *htmlConverter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Template:
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			if text := textContent(n, false); text != "" {
				level := int(n.Data[1] - '0')
				fmt.Fprintf(&c.buf, "%s %s\n", strings.Repeat("#", level), text)
			}
			return
		case atom.Ul, atom.Ol:
			c.listDepth++
			defer func() { c.listDepth-- }()
		case atom.Li:
			c.item(n)
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

// item writes a list entry, then descends into lists nested inside it.
func (c *htmlConverter) item(li *html.Node) {
	depth := max(c.listDepth, 1)
	if text := textContent(li, true); text != "" {
		fmt.Fprintf(&c.buf, "%s- %s\n", strings.Repeat("  ", depth-1), text)
	}
	for child := li.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && (child.DataAtom == atom.Ul || child.DataAtom == atom.Ol) {
			c.walk(child)
		}
	}
}

// textContent collects the whitespace-normalized text under n. With
// skipLists set, nested ul/ol subtrees are left out.
func textContent(n *html.Node, skipLists bool) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if skipLists && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol) {
				return
			}
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collect(child)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
