package sink

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	canvasOptions
}

// WithPDFStyle sets the style used for PDF output.
func WithPDFStyle(s styles.Style) PDFOption { return func(r *pdfRenderer) { r.style = s } }

// WithPDFPadding sets the page margin in pixels.
func WithPDFPadding(p float64) PDFOption { return func(r *pdfRenderer) { r.padding = p } }

// RenderPDF renders d as a single-page vector PDF sized to the diagram.
func RenderPDF(d diagram.Diagram, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{canvasOptions: defaultCanvasOptions()}
	for _, opt := range opts {
		opt(&r)
	}

	c, err := drawCanvas(d, r.canvasOptions)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, h := c.Size()
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(d.Title, "", "", "", "mindmap")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
