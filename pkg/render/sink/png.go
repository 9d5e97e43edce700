package sink

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/render/styles"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	canvasOptions
	scale float64
}

// WithPNGStyle sets the style used for PNG output.
func WithPNGStyle(s styles.Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGPadding sets the image margin in pixels.
func WithPNGPadding(p float64) PNGOption { return func(r *pngRenderer) { r.padding = p } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes d. At scale 1 one layout pixel is one image pixel.
func RenderPNG(d diagram.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{canvasOptions: defaultCanvasOptions(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	c, err := drawCanvas(d, r.canvasOptions)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(r.scale/pxToMM), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
