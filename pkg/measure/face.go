package measure

import (
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/mindmap/pkg/fonts"
)

const (
	pxPerMM = 96 / 25.4
	ptPerPx = 0.75
)

// FaceMeasurer measures labels with the embedded font's real glyph advances.
//
// The embedded font has no CJK glyphs, so CJK characters keep the table width
// and only the runs between them are shaped. Heights follow the same rule as
// [Heuristic].
type FaceMeasurer struct {
	mu    sync.Mutex
	faces []*canvas.FontFace
}

// NewFaceMeasurer loads the embedded font and prepares one face per font
// table row.
func NewFaceMeasurer() (*FaceMeasurer, error) {
	family, err := fonts.Family()
	if err != nil {
		return nil, err
	}
	faces := make([]*canvas.FontFace, len(DefaultFontTable))
	for i := range faces {
		faces[i] = family.Face(FontSize(i)*ptPerPx, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	}
	return &FaceMeasurer{faces: faces}, nil
}

// TextWidth implements [Measurer]. The result is in pixels.
func (f *FaceMeasurer) TextWidth(text string, depth int) float64 {
	m := Metrics(depth)
	face := f.face(depth)

	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		w   float64
		run strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			w += face.TextWidth(run.String()) * pxPerMM
			run.Reset()
		}
	}
	for _, r := range text {
		if IsCJK(r) {
			flush()
			w += m.CJKWidth
			continue
		}
		run.WriteRune(r)
	}
	flush()
	return w
}

func (f *FaceMeasurer) face(depth int) *canvas.FontFace {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(f.faces) {
		depth = len(f.faces) - 1
	}
	return f.faces[depth]
}
