// Package fonts provides the embedded font used for measuring and drawing labels.
//
// The Go Regular typeface ships with golang.org/x/image, so the binary needs no
// font files on disk. SVG output references it by name with CSS fallbacks,
// while PDF/PNG output and precise measurement load it into a canvas family.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists CSS fallbacks, including CJK-capable system fonts
// for glyphs the embedded font lacks.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, 'PingFang SC', 'Noto Sans CJK SC', 'Microsoft YaHei', sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string for
// embedding in an SVG @font-face rule. The result is cached.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var (
	family     *canvas.FontFamily
	familyErr  error
	familyOnce sync.Once
)

// Family returns the canvas font family holding the embedded font. The family
// is loaded once and shared; faces derived from it are safe to use concurrently.
func Family() (*canvas.FontFamily, error) {
	familyOnce.Do(func() {
		f := canvas.NewFontFamily(FontFamily)
		if err := f.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			familyErr = err
			return
		}
		family = f
	})
	return family, familyErr
}
