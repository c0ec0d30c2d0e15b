package render

import (
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	parseOnce  sync.Once
	parsedFont *opentype.Font
)

// loadFont ставит шрифт нужного размера или basicfont как fallback.
// Go Regular содержит кириллицу, basicfont только ASCII.
// Кешируется только разобранный шрифт: face держит свой буфер глифов
// и не может делиться между горутинами.
func loadFont(dc *gg.Context, size float64) {
	parseOnce.Do(func() {
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFont = f
		}
	})

	if parsedFont == nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}
