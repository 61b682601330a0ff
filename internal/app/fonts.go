package app

import (
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type fontKey struct {
	centiPx int
	bold    bool
}

// fontBank parses the Go fonts once and caches faces per pixel size.
type fontBank struct {
	regular *opentype.Font
	bold    *opentype.Font
	cache   map[fontKey]font.Face
}

func newFontBank() fontBank {
	bank := fontBank{cache: map[fontKey]font.Face{}}
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Warn("app: regular font unavailable, using fallback", "error", err)
		return bank
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		// medium still reads as emphasis on buttons
		bold, err = opentype.Parse(gomedium.TTF)
		if err != nil {
			bold = reg
		}
	}
	bank.regular = reg
	bank.bold = bold
	return bank
}

// face returns a cached face of sizePx pixels. It never returns nil.
func (b *fontBank) face(sizePx float64, bold bool) font.Face {
	key := fontKey{centiPx: int(math.Round(sizePx * 100)), bold: bold}
	if f, ok := b.cache[key]; ok {
		return f
	}
	base := b.regular
	if bold {
		base = b.bold
	}
	if base == nil || sizePx <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func measureString(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	px := (int(font.MeasureString(face, s)) + 32) >> 6
	return max(px, 0)
}
