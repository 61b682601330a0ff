package ui

import "image/color"

type Theme struct {
	// editor window
	AppBackground color.RGBA
	TopBar        color.RGBA
	Page          color.RGBA
	Border        color.RGBA
	StatusBar     color.RGBA
	Accent        color.RGBA
	Shadow        color.RGBA
	Selection     color.RGBA
	Caret         color.RGBA
	EditorText    color.RGBA
	MutedText     color.RGBA

	// overlay window
	PromptBackground color.RGBA
	PromptText       color.RGBA
	Strip            color.RGBA
	Button           color.RGBA
	ButtonHover      color.RGBA
	ButtonText       color.RGBA
	SliderTrack      color.RGBA
	SliderFill       color.RGBA
	Knob             color.RGBA
	Grip             color.RGBA

	TopBarHeightDp int
	StatusHeightDp int
	PageMarginDp   int
	StripHeightDp  int
	ButtonWidthDp  int
	SliderWidthDp  int
	GapDp          int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground: color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		TopBar:        color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Page:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Border:        color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		StatusBar:     color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		Accent:        color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:        color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		Selection:     color.RGBA{0xB9, 0xD3, 0xF7, 0xFF},
		Caret:         color.RGBA{0x20, 0x20, 0x20, 0xFF},
		EditorText:    color.RGBA{0x20, 0x20, 0x20, 0xFF},
		MutedText:     color.RGBA{0x2A, 0x38, 0x50, 0xFF},

		PromptBackground: color.RGBA{0x00, 0x00, 0x00, 0xD9},
		PromptText:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Strip:            color.RGBA{0x1E, 0x22, 0x2A, 0xF2},
		Button:           color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		ButtonHover:      color.RGBA{0x3A, 0x6D, 0xBF, 0xFF},
		ButtonText:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		SliderTrack:      color.RGBA{0x55, 0x5C, 0x68, 0xFF},
		SliderFill:       color.RGBA{0x6F, 0xA8, 0xFF, 0xFF},
		Knob:             color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Grip:             color.RGBA{0x80, 0x88, 0x96, 0xFF},

		TopBarHeightDp: 44,
		StatusHeightDp: 28,
		PageMarginDp:   24,
		StripHeightDp:  52,
		ButtonWidthDp:  72,
		SliderWidthDp:  180,
		GapDp:          10,
	}
}

// WithOpacity returns the theme with the prompt background alpha set to
// opacity in [0, 1]. The color stays premultiplied.
func (t Theme) WithOpacity(opacity float64) Theme {
	opacity = min(max(opacity, 0), 1)
	a := uint8(opacity*255 + 0.5)
	base := DefaultTheme().PromptBackground
	scale := func(v uint8) uint8 {
		if base.A == 0 {
			return 0
		}
		return uint8(uint32(v) * uint32(a) / uint32(base.A))
	}
	t.PromptBackground = color.RGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: a}
	return t
}
