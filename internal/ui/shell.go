package ui

import "prompter/internal/render"

// EditorLayout is the input editor window: a top bar with actions, a centred
// page holding the prompt and a status bar.
type EditorLayout struct {
	TopBarH   int
	StatusH   int
	Start     Rect
	Import    Rect
	Page      Rect
	Content   Rect
	StatusBar Rect
}

func ComputeEditorLayout(w, h int, theme Theme, scale float32) EditorLayout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	topH := dp(theme.TopBarHeightDp)
	statusH := dp(theme.StatusHeightDp)
	margin := dp(theme.PageMarginDp)
	gap := dp(theme.GapDp)
	btnW := dp(theme.ButtonWidthDp + 24)
	btnH := topH - 2*dp(6)

	canvasY := topH
	canvasH := max(h-canvasY-statusH, 0)

	pageW := min(w-margin*2, dp(900))
	pageW = max(pageW, dp(240))
	pageH := max(canvasH-margin*2, dp(120))
	pageX := (w - pageW) / 2
	pageY := canvasY + margin
	pad := dp(18)

	return EditorLayout{
		TopBarH: topH,
		StatusH: statusH,
		Start:   Rect{X: w - gap - btnW, Y: dp(6), W: btnW, H: btnH},
		Import:  Rect{X: w - 2*(gap+btnW), Y: dp(6), W: btnW, H: btnH},
		Page:    Rect{X: pageX, Y: pageY, W: pageW, H: pageH},
		Content: Rect{
			X: pageX + pad,
			Y: pageY + pad,
			W: max(pageW-pad*2, dp(100)),
			H: max(pageH-pad*2, dp(60)),
		},
		StatusBar: Rect{X: 0, Y: h - statusH, W: w, H: statusH},
	}
}

func DrawEditor(fb *render.FrameBuffer, l EditorLayout, theme Theme, hoverStart, hoverImport bool, scale float32) {
	fb.Clear(theme.AppBackground)

	fb.FillRect(0, 0, fb.W, l.TopBarH, theme.TopBar)

	for _, b := range []struct {
		r     Rect
		hover bool
	}{{l.Start, hoverStart}, {l.Import, hoverImport}} {
		c := theme.ButtonHover
		if b.hover {
			c = theme.SliderFill
		}
		fb.FillRect(b.r.X, b.r.Y, b.r.W, b.r.H, c)
	}

	p := l.Page
	fb.FillRect(p.X+2, p.Y+2, p.W, p.H, theme.Shadow)
	fb.FillRect(p.X, p.Y, p.W, p.H, theme.Page)
	fb.StrokeRect(p.X, p.Y, p.W, p.H, 1, theme.Border)
	accentH := max(int(3*scale), 1)
	fb.FillRect(p.X, p.Y, p.W, accentH, theme.Accent)

	s := l.StatusBar
	fb.FillRect(s.X, s.Y, s.W, s.H, theme.StatusBar)
	fb.StrokeRect(s.X, s.Y, s.W, s.H, 1, theme.Border)
}
