package ui

import "prompter/internal/render"

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Target is what the pointer is over in the overlay window.
type Target int

const (
	TargetNone Target = iota
	TargetPrompt
	TargetStrip
	TargetPlay
	TargetSpeed
	TargetSize
	TargetEdit
	TargetClose
)

func (t Target) String() string {
	switch t {
	case TargetPrompt:
		return "prompt"
	case TargetStrip:
		return "strip"
	case TargetPlay:
		return "play"
	case TargetSpeed:
		return "speed"
	case TargetSize:
		return "size"
	case TargetEdit:
		return "edit"
	case TargetClose:
		return "close"
	}
	return "none"
}

// Slider is a horizontal track over the discrete levels Min..Max.
type Slider struct {
	Track Rect
	Min   int
	Max   int
}

// ValueAt maps a pointer x to the nearest level.
func (s Slider) ValueAt(x int) int {
	if s.Max <= s.Min || s.Track.W <= 1 {
		return s.Min
	}
	x = min(max(x, s.Track.X), s.Track.X+s.Track.W-1)
	span := s.Max - s.Min
	num := (x-s.Track.X)*span*2 + (s.Track.W - 1)
	return s.Min + num/((s.Track.W-1)*2)
}

func (s Slider) KnobX(value int) int {
	if s.Max <= s.Min {
		return s.Track.X
	}
	value = min(max(value, s.Min), s.Max)
	return s.Track.X + (value-s.Min)*(s.Track.W-1)/(s.Max-s.Min)
}

type OverlayLayout struct {
	Prompt Rect
	Strip  Rect
	Grip   Rect
	Play   Rect
	Edit   Rect
	Close  Rect
	Speed  Slider
	Size   Slider
}

// ComputeOverlayLayout puts the prompt above a control strip. Whatever part
// of the strip is not a control is a drag handle for the window.
func ComputeOverlayLayout(w, h int, theme Theme, scale float32, speedRange, sizeRange [2]int) OverlayLayout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	stripH := min(dp(theme.StripHeightDp), h)
	gap := dp(theme.GapDp)
	btnW := dp(theme.ButtonWidthDp)
	btnH := stripH - 2*gap
	if btnH < 1 {
		btnH = stripH
	}
	sliderW := dp(theme.SliderWidthDp)

	strip := Rect{X: 0, Y: h - stripH, W: w, H: stripH}
	l := OverlayLayout{
		Prompt: Rect{X: 0, Y: 0, W: w, H: h - stripH},
		Strip:  strip,
	}
	btnY := strip.Y + (stripH-btnH)/2

	// Edit and Close hug the right edge.
	l.Close = Rect{X: w - gap - btnW, Y: btnY, W: btnW, H: btnH}
	l.Edit = Rect{X: l.Close.X - gap - btnW, Y: btnY, W: btnW, H: btnH}

	x := gap
	l.Grip = Rect{X: x, Y: strip.Y, W: dp(20), H: stripH}
	x += l.Grip.W + gap
	l.Play = Rect{X: x, Y: btnY, W: btnW, H: btnH}
	x += btnW + 2*gap

	// Sliders shrink when the window is narrow.
	room := l.Edit.X - gap - x
	if 2*sliderW+3*gap > room {
		sliderW = max((room-3*gap)/2, dp(40))
	}
	labelW := dp(44)
	trackH := max(dp(6), 1)
	l.Speed = Slider{
		Track: Rect{X: x + labelW, Y: strip.CenterY() - trackH/2, W: sliderW - labelW, H: trackH},
		Min:   speedRange[0], Max: speedRange[1],
	}
	x += sliderW + 2*gap
	l.Size = Slider{
		Track: Rect{X: x + labelW, Y: strip.CenterY() - trackH/2, W: sliderW - labelW, H: trackH},
		Min:   sizeRange[0], Max: sizeRange[1],
	}
	return l
}

// sliderHit widens the track vertically to the strip so it is easy to grab.
func (l OverlayLayout) sliderHit(s Slider) Rect {
	pad := l.Strip.H / 4
	return Rect{X: s.Track.X - pad, Y: l.Strip.Y, W: s.Track.W + 2*pad, H: l.Strip.H}
}

func (l OverlayLayout) HitTest(x, y int) Target {
	switch {
	case l.Prompt.Contains(x, y):
		return TargetPrompt
	case l.Play.Contains(x, y):
		return TargetPlay
	case l.Edit.Contains(x, y):
		return TargetEdit
	case l.Close.Contains(x, y):
		return TargetClose
	case l.sliderHit(l.Speed).Contains(x, y):
		return TargetSpeed
	case l.sliderHit(l.Size).Contains(x, y):
		return TargetSize
	case l.Strip.Contains(x, y):
		return TargetStrip
	}
	return TargetNone
}

type OverlayView struct {
	SpeedLevel int
	SizeLevel  int
	Hover      Target
}

// DrawOverlay paints the overlay chrome. Labels and prompt text are drawn
// by the caller on top.
func DrawOverlay(fb *render.FrameBuffer, l OverlayLayout, theme Theme, v OverlayView, scale float32) {
	fb.FillRect(0, 0, fb.W, fb.H, theme.PromptBackground)
	fb.FillRect(l.Strip.X, l.Strip.Y, l.Strip.W, l.Strip.H, theme.Strip)
	fb.BlendRect(l.Strip.X, l.Strip.Y, l.Strip.W, 1, theme.Grip)

	// grip dots
	for i := 0; i < 3; i++ {
		y := l.Grip.CenterY() + (i-1)*int(6*scale)
		fb.FillCircle(l.Grip.X+l.Grip.W/2, y, max(int(2*scale), 1), theme.Grip)
	}

	for _, b := range []struct {
		r Rect
		t Target
	}{{l.Play, TargetPlay}, {l.Edit, TargetEdit}, {l.Close, TargetClose}} {
		c := theme.Button
		if v.Hover == b.t {
			c = theme.ButtonHover
		}
		fb.FillRect(b.r.X, b.r.Y, b.r.W, b.r.H, c)
	}

	knobR := max(int(8*scale), 2)
	drawSlider(fb, l.Speed, v.SpeedLevel, knobR, theme)
	drawSlider(fb, l.Size, v.SizeLevel, knobR, theme)
}

func drawSlider(fb *render.FrameBuffer, s Slider, value, knobR int, theme Theme) {
	t := s.Track
	fb.FillRect(t.X, t.Y, t.W, t.H, theme.SliderTrack)
	kx := s.KnobX(value)
	fb.FillRect(t.X, t.Y, kx-t.X, t.H, theme.SliderFill)
	fb.FillCircle(kx, t.CenterY(), knobR, theme.Knob)
}
