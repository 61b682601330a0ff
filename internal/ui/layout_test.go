package ui

import (
	"image/color"
	"testing"

	"prompter/internal/render"
)

var (
	speedRange = [2]int{0, 9}
	sizeRange  = [2]int{0, 30}
)

func TestOverlayLayoutHitTest(t *testing.T) {
	l := ComputeOverlayLayout(1280, 540, DefaultTheme(), 1, speedRange, sizeRange)

	if l.Prompt.H+l.Strip.H != 540 || l.Strip.Y != l.Prompt.H {
		t.Fatalf("prompt and strip must tile the window: %+v %+v", l.Prompt, l.Strip)
	}
	cases := []struct {
		name string
		x, y int
		want Target
	}{
		{"prompt", 600, 100, TargetPrompt},
		{"play", l.Play.X + 1, l.Play.CenterY(), TargetPlay},
		{"edit", l.Edit.X + 1, l.Edit.CenterY(), TargetEdit},
		{"close", l.Close.X + l.Close.W - 1, l.Close.CenterY(), TargetClose},
		{"speed", l.Speed.Track.X + 5, l.Strip.Y + 2, TargetSpeed},
		{"size", l.Size.Track.X + l.Size.Track.W/2, l.Size.Track.Y, TargetSize},
		{"grip", l.Grip.X + 1, l.Grip.CenterY(), TargetStrip},
		{"outside", -5, 10, TargetNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.HitTest(tc.x, tc.y); got != tc.want {
				t.Fatalf("HitTest(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestOverlayControlsDoNotOverlap(t *testing.T) {
	for _, w := range []int{480, 800, 1920} {
		l := ComputeOverlayLayout(w, 400, DefaultTheme(), 1, speedRange, sizeRange)
		if l.Play.X+l.Play.W > l.Speed.Track.X {
			t.Fatalf("width %d: play overlaps speed", w)
		}
		if l.Speed.Track.X+l.Speed.Track.W > l.Size.Track.X {
			t.Fatalf("width %d: speed overlaps size", w)
		}
		if l.Edit.X+l.Edit.W > l.Close.X {
			t.Fatalf("width %d: edit overlaps close", w)
		}
	}
}

func TestSliderMapsPointerToLevels(t *testing.T) {
	s := Slider{Track: Rect{X: 100, W: 91}, Min: 0, Max: 9}
	cases := map[int]int{
		0:   0,
		100: 0,
		104: 0,
		105: 1,
		145: 5,
		190: 9,
		500: 9,
	}
	for x, want := range cases {
		if got := s.ValueAt(x); got != want {
			t.Fatalf("ValueAt(%d) = %d, want %d", x, got, want)
		}
	}
	for v := s.Min; v <= s.Max; v++ {
		if got := s.ValueAt(s.KnobX(v)); got != v {
			t.Fatalf("knob for %d maps back to %d", v, got)
		}
	}
}

func TestDrawOverlayUsesTranslucentBackground(t *testing.T) {
	theme := DefaultTheme().WithOpacity(0.5)
	fb := render.NewFrameBuffer(800, 300)
	l := ComputeOverlayLayout(fb.W, fb.H, theme, 1, speedRange, sizeRange)
	DrawOverlay(fb, l, theme, OverlayView{SpeedLevel: 4, SizeLevel: 14}, 1)

	if got := fb.At(10, 10); got.A != 128 {
		t.Fatalf("expected half-transparent prompt background, got %v", got)
	}
	if got := fb.At(l.Play.X+1, l.Play.Y+1); got != theme.Button {
		t.Fatalf("play button not drawn: %v", got)
	}
}

func TestWithOpacityStaysPremultiplied(t *testing.T) {
	theme := DefaultTheme()
	theme.PromptBackground = color.RGBA{}
	got := theme.WithOpacity(1).PromptBackground
	if got.A != 0xFF || got.R > got.A {
		t.Fatalf("unexpected color %v", got)
	}
}

func TestEditorLayoutKeepsPageInWindow(t *testing.T) {
	l := ComputeEditorLayout(960, 640, DefaultTheme(), 1)
	if l.Page.X < 0 || l.Page.X+l.Page.W > 960 {
		t.Fatalf("page outside window: %+v", l.Page)
	}
	if l.StatusBar.Y+l.StatusBar.H != 640 {
		t.Fatalf("status bar not at bottom: %+v", l.StatusBar)
	}
	if l.Import.X+l.Import.W > l.Start.X {
		t.Fatalf("buttons overlap: %+v %+v", l.Import, l.Start)
	}
	if !l.Page.Contains(l.Content.X, l.Content.Y) {
		t.Fatalf("content outside page")
	}
}
