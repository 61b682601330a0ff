package scroll

import (
	"testing"
	"time"
)

func longMetrics() Metrics {
	return Metrics{
		ViewportHeight: 400,
		FontSizePx:     20,
		LineCount:      100,
		LineHeight:     24,
		LastLineBottom: 100*24 + 32,
		HasLayout:      true,
	}
}

func TestDelayIsMonotonic(t *testing.T) {
	prev := Delay(MinSpeedLevel)
	for level := MinSpeedLevel + 1; level <= MaxSpeedLevel; level++ {
		d := Delay(level)
		if d > prev {
			t.Fatalf("delay(%d)=%v is slower than delay(%d)=%v", level, d, level-1, prev)
		}
		if d < minDelay {
			t.Fatalf("delay(%d)=%v below floor %v", level, d, minDelay)
		}
		prev = d
	}
	if got := Delay(DefaultSpeedLevel); got != 30*time.Millisecond {
		t.Fatalf("unexpected default delay: %v", got)
	}
	if got := Delay(MaxSpeedLevel); got != minDelay {
		t.Fatalf("unexpected top-speed delay: %v", got)
	}
	if Delay(-5) != Delay(MinSpeedLevel) || Delay(99) != Delay(MaxSpeedLevel) {
		t.Fatalf("out-of-range levels must clamp")
	}
}

func TestMaxScrollUsesLayoutAndPadding(t *testing.T) {
	m := longMetrics()
	want := m.LastLineBottom - m.ViewportHeight + PaddingFactor*m.FontSizePx
	if got := MaxScroll(m); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMaxScrollFallbackWithoutLayout(t *testing.T) {
	m := Metrics{ViewportHeight: 100, LineCount: 10, LineHeight: 20}
	if got := MaxScroll(m); got != 100 {
		t.Fatalf("expected fallback 100, got %v", got)
	}
	m.ViewportHeight = 1000
	if got := MaxScroll(m); got != 0 {
		t.Fatalf("expected fallback clamp to 0, got %v", got)
	}
}

func TestShortPromptReportsPausedImmediately(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	// "Hello\nWorld" in a tall viewport.
	e.SetMetrics(Metrics{ViewportHeight: 800, FontSizePx: 20, LineCount: 2, LineHeight: 24, LastLineBottom: 32 + 48, HasLayout: true})
	if e.MaxScroll() != 0 {
		t.Fatalf("expected zero extent, got %v", e.MaxScroll())
	}
	if e.Play() {
		t.Fatalf("expected play to be refused")
	}
	if e.Step() {
		t.Fatalf("paused engine must ignore ticks")
	}
	if e.Playing() || e.Position() != 0 {
		t.Fatalf("unexpected state: %+v", e.State())
	}
}

func TestPlaybackStopsAtEnd(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	e.SetMetrics(longMetrics())
	if !e.Play() {
		t.Fatalf("expected playback to start")
	}
	last := e.Position()
	ended := false
	for i := 0; i < 100000 && !ended; i++ {
		ended = e.Step()
		pos := e.Position()
		if pos < last {
			t.Fatalf("position went backwards: %v -> %v", last, pos)
		}
		if pos < 0 || pos > e.MaxScroll() {
			t.Fatalf("position %v outside [0, %v]", pos, e.MaxScroll())
		}
		last = pos
	}
	if !ended {
		t.Fatalf("playback never ended")
	}
	if e.Playing() {
		t.Fatalf("expected paused at end")
	}
	if e.Position() != e.MaxScroll() {
		t.Fatalf("expected position at end, got %v of %v", e.Position(), e.MaxScroll())
	}
	e.Step()
	if e.Position() != e.MaxScroll() {
		t.Fatalf("no increment expected after end")
	}
	if e.Play() {
		t.Fatalf("replay at end has nothing to scroll")
	}
}

func TestHigherSpeedReachesEndSooner(t *testing.T) {
	elapsed := func(level int) time.Duration {
		e := NewEngine(level)
		e.SetMetrics(longMetrics())
		e.Play()
		var total time.Duration
		for e.Playing() {
			total += e.Delay()
			e.Step()
		}
		return total
	}
	slow := elapsed(1)
	fast := elapsed(9)
	if fast >= slow {
		t.Fatalf("expected level 9 (%v) to finish before level 1 (%v)", fast, slow)
	}
}

func TestFontChangeReclampsPosition(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	e.SetMetrics(longMetrics())
	e.ScrollTo(e.MaxScroll())
	before := e.Position()

	smaller := longMetrics()
	smaller.FontSizePx = 10
	smaller.LineHeight = 12
	smaller.LastLineBottom = 100*12 + 32
	e.SetMetrics(smaller)

	if e.MaxScroll() >= before {
		t.Fatalf("expected smaller extent, got %v (was %v)", e.MaxScroll(), before)
	}
	if e.Position() != e.MaxScroll() {
		t.Fatalf("expected position clamped to %v, got %v", e.MaxScroll(), e.Position())
	}
}

func TestDragWhileIdleClamps(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	e.SetMetrics(longMetrics())

	e.DragBy(-50)
	if e.Position() != 0 {
		t.Fatalf("drag without BeginDrag must not move, got %v", e.Position())
	}

	e.BeginDrag()
	e.DragBy(-120)
	if e.Position() != 120 {
		t.Fatalf("expected 120 after dragging up, got %v", e.Position())
	}
	e.DragBy(500)
	if e.Position() != 0 {
		t.Fatalf("expected clamp at 0, got %v", e.Position())
	}
	e.DragBy(-1e9)
	if e.Position() != e.MaxScroll() {
		t.Fatalf("expected clamp at max, got %v", e.Position())
	}
	e.EndDrag()
}

func TestDragPausesPlayback(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	e.SetMetrics(longMetrics())
	e.Play()
	e.Step()
	e.BeginDrag()
	if e.Playing() {
		t.Fatalf("drag must pause playback")
	}
	if e.Play() {
		t.Fatalf("play must be refused while dragging")
	}
	pos := e.Position()
	e.Step()
	if e.Position() != pos {
		t.Fatalf("tick during drag moved position")
	}
	e.EndDrag()
	if !e.Play() {
		t.Fatalf("expected play after drag ended")
	}
}

func TestResetRewinds(t *testing.T) {
	e := NewEngine(DefaultSpeedLevel)
	e.SetMetrics(longMetrics())
	e.ScrollTo(300)
	e.Play()
	e.Reset()
	if e.Position() != 0 || e.Playing() {
		t.Fatalf("unexpected state after reset: %+v", e.State())
	}
}
