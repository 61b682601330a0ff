package scroll

import (
	"math"
	"time"
)

const (
	MinSpeedLevel     = 0
	MaxSpeedLevel     = 9
	DefaultSpeedLevel = 4

	StepPx        = 2.0
	PaddingFactor = 5.0

	baseDelay = 150 * time.Millisecond
	minDelay  = 16 * time.Millisecond
)

// Metrics describes the laid-out prompt as seen through the viewport.
type Metrics struct {
	ViewportHeight float64
	FontSizePx     float64
	LineCount      int
	LineHeight     float64
	LastLineBottom float64
	HasLayout      bool
}

// MaxScroll returns the largest legal scroll offset for m. Without a layout
// it falls back to lineCount*lineHeight, which ignores wrapping and padding.
func MaxScroll(m Metrics) float64 {
	if !m.HasLayout {
		return math.Max(0, float64(m.LineCount)*m.LineHeight-m.ViewportHeight)
	}
	if m.LineCount <= 0 {
		return 0
	}
	return math.Max(0, m.LastLineBottom-m.ViewportHeight+PaddingFactor*m.FontSizePx)
}

func ClampSpeedLevel(level int) int {
	if level < MinSpeedLevel {
		return MinSpeedLevel
	}
	if level > MaxSpeedLevel {
		return MaxSpeedLevel
	}
	return level
}

// Delay maps a speed level to the sleep between two ticks.
func Delay(level int) time.Duration {
	factor := int64(ClampSpeedLevel(level) + 1)
	d := time.Duration(int64(baseDelay/time.Millisecond)/factor) * time.Millisecond
	if d < minDelay {
		d = minDelay
	}
	return d
}

type State struct {
	Position   float64
	SpeedLevel int
	Playing    bool
}

// Engine owns the scroll state. It is not safe for concurrent use: every
// writer (ticks, drags, relayouts) runs on the interaction thread.
type Engine struct {
	state     State
	metrics   Metrics
	maxScroll float64
	dragging  bool
}

func NewEngine(speedLevel int) *Engine {
	return &Engine{state: State{SpeedLevel: ClampSpeedLevel(speedLevel)}}
}

func (e *Engine) State() State         { return e.state }
func (e *Engine) Position() float64    { return e.state.Position }
func (e *Engine) Playing() bool        { return e.state.Playing }
func (e *Engine) SpeedLevel() int      { return e.state.SpeedLevel }
func (e *Engine) MaxScroll() float64   { return e.maxScroll }
func (e *Engine) Metrics() Metrics     { return e.metrics }
func (e *Engine) Dragging() bool       { return e.dragging }
func (e *Engine) Delay() time.Duration { return Delay(e.state.SpeedLevel) }

func (e *Engine) AtEnd() bool {
	return e.state.Position >= e.maxScroll
}

// SetMetrics recomputes the max extent and re-clamps the position so a
// smaller font or a taller viewport never strands the view past the end.
func (e *Engine) SetMetrics(m Metrics) {
	e.metrics = m
	e.maxScroll = MaxScroll(m)
	e.setPosition(e.state.Position)
}

func (e *Engine) SetSpeedLevel(level int) {
	e.state.SpeedLevel = ClampSpeedLevel(level)
}

// Reset rewinds to the top and pauses.
func (e *Engine) Reset() {
	e.state.Playing = false
	e.dragging = false
	e.setPosition(0)
}

// Play starts playback. It reports false when nothing is left to scroll or
// a drag is in progress; the state then stays paused.
func (e *Engine) Play() bool {
	if e.dragging || e.AtEnd() {
		e.state.Playing = false
		return false
	}
	e.state.Playing = true
	return true
}

func (e *Engine) Pause() {
	e.state.Playing = false
}

// Toggle flips playback and returns the new playing state.
func (e *Engine) Toggle() bool {
	if e.state.Playing {
		e.Pause()
		return false
	}
	return e.Play()
}

// Step applies one tick. It returns true when this tick reached the end and
// stopped playback. Ticks while paused are ignored.
func (e *Engine) Step() bool {
	if !e.state.Playing {
		return false
	}
	if e.AtEnd() {
		e.setPosition(e.maxScroll)
		e.state.Playing = false
		return true
	}
	e.setPosition(e.state.Position + StepPx)
	if e.AtEnd() {
		e.state.Playing = false
		return true
	}
	return false
}

// BeginDrag takes over the position from playback.
func (e *Engine) BeginDrag() {
	e.dragging = true
	e.state.Playing = false
}

// DragBy moves the content with the pointer: dragging down reveals earlier
// text, so the offset moves opposite to deltaY.
func (e *Engine) DragBy(deltaY float64) {
	if !e.dragging {
		return
	}
	e.setPosition(e.state.Position - deltaY)
}

func (e *Engine) EndDrag() {
	e.dragging = false
}

// ScrollTo is the wheel/keyboard path; it works whether or not a drag is active.
func (e *Engine) ScrollTo(pos float64) {
	e.setPosition(pos)
}

func (e *Engine) setPosition(pos float64) {
	if math.IsNaN(pos) || pos < 0 {
		pos = 0
	}
	if pos > e.maxScroll {
		pos = e.maxScroll
	}
	e.state.Position = pos
}
