// Package overlay runs the floating prompter window: it owns the prompt, the
// scroll engine and its ticker, the window geometry and the slider values,
// and persists the display settings when they are committed.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/image/font"

	"prompter/internal/platform"
	"prompter/internal/scroll"
	"prompter/internal/settings"
	"prompter/internal/textlayout"
)

var ErrNotOpen = errors.New("overlay is not open")

// PromptPadding keeps the first line clear of the top edge when scrolling
// starts.
var PromptPadding = textlayout.Padding{Top: 32, Bottom: 16, Left: 16, Right: 16}

const DefaultHeightFraction = 0.5

type Gesture int

const (
	Idle Gesture = iota
	Dragging
	Scrubbing
)

func (g Gesture) String() string {
	switch g {
	case Dragging:
		return "dragging"
	case Scrubbing:
		return "scrubbing"
	}
	return "idle"
}

// Geometry is the overlay window in screen pixels. It is not persisted.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

type layoutKey struct {
	text      string
	width     int
	sizeLevel int
	viewportH int
}

type Controller struct {
	host           platform.Host
	store          settings.Store
	heightFraction float64

	open    bool
	text    string
	display settings.Display
	engine  *scroll.Engine
	ticker  *scroll.Ticker
	geom    Geometry
	screenH int

	gesture  Gesture
	lastY    int
	pendingS bool // speed changed by the user since the last commit
	pendingZ bool // size changed by the user since the last commit

	layout    textlayout.Layout
	layoutFor layoutKey
	hasLayout bool
}

func New(host platform.Host, store settings.Store, heightFraction float64) *Controller {
	if heightFraction <= 0 || heightFraction > 1 {
		heightFraction = DefaultHeightFraction
	}
	return &Controller{host: host, store: store, heightFraction: heightFraction}
}

func (c *Controller) IsOpen() bool              { return c.open }
func (c *Controller) Text() string              { return c.text }
func (c *Controller) Geometry() Geometry        { return c.geom }
func (c *Controller) Gesture() Gesture          { return c.gesture }
func (c *Controller) Display() settings.Display { return c.display }
func (c *Controller) FontSizePx() float64       { return settings.FontSizePx(c.display.SizeLevel) }

// State returns the scroll state, or the zero state while closed.
func (c *Controller) State() scroll.State {
	if !c.open {
		return scroll.State{}
	}
	return c.engine.State()
}

func (c *Controller) MaxScroll() float64 {
	if !c.open {
		return 0
	}
	return c.engine.MaxScroll()
}

func (c *Controller) Playing() bool { return c.open && c.engine.Playing() }

// Open shows text in the overlay. The first call builds the window from the
// saved display settings; later calls only replace the text and rewind.
func (c *Controller) Open(text string) error {
	if c.open {
		c.stopTicker()
		c.text = text
		c.hasLayout = false
		c.engine.Reset()
		c.engine.SetMetrics(scroll.Metrics{})
		slog.Info("overlay: prompt replaced", "bytes", len(text))
		return nil
	}

	display := settings.LoadDisplay(c.store)
	screenW, screenH := c.host.ScreenSize()
	geom := Geometry{X: 0, Y: 0, Width: screenW, Height: int(float64(screenH) * c.heightFraction)}
	err := c.host.ShowWindow(platform.WindowConfig{
		Kind:     platform.WindowOverlay,
		Title:    "Prompter",
		X:        geom.X,
		Y:        geom.Y,
		WidthPx:  geom.Width,
		HeightPx: geom.Height,
	})
	if err != nil {
		slog.Error("overlay: failed to show window", "error", err)
		return fmt.Errorf("show overlay window: %w", err)
	}

	c.display = display
	c.engine = scroll.NewEngine(display.SpeedLevel)
	c.ticker = scroll.NewTicker(c.engine.Delay())
	c.geom = geom
	c.screenH = screenH
	c.text = text
	c.gesture = Idle
	c.pendingS, c.pendingZ = false, false
	c.hasLayout = false
	c.open = true
	slog.Info("overlay: opened", "height", geom.Height, "speed", display.SpeedLevel, "size", display.SizeLevel)
	return nil
}

// Close stops playback, saves the display settings and forgets the window.
func (c *Controller) Close() error {
	if !c.open {
		return ErrNotOpen
	}
	c.stopTicker()
	settings.SaveDisplay(c.store, c.display)
	c.open = false
	c.engine = nil
	c.ticker = nil
	c.gesture = Idle
	c.hasLayout = false
	slog.Info("overlay: closed")
	return nil
}

// Edit closes the overlay so the caller can return to the editor.
func (c *Controller) Edit() error {
	if err := c.Close(); err != nil {
		return err
	}
	slog.Debug("overlay: returning to editor")
	return nil
}

// TogglePlay flips playback and returns the new playing state. Playing is
// refused at the end of the content and during a prompt drag.
func (c *Controller) TogglePlay() bool {
	if !c.open {
		return false
	}
	if c.engine.Playing() {
		c.engine.Pause()
		c.stopTicker()
		return false
	}
	c.ticker.Drain()
	if !c.engine.Play() {
		return false
	}
	c.ticker.SetDelay(c.engine.Delay())
	c.ticker.Start()
	return true
}

// Rewind jumps back to the top and pauses.
func (c *Controller) Rewind() {
	if !c.open {
		return
	}
	c.stopTicker()
	c.engine.Reset()
}

// Update applies the ticks the ticker produced since the last frame. It
// reports whether the position changed.
func (c *Controller) Update() bool {
	if !c.open {
		return false
	}
	return c.ApplyTicks(c.ticker.Drain())
}

func (c *Controller) ApplyTicks(n int) bool {
	if !c.open || n <= 0 {
		return false
	}
	before := c.engine.Position()
	for i := 0; i < n; i++ {
		if c.engine.Step() {
			slog.Debug("overlay: reached end of prompt", "position", c.engine.Position())
			break
		}
		if !c.engine.Playing() {
			break
		}
	}
	if !c.engine.Playing() {
		c.stopTicker()
	}
	return c.engine.Position() != before
}

// SetSpeedLevel applies a speed slider value. Only user changes are
// committed by CommitSpeed; nothing is written here.
func (c *Controller) SetSpeedLevel(level int, fromUser bool) {
	if !c.open {
		return
	}
	c.display.SpeedLevel = scroll.ClampSpeedLevel(level)
	c.engine.SetSpeedLevel(c.display.SpeedLevel)
	c.ticker.SetDelay(c.engine.Delay())
	if fromUser {
		c.pendingS = true
	}
}

// SetSizeLevel applies a size slider value. The next Relayout recomputes
// the scroll extent for the new font size.
func (c *Controller) SetSizeLevel(level int, fromUser bool) {
	if !c.open {
		return
	}
	c.display.SizeLevel = settings.ClampSizeLevel(level)
	if fromUser {
		c.pendingZ = true
	}
}

// CommitSpeed persists the speed level after the user finished adjusting it.
func (c *Controller) CommitSpeed() {
	if !c.open || !c.pendingS {
		return
	}
	c.store.SetInt(settings.KeySpeedLevel, c.display.SpeedLevel)
	c.pendingS = false
}

func (c *Controller) CommitSize() {
	if !c.open || !c.pendingZ {
		return
	}
	c.store.SetInt(settings.KeySizeLevel, c.display.SizeLevel)
	c.pendingZ = false
}

// Relayout wraps the prompt for face and the prompt viewport and feeds the
// result to the engine. It is cheap when nothing changed.
func (c *Controller) Relayout(face font.Face, width, viewportHeight int) textlayout.Layout {
	if !c.open {
		return textlayout.Layout{}
	}
	key := layoutKey{text: c.text, width: width, sizeLevel: c.display.SizeLevel, viewportH: viewportHeight}
	if c.hasLayout && key == c.layoutFor {
		return c.layout
	}
	c.layout = textlayout.Wrap(face, c.text, width, PromptPadding)
	c.layoutFor = key
	c.hasLayout = true
	c.engine.SetMetrics(c.layout.Metrics(viewportHeight, c.FontSizePx()))
	return c.layout
}

// SetMetrics feeds layout metrics directly, bypassing Relayout.
func (c *Controller) SetMetrics(m scroll.Metrics) {
	if !c.open {
		return
	}
	c.engine.SetMetrics(m)
}

// BeginWindowDrag starts moving the window with the pointer at screen y.
func (c *Controller) BeginWindowDrag(screenY int) {
	if !c.open || c.gesture != Idle {
		return
	}
	c.gesture = Dragging
	c.lastY = screenY
}

// DragWindowTo follows the pointer, keeping the window on screen.
func (c *Controller) DragWindowTo(screenY int) {
	if !c.open || c.gesture != Dragging {
		return
	}
	y := c.geom.Y + screenY - c.lastY
	c.lastY = screenY
	y = max(0, min(y, c.screenH-c.geom.Height))
	if y == c.geom.Y {
		return
	}
	c.geom.Y = y
	c.host.MoveWindow(c.geom.X, c.geom.Y)
}

// BeginScrub hands the scroll position to the pointer. Playback pauses and
// cannot restart until EndScrub.
func (c *Controller) BeginScrub(screenY int) {
	if !c.open || c.gesture != Idle {
		return
	}
	c.stopTicker()
	c.engine.BeginDrag()
	c.gesture = Scrubbing
	c.lastY = screenY
}

func (c *Controller) ScrubTo(screenY int) {
	if !c.open || c.gesture != Scrubbing {
		return
	}
	c.engine.DragBy(float64(screenY - c.lastY))
	c.lastY = screenY
}

// EndGesture finishes a window drag or a scrub.
func (c *Controller) EndGesture() {
	if !c.open {
		return
	}
	if c.gesture == Scrubbing {
		c.engine.EndDrag()
	}
	c.gesture = Idle
}

// ScrollBy moves the prompt for wheel and keyboard input. Positive dy moves
// toward the end.
func (c *Controller) ScrollBy(dy float64) {
	if !c.open {
		return
	}
	c.engine.ScrollTo(c.engine.Position() + dy)
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker.Drain()
	}
}
