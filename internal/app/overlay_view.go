package app

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"prompter/internal/scroll"
	"prompter/internal/settings"
	"prompter/internal/ui"
)

var (
	speedRange = [2]int{scroll.MinSpeedLevel, scroll.MaxSpeedLevel}
	sizeRange  = [2]int{settings.MinSizeLevel, settings.MaxSizeLevel}
)

func (a *App) updateOverlay() error {
	c := a.overlay
	if !c.IsOpen() {
		a.returnToEditor()
		return nil
	}
	w, h := a.currentViewportSize()
	a.overlayLayout = ui.ComputeOverlayLayout(w, h, a.theme, a.scale, speedRange, sizeRange)
	l := a.overlayLayout
	a.relayoutPrompt()

	x, y := ebiten.CursorPosition()
	screenY := c.Geometry().Y + y
	a.hover = l.HitTest(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch target := l.HitTest(x, y); target {
		case ui.TargetPlay:
			a.togglePlay()
		case ui.TargetEdit:
			a.returnToEditor()
			return nil
		case ui.TargetClose:
			a.shutdown()
			return ebiten.Termination
		case ui.TargetSpeed:
			a.sliderDrag = target
			c.SetSpeedLevel(l.Speed.ValueAt(x), true)
		case ui.TargetSize:
			a.sliderDrag = target
			c.SetSizeLevel(l.Size.ValueAt(x), true)
		case ui.TargetStrip:
			c.BeginWindowDrag(screenY)
		case ui.TargetPrompt:
			c.BeginScrub(screenY)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		switch a.sliderDrag {
		case ui.TargetSpeed:
			c.SetSpeedLevel(l.Speed.ValueAt(x), true)
		case ui.TargetSize:
			c.SetSizeLevel(l.Size.ValueAt(x), true)
		}
		c.DragWindowTo(screenY)
		c.ScrubTo(screenY)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		switch a.sliderDrag {
		case ui.TargetSpeed:
			c.CommitSpeed()
			a.status = fmt.Sprintf("Speed %d", c.Display().SpeedLevel+1)
		case ui.TargetSize:
			c.CommitSize()
			a.status = fmt.Sprintf("Text %.0fpx", c.FontSizePx())
		}
		a.sliderDrag = ui.TargetNone
		c.EndGesture()
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		c.ScrollBy(-wheelY * 42)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.togglePlay()
	}
	if repeatingKeyPressed(ebiten.KeyArrowUp) {
		c.SetSpeedLevel(c.Display().SpeedLevel+1, true)
		c.CommitSpeed()
	}
	if repeatingKeyPressed(ebiten.KeyArrowDown) {
		c.SetSpeedLevel(c.Display().SpeedLevel-1, true)
		c.CommitSpeed()
	}
	if repeatingKeyPressed(ebiten.KeyEqual) || repeatingKeyPressed(ebiten.KeyKPAdd) {
		c.SetSizeLevel(c.Display().SizeLevel+1, true)
		c.CommitSize()
	}
	if repeatingKeyPressed(ebiten.KeyMinus) || repeatingKeyPressed(ebiten.KeyKPSubtract) {
		c.SetSizeLevel(c.Display().SizeLevel-1, true)
		c.CommitSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		c.Rewind()
		a.status = "Back to the top"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.returnToEditor()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.shutdown()
		return ebiten.Termination
	}

	a.relayoutPrompt()
	wasPlaying := c.Playing()
	c.Update()
	if wasPlaying && !c.Playing() {
		a.status = "End of prompt"
	}
	return nil
}

func (a *App) togglePlay() {
	if a.overlay.TogglePlay() {
		a.status = "Playing"
		return
	}
	if a.overlay.State().Position >= a.overlay.MaxScroll() {
		a.status = "End of prompt"
		return
	}
	a.status = "Paused"
}

// relayoutPrompt keeps the engine's extent in step with the font size and
// the prompt area.
func (a *App) relayoutPrompt() {
	p := a.overlayLayout.Prompt
	if p.W <= 0 || p.H <= 0 {
		return
	}
	face := a.fonts.face(a.overlay.FontSizePx()*float64(a.scale), false)
	a.overlay.Relayout(face, p.W, p.H)
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	c := a.overlay
	if !c.IsOpen() {
		screen.Clear()
		return
	}
	l := a.overlayLayout
	if l.Prompt.W == 0 {
		w, h := a.currentViewportSize()
		l = ui.ComputeOverlayLayout(w, h, a.theme, a.scale, speedRange, sizeRange)
		a.overlayLayout = l
	}
	d := c.Display()
	ui.DrawOverlay(a.frameBuffer, l, a.theme, ui.OverlayView{SpeedLevel: d.SpeedLevel, SizeLevel: d.SizeLevel, Hover: a.hover}, a.scale)
	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.Clear()
	screen.DrawImage(a.canvas, nil)

	a.drawPrompt(screen)

	labelFace := a.fonts.face(14*float64(a.scale), true)
	playLabel := "Play"
	if c.Playing() {
		playLabel = "Pause"
	}
	a.drawCenteredLabel(screen, labelFace, playLabel, l.Play, a.theme.ButtonText)
	a.drawCenteredLabel(screen, labelFace, "Edit", l.Edit, a.theme.ButtonText)
	a.drawCenteredLabel(screen, labelFace, "Close", l.Close, a.theme.ButtonText)

	small := a.fonts.face(12*float64(a.scale), false)
	baseY := l.Strip.CenterY() + small.Metrics().Ascent.Ceil()/2
	labelX := func(s ui.Slider) int { return s.Track.X - int(44*a.scale) }
	text.Draw(screen, fmt.Sprintf("Speed %d", d.SpeedLevel+1), small, labelX(l.Speed), baseY, a.theme.ButtonText)
	text.Draw(screen, fmt.Sprintf("Size %d", d.SizeLevel), small, labelX(l.Size), baseY, a.theme.ButtonText)
}

func (a *App) drawPrompt(screen *ebiten.Image) {
	p := a.overlayLayout.Prompt
	if p.W <= 0 || p.H <= 0 {
		return
	}
	if a.promptLayer == nil || a.promptLayer.Bounds().Dx() != p.W || a.promptLayer.Bounds().Dy() != p.H {
		a.promptLayer = ebiten.NewImage(p.W, p.H)
	}
	a.promptLayer.Clear()

	face := a.fonts.face(a.overlay.FontSizePx()*float64(a.scale), false)
	layout := a.overlay.Relayout(face, p.W, p.H)
	offset := int(math.Round(a.overlay.State().Position))
	first, last := layout.Visible(offset, p.H)
	for _, ln := range layout.Lines[first:last] {
		if ln.Text == "" {
			continue
		}
		text.Draw(a.promptLayer, ln.Text, face, layout.Padding.Left, ln.Baseline-offset, a.theme.PromptText)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	screen.DrawImage(a.promptLayer, op)
}
