package app

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"prompter/internal/ui"
)

const editorFontPx = 17

type lineLayout struct {
	line     int
	text     []byte
	docY     int
	viewX    int
	y        int
	baseline int
	height   int
	width    int
}

func (a *App) updateEditor() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	winW, winH := a.currentViewportSize()
	a.editorLayout = ui.ComputeEditorLayout(winW, winH, a.theme, a.scale)
	a.layoutEditorLines()
	s := a.session.Buffer
	content := a.editorLayout.Content

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && s.HasSelection() {
		s.ClearSelection()
	}

	_, wheelY := ebiten.Wheel()
	if shift && wheelY != 0 {
		a.scrollX -= wheelY * 48
	} else if wheelY != 0 {
		a.scrollY -= wheelY * 42
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		a.scrollY += float64(content.H) * 0.8
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		a.scrollY -= float64(content.H) * 0.8
	}
	a.clampScroll()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case a.editorLayout.Start.Contains(x, y):
			a.submit()
			return nil
		case a.editorLayout.Import.Contains(x, y):
			if err := a.importPrompt(); err != nil {
				a.reportError("Import failed", err)
			}
			return nil
		case content.Contains(x, y):
			line, bytePos := a.hitTestPosition(x, y)
			if shift {
				s.EnsureSelectionAnchor()
			} else {
				s.ClearSelection()
				s.EnsureSelectionAnchor()
			}
			s.SetCaret(line, bytePos)
			s.UpdateSelectionFromCaret()
			a.dragSelecting = true
		default:
			s.ClearSelection()
		}
	}
	if a.dragSelecting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		line, bytePos := a.hitTestPosition(x, y)
		s.SetCaret(line, bytePos)
		s.UpdateSelectionFromCaret()
		a.ensureCaretVisible()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.dragSelecting = false
	}

	if ctrl && (inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter)) {
		a.submit()
		return nil
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := a.importPrompt(); err != nil {
			a.reportError("Import failed", err)
		}
		return nil
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.session.Save()
		a.status = "Prompt saved"
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.SelectAll()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) && s.HasSelection() {
		if err := a.clip.WriteText(s.SelectedText()); err != nil {
			a.status = "Copy failed: " + err.Error()
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyX) && s.HasSelection() {
		if err := a.clip.WriteText(s.SelectedText()); err != nil {
			a.status = "Cut failed: " + err.Error()
		} else {
			s.DeleteSelection()
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		paste, err := a.clip.ReadText()
		if err != nil {
			a.status = "Paste failed: " + err.Error()
		} else if paste != "" {
			if err := s.InsertTextAtCaret(paste); err != nil {
				a.status = "Paste failed: " + err.Error()
			}
		}
	}
	if ctrl && repeatingKeyPressed(ebiten.KeyBackspace) {
		s.DeleteWordBackward()
	}
	if ctrl && repeatingKeyPressed(ebiten.KeyDelete) {
		s.DeleteWordForward()
	}

	moveWithSelection := func(move func()) {
		if shift {
			s.EnsureSelectionAnchor()
		} else {
			s.ClearSelection()
		}
		move()
		if shift {
			s.UpdateSelectionFromCaret()
		}
	}

	if repeatingKeyPressed(ebiten.KeyArrowUp) {
		moveWithSelection(func() { s.MoveLine(-1) })
	}
	if repeatingKeyPressed(ebiten.KeyArrowDown) {
		moveWithSelection(func() { s.MoveLine(1) })
	}
	if repeatingKeyPressed(ebiten.KeyArrowLeft) {
		switch {
		case ctrl:
			moveWithSelection(s.MoveCaretWordLeft)
		case alt:
			moveWithSelection(s.MoveCaretToLineStart)
		default:
			moveWithSelection(s.MoveCaretLeft)
		}
	}
	if repeatingKeyPressed(ebiten.KeyArrowRight) {
		switch {
		case ctrl:
			moveWithSelection(s.MoveCaretWordRight)
		case alt:
			moveWithSelection(s.MoveCaretToLineEnd)
		default:
			moveWithSelection(s.MoveCaretRight)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		if ctrl {
			moveWithSelection(s.MoveToStart)
		} else {
			moveWithSelection(s.MoveCaretToLineStart)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		if ctrl {
			moveWithSelection(s.MoveToEnd)
		} else {
			moveWithSelection(s.MoveCaretToLineEnd)
		}
	}

	if ctrl {
		a.clampScroll()
		a.ensureCaretVisible()
		return nil
	}

	if repeatingKeyPressed(ebiten.KeyEnter) || repeatingKeyPressed(ebiten.KeyKPEnter) {
		if err := s.InsertTextAtCaret("\n"); err != nil {
			a.status = "Insert newline failed: " + err.Error()
		}
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		s.Backspace()
	}
	if repeatingKeyPressed(ebiten.KeyDelete) {
		s.DeleteForward()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		_ = s.InsertTextAtCaret("    ")
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || !utf8.ValidRune(r) {
			continue
		}
		_ = s.InsertTextAtCaret(string(r))
	}

	a.layoutEditorLines()
	a.clampScroll()
	a.ensureCaretVisible()
	return nil
}

// repeatingKeyPressed fires on press and then at the usual key-repeat rate.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

func (a *App) editorFace() font.Face {
	return a.fonts.face(editorFontPx*float64(a.scale), false)
}

func (a *App) layoutEditorLines() {
	a.lineLayouts = a.lineLayouts[:0]
	content := a.editorLayout.Content
	if content.W <= 0 || content.H <= 0 {
		return
	}
	face := a.editorFace()
	m := face.Metrics()
	lineH := max(m.Height.Ceil(), 1)
	ascent := m.Ascent.Ceil()

	maxW := 0
	s := a.session.Buffer
	for i, line := range s.Lines {
		docY := i * lineH
		w := measureString(face, string(line))
		maxW = max(maxW, w)
		y := content.Y + docY - int(a.scrollY)
		a.lineLayouts = append(a.lineLayouts, lineLayout{
			line:     i,
			text:     line,
			docY:     docY,
			viewX:    content.X - int(a.scrollX),
			y:        y,
			baseline: y + ascent,
			height:   lineH,
			width:    w,
		})
	}
	a.maxX = math.Max(0, float64(maxW-content.W+16))
	a.maxY = math.Max(0, float64(len(s.Lines)*lineH-content.H))
}

func (a *App) hitTestPosition(x, y int) (int, int) {
	s := a.session.Buffer
	if len(a.lineLayouts) == 0 {
		return s.CurrentLine, s.CaretByte
	}
	first := a.lineLayouts[0]
	if y <= first.y {
		return first.line, a.byteAtX(first, x-first.viewX)
	}
	for _, ll := range a.lineLayouts {
		if y >= ll.y && y < ll.y+ll.height {
			return ll.line, a.byteAtX(ll, x-ll.viewX)
		}
	}
	last := a.lineLayouts[len(a.lineLayouts)-1]
	return last.line, a.byteAtX(last, x-last.viewX)
}

func (a *App) lineAdvance(ll lineLayout, relByte int) int {
	if relByte <= 0 {
		return 0
	}
	if relByte >= len(ll.text) {
		return ll.width
	}
	return measureString(a.editorFace(), string(ll.text[:relByte]))
}

func (a *App) byteAtX(ll lineLayout, relX int) int {
	if relX <= 0 {
		return 0
	}
	face := a.editorFace()
	pos, x := 0, 0
	for pos < len(ll.text) {
		r, size := utf8.DecodeRune(ll.text[pos:])
		rw := measureString(face, string(r))
		if relX < x+rw/2 {
			return pos
		}
		x += rw
		pos += max(size, 1)
	}
	return len(ll.text)
}

func (a *App) clampScroll() {
	a.scrollX = math.Min(math.Max(a.scrollX, 0), a.maxX)
	a.scrollY = math.Min(math.Max(a.scrollY, 0), a.maxY)
}

func (a *App) ensureCaretVisible() {
	s := a.session.Buffer
	content := a.editorLayout.Content
	if s.CurrentLine >= len(a.lineLayouts) || content.H <= 0 {
		return
	}
	ll := a.lineLayouts[s.CurrentLine]
	top := float64(ll.docY)
	bottom := float64(ll.docY + ll.height)
	if top < a.scrollY {
		a.scrollY = top
	}
	if bottom > a.scrollY+float64(content.H) {
		a.scrollY = bottom - float64(content.H)
	}

	caretX := float64(a.lineAdvance(ll, s.CaretByte))
	const padding = 16.0
	if caretX < a.scrollX+padding {
		a.scrollX = math.Max(0, caretX-padding)
	}
	if caretX > a.scrollX+float64(content.W)-padding {
		a.scrollX = caretX - float64(content.W) + padding
	}
	a.clampScroll()
}

func (a *App) drawEditor(screen *ebiten.Image) {
	x, y := ebiten.CursorPosition()
	l := a.editorLayout
	if l.Content.W == 0 {
		w, h := a.currentViewportSize()
		l = ui.ComputeEditorLayout(w, h, a.theme, a.scale)
		a.editorLayout = l
		a.layoutEditorLines()
	}
	ui.DrawEditor(a.frameBuffer, l, a.theme, l.Start.Contains(x, y), l.Import.Contains(x, y), a.scale)
	a.drawSelectionAndCaret()

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	labelFace := a.fonts.face(14*float64(a.scale), true)
	a.drawCenteredLabel(screen, labelFace, "Start", l.Start, a.theme.ButtonText)
	a.drawCenteredLabel(screen, labelFace, "Import…", l.Import, a.theme.ButtonText)
	text.Draw(screen, "Prompt", labelFace, 16, l.TopBarH/2+labelFace.Metrics().Ascent.Ceil()/2, a.theme.ButtonText)

	a.drawEditorText(screen)

	s := a.session.Buffer
	statusFace := a.fonts.face(12*float64(a.scale), false)
	baseY := l.StatusBar.Y + l.StatusBar.H/2 + statusFace.Metrics().Ascent.Ceil()/2
	left := fmt.Sprintf("[ Line %d/%d ] [ Col %d ]", s.CurrentLine+1, s.LineCount(), s.CaretByte+1)
	text.Draw(screen, left, statusFace, 12, baseY, a.theme.MutedText)
	text.Draw(screen, "[ "+a.status+" ]", statusFace, 240, baseY, a.theme.MutedText)
}

func (a *App) drawEditorText(screen *ebiten.Image) {
	content := a.editorLayout.Content
	if content.W <= 0 || content.H <= 0 {
		return
	}
	if a.promptLayer == nil || a.promptLayer.Bounds().Dx() != content.W || a.promptLayer.Bounds().Dy() != content.H {
		a.promptLayer = ebiten.NewImage(content.W, content.H)
	}
	a.promptLayer.Clear()
	face := a.editorFace()
	for _, ll := range a.lineLayouts {
		relY := ll.y - content.Y
		if relY+ll.height < 0 || relY > content.H || len(ll.text) == 0 {
			continue
		}
		text.Draw(a.promptLayer, string(ll.text), face, ll.viewX-content.X, ll.baseline-content.Y, a.theme.EditorText)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(content.X), float64(content.Y))
	screen.DrawImage(a.promptLayer, op)
}

func (a *App) drawSelectionAndCaret() {
	s := a.session.Buffer
	if start, end, ok := s.SelectionRange(); ok {
		for _, ll := range a.lineLayouts {
			if ll.line < start.Line || ll.line > end.Line {
				continue
			}
			from, to := 0, len(ll.text)
			if ll.line == start.Line {
				from = start.Byte
			}
			if ll.line == end.Line {
				to = end.Byte
			}
			x0 := ll.viewX + a.lineAdvance(ll, from)
			x1 := ll.viewX + a.lineAdvance(ll, to)
			if ll.line != end.Line {
				x1 += 6 // show the selected line break
			}
			a.fillRectWithinContent(x0, ll.y+1, x1-x0, ll.height-2, a.theme.Selection)
		}
	}

	if s.HasSelection() || (a.frameTick/30)%2 == 1 || s.CurrentLine >= len(a.lineLayouts) {
		return
	}
	ll := a.lineLayouts[s.CurrentLine]
	x := ll.viewX + a.lineAdvance(ll, s.CaretByte)
	a.fillRectWithinContent(x, ll.y+2, 1, max(2, ll.height-4), a.theme.Caret)
}

func (a *App) fillRectWithinContent(x, y, w, h int, c color.RGBA) {
	content := a.editorLayout.Content
	x0 := max(x, content.X)
	y0 := max(y, content.Y)
	x1 := min(x+w, content.X+content.W)
	y1 := min(y+h, content.Y+content.H)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	a.frameBuffer.FillRect(x0, y0, x1-x0, y1-y0, c)
}

func (a *App) drawCenteredLabel(screen *ebiten.Image, face font.Face, label string, r rect, c color.RGBA) {
	w := measureString(face, label)
	asc := face.Metrics().Ascent.Ceil()
	text.Draw(screen, label, face, r.X+(r.W-w)/2, r.Y+(r.H+asc)/2-1, c)
}
