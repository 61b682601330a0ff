package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"prompter/internal/config"
	"prompter/internal/editor"
	"prompter/internal/overlay"
	"prompter/internal/platform"
	"prompter/internal/render"
	"prompter/internal/settings"
	"prompter/internal/ui"
)

type mode int

const (
	modeEditor mode = iota
	modeOverlay
)

type rect = ui.Rect

type Options struct {
	Config *config.Config
	Host   platform.Host
	Store  settings.Store
	// InitialText replaces the saved prompt when non-empty.
	InitialText string
}

// App is the ebiten game. Update and Draw run on the interaction thread and
// are the only code touching the editor, the overlay controller and the
// scroll engine.
type App struct {
	cfg     *config.Config
	host    platform.Host
	store   settings.Store
	session *editor.Session
	overlay *overlay.Controller
	mode    mode

	theme     ui.Theme
	scale     float32
	fonts     fontBank
	clip      systemClipboard
	message   func(title, msg string)
	pickFile  func() (string, error)
	frameTick uint64
	status    string
	focused   bool

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image
	promptLayer *ebiten.Image

	// editor view
	editorLayout  ui.EditorLayout
	lineLayouts   []lineLayout
	scrollX       float64
	scrollY       float64
	maxX          float64
	maxY          float64
	dragSelecting bool

	// overlay view
	overlayLayout ui.OverlayLayout
	sliderDrag    ui.Target
	hover         ui.Target

	screenW int
	screenH int
}

func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:      cfg,
		host:     opts.Host,
		store:    opts.Store,
		theme:    ui.DefaultTheme().WithOpacity(cfg.Overlay.Opacity),
		scale:    1,
		fonts:    newFontBank(),
		message:  showMessage,
		pickFile: pickTextFile,
		status:   "Ready",
		focused:  true,
	}
	a.overlay = overlay.New(opts.Host, opts.Store, cfg.Overlay.HeightFraction)
	a.session = editor.NewSession(opts.Store, opts.Host, a.openOverlay)
	if opts.InitialText != "" {
		a.session.SetText(opts.InitialText)
	}
	return a
}

func (a *App) Run() error {
	if err := a.showEditorWindow(); err != nil {
		return err
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.DefaultTPS)
	err := ebiten.RunGameWithOptions(a, &ebiten.RunGameOptions{ScreenTransparent: true})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) Update() error {
	a.frameTick++

	focused := ebiten.IsFocused()
	if focused != a.focused {
		a.focusChanged(focused)
	}

	if ebiten.IsWindowBeingClosed() {
		a.shutdown()
		return ebiten.Termination
	}

	switch a.mode {
	case modeOverlay:
		return a.updateOverlay()
	default:
		return a.updateEditor()
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil {
		a.frameBuffer = render.NewFrameBuffer(w, h)
	}
	if a.frameBuffer.Resize(w, h) || a.canvas == nil {
		a.canvas = ebiten.NewImage(a.frameBuffer.W, a.frameBuffer.H)
	}

	switch a.mode {
	case modeOverlay:
		a.drawOverlay(screen)
	default:
		a.drawEditor(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.screenW = max(outsideWidth, 1)
	a.screenH = max(outsideHeight, 1)
	return a.screenW, a.screenH
}

func (a *App) currentViewportSize() (int, int) {
	if a.screenW > 0 && a.screenH > 0 {
		return a.screenW, a.screenH
	}
	w, h := ebiten.WindowSize()
	if w <= 0 {
		w = a.cfg.Editor.WidthPx
	}
	if h <= 0 {
		h = a.cfg.Editor.HeightPx
	}
	return w, h
}

// focusChanged saves the prompt when the editor loses focus and re-checks a
// pending overlay permission when it comes back.
func (a *App) focusChanged(focused bool) {
	a.focused = focused
	if a.mode != modeEditor {
		return
	}
	if !focused {
		a.session.Save()
		return
	}
	if err := a.session.FocusRegained(); err != nil {
		a.reportError("Overlay unavailable", err)
	}
}

// openOverlay is handed to the editor session; it runs once the platform
// allows overlays.
func (a *App) openOverlay(text string) error {
	if err := a.overlay.Open(text); err != nil {
		return err
	}
	a.mode = modeOverlay
	a.dragSelecting = false
	a.sliderDrag = ui.TargetNone
	a.status = "Playing from the top"
	return nil
}

func (a *App) submit() {
	err := a.session.Submit()
	switch {
	case err == nil:
	case errors.Is(err, editor.ErrEmptyPrompt):
		a.status = "Please enter some text"
	case errors.Is(err, editor.ErrPermissionPending):
		a.status = "Waiting for overlay permission"
	default:
		a.reportError("Could not start the prompter", err)
	}
}

// returnToEditor closes the overlay and restores the editor window.
func (a *App) returnToEditor() {
	if err := a.overlay.Edit(); err != nil && !errors.Is(err, overlay.ErrNotOpen) {
		slog.Warn("app: closing overlay failed", "error", err)
	}
	a.mode = modeEditor
	a.sliderDrag = ui.TargetNone
	if err := a.showEditorWindow(); err != nil {
		a.reportError("Could not show the editor", err)
		return
	}
	a.status = "Editing"
}

// shutdown persists everything before the process exits.
func (a *App) shutdown() {
	if a.overlay.IsOpen() {
		if err := a.overlay.Close(); err != nil {
			slog.Warn("app: closing overlay failed", "error", err)
		}
	}
	a.session.Save()
	slog.Info("app: shutting down")
}

func (a *App) showEditorWindow() error {
	sw, sh := a.host.ScreenSize()
	w, h := a.cfg.Editor.WidthPx, a.cfg.Editor.HeightPx
	return a.host.ShowWindow(platform.WindowConfig{
		Kind:        platform.WindowEditor,
		Title:       "Prompter",
		X:           max((sw-w)/2, 0),
		Y:           max((sh-h)/2, 0),
		WidthPx:     w,
		HeightPx:    h,
		MinWidthPx:  480,
		MinHeightPx: 320,
	})
}

// reportError logs err, puts it on the status line and shows it in a
// message box.
func (a *App) reportError(title string, err error) {
	slog.Error("app: "+title, "error", err)
	msg := err.Error()
	if errors.Is(err, platform.ErrOverlayDenied) {
		msg = "The prompter needs permission to draw over other applications."
	}
	a.status = title + ": " + msg
	if a.message != nil {
		a.message(title, msg)
	}
}
