package desktop

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sqweek/dialog"

	"prompter/internal/platform"
)

const (
	fallbackScreenW = 1920
	fallbackScreenH = 1080
)

// Backend places the ebiten window. Overlays use ebiten's floating window
// support, which needs X11, XWayland, Windows or macOS.
type Backend struct {
	getenv func(string) string
	notify func(title, msg string)
}

func New() *Backend {
	return &Backend{
		getenv: os.Getenv,
		notify: func(title, msg string) { dialog.Message("%s", msg).Title(title).Info() },
	}
}

func (b *Backend) Name() string { return "desktop/" + runtime.GOOS }

func (b *Backend) ScreenSize() (int, int) {
	if m := ebiten.Monitor(); m != nil {
		if w, h := m.Size(); w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackScreenW, fallbackScreenH
}

func (b *Backend) CanDrawOverlays() bool {
	return floatingSupported(runtime.GOOS, b.getenv)
}

// RequestOverlayPermission cannot grant anything on the desktop; it tells the
// user what kind of session is needed. The caller re-checks on focus.
func (b *Backend) RequestOverlayPermission() error {
	if b.CanDrawOverlays() {
		return nil
	}
	slog.Info("platform: overlay unavailable in this session", "wayland", b.getenv("WAYLAND_DISPLAY"))
	b.notify("Overlay permission", "The prompter needs a session that allows always-on-top windows.\n"+
		"Start it under X11 or with XWayland available (DISPLAY set), then press Start again.")
	return nil
}

func (b *Backend) ShowWindow(cfg platform.WindowConfig) error {
	if cfg.WidthPx <= 0 || cfg.HeightPx <= 0 {
		return fmt.Errorf("invalid %s window size %dx%d", cfg.Kind, cfg.WidthPx, cfg.HeightPx)
	}
	switch cfg.Kind {
	case platform.WindowOverlay:
		if !b.CanDrawOverlays() {
			return platform.ErrOverlayDenied
		}
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
		ebiten.SetWindowSizeLimits(-1, -1, -1, -1)
	default:
		ebiten.SetWindowFloating(false)
		ebiten.SetWindowDecorated(true)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSizeLimits(cfg.MinWidthPx, cfg.MinHeightPx, -1, -1)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.WidthPx, cfg.HeightPx)
	ebiten.SetWindowPosition(cfg.X, cfg.Y)
	slog.Debug("platform: window shown", "kind", cfg.Kind, "x", cfg.X, "y", cfg.Y, "w", cfg.WidthPx, "h", cfg.HeightPx)
	return nil
}

func (b *Backend) MoveWindow(x, y int) { ebiten.SetWindowPosition(x, y) }

func (b *Backend) WindowPosition() (int, int) { return ebiten.WindowPosition() }

// floatingSupported reports whether GLFW can keep a window above others. A
// pure Wayland session (no X display to fall back on) cannot.
func floatingSupported(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	}
	if getenv("DISPLAY") != "" {
		return true
	}
	return getenv("WAYLAND_DISPLAY") == ""
}
