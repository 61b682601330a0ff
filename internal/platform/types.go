package platform

import "errors"

// ErrOverlayDenied is returned when the session cannot place an
// always-on-top window above other applications.
var ErrOverlayDenied = errors.New("overlay permission required")

type WindowKind int

const (
	WindowEditor WindowKind = iota
	WindowOverlay
)

func (k WindowKind) String() string {
	switch k {
	case WindowEditor:
		return "editor"
	case WindowOverlay:
		return "overlay"
	}
	return "unknown"
}

type WindowConfig struct {
	Kind        WindowKind
	Title       string
	X           int
	Y           int
	WidthPx     int
	HeightPx    int
	MinWidthPx  int
	MinHeightPx int
}

// Host is the window and permission boundary of the running platform. All
// methods are called from the interaction thread.
type Host interface {
	Name() string
	ScreenSize() (int, int)
	CanDrawOverlays() bool
	RequestOverlayPermission() error
	// ShowWindow reshapes the single application window. Overlay windows
	// are floating, undecorated and not resizable.
	ShowWindow(cfg WindowConfig) error
	MoveWindow(x, y int)
	WindowPosition() (int, int)
}
