// Package fake is an in-memory platform.Host for tests.
package fake

import (
	"errors"

	"prompter/internal/platform"
)

type Host struct {
	ScreenW, ScreenH int
	Granted          bool
	// GrantOnRequest flips Granted when a permission request is made.
	GrantOnRequest bool
	// FailShow makes the next ShowWindow calls fail with this error.
	FailShow error

	Requests int
	Shown    []platform.WindowConfig
	X, Y     int
}

func New(w, h int) *Host {
	return &Host{ScreenW: w, ScreenH: h, Granted: true}
}

func (h *Host) Name() string           { return "fake" }
func (h *Host) ScreenSize() (int, int) { return h.ScreenW, h.ScreenH }
func (h *Host) CanDrawOverlays() bool  { return h.Granted }

func (h *Host) RequestOverlayPermission() error {
	h.Requests++
	if h.GrantOnRequest {
		h.Granted = true
	}
	return nil
}

func (h *Host) ShowWindow(cfg platform.WindowConfig) error {
	if h.FailShow != nil {
		return h.FailShow
	}
	if cfg.Kind == platform.WindowOverlay && !h.Granted {
		return platform.ErrOverlayDenied
	}
	if cfg.WidthPx <= 0 || cfg.HeightPx <= 0 {
		return errors.New("invalid window size")
	}
	h.Shown = append(h.Shown, cfg)
	h.X, h.Y = cfg.X, cfg.Y
	return nil
}

func (h *Host) MoveWindow(x, y int)        { h.X, h.Y = x, y }
func (h *Host) WindowPosition() (int, int) { return h.X, h.Y }

// Last returns the most recent window configuration.
func (h *Host) Last() (platform.WindowConfig, bool) {
	if len(h.Shown) == 0 {
		return platform.WindowConfig{}, false
	}
	return h.Shown[len(h.Shown)-1], true
}
