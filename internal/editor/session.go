package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"prompter/internal/platform"
	"prompter/internal/settings"
)

var (
	ErrEmptyPrompt = errors.New("please enter some text")

	// ErrPermissionPending means the overlay grant was requested and the
	// open is deferred until the window regains focus.
	ErrPermissionPending = errors.New("waiting for overlay permission")
)

// Permissions is the part of the platform host the editor needs.
type Permissions interface {
	CanDrawOverlays() bool
	RequestOverlayPermission() error
}

// OpenFunc asks the overlay controller to show text.
type OpenFunc func(text string) error

// Session is the input editor flow: a buffer seeded from the settings store,
// saved whenever the user navigates away, and handed to the overlay on
// submit once the platform allows overlays.
type Session struct {
	Buffer *State

	store             settings.Store
	perms             Permissions
	open              OpenFunc
	permissionPending bool
}

func NewSession(store settings.Store, perms Permissions, open OpenFunc) *Session {
	return &Session{
		Buffer: NewState(settings.LoadPrompt(store)),
		store:  store,
		perms:  perms,
		open:   open,
	}
}

func (s *Session) Text() string { return s.Buffer.Text() }

// SetText replaces the prompt, for example after a file import.
func (s *Session) SetText(text string) {
	s.Buffer.SetText(text)
	s.Buffer.dirty = true
}

// PermissionPending reports whether a grant request is outstanding.
func (s *Session) PermissionPending() bool { return s.permissionPending }

// Save persists the current prompt. Called on every navigation away from the
// editor: focus loss, switching to the overlay and quitting.
func (s *Session) Save() {
	settings.SavePrompt(s.store, s.Buffer.Text())
	s.Buffer.MarkSaved()
}

// Submit saves the prompt and opens the overlay with it. Without an overlay
// grant it requests one and returns ErrPermissionPending.
func (s *Session) Submit() error {
	text := s.Buffer.Text()
	if text == "" {
		return ErrEmptyPrompt
	}
	s.Save()
	if s.perms.CanDrawOverlays() {
		return s.openOverlay(text)
	}
	if err := s.perms.RequestOverlayPermission(); err != nil {
		slog.Warn("editor: overlay permission request failed", "error", err)
	}
	s.permissionPending = true
	return ErrPermissionPending
}

// FocusRegained re-checks an outstanding permission request. It returns nil
// when nothing was pending or the overlay opened, and
// platform.ErrOverlayDenied when the grant is still missing. No new request
// is made in that case.
func (s *Session) FocusRegained() error {
	if !s.permissionPending {
		return nil
	}
	s.permissionPending = false
	if !s.perms.CanDrawOverlays() {
		return platform.ErrOverlayDenied
	}
	text := s.Buffer.Text()
	if text == "" {
		return nil
	}
	s.Save()
	return s.openOverlay(text)
}

func (s *Session) openOverlay(text string) error {
	if s.open == nil {
		return errors.New("no overlay to open")
	}
	if err := s.open(text); err != nil {
		return fmt.Errorf("open overlay: %w", err)
	}
	return nil
}
