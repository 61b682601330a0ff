package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prompter/internal/config"
	"prompter/internal/platform"
	"prompter/internal/platform/fake"
	"prompter/internal/settings"
)

func newTestApp(t *testing.T, host *fake.Host) (*App, *settings.MemoryStore, *[]string) {
	t.Helper()
	store := settings.NewMemoryStore()
	a := New(Options{Config: config.Default(), Host: host, Store: store})
	var messages []string
	a.message = func(title, msg string) { messages = append(messages, title+": "+msg) }
	t.Cleanup(func() {
		if a.overlay.IsOpen() {
			_ = a.overlay.Close()
		}
	})
	return a, store, &messages
}

func TestSubmitSwitchesToOverlay(t *testing.T) {
	host := fake.New(1600, 900)
	a, store, _ := newTestApp(t, host)
	a.session.SetText("line one\nline two")

	a.submit()
	if a.mode != modeOverlay || !a.overlay.IsOpen() {
		t.Fatalf("expected overlay mode, status %q", a.status)
	}
	if a.overlay.Text() != "line one\nline two" {
		t.Fatalf("overlay got %q", a.overlay.Text())
	}
	if got := store.GetString(settings.KeyPromptText, ""); got != "line one\nline two" {
		t.Fatalf("prompt not saved before opening: %q", got)
	}
	cfg, _ := host.Last()
	if cfg.Kind != platform.WindowOverlay || cfg.HeightPx != 450 {
		t.Fatalf("unexpected overlay window %+v", cfg)
	}

	a.returnToEditor()
	if a.mode != modeEditor || a.overlay.IsOpen() {
		t.Fatalf("expected editor mode after edit")
	}
	if cfg, _ := host.Last(); cfg.Kind != platform.WindowEditor {
		t.Fatalf("editor window not restored: %+v", cfg)
	}
	if store.GetInt(settings.KeySpeedLevel, -1) != 4 {
		t.Fatalf("display settings not saved when leaving the overlay")
	}
}

func TestSubmitEmptyShowsStatus(t *testing.T) {
	a, _, messages := newTestApp(t, fake.New(1600, 900))
	a.session.SetText("")
	a.submit()
	if a.mode != modeEditor || a.status != "Please enter some text" {
		t.Fatalf("unexpected state: mode %d status %q", a.mode, a.status)
	}
	if len(*messages) != 0 {
		t.Fatalf("empty prompt is not an error dialog: %q", *messages)
	}
}

func TestPermissionFlowRechecksOnFocus(t *testing.T) {
	host := fake.New(1600, 900)
	host.Granted = false
	a, _, messages := newTestApp(t, host)
	a.session.SetText("script")

	a.submit()
	if host.Requests != 1 || a.mode != modeEditor {
		t.Fatalf("expected a permission request, got %d", host.Requests)
	}
	a.focusChanged(false)
	a.focusChanged(true)
	if a.mode != modeEditor || len(*messages) != 1 || !strings.Contains((*messages)[0], "permission") {
		t.Fatalf("expected a denial message, got %q", *messages)
	}

	host.Granted = true
	a.submit()
	if a.mode != modeOverlay {
		t.Fatalf("expected overlay once granted, status %q", a.status)
	}
}

func TestOverlayFailureIsReported(t *testing.T) {
	host := fake.New(1600, 900)
	host.FailShow = errors.New("window already attached")
	a, _, messages := newTestApp(t, host)
	a.session.SetText("script")

	a.submit()
	if a.mode != modeEditor || a.overlay.IsOpen() {
		t.Fatalf("overlay must stay closed")
	}
	if len(*messages) != 1 || !strings.Contains(a.status, "window already attached") {
		t.Fatalf("failure not surfaced: status %q messages %q", a.status, *messages)
	}
}

func TestInitialTextOverridesSavedPrompt(t *testing.T) {
	store := settings.NewMemoryStore()
	store.SetString(settings.KeyPromptText, "old")
	a := New(Options{Host: fake.New(800, 600), Store: store, InitialText: "from file"})
	if a.session.Text() != "from file" {
		t.Fatalf("unexpected prompt %q", a.session.Text())
	}
}

func TestReadPromptFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "talk.txt")
	if err := os.WriteFile(good, []byte("Good evening\r\nEveryone"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadInitialText(good)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Good evening\nEveryone" {
		t.Fatalf("unexpected text %q", got)
	}

	bad := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInitialText(bad); err == nil {
		t.Fatalf("expected error for binary file")
	}
	if _, err := LoadInitialText(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
	if _, err := LoadInitialText(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestImportPromptReplacesText(t *testing.T) {
	a, store, _ := newTestApp(t, fake.New(800, 600))
	path := filepath.Join(t.TempDir(), "speech.txt")
	if err := os.WriteFile(path, []byte("imported"), 0o644); err != nil {
		t.Fatal(err)
	}
	a.pickFile = func() (string, error) { return path, nil }
	if err := a.importPrompt(); err != nil {
		t.Fatal(err)
	}
	if a.session.Text() != "imported" || store.GetString(settings.KeyPromptText, "") != "imported" {
		t.Fatalf("import not applied: %q", a.session.Text())
	}
}
