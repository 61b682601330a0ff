package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional prompter.yaml. Every field has a usable default so
// the file may be absent or partial.
type Config struct {
	SettingsPath string        `yaml:"settings_path"` // empty means the user config dir
	LogLevel     string        `yaml:"log_level"`     // debug, info, warn, error
	Overlay      OverlayConfig `yaml:"overlay"`
	Editor       EditorConfig  `yaml:"editor"`
}

type OverlayConfig struct {
	HeightFraction float64 `yaml:"height_fraction"` // share of the screen height, 0.2..1
	Opacity        float64 `yaml:"opacity"`         // background alpha, 0.2..1
}

type EditorConfig struct {
	WidthPx  int `yaml:"width_px"`
	HeightPx int `yaml:"height_px"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Overlay: OverlayConfig{
			HeightFraction: 0.5,
			Opacity:        0.85,
		},
		Editor: EditorConfig{
			WidthPx:  960,
			HeightPx: 640,
		},
	}
}

// DefaultPath is prompter.yaml next to the settings file in the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "prompter", "prompter.yaml"), nil
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("config: no config file, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Overlay.HeightFraction < 0.2 || cfg.Overlay.HeightFraction > 1 {
		return fmt.Errorf("overlay.height_fraction must be within [0.2, 1], got %v", cfg.Overlay.HeightFraction)
	}
	if cfg.Overlay.Opacity < 0.2 || cfg.Overlay.Opacity > 1 {
		return fmt.Errorf("overlay.opacity must be within [0.2, 1], got %v", cfg.Overlay.Opacity)
	}
	if cfg.Editor.WidthPx < 480 || cfg.Editor.HeightPx < 320 {
		return fmt.Errorf("editor window must be at least 480x320, got %dx%d", cfg.Editor.WidthPx, cfg.Editor.HeightPx)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
