package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"prompter/internal/app"
	"prompter/internal/config"
	"prompter/internal/platform/desktop"
	"prompter/internal/settings"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "prompter failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath   string
		settingsPath string
		logLevel     string
		textPath     string
	)
	flagSet := flag.NewFlagSet("prompter", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "config file (default: prompter.yaml in the user config dir)")
	flagSet.StringVar(&settingsPath, "settings", "", "settings file holding speed, size and the last prompt")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.StringVar(&textPath, "text", "", "load the prompt from a UTF-8 text file")
	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: prompter [-config file] [-settings file] [-log-level level] [-text file]")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if settingsPath != "" {
		cfg.SettingsPath = settingsPath
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.SettingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		cfg.SettingsPath = p
	}
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	var initial string
	if textPath != "" {
		initial, err = app.LoadInitialText(textPath)
		if err != nil {
			return err
		}
	}

	slog.Info("prompter: starting", "config", configPath, "settings", store.Path())
	application := app.New(app.Options{
		Config:      cfg,
		Host:        desktop.New(),
		Store:       store,
		InitialText: initial,
	})
	return application.Run()
}
