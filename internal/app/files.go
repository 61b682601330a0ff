package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sqweek/dialog"
)

const maxImportBytes = 4 << 20

func showMessage(title, msg string) {
	dialog.Message("%s", msg).Title(title).Error()
}

func pickTextFile() (string, error) {
	return dialog.File().Filter("Text files", "txt", "md").Filter("All files", "*").Title("Import prompt").Load()
}

// readPromptFile loads a UTF-8 text file for the editor.
func readPromptFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", filepath.Base(path))
	}
	if info.Size() > maxImportBytes {
		return "", fmt.Errorf("%s is larger than %d MiB", filepath.Base(path), maxImportBytes>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not UTF-8 text", filepath.Base(path))
	}
	return normalizePasteText(string(data)), nil
}

// importPrompt asks for a file and replaces the prompt with its contents.
func (a *App) importPrompt() error {
	path, err := a.pickFile()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			a.status = "Import cancelled"
			return nil
		}
		return err
	}
	if path == "" {
		return errors.New("no file selected")
	}
	text, err := readPromptFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	a.session.SetText(text)
	a.session.Save()
	a.scrollX, a.scrollY = 0, 0
	a.status = "Imported " + filepath.Base(path)
	return nil
}

// LoadInitialText reads the file given on the command line.
func LoadInitialText(path string) (string, error) {
	text, err := readPromptFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt file: %w", err)
	}
	return text, nil
}
