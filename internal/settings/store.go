package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	KeySpeedLevel = "speedLevel"
	KeySizeLevel  = "sizeLevel"
	KeyPromptText = "promptText"
)

// Store is best-effort key/value persistence. Reads fall back to the given
// default; writes never fail the caller.
type Store interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
	GetString(key string, def string) string
	SetString(key string, value string)
}

// FileStore keeps every value in one YAML document and rewrites the file on
// each Set.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// Open reads path if it exists. A missing or unreadable file starts empty;
// only an unusable path is reported.
func Open(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("settings path is empty")
	}
	s := &FileStore{path: filepath.Clean(path), values: map[string]string{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("settings: read failed, using defaults", "path", s.path, "error", err)
		}
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		slog.Warn("settings: file is corrupt, using defaults", "path", s.path, "error", err)
		s.values = map[string]string{}
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	return s, nil
}

// DefaultPath is settings.yaml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "prompter", "settings.yaml"), nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) GetInt(key string, def int) int {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("settings: value is not an integer", "key", key, "value", raw)
		return def
	}
	return v
}

func (s *FileStore) SetInt(key string, value int) {
	s.set(key, strconv.Itoa(value))
}

func (s *FileStore) GetString(key string, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

func (s *FileStore) SetString(key string, value string) {
	s.set(key, value)
}

func (s *FileStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	if err := s.flushLocked(); err != nil {
		slog.Warn("settings: write failed", "key", key, "path", s.path, "error", err)
	}
}

func (s *FileStore) flushLocked() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// MemoryStore is a Store without persistence. Writes counts Set calls.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func (m *MemoryStore) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = strconv.Itoa(value)
	m.Writes++
}

func (m *MemoryStore) GetString(key string, def string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *MemoryStore) SetString(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Writes++
}
