package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// KV is the small persistence surface the UI needs for preferences. The
// browser original kept these in localStorage; here it is injected so the
// TUI and the tests choose their own backing.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

const themeKey = "theme"

// DefaultTheme is used when no preference was saved yet.
const DefaultTheme = "dark"

// Theme reads the saved theme, falling back to the default.
func Theme(kv KV) string {
	if v, ok := kv.Get(themeKey); ok && v != "" {
		return v
	}
	return DefaultTheme
}

func SaveTheme(kv KV, theme string) error {
	return kv.Set(themeKey, theme)
}

// FileKV stores preferences as a flat JSON object in one file.
// Human-readable, no locking; fine for a local single-user client.
type FileKV struct {
	Path string
}

func (f *FileKV) load() (map[string]string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode prefs: %w", err)
	}
	return m, nil
}

func (f *FileKV) Get(key string) (string, bool) {
	m, err := f.load()
	if err != nil {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

func (f *FileKV) Set(key, value string) error {
	m, err := f.load()
	if err != nil {
		return err
	}
	m[key] = value
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(f.Path, b, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// MemKV is an in-memory KV for tests.
type MemKV map[string]string

func (m MemKV) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemKV) Set(key, value string) error {
	m[key] = value
	return nil
}
