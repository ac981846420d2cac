// Package prefs persists quill's user preferences.
// Preferences are stored in ~/.config/quill/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Prefs holds user preferences for quill.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/quill/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Store reads and writes preferences at a fixed path on a filesystem.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a Store for path on fsys. An empty path uses the default
// location; a nil fsys uses the OS filesystem.
func NewStore(fsys afero.Fs, path string) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, path: path}
}

// Path returns the resolved preferences file, or the unexpanded default if
// the path cannot be resolved.
func (s *Store) Path() string {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return defaultPrefsPath
	}
	return resolved
}

// Load reads preferences, falling back to defaults on any problem.
func (s *Store) Load() Prefs {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(s.path)
	if err != nil {
		return prefs
	}
	bytes, err := afero.ReadFile(s.fs, resolved)
	if err != nil {
		return prefs
	}
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}
	}
	prefs.Theme = strings.TrimSpace(prefs.Theme)
	if prefs.Theme == "" {
		prefs.Theme = defaultTheme
	}
	return prefs
}

// Save writes p, creating directories as needed.
func (s *Store) Save(p Prefs) error {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := afero.WriteFile(s.fs, resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
