// Package prefs handles griddy user preferences persistence.
// Preferences are stored in ~/.config/griddy/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/griddy/internal/limits"
)

// Prefs holds the settings a user adjusts from the UI.
type Prefs struct {
	NumRows     int    `toml:"num_rows"`
	NumCols     int    `toml:"num_cols"`
	TypingSpeed int    `toml:"typing_speed"`
	DocumentID  string `toml:"document_id"`
	Theme       string `toml:"theme"`
}

const (
	defaultPrefsPath   = "~/.config/griddy/prefs.toml"
	defaultRows        = 4
	defaultCols        = 3
	defaultTypingSpeed = 9
	defaultTheme       = "Nightfox"

	// DefaultDocumentID is the spreadsheet shown until the user picks another.
	DefaultDocumentID = "1CtTT6P2bSh5eJO_fDxOceiDQ65Mhc2-JSt7ktXM2U6I"
)

// Defaults returns the preferences used for a fresh install.
func Defaults() Prefs {
	return Prefs{
		NumRows:     defaultRows,
		NumCols:     defaultCols,
		TypingSpeed: defaultTypingSpeed,
		DocumentID:  DefaultDocumentID,
		Theme:       defaultTheme,
	}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing file is created
// with the defaults. Unreadable or invalid values fall back to the defaults
// field by field rather than failing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		p := Defaults()
		if errors.Is(err, os.ErrNotExist) {
			if err := Save(resolved, p); err != nil {
				return p, fmt.Errorf("seed prefs: %w", err)
			}
		}
		return p, nil
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Defaults(), nil // Graceful degradation
	}
	return Parse(bytes), nil
}

// Parse decodes preferences, substituting the default for any field that is
// missing or out of range. Malformed TOML yields the defaults.
func Parse(data []byte) Prefs {
	var raw Prefs
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Defaults()
	}
	return raw.Normalize()
}

// Normalize replaces invalid fields with their defaults.
func (p Prefs) Normalize() Prefs {
	def := Defaults()
	if p.NumRows < limits.MinDimension || p.NumRows > limits.MaxDimension {
		p.NumRows = def.NumRows
	}
	if p.NumCols < limits.MinDimension || p.NumCols > limits.MaxDimension {
		p.NumCols = def.NumCols
	}
	if p.TypingSpeed < limits.MinTypingSpeed || p.TypingSpeed > limits.MaxTypingSpeed {
		p.TypingSpeed = def.TypingSpeed
	}
	p.DocumentID = strings.TrimSpace(p.DocumentID)
	if p.DocumentID == "" {
		p.DocumentID = def.DocumentID
	}
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = def.Theme
	}
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	// Write and rename so a watcher never reads a half-written file.
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Resolve expands path, or the default location when path is blank.
func Resolve(path string) (string, error) {
	return resolvePath(path)
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
