// Package config reads the optional settings file next to the data file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// FileName is the settings file inside the user config directory.
const FileName = "todo_settings.toml"

// Settings tune presentation and logging. There are no flags or env vars.
type Settings struct {
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
}

func Default() Settings {
	return Settings{Theme: "dark", LogLevel: "info"}
}

// Load decodes path over the defaults. A missing file is not an error.
// Undecoded keys are returned so the caller can log them.
func Load(path string) (Settings, []string, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil, nil
		}
		return Default(), nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}

	if err := s.validate(); err != nil {
		return Default(), unknown, err
	}
	return s, unknown, nil
}

func (s *Settings) validate() error {
	s.Theme = strings.ToLower(strings.TrimSpace(s.Theme))
	switch s.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q (want dark or light)", s.Theme)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", s.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, info when unset.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Dark reports whether the dark palette is selected.
func (s Settings) Dark() bool { return s.Theme != "light" }

// Dir returns the per-user config directory.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return dir, nil
}
