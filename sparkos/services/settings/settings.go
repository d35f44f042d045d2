// Package settings persists user preferences as YAML and keeps a live copy
// that follows edits to the file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sparkcalc/sparkos/calc"

	"gopkg.in/yaml.v3"
)

// Theme is the color scheme name.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Environment overrides.
const (
	EnvTheme = "SPARKCALC_THEME"
	EnvAngle = "SPARKCALC_ANGLE"
)

var ErrInvalid = errors.New("invalid settings")

// Settings is the on-disk preference set.
type Settings struct {
	Theme      Theme  `yaml:"theme"`
	AngleUnit  string `yaml:"angle_unit"`
	DrawerOpen bool   `yaml:"drawer_open"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Theme:     ThemeLight,
		AngleUnit: calc.Degrees.String(),
	}
}

// DefaultPath is settings.yaml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "sparkcalc", "settings.yaml"), nil
}

// Angle returns the configured angle unit, falling back to degrees.
func (s Settings) Angle() calc.AngleUnit {
	u, err := calc.ParseAngleUnit(s.AngleUnit)
	if err != nil {
		return calc.Degrees
	}
	return u
}

// Validate checks enumerated fields.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalid, s.Theme)
	}
	if _, err := calc.ParseAngleUnit(s.AngleUnit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load reads settings from path. A missing file yields the defaults. Empty
// fields take their default values and environment overrides are applied
// last.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Default(), fmt.Errorf("parse settings: %w", err)
		}
	}

	s.Theme = Theme(strings.ToLower(strings.TrimSpace(string(s.Theme))))
	if s.Theme == "" {
		s.Theme = ThemeLight
	}
	if strings.TrimSpace(s.AngleUnit) == "" {
		s.AngleUnit = calc.Degrees.String()
	}
	s.applyEnvOverrides()

	if err := s.Validate(); err != nil {
		return Default(), err
	}
	s.AngleUnit = s.Angle().String()
	return s, nil
}

// Save writes s to path, creating the directory if needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv(EnvTheme); v != "" {
		s.Theme = Theme(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv(EnvAngle); v != "" {
		s.AngleUnit = v
	}
}
