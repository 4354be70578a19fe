package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	appLog "termcal/internal/log"
	"termcal/internal/style"
)

// DateStyle applies Rule to every date for which all Properties hold.
type DateStyle struct {
	Properties []DateProperty `yaml:"properties"`
	Rule       style.Rule     `yaml:",inline"`
}

// Theme is an unordered list of date styles; only rule weights decide
// precedence.
type Theme struct {
	Date []DateStyle `yaml:"date"`
}

// Default returns the builtin theme: the reference date is bold and
// underlined, padding days of neighbouring months are hidden.
func Default() Theme {
	return Theme{
		Date: []DateStyle{
			{
				Properties: []DateProperty{CurrentDate},
				Rule:       style.Rule{Attributes: []style.Attribute{style.Bold, style.Underline}},
			},
			{
				Properties: []DateProperty{BeforeFirstDayOfMonth},
				Rule:       style.Rule{Attributes: []style.Attribute{style.Hidden}, Weight: 1},
			},
			{
				Properties: []DateProperty{AfterLastDayOfMonth},
				Rule:       style.Rule{Attributes: []style.Attribute{style.Hidden}, Weight: 1},
			},
		},
	}
}

// Path returns the file a named theme is read from.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".theme")
}

// Read parses a theme file.
func Read(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return t, nil
}

// Load returns the named theme from dir. An empty name, a missing file or
// a file that does not parse all fall back to Default; the latter two are
// logged.
func Load(name, dir string) Theme {
	if name == "" {
		return Default()
	}
	path := Path(dir, name)
	t, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			appLog.Info("theme file not found, using builtin theme", "theme", name, "path", path)
		} else {
			appLog.Error("could not load theme, using builtin theme", err, "theme", name)
		}
		return Default()
	}
	appLog.Debug("theme loaded", "theme", name, "path", path, "styles", len(t.Date))
	return t
}

// Write stores t as YAML at path.
func Write(path string, t Theme) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
