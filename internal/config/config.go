package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"termcal/internal/calendar"
	"termcal/internal/ics"
	"termcal/internal/style"
)

const appName = "termcal"

// ICSConfig describes a single calendar source.
type ICSConfig struct {
	// ID is an internal identifier used for logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name" json:"name"`
	// File is a local .ics file or a directory of them.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// URL is an ICS subscription endpoint. Takes precedence over File.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Style is applied to every occurrence of the source's events.
	Style style.Rule `yaml:",inline" json:"style"`
}

// Config is the top-level application configuration.
type Config struct {
	// Theme names a theme file in ThemeDir. Empty uses the builtin theme.
	Theme string `yaml:"theme" json:"theme"`

	// ThemeDir is where <theme>.theme files are looked up.
	ThemeDir string `yaml:"theme_dir" json:"theme_dir"`

	// ThemeStyleType selects "light" (default) or "dark" rules.
	ThemeStyleType string `yaml:"theme_style_type" json:"theme_style_type"`

	// Timezone is the IANA zone timed events are dated in. Empty means the
	// system zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart controls which weekday is treated as the first day of the week
	// in calendar views. Supported values:
	//   - "monday" (default)
	//   - "sunday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// ICS is the list of calendar sources.
	ICS []ICSConfig `yaml:"ics" json:"ics"`
}

// envOverrides are read from TERMCAL_* variables.
type envOverrides struct {
	Theme          string `envconfig:"THEME"`
	ThemeDir       string `envconfig:"THEME_DIR"`
	ThemeStyleType string `envconfig:"THEME_STYLE_TYPE"`
	Timezone       string `envconfig:"TIMEZONE"`
	WeekStart      string `envconfig:"WEEK_START"`
}

// DefaultICSStyle is used by sources that do not name any style.
func DefaultICSStyle() style.Rule {
	return style.Rule{Attributes: []style.Attribute{style.Underline, style.FG(style.Named(style.Cyan))}}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return filepath.Join(".", appName)
	}
	return filepath.Join(base, appName)
}

// DefaultPath is the config file used when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ThemeDir:       Dir(),
		ThemeStyleType: "light",
		WeekStart:      "monday",
		ICS:            []ICSConfig{},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.ThemeDir == "" {
		c.ThemeDir = Dir()
	}

	c.ThemeStyleType = strings.ToLower(strings.TrimSpace(c.ThemeStyleType))
	if c.ThemeStyleType != "dark" {
		c.ThemeStyleType = "light"
	}

	// Unknown values fall back to monday to avoid surprising layouts.
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart != "sunday" {
		c.WeekStart = "monday"
	}

	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
	for i := range c.ICS {
		src := &c.ICS[i]
		if src.ID == "" {
			src.ID = src.Name
		}
		if src.ID == "" {
			src.ID = fmt.Sprintf("ics-%d", i+1)
		}
		if len(src.Style.Attributes) == 0 {
			def := DefaultICSStyle()
			src.Style.Attributes = def.Attributes
		}
	}
}

// ApplyEnv overrides fields from TERMCAL_* environment variables.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(appName, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if env.Theme != "" {
		c.Theme = env.Theme
	}
	if env.ThemeDir != "" {
		c.ThemeDir = env.ThemeDir
	}
	if env.ThemeStyleType != "" {
		c.ThemeStyleType = env.ThemeStyleType
	}
	if env.Timezone != "" {
		c.Timezone = env.Timezone
	}
	if env.WeekStart != "" {
		c.WeekStart = env.WeekStart
	}
	c.Normalize()
	return nil
}

// WeekConvention returns the configured week start.
func (c *Config) WeekConvention() calendar.WeekConvention {
	return calendar.ParseWeekConvention(c.WeekStart)
}

// Variant returns the configured display variant.
func (c *Config) Variant() style.Variant {
	return style.ParseVariant(c.ThemeStyleType)
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Sources converts the configured ICS entries into fetchable sources.
func (c *Config) Sources() []ics.Source {
	out := make([]ics.Source, 0, len(c.ICS))
	for _, s := range c.ICS {
		out = append(out, ics.Source{ID: s.ID, Path: s.File, URL: s.URL, Style: s.Style})
	}
	return out
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, the default config is returned and nothing
//     is written.
//   - If the file exists, it is unmarshalled and normalized.
//
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.Normalize()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600, since source URLs often embed
//     private tokens.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".termcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
