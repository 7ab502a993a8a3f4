// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abdullathedruid/maskform/internal/mask"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory for persistent data (submissions, logs)
	DataDir string `yaml:"-"`

	// Path is the file the config is read from, which may not exist yet
	Path string `yaml:"-"`

	// HistoryLimit bounds the undo history of each field
	HistoryLimit int `yaml:"history_limit"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`

	// Fields is the form, in display order
	Fields []FieldConfig `yaml:"fields"`
}

// KeyBindings holds all configurable keybindings. Plain characters are
// typed into the focused field, so bindings use ctrl or special keys.
type KeyBindings struct {
	Quit      string `yaml:"quit"`
	Submit    string `yaml:"submit"`
	NextField string `yaml:"next_field"`
	PrevField string `yaml:"prev_field"`
	Help      string `yaml:"help"`
	Preview   string `yaml:"preview"`
	Clear     string `yaml:"clear"`
	Cut       string `yaml:"cut"`
	Paste     string `yaml:"paste"`
	Undo      string `yaml:"undo"`
	Redo      string `yaml:"redo"`
	SelectAll string `yaml:"select_all"`
}

// Theme holds theme configuration.
type Theme struct {
	Colors ThemeColors            `yaml:"colors"`
	Status map[string]StatusStyle `yaml:"status"`
}

// ThemeColors holds color configuration.
type ThemeColors struct {
	FocusFrame  string `yaml:"focus_frame"`
	SelectionBg string `yaml:"selection_bg"`
	SelectionFg string `yaml:"selection_fg"`
	StatusBarBg string `yaml:"statusbar_bg"`
	StatusBarFg string `yaml:"statusbar_fg"`
}

// StatusStyle holds style configuration for a field completion state.
type StatusStyle struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Label string `yaml:"label"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		HistoryLimit: mask.DefaultHistoryLimit,
		Keys:         DefaultKeyBindings(),
		Theme:        DefaultTheme(),
		Fields:       DefaultFields(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:      "ctrl+q",
		Submit:    "ctrl+s",
		NextField: "tab",
		PrevField: "backtab",
		Help:      "f1",
		Preview:   "f2",
		Clear:     "ctrl+l",
		Cut:       "ctrl+x",
		Paste:     "ctrl+v",
		Undo:      "ctrl+z",
		Redo:      "ctrl+y",
		SelectAll: "ctrl+a",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			FocusFrame:  "cyan",
			SelectionBg: "blue",
			SelectionFg: "white",
			StatusBarBg: "blue",
			StatusBarFg: "white",
		},
		Status: map[string]StatusStyle{
			StatusEmpty: {
				Icon:  "\u25cb", // ○
				Color: "white",
				Label: "EMPTY",
			},
			StatusPartial: {
				Icon:  "\u25d0", // ◐
				Color: "yellow",
				Label: "PARTIAL",
			},
			StatusComplete: {
				Icon:  "\u2713", // ✓
				Color: "green",
				Label: "DONE",
			},
		},
	}
}

// Field completion states, used as keys into Theme.Status.
const (
	StatusEmpty    = "empty"
	StatusPartial  = "partial"
	StatusComplete = "complete"
)

// DefaultFields returns the sample form shown when no fields are configured.
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{Name: "phone", Label: "Phone", Mask: "(111) 111-1111"},
		{Name: "expiry", Label: "Expiry", Mask: "11/11", Placeholder: "MM/YY"},
		{Name: "card", Label: "Card number", Mask: "1111 1111 1111 1111"},
		{
			Name:  "colour",
			Label: "Colour",
			Mask:  `\#xxxxxx`,
			FormatCharacters: map[string]FormatCharConfig{
				"x": {Pattern: "[0-9a-fA-F]", Transform: "lower"},
			},
		},
	}
}

// Load loads configuration from the default config file, falling back to
// defaults.
func Load() (*Config, error) {
	return LoadFile(Default().ConfigFile())
}

// LoadFile loads configuration from path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist yet, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML into a temporary struct to merge with defaults
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Merge file config with defaults (file values override defaults)
	mergeConfig(cfg, &fileCfg)

	if err := ValidateKeys(&cfg.Keys); err != nil {
		return nil, err
	}
	if err := ValidateTheme(&cfg.Theme); err != nil {
		return nil, err
	}
	if err := ValidateFields(cfg.Fields); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied. A non-empty field list
// replaces the sample form entirely.
func mergeConfig(dst, src *Config) {
	if src.HistoryLimit > 0 {
		dst.HistoryLimit = src.HistoryLimit
	}
	if len(src.Fields) > 0 {
		dst.Fields = src.Fields
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
	mergeTheme(&dst.Theme, &src.Theme)
}

// mergeKeyBindings merges keybindings from src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	for _, p := range []struct{ dst, src *string }{
		{&dst.Quit, &src.Quit},
		{&dst.Submit, &src.Submit},
		{&dst.NextField, &src.NextField},
		{&dst.PrevField, &src.PrevField},
		{&dst.Help, &src.Help},
		{&dst.Preview, &src.Preview},
		{&dst.Clear, &src.Clear},
		{&dst.Cut, &src.Cut},
		{&dst.Paste, &src.Paste},
		{&dst.Undo, &src.Undo},
		{&dst.Redo, &src.Redo},
		{&dst.SelectAll, &src.SelectAll},
	} {
		if *p.src != "" {
			*p.dst = *p.src
		}
	}
}

// mergeTheme merges theme configuration from src into dst.
func mergeTheme(dst, src *Theme) {
	if src.Colors.FocusFrame != "" {
		dst.Colors.FocusFrame = src.Colors.FocusFrame
	}
	if src.Colors.SelectionBg != "" {
		dst.Colors.SelectionBg = src.Colors.SelectionBg
	}
	if src.Colors.SelectionFg != "" {
		dst.Colors.SelectionFg = src.Colors.SelectionFg
	}
	if src.Colors.StatusBarBg != "" {
		dst.Colors.StatusBarBg = src.Colors.StatusBarBg
	}
	if src.Colors.StatusBarFg != "" {
		dst.Colors.StatusBarFg = src.Colors.StatusBarFg
	}

	for key, style := range src.Status {
		existing, ok := dst.Status[key]
		if !ok {
			dst.Status[key] = style
			continue
		}
		if style.Icon != "" {
			existing.Icon = style.Icon
		}
		if style.Color != "" {
			existing.Color = style.Color
		}
		if style.Label != "" {
			existing.Label = style.Label
		}
		dst.Status[key] = existing
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "maskform")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".maskform"
	}
	return filepath.Join(home, ".config", "maskform")
}

// SubmissionsFile returns the path to the submissions file.
func (c *Config) SubmissionsFile() string {
	return filepath.Join(c.DataDir, "submissions.json")
}

// LogFile returns the default log path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "maskform.log")
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(c.DataDir, "config.yaml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// Field returns the field config with the given name.
func (c *Config) Field(name string) (FieldConfig, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}
