package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NoConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Keys.Quit != "ctrl+q" {
		t.Errorf("cfg.Keys.Quit = %q, want %q", cfg.Keys.Quit, "ctrl+q")
	}
	if want := filepath.Join(xdg, "maskform", "config.yaml"); cfg.ConfigFile() != want {
		t.Errorf("ConfigFile() = %q, want %q", cfg.ConfigFile(), want)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}
	if cfg.ConfigFile() != path {
		t.Errorf("ConfigFile() = %q, want %q", cfg.ConfigFile(), path)
	}
	if len(cfg.Fields) != len(DefaultFields()) {
		t.Errorf("len(Fields) = %d, want defaults", len(cfg.Fields))
	}
}

func TestLoad_FromDataDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dataDir := filepath.Join(xdg, "maskform")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "history_limit: 5\n"
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
}

func TestLoadFile_WithConfigFile(t *testing.T) {
	path := writeConfig(t, `history_limit: 20
keys:
  quit: "ctrl+c"
  submit: "F5"
theme:
  colors:
    selection_bg: "green"
fields:
  - name: zip
    label: ZIP code
    mask: "11111-1111"
    value: "12345"
  - name: plate
    mask: "AAA 111"
    placeholder_char: "*"
    size: 10
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}

	if cfg.Path != path {
		t.Errorf("cfg.Path = %q, want %q", cfg.Path, path)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("HistoryLimit = %d, want 20", cfg.HistoryLimit)
	}
	if cfg.Keys.Quit != "ctrl+c" || cfg.Keys.Submit != "F5" {
		t.Errorf("keys = %+v", cfg.Keys)
	}
	// Defaults are preserved for unset values
	if cfg.Keys.Help != "f1" {
		t.Errorf("cfg.Keys.Help = %q, want %q (default)", cfg.Keys.Help, "f1")
	}
	if cfg.Theme.Colors.SelectionBg != "green" {
		t.Errorf("SelectionBg = %q, want %q", cfg.Theme.Colors.SelectionBg, "green")
	}
	if cfg.Theme.Colors.SelectionFg != "white" {
		t.Errorf("SelectionFg = %q, want %q (default)", cfg.Theme.Colors.SelectionFg, "white")
	}

	if len(cfg.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2 (file replaces the sample form)", len(cfg.Fields))
	}
	zip := cfg.Fields[0]
	if zip.Name != "zip" || zip.Mask != "11111-1111" || zip.Value != "12345" || zip.Label != "ZIP code" {
		t.Errorf("zip field = %+v", zip)
	}
	plate := cfg.Fields[1]
	if plate.PlaceholderChar != "*" || plate.Size != 10 {
		t.Errorf("plate field = %+v", plate)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "fields: [\n"},
		{"duplicate keys", "keys:\n  quit: \"ctrl+x\"\n"},
		{"rune key", "keys:\n  submit: \"s\"\n"},
		{"bad color", "theme:\n  colors:\n    focus_frame: \"mauve\"\n"},
		{"bad mask", "fields:\n  - name: a\n    mask: \"--\"\n"},
		{"duplicate field", "fields:\n  - name: a\n    mask: \"11\"\n  - name: a\n    mask: \"11\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadFile() expected error, got nil")
			}
		})
	}
}

func TestLoadFile_StatusStyle(t *testing.T) {
	path := writeConfig(t, `theme:
  status:
    complete:
      icon: "★"
      color: "magenta"
      label: "FILLED"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v, want nil", err)
	}

	style, ok := cfg.Theme.Status[StatusComplete]
	if !ok {
		t.Fatal("complete status style not found")
	}
	if style.Icon != "★" || style.Color != "magenta" || style.Label != "FILLED" {
		t.Errorf("complete style = %+v", style)
	}

	empty, ok := cfg.Theme.Status[StatusEmpty]
	if !ok || empty.Icon == "" {
		t.Error("empty status style should keep its default")
	}
}
