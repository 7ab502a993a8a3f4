package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ValidateKeys checks for duplicate keybindings and invalid key strings.
func ValidateKeys(keys *KeyBindings) error {
	// Build a map of key -> action names for duplicate detection
	keyMap := make(map[string][]string)

	v := reflect.ValueOf(keys).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := t.Field(i).Name

		if field.Kind() != reflect.String {
			continue
		}

		keyStr := field.String()
		if keyStr == "" {
			continue
		}

		key, err := ParseKey(keyStr)
		if err != nil {
			return fmt.Errorf("invalid key for %s: %w", fieldName, err)
		}
		if key.IsRune() {
			return fmt.Errorf("invalid key for %s: %q would be typed into the field", fieldName, keyStr)
		}

		// "Ctrl+S" and "ctrl+s" are the same binding
		normalizedKey := strings.ToLower(strings.TrimSpace(keyStr))
		keyMap[normalizedKey] = append(keyMap[normalizedKey], fieldName)
	}

	// Check for duplicates
	var duplicates []string
	names := make([]string, 0, len(keyMap))
	for key := range keyMap {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		actions := keyMap[key]
		if len(actions) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("key %q is used by: %s", key, strings.Join(actions, ", ")))
		}
	}

	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate keybindings found:\n  %s", strings.Join(duplicates, "\n  "))
	}

	return nil
}

// ValidateColor checks if a color string is valid for gocui.
func ValidateColor(color string) bool {
	validColors := map[string]bool{
		"default": true,
		"black":   true,
		"red":     true,
		"green":   true,
		"yellow":  true,
		"blue":    true,
		"magenta": true,
		"cyan":    true,
		"white":   true,
	}
	return validColors[strings.ToLower(color)]
}

// ValidateTheme checks that every configured color is one gocui knows.
func ValidateTheme(theme *Theme) error {
	colors := map[string]string{
		"focus_frame":  theme.Colors.FocusFrame,
		"selection_bg": theme.Colors.SelectionBg,
		"selection_fg": theme.Colors.SelectionFg,
		"statusbar_bg": theme.Colors.StatusBarBg,
		"statusbar_fg": theme.Colors.StatusBarFg,
	}
	for name, color := range colors {
		if color != "" && !ValidateColor(color) {
			return fmt.Errorf("invalid color for %s: %q", name, color)
		}
	}
	for state, style := range theme.Status {
		if style.Color != "" && !ValidateColor(style.Color) {
			return fmt.Errorf("invalid color for status %s: %q", state, style.Color)
		}
	}
	return nil
}
