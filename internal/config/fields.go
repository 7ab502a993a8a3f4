package config

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/abdullathedruid/maskform/internal/mask"
	"github.com/abdullathedruid/maskform/internal/maskedinput"
)

// FieldConfig describes one masked field of the form.
type FieldConfig struct {
	Name             string                      `yaml:"name"`
	Label            string                      `yaml:"label"`
	Mask             string                      `yaml:"mask"`
	Value            string                      `yaml:"value"`
	PlaceholderChar  string                      `yaml:"placeholder_char"`
	Placeholder      string                      `yaml:"placeholder"`
	Size             int                         `yaml:"size"`
	FormatCharacters map[string]FormatCharConfig `yaml:"format_characters"`
}

// FormatCharConfig defines a custom slot class. Pattern is a regular
// expression matched against a single character; an empty pattern removes
// the built-in class for that character.
type FormatCharConfig struct {
	Pattern   string `yaml:"pattern"`
	Transform string `yaml:"transform"` // "upper", "lower" or ""
}

// DisplayLabel returns the label, falling back to the name.
func (f FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Props builds the field properties. historyLimit comes from the top-level
// config.
func (f FieldConfig) Props(historyLimit int) (maskedinput.Props, error) {
	formats, err := f.compileFormatCharacters()
	if err != nil {
		return maskedinput.Props{}, err
	}
	placeholder, _ := utf8.DecodeRuneInString(f.PlaceholderChar)
	if placeholder == utf8.RuneError {
		placeholder = 0
	}
	return maskedinput.Props{
		Mask:             f.Mask,
		Value:            f.Value,
		FormatCharacters: formats,
		PlaceholderChar:  placeholder,
		HistoryLimit:     historyLimit,
		Size:             f.Size,
		Placeholder:      f.Placeholder,
		Attrs: map[string]string{
			"name":  f.Name,
			"label": f.DisplayLabel(),
		},
	}, nil
}

func (f FieldConfig) compileFormatCharacters() (mask.FormatCharacters, error) {
	if len(f.FormatCharacters) == 0 {
		return nil, nil
	}
	formats := make(mask.FormatCharacters, len(f.FormatCharacters))
	for key, fc := range f.FormatCharacters {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("field %s: format character %q must be a single character", f.Name, key)
		}
		ch, _ := utf8.DecodeRuneInString(key)
		if fc.Pattern == "" {
			formats[ch] = mask.FormatCharacter{}
			continue
		}

		re, err := regexp.Compile("^(?:" + fc.Pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("field %s: format character %q: %w", f.Name, key, err)
		}
		def := mask.FormatCharacter{
			Validate: func(r rune) bool { return re.MatchString(string(r)) },
		}
		switch fc.Transform {
		case "":
		case "upper":
			def.Transform = unicode.ToUpper
		case "lower":
			def.Transform = unicode.ToLower
		default:
			return nil, fmt.Errorf("field %s: format character %q: unknown transform %q", f.Name, key, fc.Transform)
		}
		formats[ch] = def
	}
	return formats, nil
}

// ValidateFields checks that every field has a unique name and a mask that
// compiles.
func ValidateFields(fields []FieldConfig) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields configured")
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("field %s: duplicate name", f.Name)
		}
		seen[f.Name] = true

		if f.Mask == "" {
			return fmt.Errorf("field %s: mask is required", f.Name)
		}
		if f.PlaceholderChar != "" && utf8.RuneCountInString(f.PlaceholderChar) != 1 {
			return fmt.Errorf("field %s: placeholder_char must be a single character", f.Name)
		}
		props, err := f.Props(0)
		if err != nil {
			return err
		}
		if _, err := mask.NewPattern(f.Mask, mask.Merge(props.FormatCharacters), props.PlaceholderChar); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}
