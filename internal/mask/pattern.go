package mask

import (
	"fmt"

	"github.com/go-errors/errors"
)

// PatternError describes a pattern that cannot be compiled.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid mask pattern %q: %s", e.Pattern, e.Reason)
}

// Pattern is a compiled mask: a fixed-length run of literals and slots.
type Pattern struct {
	source      string
	chars       []rune
	editable    []bool
	first       int
	last        int
	placeholder rune
	formats     FormatCharacters
}

// NewPattern compiles source against formats. A zero placeholder selects
// DefaultPlaceholder.
func NewPattern(source string, formats FormatCharacters, placeholder rune) (*Pattern, error) {
	if source == "" {
		return nil, errors.Wrap(&PatternError{Pattern: source, Reason: "pattern is empty"}, 1)
	}
	if formats == nil {
		formats = DefaultFormatCharacters()
	}
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}

	p := &Pattern{
		source:      source,
		first:       -1,
		last:        -1,
		placeholder: placeholder,
		formats:     formats,
	}

	src := []rune(source)
	for i := 0; i < len(src); i++ {
		ch := src[i]
		editable := false
		if ch == EscapeChar {
			if i == len(src)-1 {
				return nil, errors.Wrap(&PatternError{Pattern: source, Reason: "pattern ends with a raw escape"}, 1)
			}
			i++
			ch = src[i]
		} else if _, ok := formats[ch]; ok {
			editable = true
			if p.first < 0 {
				p.first = len(p.chars)
			}
			p.last = len(p.chars)
		}
		p.chars = append(p.chars, ch)
		p.editable = append(p.editable, editable)
	}

	if p.first < 0 {
		return nil, errors.Wrap(&PatternError{Pattern: source, Reason: "pattern has no editable characters"}, 1)
	}
	return p, nil
}

// Source returns the uncompiled pattern string.
func (p *Pattern) Source() string { return p.source }

// Len returns the number of characters the pattern renders.
func (p *Pattern) Len() int { return len(p.chars) }

// Placeholder returns the rune used for unfilled slots.
func (p *Pattern) Placeholder() rune { return p.placeholder }

// FirstEditable returns the index of the first slot.
func (p *Pattern) FirstEditable() int { return p.first }

// LastEditable returns the index of the last slot.
func (p *Pattern) LastEditable() int { return p.last }

// IsEditable reports whether index i is a slot.
func (p *Pattern) IsEditable(i int) bool {
	return i >= 0 && i < len(p.editable) && p.editable[i]
}

// Literal returns the pattern character at i.
func (p *Pattern) Literal(i int) rune {
	if i < 0 || i >= len(p.chars) {
		return 0
	}
	return p.chars[i]
}

// IsValidAt reports whether r may fill slot i.
func (p *Pattern) IsValidAt(r rune, i int) bool {
	if !p.IsEditable(i) {
		return false
	}
	return p.formats[p.chars[i]].Validate(r)
}

// Transform applies slot i's transform to r.
func (p *Pattern) Transform(r rune, i int) rune {
	if fc := p.formats[p.chars[i]]; fc.Transform != nil {
		return fc.Transform(r)
	}
	return r
}

// NextEditable returns the first slot at or after i, or Len() if none.
func (p *Pattern) NextEditable(i int) int {
	for i < len(p.chars) && !p.IsEditable(i) {
		i++
	}
	return i
}

// PrevEditable returns the last slot strictly before i, or -1 if none.
func (p *Pattern) PrevEditable(i int) int {
	i--
	for i >= 0 && !p.IsEditable(i) {
		i--
	}
	return i
}

// Format lays value over the pattern. Literals in value that line up with
// pattern literals are consumed, a placeholder rune leaves its slot empty,
// and any other rune a slot rejects is skipped.
func (p *Pattern) Format(value []rune) []rune {
	out := make([]rune, len(p.chars))
	vi := 0
	for i, ch := range p.chars {
		if !p.editable[i] {
			out[i] = ch
			if vi < len(value) && value[vi] == ch {
				vi++
			}
			continue
		}

		out[i] = p.placeholder
		for vi < len(value) {
			r := value[vi]
			vi++
			if r == p.placeholder {
				break
			}
			if p.IsValidAt(r, i) {
				out[i] = p.Transform(r, i)
				break
			}
		}
	}
	return out
}
