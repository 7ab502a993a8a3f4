// Package mask implements a fixed-length input mask: a pattern of literal
// characters and typed slots, the value laid over it, and an undo history.
//
// Edit operations take the caller's current selection and return the
// selection to restore, so the engine never holds caret state of its own.
package mask

import (
	"github.com/go-errors/errors"

	"github.com/abdullathedruid/maskform/internal/selection"
)

// Options configures a new Mask.
type Options struct {
	Pattern          string
	Value            string
	FormatCharacters FormatCharacters // merged over the defaults
	PlaceholderChar  rune
	HistoryLimit     int
}

// Mask holds a compiled pattern, its current value and edit history.
type Mask struct {
	pattern     *Pattern
	formats     FormatCharacters
	placeholder rune
	value       []rune
	emptyValue  string
	history     history
}

// New compiles opts.Pattern and formats opts.Value against it.
func New(opts Options) (*Mask, error) {
	formats := Merge(opts.FormatCharacters)
	p, err := NewPattern(opts.Pattern, formats, opts.PlaceholderChar)
	if err != nil {
		return nil, err
	}
	m := &Mask{
		pattern:     p,
		formats:     formats,
		placeholder: p.Placeholder(),
		history:     newHistory(opts.HistoryLimit),
	}
	m.emptyValue = string(p.Format(nil))
	m.SetValue(opts.Value)
	return m, nil
}

// Pattern returns the compiled pattern.
func (m *Mask) Pattern() *Pattern { return m.pattern }

// Value returns the formatted value, placeholders included.
func (m *Mask) Value() string { return string(m.value) }

// EmptyValue returns the pattern with every slot unfilled.
func (m *Mask) EmptyValue() string { return m.emptyValue }

// RawValue returns the slot contents without literals. Unfilled slots
// appear as the placeholder rune.
func (m *Mask) RawValue() string {
	raw := make([]rune, 0, len(m.value))
	for i, r := range m.value {
		if m.pattern.IsEditable(i) {
			raw = append(raw, r)
		}
	}
	return string(raw)
}

// FilledEnd returns the offset just past the last filled slot, or 0 when
// nothing is filled.
func (m *Mask) FilledEnd() int {
	for i := len(m.value) - 1; i >= 0; i-- {
		if m.pattern.IsEditable(i) && m.value[i] != m.placeholder {
			return i + 1
		}
	}
	return 0
}

// Complete reports whether every slot is filled.
func (m *Mask) Complete() bool {
	for i, r := range m.value {
		if m.pattern.IsEditable(i) && r == m.placeholder {
			return false
		}
	}
	return true
}

// SetValue replaces the whole value. Runes a slot rejects are skipped.
// History is left alone.
func (m *Mask) SetValue(value string) {
	m.value = m.pattern.Format([]rune(value))
}

// SetPattern recompiles the mask and formats value against the new
// pattern. History is cleared. On error the mask is unchanged.
func (m *Mask) SetPattern(source, value string) error {
	p, err := NewPattern(source, m.formats, m.placeholder)
	if err != nil {
		return errors.WrapPrefix(err, "set pattern", 0)
	}
	m.pattern = p
	m.emptyValue = string(p.Format(nil))
	m.SetValue(value)
	m.history.reset()
	return nil
}

// Input types r at sel. A non-empty selection is cleared first. It returns
// the caret after the typed rune, skipping any literals that follow.
func (m *Mask) Input(r rune, sel selection.Range) (selection.Range, bool) {
	before := m.snapshot(sel)
	next, ok := m.insert(r, m.clamp(sel))
	if !ok {
		return sel, false
	}
	m.history.record(before)
	return next, true
}

func (m *Mask) insert(r rune, sel selection.Range) (selection.Range, bool) {
	n := m.pattern.Len()
	if sel.Collapsed() && sel.Start >= n {
		return sel, false
	}

	idx := sel.Start
	if idx < m.pattern.FirstEditable() {
		idx = m.pattern.FirstEditable()
	}
	idx = m.pattern.NextEditable(idx)
	if idx >= n || !m.pattern.IsValidAt(r, idx) {
		return sel, false
	}
	m.value[idx] = m.pattern.Transform(r, idx)

	for end := sel.End - 1; end > idx; end-- {
		if m.pattern.IsEditable(end) {
			m.value[end] = m.placeholder
		}
	}
	return selection.Caret(m.pattern.NextEditable(idx + 1)), true
}

// Backspace clears the slot before a caret, or every slot in a selection.
// A caret with no slot before it, or slots that are already empty, is a
// no-op.
func (m *Mask) Backspace(sel selection.Range) (selection.Range, bool) {
	sel = m.clamp(sel)
	if sel.Start == 0 && sel.End == 0 {
		return sel, false
	}
	before := m.snapshot(sel)

	if sel.Collapsed() {
		prev := m.pattern.PrevEditable(sel.Start)
		if prev < 0 || m.value[prev] == m.placeholder {
			return sel, false
		}
		m.value[prev] = m.placeholder
		sel = selection.Caret(prev)
	} else {
		cleared := false
		for end := sel.End - 1; end >= sel.Start; end-- {
			if m.pattern.IsEditable(end) && m.value[end] != m.placeholder {
				m.value[end] = m.placeholder
				cleared = true
			}
		}
		if !cleared {
			return sel, false
		}
		sel = selection.Caret(sel.Start)
	}

	m.history.record(before)
	return sel, true
}

// Paste types text at sel as a single undoable edit. Literals in text that
// match the run of pattern literals just passed are skipped. When the caret
// sits in leading literals, text must begin with them. Any rejected rune
// rolls the whole paste back and reports false.
func (m *Mask) Paste(text string, sel selection.Range) (selection.Range, bool) {
	orig := sel
	sel = m.clamp(sel)
	before := m.snapshot(orig)
	saved := append([]rune(nil), m.value...)
	input := []rune(text)

	if first := m.pattern.FirstEditable(); sel.Start < first {
		for i := 0; i < first-sel.Start; i++ {
			if i >= len(input) || input[i] != m.pattern.Literal(sel.Start+i) {
				return orig, false
			}
		}
		input = input[first-sel.Start:]
		sel.Start = first
		if sel.End < first {
			sel.End = first
		}
	}

	cur := sel
	for _, r := range input {
		if cur.Start > m.pattern.LastEditable() {
			break
		}
		next, ok := m.insert(r, cur)
		if !ok {
			if m.passedLiteral(r, cur.Start) {
				continue
			}
			m.value = saved
			return orig, false
		}
		cur = next
	}

	if string(m.value) != before.value {
		m.history.record(before)
	}
	return cur, true
}

// Undo restores the state before the most recent edit. sel is the current
// selection, kept so Redo can return to it.
func (m *Mask) Undo(sel selection.Range) (selection.Range, bool) {
	s, ok := m.history.undo(m.snapshot(sel))
	if !ok {
		return sel, false
	}
	m.value = []rune(s.value)
	return s.sel, true
}

// Redo reapplies an edit rewound by Undo.
func (m *Mask) Redo() (selection.Range, bool) {
	s, ok := m.history.redo()
	if !ok {
		return selection.Range{}, false
	}
	m.value = []rune(s.value)
	return s.sel, true
}

// passedLiteral reports whether r is one of the literals immediately
// before pos.
func (m *Mask) passedLiteral(r rune, pos int) bool {
	for i := pos - 1; i >= 0 && !m.pattern.IsEditable(i); i-- {
		if m.pattern.Literal(i) == r {
			return true
		}
	}
	return false
}

func (m *Mask) snapshot(sel selection.Range) snapshot {
	return snapshot{value: string(m.value), sel: sel}
}

func (m *Mask) clamp(sel selection.Range) selection.Range {
	return sel.Clamp(m.pattern.Len())
}
