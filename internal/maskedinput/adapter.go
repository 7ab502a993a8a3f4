package maskedinput

import (
	"github.com/abdullathedruid/maskform/internal/mask"
	"github.com/abdullathedruid/maskform/internal/selection"
)

// Adapter owns the mask engine for one field and derives the values the
// field renders.
type Adapter struct {
	m *mask.Mask
}

// NewAdapter compiles a mask engine from opts.
func NewAdapter(opts mask.Options) (*Adapter, error) {
	m, err := mask.New(opts)
	if err != nil {
		return nil, err
	}
	return &Adapter{m: m}, nil
}

// Value returns the formatted engine value, placeholders included.
func (a *Adapter) Value() string { return a.m.Value() }

// RawValue returns the slot contents without literals.
func (a *Adapter) RawValue() string { return a.m.RawValue() }

// EmptyValue returns the unfilled pattern skeleton.
func (a *Adapter) EmptyValue() string { return a.m.EmptyValue() }

// Pattern returns the pattern source.
func (a *Adapter) Pattern() string { return a.m.Pattern().Source() }

// PatternLength returns the rendered length of the pattern.
func (a *Adapter) PatternLength() int { return a.m.Pattern().Len() }

// Display returns the value to show in the control: the engine value, or ""
// while nothing has been entered.
func (a *Adapter) Display() string {
	v := a.m.Value()
	if v == a.m.EmptyValue() {
		return ""
	}
	return v
}

// FilledEnd returns the offset just past the last filled slot.
func (a *Adapter) FilledEnd() int { return a.m.FilledEnd() }

// Complete reports whether every slot is filled.
func (a *Adapter) Complete() bool { return a.m.Complete() }

// SetPattern recompiles the engine, carrying the current raw value over.
func (a *Adapter) SetPattern(source string) error {
	return a.m.SetPattern(source, a.m.RawValue())
}

// SetValue replaces the whole value.
func (a *Adapter) SetValue(v string) { a.m.SetValue(v) }

func (a *Adapter) Input(r rune, sel selection.Range) (selection.Range, bool) {
	return a.m.Input(r, sel)
}

func (a *Adapter) Backspace(sel selection.Range) (selection.Range, bool) {
	return a.m.Backspace(sel)
}

func (a *Adapter) Paste(text string, sel selection.Range) (selection.Range, bool) {
	return a.m.Paste(text, sel)
}

func (a *Adapter) Undo(sel selection.Range) (selection.Range, bool) {
	return a.m.Undo(sel)
}

func (a *Adapter) Redo() (selection.Range, bool) {
	return a.m.Redo()
}
