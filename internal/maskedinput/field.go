// Package maskedinput binds a mask engine to a single-line text control.
//
// A Field sits between the control and the engine. User edit signals are
// classified into engine operations, applied, and the resulting value and
// selection are written back to the control. External updates to the mask
// or value go through the reconciliation path instead.
package maskedinput

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/abdullathedruid/maskform/internal/mask"
	"github.com/abdullathedruid/maskform/internal/selection"
)

// Control is the text control a Field drives.
type Control interface {
	selection.Selectable
	SetText(text string)
	SetMaxLength(n int)
}

// Scheduler runs fn on a later turn of the event loop.
type Scheduler interface {
	Defer(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// Defer calls s(fn).
func (s SchedulerFunc) Defer(fn func()) { s(fn) }

// immediate runs deferred work straight away. Used when no scheduler is
// supplied.
type immediate struct{}

func (immediate) Defer(fn func()) { fn() }

// ChangeEvent is passed to Props.OnChange.
type ChangeEvent struct {
	Signal Signal
	Value  string // display value
	Raw    string
}

// Props configures a Field.
type Props struct {
	Mask             string
	Value            string
	FormatCharacters mask.FormatCharacters
	PlaceholderChar  rune
	HistoryLimit     int

	// Size and Placeholder default to the pattern length and the empty
	// value when zero.
	Size        int
	Placeholder string

	// Attrs are passed through to the rendered control untouched.
	Attrs map[string]string

	OnChange func(ChangeEvent)
}

// ConfigurationFault reports a missing or malformed mask.
type ConfigurationFault struct {
	Mask string
	Err  error
}

func (e *ConfigurationFault) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid mask %q", e.Mask)
	}
	return fmt.Sprintf("invalid mask %q: %v", e.Mask, e.Err)
}

func (e *ConfigurationFault) Unwrap() error { return e.Err }

// Field is one masked input bound to a control.
type Field struct {
	control  Control
	sched    Scheduler
	props    Props
	adapter  *Adapter
	disposed bool
}

// NewField creates a field for control. A nil scheduler runs deferred work
// immediately.
func NewField(control Control, sched Scheduler) *Field {
	if sched == nil {
		sched = immediate{}
	}
	return &Field{control: control, sched: sched}
}

// Initialize compiles the mask and renders the initial value.
func (f *Field) Initialize(props Props) error {
	if props.Mask == "" {
		return errors.Wrap(&ConfigurationFault{Mask: props.Mask, Err: errors.New("mask is required")}, 1)
	}
	a, err := NewAdapter(mask.Options{
		Pattern:          props.Mask,
		Value:            props.Value,
		FormatCharacters: props.FormatCharacters,
		PlaceholderChar:  props.PlaceholderChar,
		HistoryLimit:     props.HistoryLimit,
	})
	if err != nil {
		return errors.Wrap(&ConfigurationFault{Mask: props.Mask, Err: err}, 1)
	}

	f.adapter = a
	f.props = props
	f.disposed = false
	f.control.SetMaxLength(a.PatternLength())
	f.control.SetText(a.Display())
	return nil
}

// OnExternalUpdate applies new props coming from the host rather than from
// user interaction.
func (f *Field) OnExternalUpdate(props Props) error {
	if !f.live() {
		return nil
	}
	return f.reconcile(props)
}

// OnUserEdit handles one edit signal from the control.
func (f *Field) OnUserEdit(sig Signal) Outcome {
	if !f.live() {
		return Outcome{}
	}
	return f.interpret(sig)
}

// Dispose detaches the field. Deferred work scheduled earlier becomes a
// no-op.
func (f *Field) Dispose() {
	f.disposed = true
}

// Disposed reports whether Dispose was called.
func (f *Field) Disposed() bool { return f.disposed }

// Control returns the bound control.
func (f *Field) Control() Control { return f.control }

// Value returns the display value: "" until something is entered.
func (f *Field) Value() string {
	if f.adapter == nil {
		return ""
	}
	return f.adapter.Display()
}

// RawValue returns the entered characters without literals.
func (f *Field) RawValue() string {
	if f.adapter == nil {
		return ""
	}
	return f.adapter.RawValue()
}

// Mask returns the current pattern source.
func (f *Field) Mask() string { return f.props.Mask }

// Complete reports whether every slot is filled.
func (f *Field) Complete() bool {
	return f.adapter != nil && f.adapter.Complete()
}

// MaxLength returns the pattern length.
func (f *Field) MaxLength() int {
	if f.adapter == nil {
		return 0
	}
	return f.adapter.PatternLength()
}

// Size returns the configured size, defaulting to the pattern length.
func (f *Field) Size() int {
	if f.props.Size > 0 {
		return f.props.Size
	}
	return f.MaxLength()
}

// Placeholder returns the configured placeholder, defaulting to the empty
// value.
func (f *Field) Placeholder() string {
	if f.props.Placeholder != "" {
		return f.props.Placeholder
	}
	if f.adapter == nil {
		return ""
	}
	return f.adapter.EmptyValue()
}

// Attr returns a pass-through attribute.
func (f *Field) Attr(name string) (string, bool) {
	v, ok := f.props.Attrs[name]
	return v, ok
}

func (f *Field) live() bool {
	return f.adapter != nil && !f.disposed
}

func (f *Field) notify(sig Signal) {
	if f.props.OnChange == nil {
		return
	}
	f.props.OnChange(ChangeEvent{
		Signal: sig,
		Value:  f.adapter.Display(),
		Raw:    f.adapter.RawValue(),
	})
}
