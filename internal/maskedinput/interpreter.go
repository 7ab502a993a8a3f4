package maskedinput

import (
	"unicode/utf8"

	"github.com/abdullathedruid/maskform/internal/logger"
	"github.com/abdullathedruid/maskform/internal/selection"
)

// SignalKind is the kind of raw edit signal a control emits.
type SignalKind int

const (
	SignalTextChanged SignalKind = iota
	SignalKeyDown
	SignalKeyPress
	SignalPaste
)

func (k SignalKind) String() string {
	switch k {
	case SignalTextChanged:
		return "text-changed"
	case SignalKeyDown:
		return "key-down"
	case SignalKeyPress:
		return "key-press"
	case SignalPaste:
		return "paste"
	}
	return "unknown"
}

// Signal is one raw edit signal. Text holds the control's new text for
// SignalTextChanged and the clipboard text for SignalPaste.
type Signal struct {
	Kind SignalKind
	Text string
	Key  KeyEvent
}

// TextChanged builds a text-changed signal.
func TextChanged(text string) Signal { return Signal{Kind: SignalTextChanged, Text: text} }

// KeyDown builds a key-down signal.
func KeyDown(ev KeyEvent) Signal { return Signal{Kind: SignalKeyDown, Key: ev} }

// KeyPress builds a key-press signal.
func KeyPress(ev KeyEvent) Signal { return Signal{Kind: SignalKeyPress, Key: ev} }

// Paste builds a paste signal.
func Paste(text string) Signal { return Signal{Kind: SignalPaste, Text: text} }

// Op is the engine operation a signal was classified as.
type Op int

const (
	OpNone Op = iota
	OpPassthrough
	OpCut
	OpReplace
	OpBackspace
	OpUndo
	OpRedo
	OpInput
	OpPaste
	OpPasteFallback
)

var opNames = [...]string{
	OpNone:          "none",
	OpPassthrough:   "passthrough",
	OpCut:           "cut",
	OpReplace:       "replace",
	OpBackspace:     "backspace",
	OpUndo:          "undo",
	OpRedo:          "redo",
	OpInput:         "input",
	OpPaste:         "paste",
	OpPasteFallback: "paste-fallback",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Outcome reports how a signal was handled.
type Outcome struct {
	Op Op
	// Prevented is set when the control's own default action for the
	// signal must not run.
	Prevented bool
	// Changed is set when the engine accepted the operation.
	Changed bool
}

func (f *Field) interpret(sig Signal) Outcome {
	var out Outcome
	switch sig.Kind {
	case SignalTextChanged:
		out = f.onTextChanged(sig)
	case SignalKeyDown:
		out = f.onKeyDown(sig)
	case SignalKeyPress:
		out = f.onKeyPress(sig)
	case SignalPaste:
		out = f.onPaste(sig)
	}
	if out.Op != OpNone {
		logger.Debug("maskedinput: %s -> %s changed=%v value=%q", sig.Kind, out.Op, out.Changed, f.adapter.Value())
	}
	return out
}

func (f *Field) onTextChanged(sig Signal) Outcome {
	text := sig.Text
	value := f.adapter.Value()
	if text == value || text == f.adapter.Display() {
		f.notify(sig)
		return Outcome{Op: OpPassthrough}
	}

	out := Outcome{Prevented: true, Changed: true}
	delta := utf8.RuneCountInString(value) - utf8.RuneCountInString(text)
	sel := selection.Read(f.control)
	if delta > 0 && isDeletion(value, text, sel.Start, delta) {
		out.Op = OpCut
		next, ok := f.adapter.Backspace(selection.Range{Start: sel.Start, End: sel.Start + delta})
		if !ok {
			// Only empty slots were removed; put the text back.
			f.render(selection.Caret(sel.Start), false)
			return Outcome{Op: OpCut, Prevented: true}
		}
		f.render(next, false)
	} else {
		out.Op = OpReplace
		f.adapter.SetValue(text)
		f.render(selection.Caret(f.adapter.FilledEnd()), false)
	}
	f.notify(sig)
	return out
}

func (f *Field) onKeyDown(sig Signal) Outcome {
	ev := sig.Key
	switch {
	case IsUndo(ev):
		out := Outcome{Op: OpUndo, Prevented: true}
		sel, ok := f.adapter.Undo(selection.Read(f.control))
		if ok {
			out.Changed = true
			f.render(sel, true)
			f.notify(sig)
		}
		return out
	case IsRedo(ev):
		out := Outcome{Op: OpRedo, Prevented: true}
		sel, ok := f.adapter.Redo()
		if ok {
			out.Changed = true
			f.render(sel, true)
			f.notify(sig)
		}
		return out
	case IsBackspace(ev):
		out := Outcome{Op: OpBackspace, Prevented: true}
		sel, ok := f.adapter.Backspace(selection.Read(f.control))
		if ok {
			out.Changed = true
			f.render(sel, false)
			f.notify(sig)
		}
		return out
	}
	return Outcome{}
}

func (f *Field) onKeyPress(sig Signal) Outcome {
	ev := sig.Key
	if ev.IsModified() || !ev.IsRune() {
		return Outcome{}
	}

	out := Outcome{Op: OpInput, Prevented: true}
	sel, ok := f.adapter.Input(ev.Rune, selection.Read(f.control))
	if ok {
		out.Changed = true
		f.control.SetText(f.adapter.Value())
		selection.Write(f.control, sel)
		f.notify(sig)
	}
	return out
}

func (f *Field) onPaste(sig Signal) Outcome {
	if sig.Text == "" {
		return Outcome{Prevented: true}
	}

	sel, ok := f.adapter.Paste(sig.Text, selection.Read(f.control))
	if ok {
		f.control.SetText(f.adapter.Value())
		f.sched.Defer(func() {
			if f.disposed {
				return
			}
			selection.Write(f.control, sel)
		})
		f.notify(sig)
		return Outcome{Op: OpPaste, Prevented: true, Changed: true}
	}

	before := f.adapter.Value()
	f.adapter.SetValue(sig.Text)
	f.render(selection.Caret(f.adapter.FilledEnd()), false)
	out := Outcome{Op: OpPasteFallback, Prevented: true}
	if f.adapter.Value() != before {
		out.Changed = true
		f.notify(sig)
	}
	return out
}

// render pushes the display value to the control and restores sel. Unless
// always is set, the selection is left alone while the display is empty.
func (f *Field) render(sel selection.Range, always bool) {
	display := f.adapter.Display()
	f.control.SetText(display)
	if always || display != "" {
		selection.Write(f.control, sel)
	}
}

// isDeletion reports whether text is value with delta runes removed at
// start.
func isDeletion(value, text string, start, delta int) bool {
	v := []rune(value)
	if start < 0 || start+delta > len(v) {
		return false
	}
	return string(v[:start])+string(v[start+delta:]) == text
}
