package maskedinput

// Editable is a Control with the default editing actions of a native input.
// When the bound control implements it, the Handle methods run those
// defaults for signals the field does not prevent.
type Editable interface {
	Control
	InsertText(s string)
	DeleteBackward()
	DeleteForward()
	Cut() string
	SelectAll()
	MoveLeft(extend bool)
	MoveRight(extend bool)
	Home(extend bool)
	End(extend bool)
}

// HandleKey dispatches ev the way a native input does: key-down, then
// key-press for characters, then the control's default action. A default
// action that changes the text is reported back as text-changed. It returns
// false when nothing handled the key.
func (f *Field) HandleKey(ev KeyEvent) bool {
	if !f.live() {
		return false
	}
	if out := f.OnUserEdit(KeyDown(ev)); out.Prevented {
		return true
	}
	if ev.IsRune() && !ev.IsModified() {
		if out := f.OnUserEdit(KeyPress(ev)); out.Prevented {
			return true
		}
	}

	ed, ok := f.control.(Editable)
	if !ok {
		return false
	}
	before := ed.Text()
	handled := applyDefault(ed, ev)
	f.emitIfChanged(before)
	return handled
}

// HandlePaste delivers clipboard text as a paste signal.
func (f *Field) HandlePaste(text string) {
	if !f.live() {
		return
	}
	if out := f.OnUserEdit(Paste(text)); out.Prevented {
		return
	}
	if ed, ok := f.control.(Editable); ok {
		before := ed.Text()
		ed.InsertText(text)
		f.emitIfChanged(before)
	}
}

// HandleCut removes the control's selection and reports the shortened text.
// It returns the removed text for the clipboard.
func (f *Field) HandleCut() string {
	ed, ok := f.control.(Editable)
	if !f.live() || !ok {
		return ""
	}
	before := ed.Text()
	cut := ed.Cut()
	f.emitIfChanged(before)
	return cut
}

func (f *Field) emitIfChanged(before string) {
	if text := f.control.Text(); text != before {
		f.OnUserEdit(TextChanged(text))
	}
}

func applyDefault(ed Editable, ev KeyEvent) bool {
	extend := ev.Has(ModShift)
	switch ev.Key {
	case KeyBackspace:
		ed.DeleteBackward()
	case KeyDelete:
		ed.DeleteForward()
	case KeyLeft:
		ed.MoveLeft(extend)
	case KeyRight:
		ed.MoveRight(extend)
	case KeyHome:
		ed.Home(extend)
	case KeyEnd:
		ed.End(extend)
	case KeyRune:
		switch {
		case ev.Has(ModCtrl) && (ev.Rune == 'a' || ev.Rune == 'A'):
			ed.SelectAll()
		case !ev.IsModified():
			ed.InsertText(string(ev.Rune))
		default:
			return false
		}
	default:
		return false
	}
	return true
}
