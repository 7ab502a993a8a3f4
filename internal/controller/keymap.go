package controller

import (
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/maskedinput"
)

// action is an editing command bound to a configurable key.
type action int

const (
	actUndo action = iota
	actRedo
	actSelectAll
	actCut
	actPaste
	actClear
)

func (a action) String() string {
	switch a {
	case actUndo:
		return "undo"
	case actRedo:
		return "redo"
	case actSelectAll:
		return "select_all"
	case actCut:
		return "cut"
	case actPaste:
		return "paste"
	case actClear:
		return "clear"
	default:
		return "unknown"
	}
}

// describe returns the help text for a.
func (a action) describe() string {
	switch a {
	case actUndo:
		return "Undo"
	case actRedo:
		return "Redo"
	case actSelectAll:
		return "Select all"
	case actCut:
		return "Cut selection"
	case actPaste:
		return "Paste clipboard"
	case actClear:
		return "Clear field"
	default:
		return ""
	}
}

type binding struct {
	key string
	act action
}

// editingBindings resolves the editing bindings in a stable order. Rune and
// unparseable bindings are skipped; config validation reports them.
func editingBindings(keys config.KeyBindings) []binding {
	all := []binding{
		{keys.Undo, actUndo},
		{keys.Redo, actRedo},
		{keys.SelectAll, actSelectAll},
		{keys.Cut, actCut},
		{keys.Paste, actPaste},
		{keys.Clear, actClear},
	}

	var resolved []binding
	for _, b := range all {
		if b.key == "" {
			continue
		}
		k, err := config.ParseKey(b.key)
		if err != nil || k.IsRune() {
			continue
		}
		resolved = append(resolved, b)
	}
	return resolved
}

// fieldActions maps the resolved editing bindings to their gocui keys.
func fieldActions(keys config.KeyBindings) map[gocui.Key]action {
	bindings := editingBindings(keys)
	actions := make(map[gocui.Key]action, len(bindings))
	for _, b := range bindings {
		k, _ := config.ParseKey(b.key)
		actions[k.GocuiKey()] = b.act
	}
	return actions
}

// ctrlRunes maps control keys to the letter they are typed with.
var ctrlRunes = map[gocui.Key]rune{
	gocui.KeyCtrlA: 'a',
	gocui.KeyCtrlY: 'y',
	gocui.KeyCtrlZ: 'z',
}

// TranslateKey converts a gocui key event into a field key event. It
// reports false for keys the field has no use for, such as tab and enter,
// so they fall through to the global bindings.
func TranslateKey(key gocui.Key, ch rune, mod gocui.Modifier) (maskedinput.KeyEvent, bool) {
	mods := maskedinput.ModNone
	if mod&gocui.ModAlt != 0 {
		mods |= maskedinput.ModAlt
	}

	if ch != 0 {
		return maskedinput.RuneEvent(ch, mods), true
	}
	if r, ok := ctrlRunes[key]; ok {
		return maskedinput.RuneEvent(r, mods|maskedinput.ModCtrl), true
	}

	var k maskedinput.Key
	switch {
	case key == gocui.KeySpace:
		return maskedinput.RuneEvent(' ', mods), true
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		k = maskedinput.KeyBackspace
	case key == gocui.KeyDelete:
		k = maskedinput.KeyDelete
	case key == gocui.KeyArrowLeft:
		k = maskedinput.KeyLeft
	case key == gocui.KeyArrowRight:
		k = maskedinput.KeyRight
	case key == gocui.KeyHome:
		k = maskedinput.KeyHome
	case key == gocui.KeyEnd:
		k = maskedinput.KeyEnd
	default:
		return maskedinput.KeyEvent{}, false
	}
	return maskedinput.SpecialEvent(k, mods), true
}
