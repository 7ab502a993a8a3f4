package maskedinput

import (
	"strings"
	"unicode"
)

// Key identifies a non-character key, or KeyRune for characters.
type Key int

const (
	KeyRune Key = iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyTab
	KeyEnter
	KeyEscape
)

var keyNames = map[Key]string{
	KeyRune:      "Rune",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyTab:       "Tab",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// KeyEvent is a single key press as delivered to the field.
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// RuneEvent builds a character key event.
func RuneEvent(r rune, mods Modifier) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Modifiers: mods}
}

// SpecialEvent builds a key event for a non-character key.
func SpecialEvent(k Key, mods Modifier) KeyEvent {
	return KeyEvent{Key: k, Modifiers: mods}
}

// IsRune reports whether the event carries a character.
func (e KeyEvent) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether ctrl, alt or meta is held. Shift alone does
// not count for characters since it only changes the character.
func (e KeyEvent) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Has reports whether every modifier in m is held.
func (e KeyEvent) Has(m Modifier) bool {
	return e.Modifiers&m == m
}

func (e KeyEvent) String() string {
	var parts []string
	if e.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if e.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if e.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	if e.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if e.IsRune() {
		parts = append(parts, string(e.Rune))
	} else {
		parts = append(parts, strings.ToLower(e.Key.String()))
	}
	return strings.Join(parts, "+")
}

// IsUndo reports whether e is the undo combo: ctrl/meta+z, or
// ctrl/meta+shift+y.
func IsUndo(e KeyEvent) bool {
	return isHistoryCombo(e, 'z', 'y')
}

// IsRedo reports whether e is the redo combo: ctrl/meta+y, or
// ctrl/meta+shift+z.
func IsRedo(e KeyEvent) bool {
	return isHistoryCombo(e, 'y', 'z')
}

func isHistoryCombo(e KeyEvent, plain, shifted rune) bool {
	if !e.IsRune() || e.Modifiers&(ModCtrl|ModMeta) == 0 {
		return false
	}
	want := plain
	if e.Has(ModShift) {
		want = shifted
	}
	return unicode.ToLower(e.Rune) == want
}

// IsBackspace reports whether e is a backspace key press.
func IsBackspace(e KeyEvent) bool {
	return e.Key == KeyBackspace
}
