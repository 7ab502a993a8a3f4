package maskedinput

import "testing"

func TestHistoryCombos(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		undo bool
		redo bool
	}{
		{"ctrl+z", RuneEvent('z', ModCtrl), true, false},
		{"meta+z", RuneEvent('z', ModMeta), true, false},
		{"ctrl+shift+z", RuneEvent('Z', ModCtrl|ModShift), false, true},
		{"ctrl+y", RuneEvent('y', ModCtrl), false, true},
		{"ctrl+shift+y", RuneEvent('Y', ModCtrl|ModShift), true, false},
		{"plain z", RuneEvent('z', ModNone), false, false},
		{"alt+z", RuneEvent('z', ModAlt), false, false},
		{"ctrl+x", RuneEvent('x', ModCtrl), false, false},
		{"backspace", SpecialEvent(KeyBackspace, ModCtrl), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUndo(tt.ev); got != tt.undo {
				t.Errorf("IsUndo(%s) = %v, want %v", tt.ev, got, tt.undo)
			}
			if got := IsRedo(tt.ev); got != tt.redo {
				t.Errorf("IsRedo(%s) = %v, want %v", tt.ev, got, tt.redo)
			}
		})
	}
}

func TestKeyEvent_IsModified(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want bool
	}{
		{RuneEvent('a', ModNone), false},
		{RuneEvent('A', ModShift), false},
		{RuneEvent('a', ModCtrl), true},
		{RuneEvent('a', ModAlt), true},
		{RuneEvent('a', ModMeta), true},
		{SpecialEvent(KeyLeft, ModNone), false},
		{SpecialEvent(KeyLeft, ModShift), true},
	}

	for _, tt := range tests {
		if got := tt.ev.IsModified(); got != tt.want {
			t.Errorf("%s.IsModified() = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestKeyEvent_String(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{RuneEvent('z', ModCtrl|ModShift), "ctrl+shift+z"},
		{SpecialEvent(KeyBackspace, ModNone), "backspace"},
		{RuneEvent('5', ModNone), "5"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
