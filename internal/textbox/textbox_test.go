package textbox

import (
	"errors"
	"testing"
)

func TestNew_CaretAtEnd(t *testing.T) {
	b := New("abc")
	if b.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", b.Text(), "abc")
	}
	if start, end := b.Selection(); start != 3 || end != 3 {
		t.Errorf("Selection() = (%d, %d), want (3, 3)", start, end)
	}
}

func TestSetText(t *testing.T) {
	b := New("abc")
	b.Select(1, 1)

	b.SetText("abc")
	if b.Cursor() != 1 {
		t.Errorf("unchanged SetText moved caret to %d", b.Cursor())
	}

	b.SetText("(12) 3")
	if b.Cursor() != 6 {
		t.Errorf("Cursor() = %d, want 6", b.Cursor())
	}
}

func TestSetText_MaxLength(t *testing.T) {
	b := New("")
	b.SetMaxLength(3)
	b.SetText("abcdef")
	if b.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", b.Text(), "abc")
	}
}

func TestSelect(t *testing.T) {
	b := New("hello")

	if err := b.Select(4, 1); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if start, end := b.Selection(); start != 1 || end != 4 {
		t.Errorf("Selection() = (%d, %d), want (1, 4)", start, end)
	}
	if b.SelectedText() != "ell" {
		t.Errorf("SelectedText() = %q, want %q", b.SelectedText(), "ell")
	}

	b.Select(-2, 99)
	if start, end := b.Selection(); start != 0 || end != 5 {
		t.Errorf("clamped Selection() = (%d, %d), want (0, 5)", start, end)
	}
}

func TestSelect_Detached(t *testing.T) {
	b := New("hello")
	b.Focus()
	b.Detach()

	if err := b.Select(0, 1); !errors.Is(err, ErrDetached) {
		t.Errorf("Select on detached box error = %v, want ErrDetached", err)
	}
	if b.Focused() {
		t.Error("detached box should not be focused")
	}
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		maxLength  int
		insert     string
		want       string
		wantCursor int
	}{
		{"at caret", "ac", 1, 1, 0, "b", "abc", 2},
		{"replace selection", "a___d", 1, 4, 0, "bc", "abcd", 3},
		{"truncated at limit", "ab", 2, 2, 4, "cdef", "abcd", 4},
		{"full box", "abcd", 4, 4, 4, "e", "abcd", 4},
		{"selection frees room", "abcd", 1, 3, 4, "xyz", "axyd", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text)
			b.SetMaxLength(tt.maxLength)
			b.Select(tt.start, tt.end)

			b.InsertText(tt.insert)
			if b.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.want)
			}
			if b.Cursor() != tt.wantCursor || b.HasSelection() {
				t.Errorf("caret = %d (selection %v), want %d", b.Cursor(), b.HasSelection(), tt.wantCursor)
			}
		})
	}
}

func TestDeleteBackward(t *testing.T) {
	b := New("12/34")
	b.Select(3, 3)

	b.DeleteBackward()
	if b.Text() != "1234" || b.Cursor() != 2 {
		t.Errorf("after delete: %q caret %d, want %q caret 2", b.Text(), b.Cursor(), "1234")
	}

	b.Select(1, 3)
	b.DeleteBackward()
	if b.Text() != "14" || b.Cursor() != 1 {
		t.Errorf("after range delete: %q caret %d, want %q caret 1", b.Text(), b.Cursor(), "14")
	}

	b.Select(0, 0)
	b.DeleteBackward()
	if b.Text() != "14" {
		t.Errorf("delete at start changed text to %q", b.Text())
	}
}

func TestDeleteForward(t *testing.T) {
	b := New("abc")
	b.Select(1, 1)
	b.DeleteForward()
	if b.Text() != "ac" || b.Cursor() != 1 {
		t.Errorf("got %q caret %d, want %q caret 1", b.Text(), b.Cursor(), "ac")
	}

	b.End(false)
	b.DeleteForward()
	if b.Text() != "ac" {
		t.Errorf("delete at end changed text to %q", b.Text())
	}
}

func TestCut(t *testing.T) {
	b := New("(345) 452-1234")
	b.Select(1, 4)

	if got := b.Cut(); got != "345" {
		t.Errorf("Cut() = %q, want %q", got, "345")
	}
	if b.Text() != "() 452-1234" || b.Cursor() != 1 {
		t.Errorf("after cut: %q caret %d", b.Text(), b.Cursor())
	}
	if got := b.Cut(); got != "" {
		t.Errorf("Cut() without selection = %q, want empty", got)
	}
}

func TestMovement(t *testing.T) {
	b := New("abcd")

	b.Home(false)
	b.MoveRight(true)
	b.MoveRight(true)
	if start, end := b.Selection(); start != 0 || end != 2 {
		t.Errorf("extended Selection() = (%d, %d), want (0, 2)", start, end)
	}

	b.MoveLeft(false)
	if b.Cursor() != 0 || b.HasSelection() {
		t.Errorf("MoveLeft should collapse to selection start, caret %d", b.Cursor())
	}

	b.MoveLeft(false)
	if b.Cursor() != 0 {
		t.Errorf("MoveLeft past start: caret %d", b.Cursor())
	}

	b.End(true)
	if start, end := b.Selection(); start != 0 || end != 4 {
		t.Errorf("End(true) Selection() = (%d, %d), want (0, 4)", start, end)
	}
	b.MoveRight(false)
	if b.Cursor() != 4 || b.HasSelection() {
		t.Errorf("MoveRight should collapse to selection end, caret %d", b.Cursor())
	}

	b.SelectAll()
	if b.SelectedText() != "abcd" {
		t.Errorf("SelectAll selected %q", b.SelectedText())
	}
}
