// Package textbox is a headless single-line text input. It keeps its own
// text, caret and selection and implements the default editing actions of
// a native input control, without knowing anything about masks.
package textbox

import (
	"github.com/go-errors/errors"
)

// ErrDetached is returned when selecting on a box that has been detached.
var ErrDetached = errors.New("text box is detached")

// Box is a single-line input. The zero value is an empty, attached box with
// no length limit.
type Box struct {
	text      []rune
	cursor    int
	anchor    int
	maxLength int // 0 = no limit
	focused   bool
	detached  bool
}

// New creates a box holding text with the caret at the end.
func New(text string) *Box {
	b := &Box{}
	b.SetText(text)
	return b
}

// Text returns the current text.
func (b *Box) Text() string {
	return string(b.text)
}

// Len returns the text length in runes.
func (b *Box) Len() int {
	return len(b.text)
}

// SetText replaces the text programmatically. As with a native input, the
// caret moves to the end when the text actually changes.
func (b *Box) SetText(text string) {
	if text == string(b.text) {
		return
	}
	b.text = []rune(text)
	if b.maxLength > 0 && len(b.text) > b.maxLength {
		b.text = b.text[:b.maxLength]
	}
	b.cursor = len(b.text)
	b.anchor = b.cursor
}

// Selection returns the ordered selection bounds.
func (b *Box) Selection() (start, end int) {
	if b.anchor < b.cursor {
		return b.anchor, b.cursor
	}
	return b.cursor, b.anchor
}

// Select sets the selection, clamped to the text. The caret ends at end.
func (b *Box) Select(start, end int) error {
	if b.detached {
		return ErrDetached
	}
	b.anchor = b.clamp(start)
	b.cursor = b.clamp(end)
	return nil
}

// Cursor returns the caret position.
func (b *Box) Cursor() int {
	return b.cursor
}

// HasSelection reports whether any text is highlighted.
func (b *Box) HasSelection() bool {
	return b.anchor != b.cursor
}

// SelectedText returns the highlighted text.
func (b *Box) SelectedText() string {
	start, end := b.Selection()
	return string(b.text[start:end])
}

// MaxLength returns the length limit, 0 when unlimited.
func (b *Box) MaxLength() int {
	return b.maxLength
}

// SetMaxLength limits typed and pasted text. Existing text is not trimmed.
func (b *Box) SetMaxLength(n int) {
	if n < 0 {
		n = 0
	}
	b.maxLength = n
}

// Focus marks the box as focused.
func (b *Box) Focus() { b.focused = true }

// Blur clears focus.
func (b *Box) Blur() { b.focused = false }

// Focused reports whether the box has focus.
func (b *Box) Focused() bool { return b.focused }

// Detach marks the box as removed; selection writes fail afterwards.
func (b *Box) Detach() {
	b.detached = true
	b.focused = false
}

// Detached reports whether Detach was called.
func (b *Box) Detached() bool { return b.detached }

// InsertText replaces the selection with s, truncated so the text never
// grows past the length limit.
func (b *Box) InsertText(s string) {
	start, end := b.Selection()
	ins := []rune(s)
	if b.maxLength > 0 {
		room := b.maxLength - (len(b.text) - (end - start))
		if room < 0 {
			room = 0
		}
		if len(ins) > room {
			ins = ins[:room]
		}
	}

	text := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	text = append(text, b.text[:start]...)
	text = append(text, ins...)
	text = append(text, b.text[end:]...)
	b.text = text
	b.cursor = start + len(ins)
	b.anchor = b.cursor
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b *Box) DeleteBackward() {
	if b.HasSelection() {
		b.deleteSelection()
		return
	}
	if b.cursor == 0 {
		return
	}
	b.text = append(b.text[:b.cursor-1:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	b.anchor = b.cursor
}

// DeleteForward removes the selection, or the rune after the caret.
func (b *Box) DeleteForward() {
	if b.HasSelection() {
		b.deleteSelection()
		return
	}
	if b.cursor >= len(b.text) {
		return
	}
	b.text = append(b.text[:b.cursor:b.cursor], b.text[b.cursor+1:]...)
}

// Cut removes the selection and returns it.
func (b *Box) Cut() string {
	cut := b.SelectedText()
	b.deleteSelection()
	return cut
}

// SelectAll highlights the whole text.
func (b *Box) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// MoveLeft moves the caret one rune left. With extend the selection grows;
// otherwise an existing selection collapses to its start.
func (b *Box) MoveLeft(extend bool) {
	if !extend && b.HasSelection() {
		start, _ := b.Selection()
		b.setCaret(start)
		return
	}
	b.moveTo(b.cursor-1, extend)
}

// MoveRight moves the caret one rune right.
func (b *Box) MoveRight(extend bool) {
	if !extend && b.HasSelection() {
		_, end := b.Selection()
		b.setCaret(end)
		return
	}
	b.moveTo(b.cursor+1, extend)
}

// Home moves the caret to the start of the text.
func (b *Box) Home(extend bool) {
	b.moveTo(0, extend)
}

// End moves the caret to the end of the text.
func (b *Box) End(extend bool) {
	b.moveTo(len(b.text), extend)
}

func (b *Box) moveTo(pos int, extend bool) {
	b.cursor = b.clamp(pos)
	if !extend {
		b.anchor = b.cursor
	}
}

func (b *Box) setCaret(pos int) {
	b.cursor = b.clamp(pos)
	b.anchor = b.cursor
}

func (b *Box) deleteSelection() {
	start, end := b.Selection()
	if start == end {
		return
	}
	b.text = append(b.text[:start:start], b.text[end:]...)
	b.setCaret(start)
}

func (b *Box) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}
