// Package selection reads and writes caret/selection ranges on text controls.
package selection

import (
	"unicode/utf8"

	"github.com/abdullathedruid/maskform/internal/logger"
)

// Range is a caret or highlighted span as rune offsets into displayed text.
// A caret is a Range with Start == End.
type Range struct {
	Start int
	End   int
}

// Caret returns a collapsed range at pos.
func Caret(pos int) Range {
	return Range{Start: pos, End: pos}
}

// Collapsed reports whether the range is a plain caret.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Clamp orders the range and limits both ends to [0, length].
func (r Range) Clamp(length int) Range {
	if length < 0 {
		length = 0
	}
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = clampInt(r.Start, 0, length)
	r.End = clampInt(r.End, 0, length)
	return r
}

// Control is anything that displays text.
type Control interface {
	Text() string
}

// Selectable is a Control that supports caret and selection.
type Selectable interface {
	Control
	Selection() (start, end int)
	Select(start, end int) error
}

// Read returns the current selection of c. Controls without selection
// support report a caret at the end of their text.
func Read(c Control) Range {
	length := utf8.RuneCountInString(c.Text())
	s, ok := c.(Selectable)
	if !ok {
		return Caret(length)
	}
	start, end := s.Selection()
	return Range{Start: start, End: end}.Clamp(length)
}

// Write sets the selection of c, clamped to the current text length.
// Failures are logged and otherwise ignored.
func Write(c Control, r Range) {
	s, ok := c.(Selectable)
	if !ok {
		return
	}
	r = r.Clamp(utf8.RuneCountInString(c.Text()))
	if err := s.Select(r.Start, r.End); err != nil {
		logger.Debug("selection write ignored: %v", err)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
