package selection

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/abdullathedruid/maskform/internal/logger"
)

type plainControl struct{ text string }

func (c *plainControl) Text() string { return c.text }

type fakeSelectable struct {
	text       string
	start, end int
	err        error
	calls      int
}

func (c *fakeSelectable) Text() string                { return c.text }
func (c *fakeSelectable) Selection() (start, end int) { return c.start, c.end }
func (c *fakeSelectable) Select(start, end int) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.start, c.end = start, end
	return nil
}

func TestRange_Clamp(t *testing.T) {
	tests := []struct {
		name   string
		in     Range
		length int
		want   Range
	}{
		{"inside", Range{1, 3}, 5, Range{1, 3}},
		{"reversed", Range{4, 2}, 5, Range{2, 4}},
		{"negative", Range{-3, 2}, 5, Range{0, 2}},
		{"past end", Range{3, 9}, 5, Range{3, 5}},
		{"empty text", Range{2, 2}, 0, Range{0, 0}},
		{"negative length", Range{1, 2}, -1, Range{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(tt.length); got != tt.want {
				t.Errorf("Clamp(%d) = %v, want %v", tt.length, got, tt.want)
			}
		})
	}
}

func TestRange_CaretAndLen(t *testing.T) {
	c := Caret(4)
	if !c.Collapsed() || c.Len() != 0 {
		t.Errorf("Caret(4) = %v, want collapsed", c)
	}
	r := Range{Start: 2, End: 5}
	if r.Collapsed() || r.Len() != 3 {
		t.Errorf("Range{2,5}: Collapsed=%v Len=%d", r.Collapsed(), r.Len())
	}
}

func TestRead_PlainControlReportsEnd(t *testing.T) {
	c := &plainControl{text: "(12_) ___"}
	if got := Read(c); got != Caret(9) {
		t.Errorf("Read() = %v, want caret at 9", got)
	}
}

func TestRead_CountsRunes(t *testing.T) {
	c := &plainControl{text: "日本語"}
	if got := Read(c); got != Caret(3) {
		t.Errorf("Read() = %v, want caret at 3", got)
	}
}

func TestRead_ClampsStaleSelection(t *testing.T) {
	c := &fakeSelectable{text: "12", start: 5, end: 1}
	if got := Read(c); got != (Range{Start: 1, End: 2}) {
		t.Errorf("Read() = %v, want {1 2}", got)
	}
}

func TestWrite(t *testing.T) {
	c := &fakeSelectable{text: "12/34"}
	Write(c, Range{Start: 1, End: 9})
	if c.start != 1 || c.end != 5 {
		t.Errorf("selection = (%d, %d), want (1, 5)", c.start, c.end)
	}
}

func TestWrite_PlainControlIgnored(t *testing.T) {
	// Must not panic.
	Write(&plainControl{text: "abc"}, Caret(1))
}

func TestWrite_FailureSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.Close()

	c := &fakeSelectable{text: "abc", err: errors.New("control detached")}
	Write(c, Caret(1))

	if c.calls != 1 {
		t.Errorf("Select called %d times, want 1", c.calls)
	}
	if !strings.Contains(buf.String(), "control detached") {
		t.Errorf("log = %q, want the failure logged", buf.String())
	}
}
