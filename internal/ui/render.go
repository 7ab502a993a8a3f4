package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/jesseduffield/gocui"
)

var gocuiColors = map[string]gocui.Attribute{
	"default": gocui.ColorDefault,
	"black":   gocui.ColorBlack,
	"red":     gocui.ColorRed,
	"green":   gocui.ColorGreen,
	"yellow":  gocui.ColorYellow,
	"blue":    gocui.ColorBlue,
	"magenta": gocui.ColorMagenta,
	"cyan":    gocui.ColorCyan,
	"white":   gocui.ColorWhite,
}

// GocuiColor maps a theme color name to a gocui attribute.
func GocuiColor(name string) gocui.Attribute {
	if c, ok := gocuiColors[strings.ToLower(name)]; ok {
		return c
	}
	return gocui.ColorDefault
}

// ConfigureFieldView sets up the frame of a field view.
func ConfigureFieldView(v *gocui.View, title string, focused bool, focusColor string) {
	v.Title = " " + title + " "
	v.Frame = true
	v.Wrap = false
	v.Editable = focused
	if focused {
		// Bold frame for the focused field
		v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
		v.FrameColor = GocuiColor(focusColor)
	} else {
		v.FrameRunes = []rune{'─', '│', '┌', '┐', '└', '┘'}
		v.FrameColor = gocui.ColorDefault
	}
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}

// HighlightJSON renders src with terminal colors. On failure the plain
// source is returned with the error.
func HighlightJSON(src string) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "json", "terminal256", "monokai"); err != nil {
		return src, err
	}
	return buf.String(), nil
}
