// Package ui provides shared rendering helpers for maskform.
package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/maskform/internal/config"
)

// Colors and styles for the TUI
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorReverse = "\033[7m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

var ansiColors = map[string]string{
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

// ANSIColor returns the escape sequence for a theme color name, or "" for
// unknown names and "default".
func ANSIColor(name string) string {
	return ansiColors[strings.ToLower(name)]
}

// FieldState classifies a field for the status styles.
func FieldState(display string, complete bool) string {
	switch {
	case complete:
		return config.StatusComplete
	case display == "":
		return config.StatusEmpty
	default:
		return config.StatusPartial
	}
}

// StatusBadge renders a colored "icon LABEL" badge.
func StatusBadge(style config.StatusStyle) string {
	return colorize(badgeText(style), style.Color)
}

// AppendBadge right-aligns the status badge after a field line that takes
// lineWidth columns. The badge is dropped when it does not fit in width.
func AppendBadge(line string, lineWidth, width int, style config.StatusStyle) string {
	badge := badgeText(style)
	room := width - lineWidth - 1
	if badge == "" || room < runewidth.StringWidth(badge) {
		return line
	}
	padded := PadLeft(badge, room)
	return line + " " + strings.TrimSuffix(padded, badge) + colorize(badge, style.Color)
}

func badgeText(style config.StatusStyle) string {
	return strings.TrimSpace(style.Icon + " " + style.Label)
}

func colorize(s, color string) string {
	if c := ANSIColor(color); c != "" && s != "" {
		return c + s + ColorReset
	}
	return s
}

// RenderField renders a field's text with the selection highlighted, or the
// placeholder dimmed while the text is empty. start and end are rune offsets.
func RenderField(text, placeholder string, start, end int) string {
	if text == "" {
		if placeholder == "" {
			return ""
		}
		return ColorDim + placeholder + ColorReset
	}

	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, start, len(runes))
	if start == end {
		return text
	}
	return string(runes[:start]) + ColorReverse + string(runes[start:end]) + ColorReset + string(runes[end:])
}

// CaretColumn returns the display column of rune offset pos in text.
func CaretColumn(text string, pos int) int {
	runes := []rune(text)
	pos = clamp(pos, 0, len(runes))
	return runewidth.StringWidth(string(runes[:pos]))
}

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// PadLeft pads a string to the left.
func PadLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-sw) + s
}

// Center centers a string in the given width.
func Center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	padding := (width - sw) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-sw-padding)
}

// StatusBar holds what the bottom bar shows.
type StatusBar struct {
	Filled   int
	Total    int
	Focused  string // label of the focused field
	Message  string // last action, e.g. "submitted 1b2c..."
	Keys     config.KeyBindings
	Version  string
	Width    int
	Sent     int    // submissions on record
	LastSent string // FormatDuration of the last submission, or ""
}

// Render lays the bar out as stats on the left and key hints on the right,
// fitted to Width.
func (s StatusBar) Render() string {
	total := fmt.Sprint(s.Total)
	left := fmt.Sprintf("%s/%s complete", PadLeft(fmt.Sprint(s.Filled), len(total)), total)
	if s.Focused != "" {
		left += " │ " + s.Focused
	}
	if s.Sent > 0 {
		left += fmt.Sprintf(" │ %d sent", s.Sent)
		if s.LastSent != "" {
			left += ", last " + s.LastSent
		}
	}
	if s.Message != "" {
		left += " │ " + s.Message
	}
	right := fmt.Sprintf("%s:submit %s:help %s:quit", s.Keys.Submit, s.Keys.Help, s.Keys.Quit)
	if s.Version != "" {
		right += "  " + s.Version
	}

	if s.Width <= 0 {
		return left + "  " + right
	}
	gap := s.Width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 2 {
		return Truncate(left, s.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// HelpRow is one "key  description" line of the help screen.
type HelpRow struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of help rows.
type HelpSection struct {
	Title string
	Rows  []HelpRow
}

const helpKeyWidth = 18

// KeyRows returns help rows for the form-level bindings. Unbound keys are
// skipped.
func KeyRows(keys config.KeyBindings) []HelpRow {
	all := []HelpRow{
		{keys.NextField, "Next field"},
		{keys.PrevField, "Previous field"},
		{keys.Submit, "Submit form"},
		{keys.Preview, "Preview values as JSON"},
		{keys.Help, "Show this help"},
		{keys.Quit, "Quit"},
	}
	rows := all[:0]
	for _, r := range all {
		if r.Key != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

// HelpText lays out the help screen for a modal width columns wide. Long
// descriptions wrap under the description column; width <= 0 disables
// wrapping.
func HelpText(width int, sections ...HelpSection) string {
	var b strings.Builder
	title := "maskform - masked input form"
	if width > 0 {
		title = strings.TrimRight(Center(title, width), " ")
	}
	b.WriteString(title + "\n")

	indent := strings.Repeat(" ", helpKeyWidth+3)
	for _, sec := range sections {
		if len(sec.Rows) == 0 {
			continue
		}
		b.WriteString("\n" + sec.Title + "\n")
		for _, r := range sec.Rows {
			desc := []string{r.Desc}
			if width > 0 {
				desc = WrapText(r.Desc, width-len(indent))
			}
			for i, line := range desc {
				if i == 0 {
					b.WriteString("  " + PadRight(r.Key, helpKeyWidth) + " " + line + "\n")
				} else {
					b.WriteString(indent + line + "\n")
				}
			}
		}
	}
	b.WriteString("\nPress esc or enter to close this help...")
	return b.String()
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			lines = append(lines, line)
			continue
		}

		for runewidth.StringWidth(line) > width {
			// Find a break point that fits within width
			breakIdx := 0
			currentWidth := 0
			lastSpace := -1
			for i, r := range line {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakIdx = i + len(string(r))
				if r == ' ' {
					lastSpace = breakIdx
				}
			}
			if lastSpace > 0 {
				breakIdx = lastSpace
			}
			lines = append(lines, line[:breakIdx])
			line = strings.TrimSpace(line[breakIdx:])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// FormatDuration formats a duration for display.
func FormatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm ago", seconds/60)
	}
	if seconds < 86400 {
		return fmt.Sprintf("%dh ago", seconds/3600)
	}
	return fmt.Sprintf("%dd ago", seconds/86400)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
