package controller

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/ui"
	"github.com/abdullathedruid/maskform/internal/version"
)

const statusBarViewName = "statusbar"

// StatusBarController manages the status bar at the bottom.
type StatusBarController struct {
	ctx *Context
}

// NewStatusBarController creates a new status bar controller.
func NewStatusBarController(ctx *Context) *StatusBarController {
	return &StatusBarController{ctx: ctx}
}

// Name returns the view name.
func (c *StatusBarController) Name() string {
	return statusBarViewName
}

// Layout sets up the status bar view.
func (c *StatusBarController) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	v, err := g.SetView(statusBarViewName, 0, maxY-2, maxX-1, maxY, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	colors := c.ctx.Config.Theme.Colors
	v.Frame = false
	v.Wrap = false
	v.BgColor = ui.GocuiColor(colors.StatusBarBg)
	v.FgColor = ui.GocuiColor(colors.StatusBarFg) | gocui.AttrBold

	return nil
}

// Keybindings sets up status bar keybindings (none needed).
func (c *StatusBarController) Keybindings(g *gocui.Gui) error {
	return nil
}

// Render renders the status bar content.
func (c *StatusBarController) Render(g *gocui.Gui) error {
	v, err := g.View(statusBarViewName)
	if err != nil {
		return err
	}

	v.Clear()
	width, _ := v.Size()
	fmt.Fprint(v, " "+c.Bar(width-1).Render())

	return nil
}

// Bar builds the status bar for the current state.
func (c *StatusBarController) Bar(width int) ui.StatusBar {
	s := c.ctx.State
	bar := ui.StatusBar{
		Filled:  s.CompleteCount(),
		Total:   s.FieldCount(),
		Message: s.Message(),
		Keys:    c.ctx.Config.Keys,
		Version: version.Short(),
		Width:   width,
	}
	if f := s.GetSelectedField(); f != nil {
		bar.Focused = f.Label
	}
	if store := c.ctx.Store; store != nil {
		bar.Sent = store.Count()
		if last, ok := store.Last(); ok {
			bar.LastSent = ui.FormatDuration(int64(c.ctx.Now().Sub(last.SubmittedAt).Seconds()))
		}
	}
	return bar
}
