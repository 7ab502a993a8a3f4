package controller

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/ui"
)

const helpViewName = "help"

// HelpController manages the help modal.
type HelpController struct {
	ctx     *Context
	visible bool
}

// NewHelpController creates a new help controller.
func NewHelpController(ctx *Context) *HelpController {
	return &HelpController{ctx: ctx}
}

// Name returns the view name.
func (c *HelpController) Name() string {
	return helpViewName
}

// IsVisible returns whether the help is visible.
func (c *HelpController) IsVisible() bool {
	return c.visible
}

// Show shows the help modal.
func (c *HelpController) Show(g *gocui.Gui) error {
	c.visible = true
	return c.Layout(g)
}

// Hide hides the help modal.
func (c *HelpController) Hide(g *gocui.Gui) error {
	c.visible = false
	return g.DeleteView(helpViewName)
}

// Toggle toggles the help modal visibility.
func (c *HelpController) Toggle(g *gocui.Gui) error {
	if c.visible {
		return c.Hide(g)
	}
	return c.Show(g)
}

// Layout sets up the help view.
func (c *HelpController) Layout(g *gocui.Gui) error {
	if !c.visible {
		return nil
	}

	maxX, maxY := g.Size()

	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 56, 24)
	v, err := g.SetView(helpViewName, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	v.Title = " Help "
	v.Wrap = true
	v.Frame = true

	// Set as top view
	if _, err := g.SetCurrentView(helpViewName); err != nil {
		return err
	}

	return c.Render(g)
}

// Keybindings sets up help-specific keybindings.
func (c *HelpController) Keybindings(g *gocui.Gui) error {
	// Esc, q, enter and space close help
	if err := g.SetKeybinding(helpViewName, gocui.KeyEsc, gocui.ModNone, c.close); err != nil {
		return err
	}
	if err := g.SetKeybinding(helpViewName, 'q', gocui.ModNone, c.close); err != nil {
		return err
	}
	if err := g.SetKeybinding(helpViewName, gocui.KeyEnter, gocui.ModNone, c.close); err != nil {
		return err
	}
	if err := g.SetKeybinding(helpViewName, gocui.KeySpace, gocui.ModNone, c.close); err != nil {
		return err
	}

	return nil
}

// Render renders the help content.
func (c *HelpController) Render(g *gocui.Gui) error {
	v, err := g.View(helpViewName)
	if err != nil {
		return err
	}

	v.Clear()
	width, _ := v.Size()
	fmt.Fprint(v, c.Content(width))
	return nil
}

// Content builds the help text: the live editing bindings, the form keys
// and the state of every field.
func (c *HelpController) Content(width int) string {
	cfg := c.ctx.Config

	editing := []ui.HelpRow{
		{Key: "type", Desc: "Fill the next slot"},
		{Key: "backspace/delete", Desc: "Clear a slot"},
		{Key: "arrows/home/end", Desc: "Move the caret (shift extends)"},
	}
	for _, b := range editingBindings(cfg.Keys) {
		editing = append(editing, ui.HelpRow{Key: b.key, Desc: b.act.describe()})
	}

	var fields []ui.HelpRow
	for _, f := range c.ctx.State.GetFields() {
		style := cfg.Theme.Status[ui.FieldState(f.Display, f.Complete)]
		fields = append(fields, ui.HelpRow{Key: f.Label, Desc: ui.StatusBadge(style) + " " + f.Mask})
	}

	return ui.HelpText(width,
		ui.HelpSection{Title: "Editing", Rows: editing},
		ui.HelpSection{Title: "Keys", Rows: ui.KeyRows(cfg.Keys)},
		ui.HelpSection{Title: "Fields", Rows: fields},
	)
}

func (c *HelpController) close(g *gocui.Gui, v *gocui.View) error {
	return c.Hide(g)
}
