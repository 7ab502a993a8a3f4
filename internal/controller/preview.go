package controller

import (
	"encoding/json"
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/logger"
	"github.com/abdullathedruid/maskform/internal/ui"
)

const previewViewName = "preview"

// PreviewController shows the values a submit would store.
type PreviewController struct {
	ctx     *Context
	visible bool
}

// NewPreviewController creates a new preview controller.
func NewPreviewController(ctx *Context) *PreviewController {
	return &PreviewController{ctx: ctx}
}

// Name returns the view name.
func (c *PreviewController) Name() string {
	return previewViewName
}

// IsVisible returns whether the preview is visible.
func (c *PreviewController) IsVisible() bool {
	return c.visible
}

// Toggle toggles the preview modal visibility.
func (c *PreviewController) Toggle(g *gocui.Gui) error {
	if c.visible {
		return c.Hide(g)
	}
	c.visible = true
	return c.Layout(g)
}

// Hide hides the preview modal.
func (c *PreviewController) Hide(g *gocui.Gui) error {
	c.visible = false
	return g.DeleteView(previewViewName)
}

// Layout sets up the preview view.
func (c *PreviewController) Layout(g *gocui.Gui) error {
	if !c.visible {
		return nil
	}

	maxX, maxY := g.Size()
	height := 2*c.ctx.State.FieldCount() + 8
	if height > maxY-4 {
		height = maxY - 4
	}
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 60, height)
	v, err := g.SetView(previewViewName, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	v.Title = " Preview "
	v.Wrap = false
	v.Frame = true

	if _, err := g.SetCurrentView(previewViewName); err != nil {
		return err
	}

	return c.Render(g)
}

// Keybindings sets up preview-specific keybindings.
func (c *PreviewController) Keybindings(g *gocui.Gui) error {
	for _, key := range []gocui.Key{gocui.KeyEsc, gocui.KeyEnter, gocui.KeySpace} {
		if err := g.SetKeybinding(previewViewName, key, gocui.ModNone, c.close); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the highlighted JSON.
func (c *PreviewController) Render(g *gocui.Gui) error {
	v, err := g.View(previewViewName)
	if err != nil {
		return err
	}

	v.Clear()
	src, err := c.JSON()
	if err != nil {
		fmt.Fprintf(v, "error: %v", err)
		return nil
	}
	out, err := ui.HighlightJSON(src)
	if err != nil {
		logger.Debug("preview highlight: %v", err)
	}
	fmt.Fprint(v, out)
	return nil
}

// JSON returns the pending submission as indented JSON.
func (c *PreviewController) JSON() (string, error) {
	payload := struct {
		Values map[string]string `json:"values"`
		Raw    map[string]string `json:"raw"`
	}{
		Values: c.ctx.State.Values(),
		Raw:    c.ctx.State.RawValues(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *PreviewController) close(g *gocui.Gui, v *gocui.View) error {
	return c.Hide(g)
}
