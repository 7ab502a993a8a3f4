package app

import (
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/logger"
)

// setupKeybindings configures the global keyboard handlers. Field editing
// keys are handled by the form's editor, which passes everything else
// through to these bindings.
func (a *App) setupKeybindings() error {
	g := a.gui
	keys := a.config.Keys

	bindings := []struct {
		key     string
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{keys.Quit, a.quitHandler},
		{keys.Submit, a.submitHandler},
		{keys.NextField, a.nextFieldHandler},
		{keys.PrevField, a.prevFieldHandler},
		{keys.Help, a.helpHandler},
		{keys.Preview, a.previewHandler},
	}
	for _, b := range bindings {
		if b.key == "" {
			continue
		}
		k, err := config.ParseKey(b.key)
		if err != nil {
			logger.Error("skipping binding %q: %v", b.key, err)
			continue
		}
		if err := g.SetKeybinding("", k.Value, k.Mod, b.handler); err != nil {
			return err
		}
	}

	// Ctrl+C always quits
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, a.quitHandler); err != nil {
		return err
	}

	// Modal keybindings
	if err := a.help.Keybindings(g); err != nil {
		return err
	}
	if err := a.preview.Keybindings(g); err != nil {
		return err
	}
	if err := a.form.Keybindings(g); err != nil {
		return err
	}

	return nil
}

// Handlers

func (a *App) quitHandler(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (a *App) submitHandler(g *gocui.Gui, v *gocui.View) error {
	if a.help.IsVisible() || a.preview.IsVisible() {
		return nil
	}
	// Failures are reported on the status bar
	a.form.Submit()
	return nil
}

func (a *App) nextFieldHandler(g *gocui.Gui, v *gocui.View) error {
	if a.help.IsVisible() || a.preview.IsVisible() {
		return nil
	}
	a.form.FocusNext()
	return nil
}

func (a *App) prevFieldHandler(g *gocui.Gui, v *gocui.View) error {
	if a.help.IsVisible() || a.preview.IsVisible() {
		return nil
	}
	a.form.FocusPrev()
	return nil
}

func (a *App) helpHandler(g *gocui.Gui, v *gocui.View) error {
	if a.preview.IsVisible() {
		return nil
	}
	return a.help.Toggle(g)
}

func (a *App) previewHandler(g *gocui.Gui, v *gocui.View) error {
	if a.help.IsVisible() {
		return nil
	}
	return a.preview.Toggle(g)
}
