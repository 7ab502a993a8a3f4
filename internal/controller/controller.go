// Package controller provides view controllers for the maskform TUI.
package controller

import (
	"time"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/maskedinput"
	"github.com/abdullathedruid/maskform/internal/state"
	"github.com/abdullathedruid/maskform/internal/submit"
)

// Controller is the interface for view controllers.
type Controller interface {
	// Name returns the view name for this controller.
	Name() string
	// Layout sets up the view dimensions.
	Layout(g *gocui.Gui) error
	// Keybindings sets up view-specific keybindings.
	Keybindings(g *gocui.Gui) error
	// Render renders the view content.
	Render(g *gocui.Gui) error
}

// Context provides shared context for all controllers.
type Context struct {
	Config    *config.Config
	State     *state.State
	Store     *submit.Store
	Clipboard Clipboard

	// Scheduler runs deferred field work on the UI loop. Nil runs it
	// immediately.
	Scheduler maskedinput.Scheduler

	Now func() time.Time
}

// NewContext creates a new controller context.
func NewContext(cfg *config.Config, s *state.State, store *submit.Store) *Context {
	return &Context{
		Config:    cfg,
		State:     s,
		Store:     store,
		Clipboard: SystemClipboard(),
		Now:       time.Now,
	}
}

// GuiScheduler defers work onto g's main loop.
func GuiScheduler(g *gocui.Gui) maskedinput.Scheduler {
	return maskedinput.SchedulerFunc(func(fn func()) {
		g.Update(func(*gocui.Gui) error {
			fn()
			return nil
		})
	})
}
