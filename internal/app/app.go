// Package app provides application lifecycle and orchestration.
package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/controller"
	"github.com/abdullathedruid/maskform/internal/logger"
	"github.com/abdullathedruid/maskform/internal/state"
	"github.com/abdullathedruid/maskform/internal/submit"
	"github.com/abdullathedruid/maskform/internal/watch"
)

// App is the main application.
type App struct {
	gui     *gocui.Gui
	config  *config.Config
	state   *state.State
	store   *submit.Store
	watcher *watch.Watcher
	ctx     *controller.Context

	// Controllers
	form      *controller.FormController
	statusBar *controller.StatusBarController
	help      *controller.HelpController
	preview   *controller.PreviewController
}

// New creates a new App.
func New(cfg *config.Config) (*App, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing GUI: %w", err)
	}

	s := state.New()
	store := submit.NewStore(cfg.SubmissionsFile())
	if err := store.Load(); err != nil {
		// Non-fatal, start a fresh history
		logger.Error("loading submissions: %v", err)
	}

	ctx := controller.NewContext(cfg, s, store)
	ctx.Scheduler = controller.GuiScheduler(g)

	form, err := controller.NewFormController(ctx)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("building form: %w", err)
	}

	app := &App{
		gui:       g,
		config:    cfg,
		state:     s,
		store:     store,
		ctx:       ctx,
		form:      form,
		statusBar: controller.NewStatusBarController(ctx),
		help:      controller.NewHelpController(ctx),
		preview:   controller.NewPreviewController(ctx),
	}

	w, err := watch.New(cfg.ConfigFile())
	if err != nil {
		logger.Error("config watcher disabled: %v", err)
	} else {
		app.watcher = w
		w.OnReload(func(next *config.Config) {
			g.Update(func(g *gocui.Gui) error {
				app.reload(next)
				return nil
			})
		})
	}

	return app, nil
}

// Run runs the application until the user quits.
func (a *App) Run() error {
	defer a.Close()

	a.gui.SetManagerFunc(a.layout)
	a.gui.Cursor = true
	a.gui.Mouse = true

	if err := a.setupKeybindings(); err != nil {
		return fmt.Errorf("setting up keybindings: %w", err)
	}

	if a.watcher != nil {
		a.watcher.Start()
	}

	// Handle SIGINT/SIGTERM for clean exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			a.gui.Update(func(g *gocui.Gui) error {
				return gocui.ErrQuit
			})
		}
	}()

	if err := a.gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// Close cleans up all resources.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.form.Dispose()
	a.gui.Close()
}

// LastSubmission returns the submission made during this run, if any.
func (a *App) LastSubmission() (submit.Submission, bool) {
	id, _, ok := a.state.LastSubmitted()
	if !ok {
		return submit.Submission{}, false
	}
	return a.store.Get(id)
}

// layout is the gocui manager function.
func (a *App) layout(g *gocui.Gui) error {
	// Status bar at bottom
	if err := a.statusBar.Layout(g); err != nil {
		return err
	}
	if err := a.form.Layout(g); err != nil {
		return err
	}
	if err := a.statusBar.Render(g); err != nil {
		return err
	}

	modal := false
	if a.help.IsVisible() {
		if err := a.help.Layout(g); err != nil {
			return err
		}
		modal = true
	}
	if a.preview.IsVisible() {
		if err := a.preview.Layout(g); err != nil {
			return err
		}
		modal = true
	}

	if !modal {
		if name := a.form.FocusedView(); name != "" {
			if _, err := g.SetCurrentView(name); err != nil {
				return err
			}
		}
	}
	g.Cursor = !modal

	return nil
}

// reload applies a config picked up by the watcher. Bindings are rebuilt
// since both the keys and the field views may have changed.
func (a *App) reload(cfg *config.Config) {
	if err := a.form.Reload(cfg); err != nil {
		logger.Error("applying config: %v", err)
		return
	}
	a.config = cfg
	a.state.SetMessage("config reloaded")

	a.gui.DeleteAllKeybindings()
	if err := a.setupKeybindings(); err != nil {
		logger.Error("rebinding keys: %v", err)
	}
}
