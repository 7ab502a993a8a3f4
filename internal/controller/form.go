package controller

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/logger"
	"github.com/abdullathedruid/maskform/internal/maskedinput"
	"github.com/abdullathedruid/maskform/internal/state"
	"github.com/abdullathedruid/maskform/internal/submit"
	"github.com/abdullathedruid/maskform/internal/textbox"
	"github.com/abdullathedruid/maskform/internal/ui"
)

const (
	formViewName    = "form"
	fieldViewPrefix = "field-"
	fieldHeight     = 3
	// badgeRoom fits the default "◐ PARTIAL" badge beside the text.
	badgeRoom = 11
)

// fieldEntry pairs a masked field with the control it drives.
type fieldEntry struct {
	cfg   config.FieldConfig
	box   *textbox.Box
	field *maskedinput.Field
}

func (e *fieldEntry) viewName() string {
	return fieldViewPrefix + e.cfg.Name
}

// label is the view title, taken from the field's label attribute.
func (e *fieldEntry) label() string {
	if l, ok := e.field.Attr("label"); ok && l != "" {
		return l
	}
	return e.cfg.Name
}

// FormController manages the field views.
type FormController struct {
	ctx     *Context
	entries []*fieldEntry
	byName  map[string]*fieldEntry
	actions map[gocui.Key]action

	// views created by the last Layout, so removed fields can be deleted
	views map[string]bool
}

// NewFormController creates the fields described by ctx.Config.
func NewFormController(ctx *Context) (*FormController, error) {
	c := &FormController{
		ctx:    ctx,
		byName: make(map[string]*fieldEntry),
		views:  make(map[string]bool),
	}
	if err := c.Reload(ctx.Config); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the view name.
func (c *FormController) Name() string {
	return formViewName
}

// Field returns the masked field with the given name.
func (c *FormController) Field(name string) (*maskedinput.Field, bool) {
	e, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return e.field, true
}

// Reload applies cfg. Fields that keep their name are updated in place with
// the values the form has tracked for them; new fields start from their
// configured value and removed fields are disposed.
func (c *FormController) Reload(cfg *config.Config) error {
	entries := make([]*fieldEntry, 0, len(cfg.Fields))
	byName := make(map[string]*fieldEntry, len(cfg.Fields))
	var faults []error

	// New fields are built first so a failure leaves the form untouched.
	built := make(map[string]*fieldEntry)
	for _, fc := range cfg.Fields {
		if _, ok := c.byName[fc.Name]; ok {
			continue
		}
		e, err := c.build(fc, cfg.HistoryLimit)
		if err != nil {
			for _, b := range built {
				b.field.Dispose()
			}
			c.ctx.State.SetMessage(fmt.Sprintf("config: %v", err))
			return err
		}
		built[fc.Name] = e
	}

	for _, fc := range cfg.Fields {
		e, ok := c.byName[fc.Name]
		if ok {
			if err := c.update(e, fc, cfg.HistoryLimit); err != nil {
				logger.Error("field %s: %v", fc.Name, err)
				faults = append(faults, err)
			}
		} else {
			e = built[fc.Name]
		}
		entries = append(entries, e)
		byName[fc.Name] = e
	}

	for name, e := range c.byName {
		if _, ok := byName[name]; !ok {
			e.field.Dispose()
			e.box.Detach()
			logger.Debug("field %s removed", name)
		}
	}

	c.ctx.Config = cfg
	c.entries = entries
	c.byName = byName
	c.actions = fieldActions(cfg.Keys)
	c.syncState()

	if len(faults) > 0 {
		c.ctx.State.SetMessage(fmt.Sprintf("config: %v", faults[0]))
		return faults[0]
	}
	return nil
}

func (c *FormController) build(fc config.FieldConfig, historyLimit int) (*fieldEntry, error) {
	props, err := fc.Props(historyLimit)
	if err != nil {
		return nil, errors.WrapPrefix(err, "field "+fc.Name, 0)
	}

	e := &fieldEntry{cfg: fc, box: textbox.New("")}
	e.field = maskedinput.NewField(e.box, c.ctx.Scheduler)
	props.OnChange = c.onChange(e)
	if err := e.field.Initialize(props); err != nil {
		return nil, errors.WrapPrefix(err, "field "+fc.Name, 0)
	}
	return e, nil
}

func (c *FormController) update(e *fieldEntry, fc config.FieldConfig, historyLimit int) error {
	props, err := fc.Props(historyLimit)
	if err != nil {
		return err
	}
	props.Value = e.field.RawValue()
	if tracked := c.ctx.State.GetField(fc.Name); tracked != nil {
		props.Value = tracked.Raw
	}
	props.OnChange = c.onChange(e)
	if err := e.field.OnExternalUpdate(props); err != nil {
		return err
	}
	e.cfg = fc
	return nil
}

func (c *FormController) onChange(e *fieldEntry) func(maskedinput.ChangeEvent) {
	return func(ev maskedinput.ChangeEvent) {
		c.ctx.State.SetValue(e.cfg.Name, ev.Value, ev.Raw, e.field.Complete())
	}
}

// syncState rebuilds the state's field list from the live fields.
func (c *FormController) syncState() {
	fields := make([]*state.Field, 0, len(c.entries))
	for _, e := range c.entries {
		fields = append(fields, &state.Field{
			Name:     e.cfg.Name,
			Label:    e.label(),
			Mask:     e.field.Mask(),
			Display:  e.field.Value(),
			Raw:      e.field.RawValue(),
			Complete: e.field.Complete(),
		})
	}
	c.ctx.State.UpdateFields(fields)
	c.ctx.State.SelectFirst()
}

func (c *FormController) focused() *fieldEntry {
	return c.byName[c.ctx.State.GetSelectedFieldName()]
}

// Edit handles key input for the focused field.
func (c *FormController) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	e := c.focused()
	if e == nil {
		return false
	}
	return c.handle(e, key, ch, mod)
}

func (c *FormController) handle(e *fieldEntry, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if ch == 0 {
		if act, ok := c.actions[key]; ok {
			c.run(e, act)
			return true
		}
	}
	ev, ok := TranslateKey(key, ch, mod)
	if !ok {
		return false
	}
	return e.field.HandleKey(ev)
}

func (c *FormController) run(e *fieldEntry, act action) {
	logger.Debug("field %s: %s", e.cfg.Name, act)
	switch act {
	case actUndo:
		e.field.HandleKey(maskedinput.RuneEvent('z', maskedinput.ModCtrl))
	case actRedo:
		e.field.HandleKey(maskedinput.RuneEvent('y', maskedinput.ModCtrl))
	case actSelectAll:
		e.field.HandleKey(maskedinput.RuneEvent('a', maskedinput.ModCtrl))
	case actCut:
		text := e.field.HandleCut()
		if text == "" {
			return
		}
		if err := c.ctx.Clipboard.WriteAll(text); err != nil {
			logger.Error("clipboard write: %v", err)
			c.ctx.State.SetMessage("clipboard unavailable")
		}
	case actPaste:
		text, err := c.ctx.Clipboard.ReadAll()
		if err != nil {
			logger.Error("clipboard read: %v", err)
			c.ctx.State.SetMessage("clipboard unavailable")
			return
		}
		e.field.HandlePaste(text)
	case actClear:
		// Select-all then backspace keeps the clear undoable.
		e.field.HandleKey(maskedinput.RuneEvent('a', maskedinput.ModCtrl))
		e.field.HandleKey(maskedinput.SpecialEvent(maskedinput.KeyBackspace, maskedinput.ModNone))
	}
}

// FocusNext moves focus to the next field.
func (c *FormController) FocusNext() {
	c.ctx.State.SelectNext()
}

// FocusPrev moves focus to the previous field.
func (c *FormController) FocusPrev() {
	c.ctx.State.SelectPrev()
}

// Submit stores the current values.
func (c *FormController) Submit() (submit.Submission, error) {
	sub, err := c.ctx.Store.Add(c.ctx.State.Values(), c.ctx.State.RawValues())
	if err != nil {
		logger.Error("submit: %v", err)
		c.ctx.State.SetMessage("submit failed")
		return submit.Submission{}, err
	}

	c.ctx.State.MarkSubmitted(sub.ID, sub.SubmittedAt)
	c.ctx.State.SetMessage(fmt.Sprintf("submitted %s (%d/%d complete)",
		shortID(sub.ID), c.ctx.State.CompleteCount(), c.ctx.State.FieldCount()))
	logger.Info("submitted %s", sub.ID)
	return sub, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Layout sets up one framed view per field, stacked from the top.
func (c *FormController) Layout(g *gocui.Gui) error {
	maxX, _ := g.Size()
	focused := c.focused()

	seen := make(map[string]bool, len(c.entries))
	for i, e := range c.entries {
		name := e.viewName()
		seen[name] = true

		width := e.field.Size() + badgeRoom
		if lw := runewidth.StringWidth(e.label()) + 6; lw > width {
			width = lw
		}
		width += 2
		if width > maxX-2 {
			width = maxX - 2
		}

		y0 := i * fieldHeight
		v, err := g.SetView(name, 1, y0, 1+width, y0+fieldHeight-1, 0)
		if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}

		isFocused := e == focused
		if isFocused {
			e.box.Focus()
		} else {
			e.box.Blur()
		}

		ui.ConfigureFieldView(v, e.label(), isFocused, c.ctx.Config.Theme.Colors.FocusFrame)
		v.SelBgColor = ui.GocuiColor(c.ctx.Config.Theme.Colors.SelectionBg)
		v.SelFgColor = ui.GocuiColor(c.ctx.Config.Theme.Colors.SelectionFg)
		v.Editor = gocui.EditorFunc(c.Edit)
	}

	for name := range c.views {
		if !seen[name] {
			if err := g.DeleteView(name); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
				return err
			}
		}
	}
	c.views = seen

	return c.Render(g)
}

// Keybindings binds a click on each field view to focus it.
// Note: Field editing is done via the Editor interface instead.
func (c *FormController) Keybindings(g *gocui.Gui) error {
	for _, e := range c.entries {
		name := e.cfg.Name
		handler := func(g *gocui.Gui, v *gocui.View) error {
			return c.focusField(name)
		}
		if err := g.SetKeybinding(e.viewName(), gocui.MouseLeft, gocui.ModNone, handler); err != nil {
			return err
		}
	}
	return nil
}

func (c *FormController) focusField(name string) error {
	if _, ok := c.byName[name]; !ok {
		return nil
	}
	c.ctx.State.SetSelectedField(name)
	return nil
}

// Render draws each field's text, selection and caret.
func (c *FormController) Render(g *gocui.Gui) error {
	focused := c.focused()
	for _, e := range c.entries {
		v, err := g.View(e.viewName())
		if err != nil {
			return err
		}
		v.Clear()

		text := e.box.Text()
		start, end := e.box.Selection()
		placeholder := e.field.Placeholder()
		shown := text
		if shown == "" {
			shown = placeholder
		}
		width, _ := v.Size()
		style := c.ctx.Config.Theme.Status[ui.FieldState(e.field.Value(), e.field.Complete())]
		line := ui.RenderField(text, placeholder, start, end)
		fmt.Fprint(v, ui.AppendBadge(line, runewidth.StringWidth(shown), width, style))

		if e == focused {
			v.SetCursor(ui.CaretColumn(text, e.box.Cursor()), 0)
		}
	}
	return nil
}

// FocusedView returns the view name of the focused field, or "".
func (c *FormController) FocusedView() string {
	if e := c.focused(); e != nil {
		return e.viewName()
	}
	return ""
}

// Dispose detaches every field.
func (c *FormController) Dispose() {
	for _, e := range c.entries {
		e.field.Dispose()
		e.box.Detach()
	}
}
