package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/maskform/internal/config"
	"github.com/abdullathedruid/maskform/internal/maskedinput"
	"github.com/abdullathedruid/maskform/internal/state"
	"github.com/abdullathedruid/maskform/internal/submit"
)

func newTestForm(t *testing.T, fields ...config.FieldConfig) (*FormController, *Context) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	if len(fields) > 0 {
		cfg.Fields = fields
	}

	ctx := &Context{
		Config:    cfg,
		State:     state.New(),
		Store:     submit.NewStore(cfg.SubmissionsFile()),
		Clipboard: &MemoryClipboard{},
		Now:       time.Now,
	}
	c, err := NewFormController(ctx)
	if err != nil {
		t.Fatalf("NewFormController() error = %v", err)
	}
	return c, ctx
}

func typeText(c *FormController, s string) {
	for _, r := range s {
		c.Edit(nil, 0, r, gocui.ModNone)
	}
}

func press(c *FormController, key gocui.Key) bool {
	return c.Edit(nil, key, 0, gocui.ModNone)
}

func display(ctx *Context, name string) string {
	if f := ctx.State.GetField(name); f != nil {
		return f.Display
	}
	return "<missing>"
}

func TestNewFormController(t *testing.T) {
	c, ctx := newTestForm(t)

	if got := ctx.State.FieldCount(); got != len(config.DefaultFields()) {
		t.Errorf("FieldCount() = %d, want %d", got, len(config.DefaultFields()))
	}
	if got := ctx.State.GetSelectedFieldName(); got != "phone" {
		t.Errorf("focused field = %q, want phone", got)
	}
	if got := c.FocusedView(); got != "field-phone" {
		t.Errorf("FocusedView() = %q", got)
	}

	expiry, ok := c.Field("expiry")
	if !ok {
		t.Fatal("expiry field missing")
	}
	if expiry.Placeholder() != "MM/YY" || expiry.MaxLength() != 5 {
		t.Errorf("expiry placeholder %q maxlen %d", expiry.Placeholder(), expiry.MaxLength())
	}
	if name, _ := expiry.Attr("name"); name != "expiry" {
		t.Errorf("expiry name attr = %q", name)
	}
}

func TestNewFormControllerInitialValue(t *testing.T) {
	_, ctx := newTestForm(t, config.FieldConfig{Name: "phone", Mask: "(111) 111-1111", Value: "3454521234"})

	f := ctx.State.GetField("phone")
	if f.Display != "(345) 452-1234" || !f.Complete {
		t.Errorf("phone = %+v", f)
	}
}

func TestTypingUpdatesState(t *testing.T) {
	c, ctx := newTestForm(t)

	typeText(c, "345")
	if got := display(ctx, "phone"); got != "(345) ___-____" {
		t.Errorf("after 345 display = %q", got)
	}

	typeText(c, "4521234")
	f := ctx.State.GetField("phone")
	if f.Display != "(345) 452-1234" || f.Raw != "3454521234" || !f.Complete {
		t.Errorf("phone = %+v", f)
	}
	if got := ctx.State.CompleteCount(); got != 1 {
		t.Errorf("CompleteCount() = %d", got)
	}

	// Rejected characters are consumed without changing anything.
	if !c.Edit(nil, 0, 'x', gocui.ModNone) {
		t.Error("rejected rune should still be handled")
	}
	if got := display(ctx, "phone"); got != "(345) 452-1234" {
		t.Errorf("after rejected rune display = %q", got)
	}
}

func TestBackspace(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "345")

	press(c, gocui.KeyBackspace2)
	if got := display(ctx, "phone"); got != "(34_) ___-____" {
		t.Errorf("after backspace display = %q", got)
	}
}

func TestFocusCycling(t *testing.T) {
	c, ctx := newTestForm(t)

	c.FocusNext()
	typeText(c, "1234")
	if got := display(ctx, "expiry"); got != "12/34" {
		t.Errorf("expiry display = %q", got)
	}
	if got := display(ctx, "phone"); got != "" {
		t.Errorf("phone display = %q, want untouched", got)
	}

	c.FocusPrev()
	c.FocusPrev()
	if got := ctx.State.GetSelectedFieldName(); got != "colour" {
		t.Errorf("focus after wrapping back = %q, want colour", got)
	}
}

func TestUnhandledKeysFallThrough(t *testing.T) {
	c, _ := newTestForm(t)

	for _, key := range []gocui.Key{gocui.KeyTab, gocui.KeyEnter, gocui.KeyCtrlS, gocui.KeyCtrlQ} {
		if press(c, key) {
			t.Errorf("key %v was consumed by the field", key)
		}
	}
	if c.Edit(nil, 0, 'x', gocui.ModAlt) {
		t.Error("alt+x was consumed by the field")
	}
}

func TestUndoRedoActions(t *testing.T) {
	c, ctx := newTestForm(t)
	ctx.State.SetSelectedField("expiry")
	typeText(c, "12")

	press(c, gocui.KeyCtrlZ)
	if got := display(ctx, "expiry"); got != "1_/__" {
		t.Errorf("after undo display = %q", got)
	}
	press(c, gocui.KeyCtrlY)
	if got := display(ctx, "expiry"); got != "12/__" {
		t.Errorf("after redo display = %q", got)
	}
}

func TestRebindUndo(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Undo = "f5"
	actions := fieldActions(cfg.Keys)

	if act, ok := actions[gocui.KeyF5]; !ok || act != actUndo {
		t.Errorf("f5 action = %v, %v; want undo", act, ok)
	}
	if _, ok := actions[gocui.KeyCtrlZ]; ok {
		t.Error("ctrl+z still bound as an action")
	}

	cfg.Keys.Redo = "r"
	if _, ok := fieldActions(cfg.Keys)['r']; ok {
		t.Error("rune binding should be skipped")
	}
}

func TestCutPaste(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")

	press(c, gocui.KeyCtrlA)
	press(c, gocui.KeyCtrlX)
	if got := display(ctx, "phone"); got != "" {
		t.Errorf("after cut display = %q", got)
	}
	clip, _ := ctx.Clipboard.ReadAll()
	if clip != "(345) 452-1234" {
		t.Errorf("clipboard = %q", clip)
	}

	ctx.Clipboard.WriteAll("789 123-4321")
	press(c, gocui.KeyCtrlV)
	if got := display(ctx, "phone"); got != "(789) 123-4321" {
		t.Errorf("after paste display = %q", got)
	}
	f, _ := c.Field("phone")
	if start, end := f.Control().Selection(); start != 14 || end != 14 {
		t.Errorf("caret after paste = (%d,%d), want (14,14)", start, end)
	}
}

func TestCutWithoutSelection(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "345")

	press(c, gocui.KeyCtrlX)
	if got := display(ctx, "phone"); got != "(345) ___-____" {
		t.Errorf("display = %q", got)
	}
	if clip, _ := ctx.Clipboard.ReadAll(); clip != "" {
		t.Errorf("clipboard = %q, want empty", clip)
	}
}

func TestClearAction(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")

	press(c, gocui.KeyCtrlL)
	if got := display(ctx, "phone"); got != "" {
		t.Errorf("after clear display = %q", got)
	}

	press(c, gocui.KeyCtrlZ)
	if got := display(ctx, "phone"); got != "(345) 452-1234" {
		t.Errorf("after undoing clear display = %q", got)
	}
}

func TestSubmit(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")

	sub, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Values["phone"] != "(345) 452-1234" || sub.Raw["phone"] != "3454521234" {
		t.Errorf("submission = %+v", sub)
	}
	if sub.Values["expiry"] != "" {
		t.Errorf("untouched expiry = %q, want empty", sub.Values["expiry"])
	}

	id, _, ok := ctx.State.LastSubmitted()
	if !ok || id != sub.ID {
		t.Errorf("LastSubmitted() = %q, %v", id, ok)
	}
	if !strings.Contains(ctx.State.Message(), "submitted "+sub.ID[:8]) {
		t.Errorf("Message() = %q", ctx.State.Message())
	}

	reloaded := submit.NewStore(ctx.Config.SubmissionsFile())
	if err := reloaded.Load(); err != nil || reloaded.Count() != 1 {
		t.Errorf("persisted submissions = %d, err %v", reloaded.Count(), err)
	}
}

func TestReloadKeepsTrackedValues(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")
	oldExpiry, _ := c.Field("expiry")

	cfg := config.Default()
	cfg.DataDir = ctx.Config.DataDir
	cfg.Fields = []config.FieldConfig{
		{Name: "phone", Label: "Mobile", Mask: "111-111-1111"},
		{Name: "zip", Mask: "11111", Value: "12345"},
	}
	if err := c.Reload(cfg); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := display(ctx, "phone"); got != "345-452-1234" {
		t.Errorf("phone after reload = %q", got)
	}
	if got := ctx.State.GetField("phone").Label; got != "Mobile" {
		t.Errorf("phone label = %q", got)
	}
	if got := display(ctx, "zip"); got != "12345" {
		t.Errorf("zip = %q", got)
	}
	if _, ok := c.Field("expiry"); ok {
		t.Error("expiry still present after reload")
	}
	if !oldExpiry.Disposed() {
		t.Error("removed field not disposed")
	}
	if ctx.State.FieldCount() != 2 {
		t.Errorf("FieldCount() = %d", ctx.State.FieldCount())
	}
}

func TestReloadInvalidMask(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "345")

	cfg := config.Default()
	cfg.Fields[0].Mask = ""
	err := c.Reload(cfg)

	var fault *maskedinput.ConfigurationFault
	if !errors.As(err, &fault) {
		t.Fatalf("Reload() error = %v, want ConfigurationFault", err)
	}
	if got := display(ctx, "phone"); got != "(345) ___-____" {
		t.Errorf("phone after failed reload = %q", got)
	}
	if !strings.HasPrefix(ctx.State.Message(), "config:") {
		t.Errorf("Message() = %q", ctx.State.Message())
	}
}

func TestReloadBadNewFieldLeavesFormUntouched(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "345")
	count := ctx.State.FieldCount()

	cfg := config.Default()
	cfg.DataDir = ctx.Config.DataDir
	cfg.Fields = []config.FieldConfig{
		{Name: "phone", Mask: "111-111-1111"},
		{Name: "zip", Mask: ""},
	}
	if err := c.Reload(cfg); err == nil {
		t.Fatal("Reload() with an unbuildable field succeeded")
	}

	if got := display(ctx, "phone"); got != "(345) ___-____" {
		t.Errorf("phone after failed reload = %q", got)
	}
	if _, ok := c.Field("zip"); ok {
		t.Error("zip added by a failed reload")
	}
	if ctx.Config == cfg {
		t.Error("failed reload replaced the config")
	}
	if ctx.State.FieldCount() != count {
		t.Errorf("FieldCount() = %d, want %d", ctx.State.FieldCount(), count)
	}
}

func TestPreviewJSON(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")

	src, err := NewPreviewController(ctx).JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var got struct {
		Values map[string]string `json:"values"`
		Raw    map[string]string `json:"raw"`
	}
	if err := json.Unmarshal([]byte(src), &got); err != nil {
		t.Fatalf("preview is not JSON: %v\n%s", err, src)
	}
	if got.Values["phone"] != "(345) 452-1234" || got.Raw["phone"] != "3454521234" {
		t.Errorf("preview = %+v", got)
	}
}

func TestStatusBar(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")

	bar := NewStatusBarController(ctx).Bar(120)
	if bar.Sent != 0 || bar.LastSent != "" {
		t.Errorf("bar before submit = %d sent, last %q", bar.Sent, bar.LastSent)
	}

	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	ctx.Now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	bar = NewStatusBarController(ctx).Bar(120)
	if bar.Filled != 1 || bar.Total != 4 {
		t.Errorf("bar counts = %d/%d", bar.Filled, bar.Total)
	}
	if bar.Focused != "Phone" {
		t.Errorf("bar focused = %q", bar.Focused)
	}
	if bar.Sent != 1 || bar.LastSent != "2m ago" {
		t.Errorf("bar = %d sent, last %q", bar.Sent, bar.LastSent)
	}
}

func TestHelpContent(t *testing.T) {
	c, ctx := newTestForm(t)
	typeText(c, "3454521234")
	ctx.Config.Keys.Redo = ""
	ctx.Config.Keys.Clear = "ctrl+u"

	got := NewHelpController(ctx).Content(0)

	for _, want := range []string{"ctrl+z", "Undo", "ctrl+u", "Clear field", "Phone", "DONE", "(111) 111-1111", "Press esc"} {
		if !strings.Contains(got, want) {
			t.Errorf("help missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Redo") {
		t.Errorf("help lists an unbound action:\n%s", got)
	}
}

func TestFocusField(t *testing.T) {
	c, ctx := newTestForm(t)

	if err := c.focusField("expiry"); err != nil {
		t.Fatalf("focusField() error = %v", err)
	}
	if got := ctx.State.GetSelectedFieldName(); got != "expiry" {
		t.Errorf("selected = %q, want expiry", got)
	}
	typeText(c, "1225")
	if got := display(ctx, "expiry"); got != "12/25" {
		t.Errorf("expiry = %q", got)
	}

	c.focusField("missing")
	if got := ctx.State.GetSelectedFieldName(); got != "expiry" {
		t.Errorf("unknown field moved focus to %q", got)
	}
}

func TestDispose(t *testing.T) {
	c, ctx := newTestForm(t)
	c.Dispose()

	typeText(c, "345")
	if got := display(ctx, "phone"); got != "" {
		t.Errorf("disposed field accepted input: %q", got)
	}
}
