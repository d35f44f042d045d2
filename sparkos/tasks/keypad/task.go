// Package keypad is the framebuffer frontend: an entry line, a short history
// and a clickable keypad, driven by the HAL keyboard, pointer and tick
// stream.
package keypad

import (
	"context"
	"errors"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
)

var ErrNoDisplay = errors.New("keypad: no framebuffer")

const (
	// Host ticks are milliseconds.
	errorFlashTicks = 400
	pressFlashTicks = 120
)

// Config wires the task to its collaborators. All fields are optional.
type Config struct {
	Settings *settings.Store
	History  *calc.History
	Logger   *zap.Logger
	// Expr pre-fills the entry.
	Expr string
}

// Task implements a framebuffer-based calculator keypad.
type Task struct {
	kbd   hal.Keyboard
	ptr   hal.Pointer
	ticks <-chan uint64
	store *settings.Store
	log   *zap.Logger

	fb hal.Framebuffer
	d  *fbDisplay

	font   tinyfont.Fonter
	lineH  int
	ascent int

	sess    *calc.Session
	set     settings.Settings
	changed chan settings.Settings
	lay     screenLayout

	text       string
	now        uint64
	errUntil   uint64
	pressed    int
	pressUntil uint64
	focus      int
	showFocus  bool
	dirty      bool
}

// New builds the task and draws the first frame.
func New(h hal.HAL, cfg Config) (*Task, error) {
	if h == nil || h.Display() == nil || h.Display().Framebuffer() == nil {
		return nil, ErrNoDisplay
	}

	t := &Task{
		store:   cfg.Settings,
		log:     cfg.Logger,
		fb:      h.Display().Framebuffer(),
		changed: make(chan settings.Settings, 1),
		pressed: -1,
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if in := h.Input(); in != nil {
		t.kbd = in.Keyboard()
		t.ptr = in.Pointer()
	}
	if clk := h.Time(); clk != nil {
		t.ticks = clk.Ticks()
	}

	t.d = newFBDisplay(t.fb)
	if !t.initFont() {
		return nil, errors.New("keypad: font has no metrics")
	}

	t.set = settings.Default()
	if t.store != nil {
		t.set = t.store.Get()
		t.store.Subscribe(t.settingsChanged)
	}
	t.relayout()

	t.sess = calc.NewSession(t, calc.SessionConfig{
		History: cfg.History,
		Angle:   t,
		Logger:  t.log,
	})
	if cfg.Expr != "" {
		t.sess.SetText(cfg.Expr)
	}
	t.render()
	return t, nil
}

// Session exposes the calculator session, e.g. for printing the final
// result after a headless run.
func (t *Task) Session() *calc.Session { return t.sess }

// Render implements calc.Display.
func (t *Task) Render(text string) {
	if text == calc.ErrorText && t.text != calc.ErrorText {
		t.errUntil = t.now + errorFlashTicks
	}
	t.text = text
	t.dirty = true
}

// AngleUnit implements calc.AngleSource from the task's settings copy.
func (t *Task) AngleUnit() calc.AngleUnit { return t.set.Angle() }

// Step handles every pending event without blocking and redraws if
// anything changed. The window and headless runners call it once per frame.
func (t *Task) Step() error {
	for {
		select {
		case ev := <-t.keyEvents():
			t.handleKey(ev)
		case ev := <-t.pointerEvents():
			t.handlePointer(ev)
		case seq := <-t.ticks:
			t.handleTick(seq)
		case s := <-t.changed:
			t.applySettings(s)
		default:
			if t.dirty {
				t.render()
			}
			return nil
		}
	}
}

// Run blocks handling events until ctx is done.
func (t *Task) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-t.keyEvents():
			t.handleKey(ev)
		case ev := <-t.pointerEvents():
			t.handlePointer(ev)
		case seq := <-t.ticks:
			t.handleTick(seq)
		case s := <-t.changed:
			t.applySettings(s)
		}
		if t.dirty {
			t.render()
		}
	}
}

func (t *Task) keyEvents() <-chan hal.KeyEvent {
	if t.kbd == nil {
		return nil
	}
	return t.kbd.Events()
}

func (t *Task) pointerEvents() <-chan hal.PointerEvent {
	if t.ptr == nil {
		return nil
	}
	return t.ptr.Events()
}

func (t *Task) handleTick(seq uint64) {
	flashing := t.flashing() || t.now < t.pressUntil
	t.now = seq
	if flashing && !(t.flashing() || t.now < t.pressUntil) {
		t.dirty = true
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}

	switch ev.Code {
	case hal.KeyEnter:
		t.sess.Dispatch(calc.EvaluateAction)
	case hal.KeyEscape:
		t.sess.Dispatch(calc.ClearAction)
	case hal.KeyBackspace, hal.KeyDelete:
		t.sess.Dispatch(calc.DeleteAction)
	case hal.KeyTab:
		t.run(cmdDrawer)
	case hal.KeyF1:
		t.run(cmdTheme)
	case hal.KeyF2:
		t.run(cmdAngle)
	case hal.KeyF3:
		t.sess.Dispatch(calc.Action{Kind: calc.ActHistoryClear})
	case hal.KeyF4:
		t.sess.Dispatch(calc.Action{Kind: calc.ActMemoryClear})
	case hal.KeyLeft:
		t.moveFocus(-1, 0)
	case hal.KeyRight:
		t.moveFocus(1, 0)
	case hal.KeyUp:
		t.moveFocus(0, -1)
	case hal.KeyDown:
		t.moveFocus(0, 1)
	case hal.KeyHome:
		t.focus = 0
		t.showFocus = true
		t.dirty = true
	case hal.KeyUnknown:
		t.handleRune(ev.Rune)
	}
}

func (t *Task) handleRune(r rune) {
	if r == ' ' {
		if t.showFocus && t.focus < len(t.lay.keys) {
			t.press(t.focus)
		}
		return
	}
	if a, ok := calc.ActionForRune(r); ok {
		t.sess.Dispatch(a)
	}
}

func (t *Task) handlePointer(ev hal.PointerEvent) {
	if !ev.Press {
		return
	}
	if i, ok := t.lay.hit(ev.X, ev.Y); ok {
		t.showFocus = false
		t.press(i)
	}
}

func (t *Task) moveFocus(dx, dy int) {
	if !t.showFocus {
		t.showFocus = true
	} else {
		t.focus = t.lay.move(t.focus, dx, dy)
	}
	t.dirty = true
}

// press activates key i with a short highlight.
func (t *Task) press(i int) {
	k := t.lay.keys[i]
	t.pressed = i
	t.pressUntil = t.now + pressFlashTicks
	t.dirty = true

	if k.cmd != cmdNone {
		t.run(k.cmd)
		return
	}
	t.sess.Dispatch(k.act)
}

func (t *Task) run(c command) {
	update := func(s *settings.Settings) {
		switch c {
		case cmdDrawer:
			s.DrawerOpen = !s.DrawerOpen
		case cmdTheme:
			s.Theme = s.Theme.Toggle()
		case cmdAngle:
			if s.Angle() == calc.Degrees {
				s.AngleUnit = calc.Radians.String()
			} else {
				s.AngleUnit = calc.Degrees.String()
			}
		}
	}

	if t.store == nil {
		next := t.set
		update(&next)
		t.applySettings(next)
		return
	}
	if err := t.store.Update(update); err != nil {
		t.log.Warn("saving settings failed", zap.Error(err))
	}
	t.applySettings(t.store.Get())
}

// settingsChanged runs on whichever goroutine changed the store; the latest
// value wins.
func (t *Task) settingsChanged(s settings.Settings) {
	for {
		select {
		case t.changed <- s:
			return
		default:
		}
		select {
		case <-t.changed:
		default:
		}
	}
}

func (t *Task) applySettings(s settings.Settings) {
	if s == t.set {
		return
	}
	drawer := s.DrawerOpen != t.set.DrawerOpen
	t.set = s
	if drawer {
		t.relayout()
	}
	t.dirty = true
}

func (t *Task) relayout() {
	var focused button
	if t.focus < len(t.lay.keys) {
		focused = t.lay.keys[t.focus].button
	}
	t.lay = layoutScreen(t.fb.Width(), t.fb.Height(), t.lineH, t.set.DrawerOpen)
	t.pressed = -1
	t.focus = 0
	for i, k := range t.lay.keys {
		if k.label == focused.label && k.act == focused.act && k.cmd == focused.cmd {
			t.focus = i
			break
		}
	}
}
