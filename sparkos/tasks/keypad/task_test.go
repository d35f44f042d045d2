package keypad

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeHAL struct {
	fb    hal.Framebuffer
	keys  chan hal.KeyEvent
	ptr   chan hal.PointerEvent
	ticks chan uint64
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:    hal.NewFramebuffer(hal.DefaultWidth, hal.DefaultHeight),
		keys:  make(chan hal.KeyEvent, 64),
		ptr:   make(chan hal.PointerEvent, 8),
		ticks: make(chan uint64, 64),
	}
}

func (f *fakeHAL) Logger() hal.Logger   { return nil }
func (f *fakeHAL) Display() hal.Display { return f }
func (f *fakeHAL) Input() hal.Input     { return f }
func (f *fakeHAL) Time() hal.Time       { return f }

func (f *fakeHAL) Framebuffer() hal.Framebuffer { return f.fb }
func (f *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(f.keys) }
func (f *fakeHAL) Pointer() hal.Pointer         { return pointer(f.ptr) }
func (f *fakeHAL) Ticks() <-chan uint64         { return f.ticks }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

func (f *fakeHAL) typeText(s string) {
	for _, r := range s {
		f.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
}

func (f *fakeHAL) key(code hal.KeyCode) {
	f.keys <- hal.KeyEvent{Code: code, Press: true}
	f.keys <- hal.KeyEvent{Code: code, Press: false}
}

func newTask(t *testing.T, f *fakeHAL, cfg Config) *Task {
	t.Helper()
	task, err := New(f, cfg)
	require.NoError(t, err)
	return task
}

func keyIndex(t *testing.T, task *Task, label string) int {
	t.Helper()
	for i, k := range task.lay.keys {
		if k.label == label {
			return i
		}
	}
	t.Fatalf("no key %q", label)
	return -1
}

func TestTypingEvaluates(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{})

	f.typeText("12+3")
	f.key(hal.KeyEnter)
	require.NoError(t, task.Step())

	assert.Equal(t, "15", task.Session().Text())
	if diff := cmp.Diff([]string{"12+3 = 15"}, task.Session().History().Entries()); diff != "" {
		t.Fatalf("history (-want +got):\n%s", diff)
	}
	assert.False(t, task.dirty)

	f.key(hal.KeyBackspace)
	f.key(hal.KeyEscape)
	require.NoError(t, task.Step())
	assert.Equal(t, "0", task.Session().Text())
}

func TestClickKeys(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{})

	click := func(label string) {
		r := task.lay.keys[keyIndex(t, task, label)].r
		f.ptr <- hal.PointerEvent{X: r.x + r.w/2, Y: r.y + r.h/2, Press: true}
		f.ptr <- hal.PointerEvent{X: r.x + r.w/2, Y: r.y + r.h/2, Press: false}
		require.NoError(t, task.Step())
	}

	for _, l := range []string{"7", "x", "(", "2", "+", "1", ")", "="} {
		click(l)
	}
	assert.Equal(t, "21", task.Session().Text())

	click("M+")
	click("C")
	click("MR")
	assert.Equal(t, "21", task.Session().Text())

	f.ptr <- hal.PointerEvent{X: -5, Y: -5, Press: true}
	require.NoError(t, task.Step())
	assert.Equal(t, "21", task.Session().Text())
}

func TestDrawerToggle(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{})
	closed := len(task.lay.keys)
	assert.Equal(t, 28, closed)

	f.key(hal.KeyTab)
	require.NoError(t, task.Step())
	assert.True(t, task.set.DrawerOpen)
	assert.Equal(t, 43, len(task.lay.keys))

	f.typeText("81")
	require.NoError(t, task.Step())
	r := task.lay.keys[keyIndex(t, task, "sqrt")].r
	f.ptr <- hal.PointerEvent{X: r.x + 1, Y: r.y + 1, Press: true}
	require.NoError(t, task.Step())
	assert.Equal(t, "9", task.Session().Text())

	r = task.lay.keys[keyIndex(t, task, "fn")].r
	f.ptr <- hal.PointerEvent{X: r.x + 1, Y: r.y + 1, Press: true}
	require.NoError(t, task.Step())
	assert.Equal(t, closed, len(task.lay.keys))
}

func TestThemeAndAnglePersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := settings.Open(path, nil)
	require.NoError(t, err)

	f := newFakeHAL()
	task := newTask(t, f, Config{Settings: store})
	d := newFBDisplay(f.fb)
	assert.Equal(t, rgb565(lightPalette.bg), d.pixelAt(0, 0))

	f.key(hal.KeyF1)
	f.key(hal.KeyF2)
	require.NoError(t, task.Step())

	assert.Equal(t, rgb565(darkPalette.bg), d.pixelAt(0, 0))
	assert.Equal(t, calc.Radians, task.AngleUnit())

	onDisk, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, onDisk.Theme)
	assert.Equal(t, "rad", onDisk.AngleUnit)

	f.typeText("0o")
	require.NoError(t, task.Step())
	assert.Equal(t, "1", task.Session().Text())
}

func TestExternalSettingsChangeApplies(t *testing.T) {
	store, err := settings.Open("", nil)
	require.NoError(t, err)

	f := newFakeHAL()
	task := newTask(t, f, Config{Settings: store})

	require.NoError(t, store.Update(func(s *settings.Settings) {
		s.DrawerOpen = true
		s.Theme = settings.ThemeDark
	}))
	require.NoError(t, task.Step())
	assert.Equal(t, 43, len(task.lay.keys))
	assert.Equal(t, settings.ThemeDark, task.set.Theme)
}

func TestErrorFlashExpires(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{})

	f.ticks <- 10
	f.typeText("5/0=")
	require.NoError(t, task.Step())
	assert.Equal(t, calc.ErrorText, task.Session().Text())
	assert.True(t, task.flashing())

	f.ticks <- 10 + errorFlashTicks + 1
	require.NoError(t, task.Step())
	assert.False(t, task.flashing())
	assert.False(t, task.dirty, "expiry should have been redrawn")

	f.typeText("4")
	require.NoError(t, task.Step())
	assert.Equal(t, "4", task.Session().Text())
}

func TestFocusNavigation(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{})

	f.key(hal.KeyDown) // shows focus on the first key
	f.key(hal.KeyDown)
	f.key(hal.KeyDown)
	f.typeText(" ")
	require.NoError(t, task.Step())
	assert.Equal(t, "7", task.Session().Text())

	f.key(hal.KeyRight)
	f.typeText(" ")
	require.NoError(t, task.Step())
	assert.Equal(t, "78", task.Session().Text())

	f.key(hal.KeyUp)
	f.key(hal.KeyUp)
	f.key(hal.KeyUp)
	f.key(hal.KeyUp)
	require.NoError(t, task.Step())
	assert.Equal(t, "0", task.lay.keys[task.focus].label, "up from the top row wraps to the bottom")
}

func TestExprPrefill(t *testing.T) {
	f := newFakeHAL()
	task := newTask(t, f, Config{Expr: "2*(3+4)"})
	assert.Equal(t, "2*(3+4)", task.Session().Text())
	f.key(hal.KeyEnter)
	require.NoError(t, task.Step())
	assert.Equal(t, "14", task.Session().Text())
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFakeHAL()
	task := newTask(t, f, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- task.Run(ctx) }()

	f.typeText("6*7=")
	require.Eventually(t, func() bool { return len(f.keys) == 0 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "42", task.Session().Text())
}

func TestNewWithoutDisplay(t *testing.T) {
	_, err := New(nil, Config{})
	require.ErrorIs(t, err, ErrNoDisplay)
}
