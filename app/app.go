// Package app wires the HAL, settings, logging and the calculator frontends
// together.
package app

import (
	"context"
	"errors"
	"fmt"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/logger"
	"sparkcalc/sparkos/services/settings"
	"sparkcalc/sparkos/tasks/keypad"
	"sparkcalc/sparkos/tasks/tui"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config is shared by every frontend.
type Config struct {
	// SettingsPath is the YAML settings file. Empty keeps settings in memory.
	SettingsPath string
	// Verbose forces debug logging regardless of the settings file.
	Verbose bool
	// JSONLogs switches log lines to JSON.
	JSONLogs bool
	// Expr pre-fills the entry.
	Expr string
}

// System is one running calculator: its logger, live settings and the
// framebuffer keypad.
type System struct {
	log   *zap.Logger
	level zap.AtomicLevel
	store *settings.Store
	task  *keypad.Task
}

func newLogger(sink hal.Logger, cfg Config, levelName string) (*zap.Logger, zap.AtomicLevel, error) {
	if cfg.Verbose {
		levelName = "debug"
	}
	return logger.New(sink, logger.Config{Level: levelName, JSON: cfg.JSONLogs})
}

// openStore loads settings and keeps the log level in step with them.
func openStore(cfg Config, sink hal.Logger) (*settings.Store, *zap.Logger, zap.AtomicLevel, error) {
	initial := settings.Default()
	if cfg.SettingsPath != "" {
		s, err := settings.Load(cfg.SettingsPath)
		if err != nil {
			return nil, nil, zap.AtomicLevel{}, err
		}
		initial = s
	}

	log, level, err := newLogger(sink, cfg, initial.LogLevel)
	if err != nil {
		return nil, nil, zap.AtomicLevel{}, err
	}

	store, err := settings.Open(cfg.SettingsPath, log)
	if err != nil {
		return nil, nil, zap.AtomicLevel{}, err
	}
	if !cfg.Verbose {
		store.Subscribe(func(s settings.Settings) {
			if lvl, err := logger.ParseLevel(s.LogLevel); err == nil {
				level.SetLevel(lvl)
			}
		})
	}
	return store, log, level, nil
}

// New builds the framebuffer calculator on h.
func New(h hal.HAL, cfg Config) (*System, error) {
	store, log, level, err := openStore(cfg, h.Logger())
	if err != nil {
		return nil, err
	}

	task, err := keypad.New(h, keypad.Config{
		Settings: store,
		Logger:   log,
		Expr:     cfg.Expr,
	})
	if err != nil {
		return nil, err
	}

	log.Info("calculator ready",
		zap.String("settings", store.Path()),
		zap.String("theme", string(store.Get().Theme)),
		zap.Stringer("angle", store.AngleUnit()))

	return &System{log: log, level: level, store: store, task: task}, nil
}

// Step advances the keypad by one frame.
func (s *System) Step() error { return s.task.Step() }

// Watch follows edits to the settings file until ctx is done.
func (s *System) Watch(ctx context.Context) error { return s.store.Watch(ctx) }

// Text returns the current entry text.
func (s *System) Text() string { return s.task.Session().Text() }

// Logger returns the system logger.
func (s *System) Logger() *zap.Logger { return s.log }

// run drives one HAL runner on the calling goroutine (ebiten needs the main
// thread) while the settings watcher runs beside it.
func run(ctx context.Context, cfg Config, runner func(context.Context, func(hal.HAL) func() error) error) (*System, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	ready := make(chan *System, 1)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case sys := <-ready:
			return sys.Watch(gctx)
		}
	})

	var sys *System
	err := runner(gctx, func(h hal.HAL) func() error {
		s, err := New(h, cfg)
		if err != nil {
			return func() error { return err }
		}
		sys = s
		ready <- s
		return guardStep(h, s.log, s.Step)
	})
	cancel()

	if werr := g.Wait(); err == nil {
		err = werr
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if sys != nil {
		_ = sys.log.Sync()
	}
	return sys, err
}

// RunWindow opens the desktop window and blocks until it closes.
func RunWindow(ctx context.Context, cfg Config, host hal.HostConfig) error {
	_, err := run(ctx, cfg, func(ctx context.Context, newApp func(hal.HAL) func() error) error {
		return hal.RunWindow(ctx, newApp, host)
	})
	return err
}

// RunHeadless runs the keypad without a window and returns the final entry
// text.
func RunHeadless(ctx context.Context, cfg Config, hcfg hal.HeadlessConfig) (string, error) {
	sys, err := run(ctx, cfg, func(ctx context.Context, newApp func(hal.HAL) func() error) error {
		return hal.RunHeadless(ctx, newApp, hcfg)
	})
	if sys == nil {
		if err == nil {
			err = errors.New("headless run stopped before start")
		}
		return "", err
	}
	return sys.Text(), err
}

// RunTUI runs the terminal frontend.
func RunTUI(ctx context.Context, cfg Config, sink hal.Logger) error {
	store, log, _, err := openStore(cfg, sink)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return store.Watch(gctx) })

	m := tui.New(tui.Config{Settings: store, Logger: log, Expr: cfg.Expr})
	err = tui.Run(gctx, m)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

// Eval evaluates expr once the way the "=" key would and returns the
// display text.
func Eval(expr string, unit calc.AngleUnit) (string, error) {
	st, res := calc.Evaluate(calc.State{Text: expr}, unit)
	if res.Err != nil {
		return st.Text, fmt.Errorf("%s: %w", expr, res.Err)
	}
	return st.Text, nil
}
