package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	Hz   int
	// Ticks stops the runner after N steps (0 = until the script drains,
	// or forever without a script).
	Ticks uint64
	// Script is fed to the keyboard, one event per step.
	Script []KeyEvent
	// Settle is how many extra steps run after the script drains.
	Settle uint64
	// OnExit receives the final framebuffer when the runner stops on its own.
	OnExit func(Framebuffer)
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Settle == 0 {
		cfg.Settle = 2
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(cfg.Host)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	script := cfg.Script
	var tick, drained uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if len(script) > 0 {
				if h.kbd.emit(script[0]) {
					script = script[1:]
				}
			}
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++

			done := cfg.Ticks > 0 && tick >= cfg.Ticks
			if cfg.Ticks == 0 && len(cfg.Script) > 0 && len(script) == 0 {
				drained++
				done = drained > cfg.Settle
			}
			if done {
				if cfg.OnExit != nil {
					cfg.OnExit(h.fb)
				}
				return nil
			}
		}
	}
}
