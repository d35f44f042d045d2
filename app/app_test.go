package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func headless(t *testing.T, script string) hal.HeadlessConfig {
	t.Helper()
	evs, err := hal.ParseScript(script)
	require.NoError(t, err)
	return hal.HeadlessConfig{
		Host:   hal.HostConfig{Log: &bytes.Buffer{}},
		Hz:     1000,
		Script: evs,
	}
}

func TestRunHeadlessScript(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text, err := RunHeadless(ctx, Config{}, headless(t, "12+3{enter}*2="))
	require.NoError(t, err)
	assert.Equal(t, "30", text)
}

func TestRunHeadlessUsesSettingsFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, settings.Settings{Theme: settings.ThemeDark, AngleUnit: "rad"}.Save(path))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text, err := RunHeadless(ctx, Config{SettingsPath: path}, headless(t, "0o{f2}90s"))
	require.NoError(t, err)
	assert.Equal(t, "1", text)

	got, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deg", got.AngleUnit, "F2 toggled and saved the angle unit")
}

func TestRunHeadlessPrefill(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	text, err := RunHeadless(ctx, Config{Expr: "sqrt(2)^2"}, headless(t, "="))
	require.NoError(t, err)
	assert.Equal(t, "2", text)
}

func TestRunHeadlessBadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, settings.Settings{Theme: "neon"}.Save(path))

	_, err := RunHeadless(context.Background(), Config{SettingsPath: path}, headless(t, "1"))
	require.ErrorIs(t, err, settings.ErrInvalid)
}

func TestEval(t *testing.T) {
	got, err := Eval("2*(3+4)", calc.Degrees)
	require.NoError(t, err)
	assert.Equal(t, "14", got)

	got, err = Eval("1/0", calc.Degrees)
	require.ErrorIs(t, err, calc.ErrDivideByZero)
	assert.Equal(t, calc.ErrorText, got)

	got, err = Eval("sin(pi/2)", calc.Radians)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestGuardStepRecovers(t *testing.T) {
	var logBuf bytes.Buffer
	h := hal.New(hal.HostConfig{Width: 64, Height: 32, Log: &logBuf})
	step := guardStep(h, zap.NewNop(), func() error { panic("boom") })

	err := step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	buf := h.Display().Framebuffer().Buffer()
	assert.Equal(t, byte(0xFF), buf[len(buf)-1], "panic screen clears to white")

	ok := guardStep(h, zap.NewNop(), func() error { return errors.New("plain") })
	assert.EqualError(t, ok(), "plain")
}
