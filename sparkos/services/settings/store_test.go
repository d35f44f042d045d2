package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sparkcalc/sparkos/calc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestStoreUpdateSavesAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	st, err := Open(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	var got []Settings
	st.Subscribe(func(s Settings) { got = append(got, s) })

	require.NoError(t, st.Update(func(s *Settings) { s.AngleUnit = "rad" }))
	assert.Equal(t, calc.Radians, st.AngleUnit())
	require.Len(t, got, 1)

	// No change, no notification.
	require.NoError(t, st.Update(func(s *Settings) { s.AngleUnit = "rad" }))
	assert.Len(t, got, 1)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rad", onDisk.AngleUnit)
}

func TestStoreUpdateRejectsInvalid(t *testing.T) {
	st, err := Open("", nil)
	require.NoError(t, err)

	err = st.Update(func(s *Settings) { s.Theme = "neon" })
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, ThemeLight, st.Get().Theme)
}

func TestStoreInMemory(t *testing.T) {
	st, err := Open("", nil)
	require.NoError(t, err)
	require.NoError(t, st.Update(func(s *Settings) { s.DrawerOpen = true }))
	assert.True(t, st.Get().DrawerOpen)
	assert.NoError(t, st.Reload())
	assert.Equal(t, "", st.Path())
}

func TestStoreWatchReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Default().Save(path))

	st, err := Open(path, zaptest.NewLogger(t))
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []Theme
	st.Subscribe(func(s Settings) {
		mu.Lock()
		seen = append(seen, s.Theme)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Watch(ctx) }()

	// Keep rewriting until the watcher is up and has seen it.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("theme: dark\nangle_unit: deg\n"), 0o644)
		return st.Get().Theme == ThemeDark
	}, 5*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Contains(t, seen, ThemeDark)
	mu.Unlock()

	cancel()
	require.NoError(t, <-done)
}

func TestStoreWatchWithoutPathWaitsForCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	st, err := Open("", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Watch(ctx) }()
	cancel()
	require.NoError(t, <-done)
}
