package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModelEvaluates(t *testing.T) {
	m := New(Config{})
	send(m, runes("1+2"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "3", m.Session().Text())
	view := m.View()
	assert.Contains(t, view, "1+2 = 3")
	assert.Contains(t, view, "SparkCalc  DEG")
	assert.Contains(t, view, "×")
}

func TestModelEditingKeys(t *testing.T) {
	m := New(Config{})
	send(m, runes("123"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "12", m.Session().Text())

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "0", m.Session().Text())

	send(m, runes("5/0="))
	assert.Equal(t, calc.ErrorText, m.Session().Text())
	assert.Contains(t, m.View(), calc.ErrorText)
}

func TestModelQuit(t *testing.T) {
	m := New(Config{})
	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelDrawerAndHelp(t *testing.T) {
	m := New(Config{})
	assert.NotContains(t, m.View(), "asin")

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "asin")

	send(m, runes("?"))
	assert.Contains(t, m.View(), "inverse trig")
}

func TestModelTogglesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, err := settings.Open(path, nil)
	require.NoError(t, err)

	m := New(Config{Settings: store})
	send(m, tea.KeyMsg{Type: tea.KeyF1}, tea.KeyMsg{Type: tea.KeyF2})

	assert.Equal(t, settings.ThemeDark, store.Get().Theme)
	assert.Equal(t, calc.Radians, m.AngleUnit())
	assert.True(t, strings.Contains(m.View(), "RAD"))

	onDisk, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, onDisk.Theme)
}

func TestModelAppliesExternalSettings(t *testing.T) {
	m := New(Config{})
	send(m, settingsMsg(settings.Settings{Theme: settings.ThemeDark, AngleUnit: "rad", DrawerOpen: true}))
	assert.Equal(t, calc.Radians, m.AngleUnit())
	assert.Contains(t, m.View(), "acos")

	send(m, runes("0o"))
	assert.Equal(t, "1", m.Session().Text())
}

func TestModelWindowSize(t *testing.T) {
	m := New(Config{Expr: "2^10"})
	send(m, tea.WindowSizeMsg{Width: 80, Height: 24}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "1024", m.Session().Text())
	assert.Nil(t, m.Init())
}
