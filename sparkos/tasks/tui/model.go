// Package tui is the terminal frontend, a bubbletea program over the same
// calculator session the window frontend uses.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/services/settings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	cellWidth    = 7
	minWidth     = cellWidth * 4
	historyShown = calc.HistoryCapacity
)

// Config wires the model. All fields are optional.
type Config struct {
	Settings *settings.Store
	History  *calc.History
	Logger   *zap.Logger
	Expr     string
}

// settingsMsg carries a settings change made outside the program.
type settingsMsg settings.Settings

// Model is the bubbletea model.
type Model struct {
	sess  *calc.Session
	store *settings.Store
	log   *zap.Logger
	set   settings.Settings
	st    styles
	width int
	help  bool
}

// New builds a model; the session renders into the view on demand.
func New(cfg Config) *Model {
	m := &Model{store: cfg.Settings, log: cfg.Logger, set: settings.Default()}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.store != nil {
		m.set = m.store.Get()
	}
	m.sess = calc.NewSession(nil, calc.SessionConfig{
		History: cfg.History,
		Angle:   m,
		Logger:  m.log,
	})
	if cfg.Expr != "" {
		m.sess.SetText(cfg.Expr)
	}
	m.restyle()
	return m
}

// Session exposes the calculator session.
func (m *Model) Session() *calc.Session { return m.sess }

// AngleUnit implements calc.AngleSource.
func (m *Model) AngleUnit() calc.AngleUnit { return m.set.Angle() }

func (m *Model) restyle() {
	w := m.width
	if w < minWidth {
		w = minWidth
	}
	if w > cellWidth*4+4 {
		w = cellWidth*4 + 4
	}
	m.st = newStyles(ThemeFor(m.set.Theme), w)
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.restyle()
	case settingsMsg:
		m.set = settings.Settings(msg)
		m.restyle()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		return tea.Quit
	case tea.KeyEnter:
		m.sess.Dispatch(calc.EvaluateAction)
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Dispatch(calc.DeleteAction)
	case tea.KeyEsc:
		m.sess.Dispatch(calc.ClearAction)
	case tea.KeyTab:
		m.toggle(func(s *settings.Settings) { s.DrawerOpen = !s.DrawerOpen })
	case tea.KeyF1:
		m.toggle(func(s *settings.Settings) { s.Theme = s.Theme.Toggle() })
	case tea.KeyF2:
		m.toggle(func(s *settings.Settings) {
			if s.Angle() == calc.Degrees {
				s.AngleUnit = calc.Radians.String()
			} else {
				s.AngleUnit = calc.Degrees.String()
			}
		})
	case tea.KeyF3:
		m.sess.Dispatch(calc.Action{Kind: calc.ActHistoryClear})
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '?' {
				m.help = !m.help
				continue
			}
			if a, ok := calc.ActionForRune(r); ok {
				m.sess.Dispatch(a)
			}
		}
	}
	return nil
}

func (m *Model) toggle(fn func(*settings.Settings)) {
	if m.store == nil {
		fn(&m.set)
		m.restyle()
		return
	}
	if err := m.store.Update(fn); err != nil {
		m.log.Warn("saving settings failed", zap.Error(err))
	}
	m.set = m.store.Get()
	m.restyle()
}

var (
	tuiMain = [][]calc.Action{
		{{Kind: calc.ActMemoryClear}, {Kind: calc.ActMemoryRecall}, {Kind: calc.ActMemoryAdd}, {Kind: calc.ActMemorySubtract}},
		{calc.ClearAction, calc.DeleteAction, calc.UnaryAction(calc.OpPercent), calc.TokenAction(calc.TokenDivide)},
		{calc.TokenAction('7'), calc.TokenAction('8'), calc.TokenAction('9'), calc.TokenAction(calc.TokenMultiply)},
		{calc.TokenAction('4'), calc.TokenAction('5'), calc.TokenAction('6'), calc.TokenAction(calc.TokenSubtract)},
		{calc.TokenAction('1'), calc.TokenAction('2'), calc.TokenAction('3'), calc.TokenAction(calc.TokenAdd)},
		{calc.UnaryAction(calc.OpNegate), calc.TokenAction('0'), calc.TokenAction(calc.TokenPoint), calc.EvaluateAction},
		{calc.TokenAction(calc.TokenOpen), calc.TokenAction(calc.TokenClose), {Kind: calc.ActPi}, calc.UnaryAction(calc.OpSqrt)},
	}
	tuiDrawer = [][]calc.Action{
		{calc.UnaryAction(calc.OpSin), calc.UnaryAction(calc.OpCos), calc.UnaryAction(calc.OpTan), calc.UnaryAction(calc.OpSquare)},
		{calc.UnaryAction(calc.OpAsin), calc.UnaryAction(calc.OpAcos), calc.UnaryAction(calc.OpAtan), calc.UnaryAction(calc.OpReciprocal)},
		{calc.UnaryAction(calc.OpLn), calc.UnaryAction(calc.OpLog10), calc.UnaryAction(calc.OpExp), {Kind: calc.ActHistoryClear}},
	}
)

func (m *Model) View() string {
	var b strings.Builder

	st := m.sess.State()
	header := "SparkCalc  " + strings.ToUpper(m.set.Angle().String())
	if st.HasMemory {
		header += "  M"
	}
	b.WriteString(m.st.header.Render(header))
	b.WriteByte('\n')

	entries := m.sess.History().Entries()
	for i := 0; i < historyShown && i < len(entries); i++ {
		b.WriteString(m.st.history.Render(entries[i]))
		b.WriteByte('\n')
	}

	text := st.Text
	if st.IsError() {
		text = m.st.errText.Render(text)
	}
	b.WriteString(m.st.screen.Render(text))
	b.WriteByte('\n')

	rows := tuiMain
	if m.set.DrawerOpen {
		rows = append(append([][]calc.Action{}, tuiDrawer...), tuiMain...)
	}
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, a := range row {
			cells = append(cells, m.cellStyle(a).Render(a.Label()))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteByte('\n')
	}

	if m.help {
		b.WriteString(m.st.help.Render(helpText))
	} else {
		b.WriteString(m.st.help.Render(fmt.Sprintf("? help · tab fn · F1 %s · ctrl+c quit", m.set.Theme.Toggle())))
	}
	b.WriteByte('\n')
	return b.String()
}

const helpText = `enter/= evaluate · bksp delete · esc/c clear
% percent · n ± · q √ · w x² · i 1/x · p π
s o t sin cos tan · S O T inverse trig · e l g exp ln log
m M+ · M M- · r MR · R MC · H clear history
tab functions · F1 theme · F2 deg/rad · F3 clear history`

func (m *Model) cellStyle(a calc.Action) lipgloss.Style {
	switch a.Kind {
	case calc.ActEvaluate:
		return m.st.equals
	case calc.ActToken:
		if a.Token.IsOperator() || a.Token == calc.TokenOpen || a.Token == calc.TokenClose {
			return m.st.operator
		}
		return m.st.key
	case calc.ActClear, calc.ActDelete:
		return m.st.operator
	}
	return m.st.function
}

// Run starts the program on the terminal and blocks until the user quits or
// ctx is done.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	if m.store != nil {
		// p.Send blocks while Update runs, and toggles call the store from
		// inside Update.
		m.store.Subscribe(func(s settings.Settings) { go p.Send(settingsMsg(s)) })
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
