package calc

import (
	"strings"

	"go.uber.org/zap"
)

// Display receives the entry text after every transition.
type Display interface {
	Render(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) Render(text string) { f(text) }

// AngleSource reports the active angle unit for trigonometric operations.
type AngleSource interface {
	AngleUnit() AngleUnit
}

// FixedAngle is an AngleSource that never changes.
type FixedAngle AngleUnit

func (a FixedAngle) AngleUnit() AngleUnit { return AngleUnit(a) }

// SessionConfig wires a Session to its collaborators. Nil fields get
// defaults: a fresh History, degrees, and a no-op logger.
type SessionConfig struct {
	History *History
	Angle   AngleSource
	Logger  *zap.Logger
}

// Session owns one calculator state and applies actions to it one at a
// time. It is not safe for concurrent use; frontends drive it from a single
// event loop.
type Session struct {
	st    State
	disp  Display
	hist  *History
	angle AngleSource
	log   *zap.Logger
}

// NewSession creates a session and renders the initial state.
func NewSession(disp Display, cfg SessionConfig) *Session {
	s := &Session{
		st:    NewState(),
		disp:  disp,
		hist:  cfg.History,
		angle: cfg.Angle,
		log:   cfg.Logger,
	}
	if s.hist == nil {
		s.hist = NewHistory(HistoryCapacity)
	}
	if s.angle == nil {
		s.angle = FixedAngle(Degrees)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.render()
	return s
}

// State returns a snapshot of the current state.
func (s *Session) State() State { return s.st }

// Text returns the current display text.
func (s *Session) Text() string { return s.st.Text }

// History returns the session's history log.
func (s *Session) History() *History { return s.hist }

// AngleUnit returns the unit trigonometric operations currently use.
func (s *Session) AngleUnit() AngleUnit { return s.angle.AngleUnit() }

// SetText replaces the entry, e.g. with an expression passed on the command
// line. Display glyphs become ASCII operators and whitespace is dropped, so
// the assembler sees the same text it would have built from keys. Blank
// text resets to "0".
func (s *Session) SetText(text string) {
	text = strings.Join(strings.Fields(glyphs.Replace(text)), "")
	if text == "" {
		text = defaultText
	}
	s.st.Text = text
	s.st.PendingReset = false
	s.render()
}

// Dispatch applies a and renders the result.
func (s *Session) Dispatch(a Action) {
	unit := s.angle.AngleUnit()

	switch a.Kind {
	case ActToken:
		s.st = Append(s.st, a.Token)
	case ActEvaluate:
		s.evaluate(unit)
	case ActDelete:
		s.st = DeleteLast(s.st)
	case ActClear:
		s.st = Clear(s.st)
	case ActUnary:
		var err error
		prev := s.st.Text
		s.st, err = Apply(s.st, a.Op, unit)
		s.logFailure(a.Op.String(), prev, err)
	case ActPi:
		s.st = InsertPi(s.st)
	case ActMemoryAdd, ActMemorySubtract:
		var err error
		prev := s.st.Text
		if a.Kind == ActMemoryAdd {
			s.st, err = MemoryAdd(s.st, unit)
		} else {
			s.st, err = MemorySubtract(s.st, unit)
		}
		s.logFailure("memory", prev, err)
	case ActMemoryRecall:
		s.st = MemoryRecall(s.st)
	case ActMemoryClear:
		s.st = MemoryClear(s.st)
	case ActHistoryClear:
		s.hist.Clear()
	default:
		return
	}
	s.render()
}

// Press is shorthand for Dispatch(TokenAction(t)).
func (s *Session) Press(t Token) { s.Dispatch(TokenAction(t)) }

// Evaluate is shorthand for Dispatch(EvaluateAction).
func (s *Session) Evaluate() { s.Dispatch(EvaluateAction) }

func (s *Session) evaluate(unit AngleUnit) {
	var r Result
	s.st, r = Evaluate(s.st, unit)
	switch {
	case r.Err != nil:
		s.logFailure("evaluate", r.Expr, r.Err)
	case r.OK && Normalize(r.Expr) != r.Text:
		s.hist.Record(r.Entry())
		s.log.Debug("evaluated", zap.String("expr", r.Expr), zap.String("result", r.Text))
	}
}

func (s *Session) logFailure(op, expr string, err error) {
	if err == nil {
		return
	}
	s.log.Debug("calculation failed",
		zap.String("op", op),
		zap.String("expr", expr),
		zap.Stringer("kind", KindOf(err)),
		zap.Error(err))
}

func (s *Session) render() {
	if s.disp != nil {
		s.disp.Render(s.st.Text)
	}
}
