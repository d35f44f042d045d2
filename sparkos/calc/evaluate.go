package calc

import (
	"math"
	"strings"
)

var glyphs = strings.NewReplacer("×", "*", "÷", "/", "−", "-")

// Normalize turns display text into an evaluable expression: display
// glyphs become ASCII operators, a dangling operator or "(" at the end is
// dropped, leading "*" artifacts are dropped, and unclosed parentheses are
// closed.
func Normalize(text string) string {
	s := strings.TrimSpace(glyphs.Replace(text))
	for s != "" && endsOpen(s) {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	s = strings.TrimLeft(s, "*")
	if open := strings.Count(s, "(") - strings.Count(s, ")"); open > 0 {
		s += strings.Repeat(")", open)
	}
	return s
}

// EvalExpr evaluates text without rounding.
func EvalExpr(text string, unit AngleUnit) (float64, error) {
	expr := Normalize(text)
	if expr == "" {
		return 0, ErrEmpty
	}
	n, err := parse(expr)
	if err != nil {
		return 0, err
	}
	v, err := n.eval(&env{unit: unit})
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Result describes one evaluation.
type Result struct {
	// Expr is the entry text as it was before evaluation.
	Expr string
	// Text is the display text afterwards: the rounded value or ErrorText.
	Text  string
	Value float64
	Err   error
	// OK is true only for a successful evaluation.
	OK bool
}

// Entry formats the result as a history line.
func (r Result) Entry() string { return r.Expr + " = " + r.Text }

// Evaluate evaluates the whole entry. On success the display shows the
// rounded value; on any failure it shows ErrorText. PendingReset is set
// either way. The error state itself evaluates to a no-op.
func Evaluate(s State, unit AngleUnit) (State, Result) {
	if s.IsError() {
		return s, Result{Expr: s.Text, Text: s.Text}
	}

	r := Result{Expr: s.Text}
	v, err := EvalExpr(s.Text, unit)
	if err != nil {
		s = s.withError()
		r.Text = s.Text
		r.Err = err
		return s, r
	}

	r.Value = Round(v, Precision)
	s = s.withValue(r.Value)
	r.Text = s.Text
	r.OK = true
	return s, r
}

// isPlainNumber reports whether text is a bare decimal literal, optionally
// negative, that needs no evaluation.
func isPlainNumber(text string) bool {
	if strings.HasPrefix(text, "-") {
		text = text[1:]
	}
	if text == "" || text == "." {
		return false
	}
	dot := false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '.':
			if dot {
				return false
			}
			dot = true
		case !isDigit(c):
			return false
		}
	}
	return true
}
