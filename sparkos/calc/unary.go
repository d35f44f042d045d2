package calc

import (
	"fmt"
	"math"
	"strconv"
)

// UnaryOp is a single-argument function applied to the current value.
type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
	OpPercent
	OpSqrt
	OpSquare
	OpReciprocal
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpExp
	OpLn
	OpLog10
)

var unaryNames = [...]string{
	OpNegate:     "neg",
	OpPercent:    "percent",
	OpSqrt:       "sqrt",
	OpSquare:     "square",
	OpReciprocal: "reciprocal",
	OpSin:        "sin",
	OpCos:        "cos",
	OpTan:        "tan",
	OpAsin:       "asin",
	OpAcos:       "acos",
	OpAtan:       "atan",
	OpExp:        "exp",
	OpLn:         "ln",
	OpLog10:      "log10",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// trigEpsilon is the tolerance used to detect the tangent singularity.
const trigEpsilon = 1e-10

func toRadians(x float64, unit AngleUnit) float64 {
	if unit == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func fromRadians(x float64, unit AngleUnit) float64 {
	if unit == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

// tanSingular reports whether x sits on an odd multiple of 90° (π/2).
func tanSingular(x float64, unit AngleUnit) bool {
	if unit == Degrees {
		return math.Abs(math.Remainder(x-90, 180)) < trigEpsilon
	}
	return math.Abs(math.Remainder(x-math.Pi/2, math.Pi)) < trigEpsilon
}

func (op UnaryOp) apply(x float64, unit AngleUnit) (float64, error) {
	switch op {
	case OpNegate:
		return -x, nil
	case OpPercent:
		return x / 100, nil
	case OpSqrt:
		if x < 0 {
			return 0, fmt.Errorf("%w: sqrt(%g)", ErrDomain, x)
		}
		return math.Sqrt(x), nil
	case OpSquare:
		return x * x, nil
	case OpReciprocal:
		if x == 0 {
			return 0, fmt.Errorf("%w: 1/0", ErrDomain)
		}
		return 1 / x, nil
	case OpSin:
		return math.Sin(toRadians(x, unit)), nil
	case OpCos:
		return math.Cos(toRadians(x, unit)), nil
	case OpTan:
		if tanSingular(x, unit) {
			return 0, fmt.Errorf("%w: tan(%g %s)", ErrDomain, x, unit)
		}
		return math.Tan(toRadians(x, unit)), nil
	case OpAsin:
		if x < -1 || x > 1 {
			return 0, fmt.Errorf("%w: asin(%g)", ErrDomain, x)
		}
		return fromRadians(math.Asin(x), unit), nil
	case OpAcos:
		if x < -1 || x > 1 {
			return 0, fmt.Errorf("%w: acos(%g)", ErrDomain, x)
		}
		return fromRadians(math.Acos(x), unit), nil
	case OpAtan:
		return fromRadians(math.Atan(x), unit), nil
	case OpExp:
		return math.Exp(x), nil
	case OpLn:
		if x <= 0 {
			return 0, fmt.Errorf("%w: ln(%g)", ErrDomain, x)
		}
		return math.Log(x), nil
	case OpLog10:
		if x <= 0 {
			return 0, fmt.Errorf("%w: log10(%g)", ErrDomain, x)
		}
		return math.Log10(x), nil
	default:
		return 0, fmt.Errorf("%w: unknown operation %s", ErrSyntax, op)
	}
}

// operand returns the numeric value of the entry, evaluating it first if it
// still holds operators or parentheses.
func operand(s State, unit AngleUnit) (float64, error) {
	if isPlainNumber(s.Text) {
		return strconv.ParseFloat(s.Text, 64)
	}
	v, err := EvalExpr(s.Text, unit)
	if err != nil {
		return 0, err
	}
	return Round(v, Precision), nil
}

// Apply runs op on the current value and shows the rounded result. Any
// failure, including one in the implicit evaluation, leaves ErrorText on
// the display. The error state is left untouched.
func Apply(s State, op UnaryOp, unit AngleUnit) (State, error) {
	if s.IsError() {
		return s, nil
	}
	x, err := operand(s, unit)
	if err != nil {
		return s.withError(), err
	}
	v, err := op.apply(x, unit)
	if err != nil {
		return s.withError(), err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.withError(), fmt.Errorf("%w: %s(%g)", ErrNonFinite, op, x)
	}
	return s.withValue(v), nil
}

// InsertPi replaces the entry with π and arms the pending reset, so an
// operator continues from it and a digit starts over.
func InsertPi(s State) State {
	s.Text = PiText()
	s.PendingReset = true
	return s
}
