package calc

// This file contains the expression tree and its evaluator.

import (
	"fmt"
	"math"
)

// env is the evaluation environment for expressions.
type env struct {
	unit AngleUnit
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"π":   math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
	"phi": (1 + math.Sqrt(5)) / 2,
}

type node interface {
	eval(e *env) (float64, error)
}

type nodeNumber struct{ v float64 }

func (n nodeNumber) eval(_ *env) (float64, error) { return n.v, nil }

type nodeIdent struct{ name string }

func (n nodeIdent) eval(_ *env) (float64, error) {
	v, ok := constants[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown name %q", ErrSyntax, n.name)
	}
	return v, nil
}

type nodeUnary struct {
	op byte
	x  node
}

func (n nodeUnary) eval(e *env) (float64, error) {
	v, err := n.x.eval(e)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

type nodeBinary struct {
	op    byte
	left  node
	right node
}

func (n nodeBinary) eval(e *env) (float64, error) {
	a, err := n.left.eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval(e)
	if err != nil {
		return 0, err
	}

	var out float64
	switch n.op {
	case '+':
		out = a + b
	case '-':
		out = a - b
	case '*':
		out = a * b
	case '/':
		if b == 0 {
			return 0, ErrDivideByZero
		}
		out = a / b
	case '^':
		out = math.Pow(a, b)
		if math.IsNaN(out) {
			return 0, fmt.Errorf("%w: %g^%g", ErrDomain, a, b)
		}
	default:
		return 0, fmt.Errorf("%w: operator %q", ErrSyntax, n.op)
	}
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return 0, fmt.Errorf("%w: %g %c %g", ErrNonFinite, a, n.op, b)
	}
	return out, nil
}

type nodeCall struct {
	name string
	args []node
}

func (n nodeCall) eval(e *env) (float64, error) {
	b, ok := builtins[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown function %q", ErrSyntax, n.name)
	}
	if len(n.args) < b.minArgs || (b.maxArgs >= 0 && len(n.args) > b.maxArgs) {
		return 0, fmt.Errorf("%w: %s: wrong number of arguments (%d)", ErrSyntax, n.name, len(n.args))
	}
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return b.fn(e, args)
}

// builtin describes a numeric function callable from expressions.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(*env, []float64) (float64, error)
}

func fromUnary(op UnaryOp) builtin {
	return builtin{minArgs: 1, maxArgs: 1, fn: func(e *env, args []float64) (float64, error) {
		return op.apply(args[0], e.unit)
	}}
}

var builtins = map[string]builtin{
	"sin":   fromUnary(OpSin),
	"cos":   fromUnary(OpCos),
	"tan":   fromUnary(OpTan),
	"asin":  fromUnary(OpAsin),
	"acos":  fromUnary(OpAcos),
	"atan":  fromUnary(OpAtan),
	"sqrt":  fromUnary(OpSqrt),
	"sq":    fromUnary(OpSquare),
	"inv":   fromUnary(OpReciprocal),
	"exp":   fromUnary(OpExp),
	"ln":    fromUnary(OpLn),
	"log":   fromUnary(OpLog10),
	"log10": fromUnary(OpLog10),

	"abs":   {minArgs: 1, maxArgs: 1, fn: scalar(math.Abs)},
	"floor": {minArgs: 1, maxArgs: 1, fn: scalar(math.Floor)},
	"ceil":  {minArgs: 1, maxArgs: 1, fn: scalar(math.Ceil)},
	"round": {minArgs: 1, maxArgs: 1, fn: scalar(math.Round)},
	"pow": {minArgs: 2, maxArgs: 2, fn: func(_ *env, args []float64) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	}},
	"min": {minArgs: 1, maxArgs: -1, fn: func(_ *env, args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	}},
	"max": {minArgs: 1, maxArgs: -1, fn: func(_ *env, args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	}},
}

func scalar(fn func(float64) float64) func(*env, []float64) (float64, error) {
	return func(_ *env, args []float64) (float64, error) {
		return fn(args[0]), nil
	}
}
