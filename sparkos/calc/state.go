package calc

import (
	"fmt"
	"strings"
)

// ErrorText is the display text while the calculator is in the error state.
const ErrorText = "Error"

const defaultText = "0"

// State is the complete calculator entry state. Transitions are pure
// functions that take a State and return the next one.
type State struct {
	// Text is exactly what the display shows. Never empty.
	Text string
	// PendingReset is set after an evaluation or a unary operation: the next
	// digit starts a new entry, the next operator continues from the result.
	PendingReset bool

	Memory    float64
	HasMemory bool
}

// NewState returns the power-on state.
func NewState() State {
	return State{Text: defaultText}
}

// IsError reports whether s shows the error sentinel.
func (s State) IsError() bool { return s.Text == ErrorText }

func (s State) String() string {
	var b strings.Builder
	b.WriteString(s.Text)
	if s.PendingReset {
		b.WriteString(" [=]")
	}
	if s.HasMemory {
		fmt.Fprintf(&b, " [M %s]", FormatNumber(s.Memory))
	}
	return b.String()
}

func (s State) withError() State {
	s.Text = ErrorText
	s.PendingReset = true
	return s
}

func (s State) withValue(v float64) State {
	s.Text = FormatNumber(v)
	s.PendingReset = true
	return s
}

// AngleUnit selects how trigonometric functions interpret their arguments.
type AngleUnit uint8

const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	if u == Radians {
		return "rad"
	}
	return "deg"
}

// ParseAngleUnit accepts "deg"/"degrees" and "rad"/"radians".
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return Degrees, fmt.Errorf("unknown angle unit %q", s)
	}
}
