package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: -1e-12, want: "0"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: 2.0 / 3.0, want: "0.6666666667"},
		{in: -42, want: "-42"},
		{in: 123456789012, want: "123456789012"},
		{in: 1e21, want: "1e+21"},
		{in: 0.00000000004, want: "0"},
		{in: 0.00000000006, want: "0.0000000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestRound_PassesThroughNonFinite(t *testing.T) {
	assert.True(t, math.IsInf(Round(math.Inf(1), Precision), 1))
	assert.True(t, math.IsNaN(Round(math.NaN(), Precision)))
}

func TestPiText(t *testing.T) {
	assert.Equal(t, "3.1415926536", PiText())
}

func TestState_String(t *testing.T) {
	s := State{Text: "12", PendingReset: true, Memory: 3, HasMemory: true}
	assert.Equal(t, "12 [=] [M 3]", s.String())
	assert.Equal(t, "0", NewState().String())
}

func TestParseAngleUnit(t *testing.T) {
	u, err := ParseAngleUnit(" Radians ")
	assert.NoError(t, err)
	assert.Equal(t, Radians, u)

	u, err = ParseAngleUnit("")
	assert.NoError(t, err)
	assert.Equal(t, Degrees, u)

	_, err = ParseAngleUnit("grad")
	assert.Error(t, err)
}
