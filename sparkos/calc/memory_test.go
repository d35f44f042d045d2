package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Sequence(t *testing.T) {
	s := feed(t, NewState(), "2+3")

	s, err := MemoryAdd(s, Degrees)
	require.NoError(t, err)
	assert.Equal(t, "5", s.Text)
	assert.True(t, s.PendingReset)
	assert.True(t, s.HasMemory)
	assert.Equal(t, 5.0, s.Memory)

	s = feed(t, s, "2")
	s, err = MemorySubtract(s, Degrees)
	require.NoError(t, err)
	assert.Equal(t, "2", s.Text)
	assert.Equal(t, 3.0, s.Memory)

	s = MemoryRecall(s)
	assert.Equal(t, "3", s.Text)
	assert.True(t, s.PendingReset)

	s = MemoryClear(s)
	assert.False(t, s.HasMemory)
	assert.Zero(t, s.Memory)
	assert.Equal(t, "3", s.Text)
}

func TestMemory_AccumulatesRounded(t *testing.T) {
	s := State{Text: "0.1"}
	var err error
	s, err = MemoryAdd(s, Degrees)
	require.NoError(t, err)
	s.Text = "0.2"
	s, err = MemoryAdd(s, Degrees)
	require.NoError(t, err)
	assert.Equal(t, 0.3, s.Memory)
}

func TestMemoryRecall_WithoutMemoryIsNoop(t *testing.T) {
	s := State{Text: "5*"}
	assert.Equal(t, s, MemoryRecall(s))
}

func TestMemoryRecall_AppendsAfterOperator(t *testing.T) {
	s := State{Text: "5*", Memory: -3, HasMemory: true}
	got := MemoryRecall(s)
	assert.Equal(t, "5*(-3)", got.Text)
	assert.False(t, got.PendingReset)

	got, res := Evaluate(got, Degrees)
	require.NoError(t, res.Err)
	assert.Equal(t, "-15", got.Text)

	s = State{Text: "(", Memory: 2.5, HasMemory: true}
	assert.Equal(t, "((2.5)", MemoryRecall(s).Text)
}

func TestMemoryRecall_ThenDigitStartsNewFactor(t *testing.T) {
	s := MemoryRecall(State{Text: "3+", Memory: 4, HasMemory: true})
	assert.Equal(t, "3+(4)", s.Text)

	s = feed(t, s, "5")
	assert.Equal(t, "3+(4)*5", s.Text)

	s, res := Evaluate(s, Degrees)
	require.NoError(t, res.Err)
	assert.Equal(t, "23", s.Text)

	s = MemoryRecall(State{Text: "3+", Memory: 4, HasMemory: true})
	s = feed(t, s, ".")
	assert.Equal(t, "3+(4)*0.", s.Text)
}

func TestMemory_FailedEvaluationKeepsMemory(t *testing.T) {
	s := State{Text: "1/0", Memory: 7, HasMemory: true}
	got, err := MemoryAdd(s, Degrees)
	require.ErrorIs(t, err, ErrDivideByZero)
	assert.Equal(t, ErrorText, got.Text)
	assert.Equal(t, 7.0, got.Memory)
	assert.True(t, got.HasMemory)
}

func TestMemory_ErrorStateIsNoop(t *testing.T) {
	s := State{Text: ErrorText, PendingReset: true, Memory: 1, HasMemory: true}
	got, err := MemorySubtract(s, Degrees)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
