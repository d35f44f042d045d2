package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Action
	}{
		{r: '7', want: TokenAction('7')},
		{r: 'x', want: TokenAction(TokenMultiply)},
		{r: '÷', want: TokenAction(TokenDivide)},
		{r: ',', want: TokenAction(TokenPoint)},
		{r: '\r', want: EvaluateAction},
		{r: '=', want: EvaluateAction},
		{r: '\b', want: DeleteAction},
		{r: 0x1b, want: ClearAction},
		{r: 'c', want: ClearAction},
		{r: '%', want: UnaryAction(OpPercent)},
		{r: 'p', want: Action{Kind: ActPi}},
		{r: 's', want: UnaryAction(OpSin)},
		{r: 'm', want: Action{Kind: ActMemoryAdd}},
		{r: 'R', want: Action{Kind: ActMemoryClear}},
	}
	for _, tt := range tests {
		got, ok := ActionForRune(tt.r)
		assert.True(t, ok, "ActionForRune(%q)", tt.r)
		assert.Equal(t, tt.want, got, "ActionForRune(%q)", tt.r)
	}

	_, ok := ActionForRune('z')
	assert.False(t, ok)
}

func TestAction_Label(t *testing.T) {
	assert.Equal(t, "×", TokenAction(TokenMultiply).Label())
	assert.Equal(t, "−", TokenAction(TokenSubtract).Label())
	assert.Equal(t, "7", TokenAction('7').Label())
	assert.Equal(t, "√", UnaryAction(OpSqrt).Label())
	assert.Equal(t, "sin", UnaryAction(OpSin).Label())
	assert.Equal(t, "MR", Action{Kind: ActMemoryRecall}.Label())
	assert.Equal(t, "", Action{}.Label())
}
