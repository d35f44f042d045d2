package calc

import (
	"strings"
	"unicode/utf8"
)

// Token is a single keypad input: a digit, the decimal point, a binary
// operator, or a parenthesis. Operators are stored in their ASCII form.
type Token byte

const (
	TokenPoint    Token = '.'
	TokenAdd      Token = '+'
	TokenSubtract Token = '-'
	TokenMultiply Token = '*'
	TokenDivide   Token = '/'
	TokenOpen     Token = '('
	TokenClose    Token = ')'
)

// TokenFromRune maps keyboard and display glyphs to a Token.
func TokenFromRune(r rune) (Token, bool) {
	switch r {
	case '×', 'x', 'X':
		return TokenMultiply, true
	case '÷':
		return TokenDivide, true
	case '−':
		return TokenSubtract, true
	case ',':
		return TokenPoint, true
	}
	if r >= utf8.RuneSelf {
		return 0, false
	}
	t := Token(r)
	if !t.valid() {
		return 0, false
	}
	return t, true
}

func (t Token) IsDigit() bool    { return t >= '0' && t <= '9' }
func (t Token) IsOperator() bool { return isOperator(byte(t)) }

func (t Token) valid() bool {
	return t.IsDigit() || t.IsOperator() || t == TokenPoint || t == TokenOpen || t == TokenClose
}

func (t Token) String() string { return string(rune(t)) }

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Append feeds one token into the entry. Invalid input is absorbed as a
// no-op; Append never fails.
func Append(s State, tok Token) State {
	if !tok.valid() {
		return s
	}

	text := s.Text
	if text == ErrorText || text == "" {
		text = defaultText
	}
	if s.PendingReset {
		if !tok.IsOperator() {
			text = defaultText
		}
		s.PendingReset = false
	}

	s.Text = appendToken(text, tok)
	return s
}

func appendToken(text string, tok Token) string {
	last := text[len(text)-1]

	switch {
	case tok == TokenPoint:
		if strings.IndexByte(currentSegment(text), '.') >= 0 {
			return text
		}
		switch {
		case last == ')':
			return text + "*0."
		case isOperator(last) || last == '(':
			return text + "0."
		}
		return text + "."

	case tok.IsOperator():
		if isOperator(last) {
			switch {
			case tok == TokenSubtract && last == '-':
				return text
			case tok == TokenSubtract:
				// Unary minus after another operator: 3*-4.
				return text + "-"
			}
			base := strings.TrimRight(text, "+-*/")
			if base == "" || base[len(base)-1] == '(' {
				return text
			}
			return base + tok.String()
		}
		if last == '(' {
			if tok == TokenSubtract {
				return text + "-"
			}
			return text
		}
		return text + tok.String()

	case tok == TokenOpen:
		if text == defaultText {
			return "("
		}
		if isDigit(last) || last == '.' || last == ')' {
			return text + "*("
		}
		return text + "("

	case tok == TokenClose:
		if strings.Count(text, "(") <= strings.Count(text, ")") {
			return text
		}
		if isOperator(last) || last == '(' {
			return text
		}
		return text + ")"
	}

	// Digit.
	if text == defaultText {
		return tok.String()
	}
	if last == ')' {
		return text + "*" + tok.String()
	}
	if currentSegment(text) == "0" {
		return text[:len(text)-1] + tok.String()
	}
	return text + tok.String()
}

// currentSegment returns the numeric literal being typed: everything after
// the last operator or parenthesis.
func currentSegment(text string) string {
	i := strings.LastIndexAny(text, "+-*/()")
	return text[i+1:]
}

// DeleteLast removes the final character. A single remaining character
// (or the error sentinel) resets the entry to "0". The pending reset is
// left alone: trimming a result does not turn it back into an entry.
func DeleteLast(s State) State {
	if s.IsError() || utf8.RuneCountInString(s.Text) <= 1 {
		s.Text = defaultText
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s.Text)
	s.Text = s.Text[:len(s.Text)-size]
	return s
}

// Clear resets the entry. Memory survives a clear.
func Clear(s State) State {
	s.Text = defaultText
	s.PendingReset = false
	return s
}

// endsOpen reports whether text is waiting for an operand.
func endsOpen(text string) bool {
	if text == "" {
		return false
	}
	last := text[len(text)-1]
	return isOperator(last) || last == '('
}

// insertOperand places a recalled value into the entry. After an operator
// or "(" it completes the expression as a parenthesized operand, so a digit
// typed next starts a new factor instead of extending the value. Otherwise it
// replaces the entry and arms the pending reset.
func insertOperand(s State, lit string) State {
	if s.IsError() || s.PendingReset || !endsOpen(s.Text) {
		s.Text = lit
		s.PendingReset = true
		return s
	}
	s.Text += "(" + lit + ")"
	return s
}
