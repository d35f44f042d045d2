package calc

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type lexToken struct {
	kind tokenKind
	text string
	num  float64
}

type lexer struct {
	s string
	i int
}

// peek decodes the rune at the cursor. Invalid UTF-8 comes back as
// utf8.RuneError with size 1.
func (l *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.s[l.i:])
}

func (l *lexer) next() lexToken {
	for l.i < len(l.s) {
		r, size := l.peek()
		if !unicode.IsSpace(r) {
			break
		}
		l.i += size
	}
	if l.i >= len(l.s) {
		return lexToken{kind: tokEOF}
	}

	switch c := l.s[l.i]; c {
	case '+':
		l.i++
		return lexToken{kind: tokPlus, text: "+"}
	case '-':
		l.i++
		return lexToken{kind: tokMinus, text: "-"}
	case '*':
		l.i++
		return lexToken{kind: tokStar, text: "*"}
	case '/':
		l.i++
		return lexToken{kind: tokSlash, text: "/"}
	case '^':
		l.i++
		return lexToken{kind: tokCaret, text: "^"}
	case '(':
		l.i++
		return lexToken{kind: tokLParen, text: "("}
	case ')':
		l.i++
		return lexToken{kind: tokRParen, text: ")"}
	case ',':
		l.i++
		return lexToken{kind: tokComma, text: ","}
	}

	ch, size := l.peek()
	if ch != utf8.RuneError && isIdentStart(ch) {
		start := l.i
		l.i += size
		for l.i < len(l.s) {
			r, n := l.peek()
			if r == utf8.RuneError || !isIdentContinue(r) {
				break
			}
			l.i += n
		}
		return lexToken{kind: tokIdent, text: l.s[start:l.i]}
	}
	if ch == '.' || (ch < utf8.RuneSelf && isDigit(byte(ch))) {
		start := l.i
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return lexToken{kind: tokIllegal, text: txt}
		}
		return lexToken{kind: tokNumber, text: txt, num: f}
	}

	text := l.s[l.i : l.i+size]
	l.i += size
	return lexToken{kind: tokIllegal, text: text}
}

// scanNumber returns the end of the numeric literal starting at i.
// Accepts "12", "1.5", ".5", "5." and an optional exponent.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
