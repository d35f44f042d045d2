package hal

import (
	"fmt"
	"strings"
)

var scriptKeys = map[string]KeyCode{
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"enter": KeyEnter,
	"esc":   KeyEscape,
	"bs":    KeyBackspace,
	"tab":   KeyTab,
	"del":   KeyDelete,
	"home":  KeyHome,
	"end":   KeyEnd,
	"f1":    KeyF1,
	"f2":    KeyF2,
	"f3":    KeyF3,
	"f4":    KeyF4,
}

// ParseScript turns a key script into press events. Plain characters are
// typed as text; named keys are written in braces, e.g. "2+3{enter}".
// "{{" types a literal brace.
func ParseScript(s string) ([]KeyEvent, error) {
	var out []KeyEvent
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != '{' {
			out = append(out, KeyEvent{Press: true, Rune: r})
			continue
		}
		if i+1 < len(rs) && rs[i+1] == '{' {
			out = append(out, KeyEvent{Press: true, Rune: '{'})
			i++
			continue
		}
		end := i + 1
		for end < len(rs) && rs[end] != '}' {
			end++
		}
		if end >= len(rs) {
			return nil, fmt.Errorf("script: unterminated key name at %d", i)
		}
		name := string(rs[i+1 : end])
		code, ok := scriptKeys[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("script: unknown key %q", name)
		}
		out = append(out, KeyEvent{Code: code, Press: true})
		i = end
	}
	return out, nil
}
