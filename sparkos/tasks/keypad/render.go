package keypad

import (
	"image/color"
	"strings"

	"sparkcalc/sparkos/calc"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func (t *Task) initFont() bool {
	t.font = &proggy.TinySZ8pt7b
	t.lineH = int(t.font.GetYAdvance())
	t.ascent = -int(t.font.GetGlyph('M').Info().YOffset)
	return t.lineH > 0 && t.ascent > 0
}

func (t *Task) textWidth(s string) int {
	_, w := tinyfont.LineWidth(t.font, s)
	return int(w)
}

// fitTail drops leading characters until s fits in width, marking the cut
// with '<'.
func (t *Task) fitTail(s string, width int) string {
	if t.textWidth(s) <= width {
		return s
	}
	for len(s) > 1 {
		s = s[1:]
		if t.textWidth("<"+s) <= width {
			return "<" + s
		}
	}
	return s
}

// drawText draws s with its top edge at y. align < 0 is left, 0 centered,
// > 0 right within r.
func (t *Task) drawText(r rect, y int, s string, align int, c color.RGBA) {
	w := t.textWidth(s)
	x := r.x
	switch {
	case align == 0:
		x = r.x + (r.w-w)/2
	case align > 0:
		x = r.x + r.w - w
	}
	tinyfont.WriteLine(t.d, t.font, int16(x), int16(y+t.ascent), s, c)
}

func (t *Task) fill(r rect, c color.RGBA) {
	_ = t.d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), c)
}

func (t *Task) render() {
	if t.fb == nil || t.d == nil {
		return
	}
	pal := paletteFor(t.set.Theme)
	w, h := t.fb.Width(), t.fb.Height()

	t.fill(rect{w: w, h: h}, pal.bg)
	t.renderHeader(pal)
	t.renderHistory(pal)
	t.renderEntry(pal)
	t.renderKeys(pal)

	_ = t.d.Display()
	t.dirty = false
}

func (t *Task) renderHeader(pal *palette) {
	r := t.lay.header
	st := t.sess.State()

	left := strings.ToUpper(t.set.Angle().String())
	if st.HasMemory {
		left += "  M"
	}
	t.drawText(rect{x: r.x + pad, y: r.y, w: r.w - pad*2, h: r.h}, r.y+pad, left, -1, pal.dim)
	t.drawText(rect{x: r.x + pad, y: r.y, w: r.w - pad*2, h: r.h}, r.y+pad, string(t.set.Theme), 1, pal.dim)
}

func (t *Task) renderHistory(pal *palette) {
	r := t.lay.history
	entries := t.sess.History().Entries()
	y := r.y
	for i := 0; i < historyLines && i < len(entries); i++ {
		t.drawText(r, y, t.fitTail(entries[i], r.w), 1, pal.dim)
		y += t.lineH
	}
}

func (t *Task) renderEntry(pal *palette) {
	r := t.lay.entry
	bg := pal.screen
	if t.flashing() {
		bg = pal.err
	}
	t.fill(r, bg)

	text := t.fitTail(t.text, r.w-pad*2)
	y := r.y + (r.h-t.lineH)/2
	t.drawText(rect{x: r.x + pad, y: r.y, w: r.w - pad*2, h: r.h}, y, text, 1, pal.fg)
}

func (t *Task) renderKeys(pal *palette) {
	for i, k := range t.lay.keys {
		bg, fg := pal.key, pal.keyText
		switch k.style {
		case styleOp:
			bg = pal.keyOp
		case styleFn:
			bg = pal.keyFn
		case styleEq:
			bg, fg = pal.keyEq, pal.eqText
		}
		if i == t.pressed && t.now < t.pressUntil {
			bg = pal.pressed
		}
		if i == t.focus && t.showFocus {
			t.fill(k.r, pal.focus)
			t.fill(rect{x: k.r.x + 1, y: k.r.y + 1, w: k.r.w - 2, h: k.r.h - 2}, bg)
		} else {
			t.fill(k.r, bg)
		}

		label := k.label
		if k.cmd == cmdAngle {
			label = t.set.Angle().String()
		}
		t.drawText(k.r, k.r.y+(k.r.h-t.lineH)/2, label, 0, fg)
	}
}

func (t *Task) flashing() bool {
	return t.text == calc.ErrorText && t.now < t.errUntil
}
