package keypad

import "sparkcalc/sparkos/calc"

type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func clipRect(r rect, w, h int) rect {
	x0, y0 := clampInt(r.x, 0, w), clampInt(r.y, 0, h)
	x1, y1 := clampInt(r.x+r.w, 0, w), clampInt(r.y+r.h, 0, h)
	return rect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// command is a keypad function that changes the frontend rather than the
// entry.
type command uint8

const (
	cmdNone command = iota
	cmdDrawer
	cmdTheme
	cmdAngle
)

type style uint8

const (
	styleDigit style = iota
	styleOp
	styleFn
	styleEq
)

type button struct {
	label string
	act   calc.Action
	cmd   command
	style style
}

func (b button) blank() bool { return b.label == "" }

func tok(t calc.Token, label string, s style) button {
	return button{label: label, act: calc.TokenAction(t), style: s}
}

func digit(d byte) button { return tok(calc.Token(d), string(d), styleDigit) }

func unary(op calc.UnaryOp, label string) button {
	return button{label: label, act: calc.UnaryAction(op), style: styleFn}
}

func act(k calc.ActionKind, label string, s style) button {
	return button{label: label, act: calc.Action{Kind: k}, style: s}
}

func cmd(c command, label string) button {
	return button{label: label, cmd: c, style: styleFn}
}

const gridCols = 4

// Labels are ASCII: the bitmap font has no glyphs for ×, ÷ or √.
var mainRows = [][gridCols]button{
	{act(calc.ActMemoryClear, "MC", styleFn), act(calc.ActMemoryRecall, "MR", styleFn), act(calc.ActMemoryAdd, "M+", styleFn), act(calc.ActMemorySubtract, "M-", styleFn)},
	{act(calc.ActClear, "C", styleOp), act(calc.ActDelete, "<-", styleOp), unary(calc.OpPercent, "%"), tok(calc.TokenDivide, "/", styleOp)},
	{digit('7'), digit('8'), digit('9'), tok(calc.TokenMultiply, "x", styleOp)},
	{digit('4'), digit('5'), digit('6'), tok(calc.TokenSubtract, "-", styleOp)},
	{digit('1'), digit('2'), digit('3'), tok(calc.TokenAdd, "+", styleOp)},
	{unary(calc.OpNegate, "+/-"), digit('0'), tok(calc.TokenPoint, ".", styleDigit), act(calc.ActEvaluate, "=", styleEq)},
	{tok(calc.TokenOpen, "(", styleOp), tok(calc.TokenClose, ")", styleOp), act(calc.ActPi, "pi", styleFn), cmd(cmdDrawer, "fn")},
}

var drawerRows = [][gridCols]button{
	{unary(calc.OpSin, "sin"), unary(calc.OpCos, "cos"), unary(calc.OpTan, "tan"), unary(calc.OpSqrt, "sqrt")},
	{unary(calc.OpAsin, "asin"), unary(calc.OpAcos, "acos"), unary(calc.OpAtan, "atan"), unary(calc.OpSquare, "x^2")},
	{unary(calc.OpLn, "ln"), unary(calc.OpLog10, "log"), unary(calc.OpExp, "e^x"), unary(calc.OpReciprocal, "1/x")},
	{cmd(cmdAngle, "deg"), cmd(cmdTheme, "theme"), act(calc.ActHistoryClear, "HC", styleFn), {}},
}

type placed struct {
	button
	r rect
}

// screenLayout is the pixel geometry for one framebuffer size and drawer
// state.
type screenLayout struct {
	header  rect
	history rect
	entry   rect
	keys    []placed
}

const (
	historyLines = 2
	pad          = 2
)

// layoutScreen stacks the header, history, entry line and the keypad rows
// (drawer rows first when open) top to bottom.
func layoutScreen(w, h, lineH int, drawerOpen bool) screenLayout {
	var l screenLayout
	y := 0
	l.header = rect{x: 0, y: y, w: w, h: lineH + pad*2}
	y += l.header.h
	l.history = rect{x: pad, y: y, w: w - pad*2, h: lineH * historyLines}
	y += l.history.h
	l.entry = rect{x: pad, y: y, w: w - pad*2, h: lineH*2 + pad*2}
	y += l.entry.h + pad

	rows := mainRows
	if drawerOpen {
		rows = append(append([][gridCols]button{}, drawerRows...), mainRows...)
	}
	if len(rows) == 0 || y >= h {
		return l
	}

	rowH := (h - y) / len(rows)
	colW := w / gridCols
	for ri, row := range rows {
		for ci, b := range row {
			if b.blank() {
				continue
			}
			l.keys = append(l.keys, placed{
				button: b,
				r: rect{
					x: ci*colW + 1,
					y: y + ri*rowH + 1,
					w: colW - 2,
					h: rowH - 2,
				},
			})
		}
	}
	return l
}

// hit returns the index of the key under (x, y).
func (l *screenLayout) hit(x, y int) (int, bool) {
	for i, k := range l.keys {
		if k.r.contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// move steps the focus index through the grid by (dx, dy) cells, wrapping
// around and skipping missing cells.
func (l *screenLayout) move(from, dx, dy int) int {
	n := len(l.keys)
	if n == 0 {
		return 0
	}
	if from < 0 || from >= n {
		return 0
	}
	if dy == 0 {
		return ((from+dx)%n + n) % n
	}

	cur := l.keys[from].r
	cx := cur.x + cur.w/2
	best, bestDist := from, -1
	for i, k := range l.keys {
		if i == from {
			continue
		}
		if dy > 0 && k.r.y <= cur.y || dy < 0 && k.r.y >= cur.y {
			continue
		}
		dist := absInt(k.r.y-cur.y)*4 + absInt(k.r.x+k.r.w/2-cx)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if bestDist < 0 {
		// Wrap to the far edge in the same column.
		for i, k := range l.keys {
			if k.r.contains(cx, k.r.y) && (dy > 0 && k.r.y < l.keys[best].r.y || dy < 0 && k.r.y > l.keys[best].r.y) {
				best = i
			}
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
