// Package calc implements the calculator core: the input assembler that turns
// keypad tokens into an expression string, the evaluator that turns that
// string into a rounded display value, and the unary, memory and history
// operations layered on top.
//
// All transitions are pure functions over State. Session wraps a State for
// frontends that want a stateful object with a display and a history log.
package calc
