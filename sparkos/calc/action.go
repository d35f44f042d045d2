package calc

// ActionKind names one calculator command.
type ActionKind uint8

const (
	ActNone ActionKind = iota
	ActToken
	ActEvaluate
	ActDelete
	ActClear
	ActUnary
	ActPi
	ActMemoryAdd
	ActMemorySubtract
	ActMemoryRecall
	ActMemoryClear
	ActHistoryClear
)

// Action is one input event after key decoding. Token is set for ActToken,
// Op for ActUnary.
type Action struct {
	Kind  ActionKind
	Token Token
	Op    UnaryOp
}

// Commonly used actions.
var (
	EvaluateAction = Action{Kind: ActEvaluate}
	DeleteAction   = Action{Kind: ActDelete}
	ClearAction    = Action{Kind: ActClear}
)

// TokenAction wraps an input token.
func TokenAction(t Token) Action { return Action{Kind: ActToken, Token: t} }

// UnaryAction wraps a unary operation.
func UnaryAction(op UnaryOp) Action { return Action{Kind: ActUnary, Op: op} }

// Label is the keypad caption for a.
func (a Action) Label() string {
	switch a.Kind {
	case ActToken:
		switch a.Token {
		case TokenMultiply:
			return "×"
		case TokenDivide:
			return "÷"
		case TokenSubtract:
			return "−"
		}
		return a.Token.String()
	case ActEvaluate:
		return "="
	case ActDelete:
		return "⌫"
	case ActClear:
		return "C"
	case ActPi:
		return "π"
	case ActMemoryAdd:
		return "M+"
	case ActMemorySubtract:
		return "M-"
	case ActMemoryRecall:
		return "MR"
	case ActMemoryClear:
		return "MC"
	case ActHistoryClear:
		return "HC"
	case ActUnary:
		switch a.Op {
		case OpNegate:
			return "±"
		case OpPercent:
			return "%"
		case OpSqrt:
			return "√"
		case OpSquare:
			return "x²"
		case OpReciprocal:
			return "1/x"
		}
		return a.Op.String()
	}
	return ""
}

var runeActions = map[rune]Action{
	'=':  EvaluateAction,
	'\r': EvaluateAction,
	'\n': EvaluateAction,
	'\b': DeleteAction,
	0x7f: DeleteAction,
	0x1b: ClearAction,
	'c':  ClearAction,
	'C':  ClearAction,
	'%':  UnaryAction(OpPercent),
	'p':  {Kind: ActPi},
	'P':  {Kind: ActPi},
	'π':  {Kind: ActPi},
	'n':  UnaryAction(OpNegate),
	'±':  UnaryAction(OpNegate),
	'q':  UnaryAction(OpSqrt),
	'√':  UnaryAction(OpSqrt),
	'w':  UnaryAction(OpSquare),
	'i':  UnaryAction(OpReciprocal),
	's':  UnaryAction(OpSin),
	'o':  UnaryAction(OpCos),
	't':  UnaryAction(OpTan),
	'S':  UnaryAction(OpAsin),
	'O':  UnaryAction(OpAcos),
	'T':  UnaryAction(OpAtan),
	'e':  UnaryAction(OpExp),
	'l':  UnaryAction(OpLn),
	'g':  UnaryAction(OpLog10),
	'm':  {Kind: ActMemoryAdd},
	'M':  {Kind: ActMemorySubtract},
	'r':  {Kind: ActMemoryRecall},
	'R':  {Kind: ActMemoryClear},
	'H':  {Kind: ActHistoryClear},
}

// ActionForRune decodes a typed character.
func ActionForRune(r rune) (Action, bool) {
	if t, ok := TokenFromRune(r); ok {
		return TokenAction(t), true
	}
	a, ok := runeActions[r]
	return a, ok
}
