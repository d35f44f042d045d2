package calc

import "errors"

var (
	// ErrSyntax is returned when the normalized expression cannot be tokenized or parsed.
	ErrSyntax = errors.New("syntax error")
	// ErrEmpty is returned when nothing is left to evaluate after normalization.
	ErrEmpty = errors.New("empty expression")
	// ErrDivideByZero is returned for x/0.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNonFinite is returned when a result overflows to ±Inf or becomes NaN.
	ErrNonFinite = errors.New("non-finite result")
	// ErrDomain is returned when a function argument is outside its domain.
	ErrDomain = errors.New("domain error")
)

// ErrorKind groups evaluation failures for diagnostics. The display never
// distinguishes them.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindMalformed
	KindNonFinite
	KindDomain
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformed:
		return "malformed"
	case KindNonFinite:
		return "non-finite"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrSyntax), errors.Is(err, ErrEmpty):
		return KindMalformed
	case errors.Is(err, ErrDivideByZero), errors.Is(err, ErrNonFinite):
		return KindNonFinite
	case errors.Is(err, ErrDomain):
		return KindDomain
	default:
		return KindMalformed
	}
}
