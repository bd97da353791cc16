package gopoly

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrMismatchedParenthesis = errors.New("mismatched parenthesis")
	ErrMalformedEquation     = errors.New("malformed equation")
	ErrInvalidOperand        = errors.New("invalid operand")
	ErrInsufficientOperands  = errors.New("insufficient operands")
	ErrUnbalancedExpression  = errors.New("unbalanced expression")
	ErrUnsupportedOperator   = errors.New("unsupported operator")
)

// Error describes a failed pipeline stage.
type Error struct {
	Op     string // stage: "sanitize", "postfix", "simplify"
	Kind   error
	Pos    int // byte offset in the stage input, -1 when unknown
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" (at %d)", e.Pos)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func newError(op string, kind error, pos int, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the sentinel kind of err, or nil if err did not come from the pipeline.
func KindOf(err error) error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}
