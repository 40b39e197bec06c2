package irgen

import (
	"errors"
	"fmt"

	"sysyc/internal/diag"
	"sysyc/internal/source"
	"sysyc/internal/symbols"
)

var (
	ErrNonConstantInitializer = errors.New("constant initializer is not a compile-time constant")
	ErrConstantAssignment     = errors.New("assignment to a constant")
	ErrUnsupportedConstruct   = errors.New("unsupported construct")
	ErrConstDivisionByZero    = errors.New("division by zero in constant expression")
	ErrReturnTypeMismatch     = errors.New("return value does not match function type")
	ErrDuplicateFunction      = errors.New("function defined more than once")
)

// Error is one lowering failure with its source location.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
	Err  error
	Note source.Span // declaration involved, if any
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

func newError(code diag.Code, span source.Span, sentinel error, format string, args ...any) *Error {
	return &Error{Code: code, Span: span, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// undeclared wraps the symbol table error so it carries the use site.
func undeclared(err error, span source.Span) *Error {
	var ue *symbols.UndeclaredError
	if errors.As(err, &ue) {
		ue.Span = span
	}
	return &Error{Code: diag.LowUndeclaredIdentifier, Span: span, Msg: err.Error(), Err: err}
}

// withNote points at the declaration involved in the error.
func (e *Error) withNote(decl source.Span) *Error {
	e.Note = decl
	return e
}
