package symbols

import (
	"errors"
	"fmt"

	"sysyc/internal/source"
)

// ErrUndeclaredIdentifier is matched with errors.Is on lookup failures.
var ErrUndeclaredIdentifier = errors.New("undeclared identifier")

type UndeclaredError struct {
	Name string
	Span source.Span
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("undeclared identifier '%s'", e.Name)
}

func (e *UndeclaredError) Unwrap() error { return ErrUndeclaredIdentifier }
