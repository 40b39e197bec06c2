package riscv

import (
	"errors"
	"fmt"

	"sysyc/internal/diag"
)

var (
	ErrUnsupportedOperator   = errors.New("operator has no RISC-V lowering")
	ErrRegisterPoolExhausted = errors.New("register pool exhausted")
)

// Error reports a code generation failure inside one function.
type Error struct {
	Code diag.Code
	Func string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Func, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
