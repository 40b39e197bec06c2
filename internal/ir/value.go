package ir

import "fmt"

// Value is a function-local handle. NoValue is the zero handle.
type Value uint32

const NoValue Value = 0

func (v Value) IsValid() bool { return v != NoValue }

type ValueKind uint8

const (
	ValueInteger ValueKind = iota + 1
	ValueBinary
	ValueReturn
)

func (k ValueKind) String() string {
	switch k {
	case ValueInteger:
		return "integer"
	case ValueBinary:
		return "binary"
	case ValueReturn:
		return "return"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

type BinaryOp uint8

const (
	OpNotEq BinaryOp = iota
	OpEq
	OpGt
	OpLt
	OpGe
	OpLe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpSar

	// BinaryOpCount is the number of operators; keep it last.
	BinaryOpCount
)

var binaryOpNames = [BinaryOpCount]string{
	OpNotEq: "ne",
	OpEq:    "eq",
	OpGt:    "gt",
	OpLt:    "lt",
	OpGe:    "ge",
	OpLe:    "le",
	OpAdd:   "add",
	OpSub:   "sub",
	OpMul:   "mul",
	OpDiv:   "div",
	OpMod:   "mod",
	OpAnd:   "and",
	OpOr:    "or",
	OpXor:   "xor",
	OpShl:   "shl",
	OpShr:   "shr",
	OpSar:   "sar",
}

// String returns the Koopa mnemonic.
func (op BinaryOp) String() string {
	if op < BinaryOpCount {
		return binaryOpNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ValueData is the payload behind a Value. Which fields are meaningful depends on Kind:
//
//	ValueInteger  Int
//	ValueBinary   Op, Lhs, Rhs
//	ValueReturn   Ret (NoValue for a bare return)
type ValueData struct {
	Kind ValueKind
	Int  int32
	Op   BinaryOp
	Lhs  Value
	Rhs  Value
	Ret  Value
}

// Operands lists the values this one reads, in evaluation order.
func (d ValueData) Operands() []Value {
	switch d.Kind {
	case ValueBinary:
		return []Value{d.Lhs, d.Rhs}
	case ValueReturn:
		if d.Ret.IsValid() {
			return []Value{d.Ret}
		}
	}
	return nil
}

// HasResult reports whether the value produces a result other values may use.
func (d ValueData) HasResult() bool {
	return d.Kind == ValueInteger || d.Kind == ValueBinary
}
