package ast

import (
	"sysyc/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprGroup
	ExprCall

	// ExprKindCount is the number of expression kinds; keep it last.
	ExprKindCount
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Lit"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprGroup:
		return "Group"
	case ExprCall:
		return "Call"
	}
	return "ExprKind(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates source-level binary operators.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	ExprBinaryLess
	ExprBinaryGreater
	ExprBinaryLessEq
	ExprBinaryGreaterEq
	ExprBinaryEq
	ExprBinaryNotEq

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

// String returns the source spelling of a binary operator.
func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryLess:
		return "<"
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreaterEq:
		return ">="
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLogicalAnd:
		return "&&"
	case ExprBinaryLogicalOr:
		return "||"
	}
	return "?"
}

type ExprUnaryOp uint8

const (
	ExprUnaryPlus  ExprUnaryOp = iota // +x
	ExprUnaryMinus                    // -x
	ExprUnaryNot                      // !x
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "!"
	}
	return "?"
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLitData holds a decoded integer literal. Text keeps the source spelling.
type ExprLitData struct {
	Value int32
	Text  string
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []ExprID
}
