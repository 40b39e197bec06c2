package irgen

import (
	"fmt"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/source"
	"sysyc/internal/symbols"
)

// operand is the result of lowering one expression: either a folded
// constant (only while folding) or a handle to an IR value.
type operand struct {
	folded bool
	value  int32
	handle ir.Value
}

func folded(v int32) operand { return operand{folded: true, value: v} }

func (l *lowerer) materialize(op operand) ir.Value {
	if op.folded {
		return l.b.Integer(op.value)
	}
	return op.handle
}

// foldConst evaluates a const initializer to its value.
func (l *lowerer) foldConst(init ast.ExprID) (int32, *Error) {
	prev := l.folding
	l.folding = true
	defer func() { l.folding = prev }()

	op, err := l.lowerExpr(init)
	if err != nil {
		return 0, err
	}
	return op.value, nil
}

func (l *lowerer) lowerExpr(id ast.ExprID) (operand, *Error) {
	expr := l.ast.Exprs.Get(id)
	if expr == nil {
		panic(fmt.Sprintf("irgen: missing expression %d", id))
	}

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := l.ast.Exprs.Literal(id)
		if l.folding {
			return folded(lit.Value), nil
		}
		return operand{handle: l.b.Integer(lit.Value)}, nil
	case ast.ExprIdent:
		ident, _ := l.ast.Exprs.Ident(id)
		return l.lowerIdent(ident, expr.Span)
	case ast.ExprGroup:
		group, _ := l.ast.Exprs.Group(id)
		return l.lowerExpr(group.Inner)
	case ast.ExprUnary:
		unary, _ := l.ast.Exprs.Unary(id)
		return l.lowerUnary(unary)
	case ast.ExprBinary:
		bin, _ := l.ast.Exprs.Binary(id)
		return l.lowerBinary(bin, expr.Span)
	case ast.ExprCall:
		call, _ := l.ast.Exprs.Call(id)
		return operand{}, newError(diag.LowUnsupportedConstruct, expr.Span, ErrUnsupportedConstruct,
			"function calls are not supported ('%s')", l.ast.Name(call.Callee))
	default:
		panic(fmt.Sprintf("irgen: unhandled expression kind %s", expr.Kind))
	}
}

func (l *lowerer) lowerIdent(ident *ast.ExprIdentData, span source.Span) (operand, *Error) {
	entry, err := l.syms.Resolve(ident.Name)
	if err != nil {
		return operand{}, undeclared(err, span)
	}
	switch entry.Kind {
	case symbols.EntryConstant:
		if l.folding {
			return folded(entry.Const), nil
		}
		return operand{handle: l.b.Integer(entry.Const)}, nil
	case symbols.EntryVariable:
		if l.folding {
			return operand{}, newError(diag.LowNonConstantInitializer, span, ErrNonConstantInitializer,
				"variable '%s' cannot appear in a constant initializer", l.ast.Name(ident.Name)).
				withNote(entry.Span)
		}
		return operand{handle: entry.Handle}, nil
	}
	panic(fmt.Sprintf("irgen: unhandled symbol kind %s", entry.Kind))
}

func (l *lowerer) lowerUnary(unary *ast.ExprUnaryData) (operand, *Error) {
	x, err := l.lowerExpr(unary.Operand)
	if err != nil {
		return operand{}, err
	}
	if x.folded {
		return folded(foldUnary(unary.Op, x.value)), nil
	}
	switch unary.Op {
	case ast.ExprUnaryPlus:
		return x, nil
	case ast.ExprUnaryMinus:
		return operand{handle: l.b.Binary(ir.OpSub, l.b.Integer(0), x.handle)}, nil
	case ast.ExprUnaryNot:
		return operand{handle: l.b.Binary(ir.OpEq, x.handle, l.b.Integer(0))}, nil
	}
	panic(fmt.Sprintf("irgen: unhandled unary operator %d", unary.Op))
}

var binaryOps = map[ast.ExprBinaryOp]ir.BinaryOp{
	ast.ExprBinaryAdd:       ir.OpAdd,
	ast.ExprBinarySub:       ir.OpSub,
	ast.ExprBinaryMul:       ir.OpMul,
	ast.ExprBinaryDiv:       ir.OpDiv,
	ast.ExprBinaryMod:       ir.OpMod,
	ast.ExprBinaryLess:      ir.OpLt,
	ast.ExprBinaryGreater:   ir.OpGt,
	ast.ExprBinaryLessEq:    ir.OpLe,
	ast.ExprBinaryGreaterEq: ir.OpGe,
	ast.ExprBinaryEq:        ir.OpEq,
	ast.ExprBinaryNotEq:     ir.OpNotEq,
}

func (l *lowerer) lowerBinary(bin *ast.ExprBinaryData, span source.Span) (operand, *Error) {
	x, err := l.lowerExpr(bin.Left)
	if err != nil {
		return operand{}, err
	}
	y, err := l.lowerExpr(bin.Right)
	if err != nil {
		return operand{}, err
	}

	if x.folded && y.folded {
		v, ferr := foldBinary(bin.Op, x.value, y.value)
		if ferr != nil {
			return operand{}, newError(diag.LowConstDivisionByZero, span, ferr,
				"constant expression divides %d by zero", x.value)
		}
		return folded(v), nil
	}

	lhs, rhs := l.materialize(x), l.materialize(y)
	switch bin.Op {
	case ast.ExprBinaryLogicalAnd, ast.ExprBinaryLogicalOr:
		zero := l.b.Integer(0)
		lb := l.b.Binary(ir.OpNotEq, lhs, zero)
		rb := l.b.Binary(ir.OpNotEq, rhs, zero)
		op := ir.OpAnd
		if bin.Op == ast.ExprBinaryLogicalOr {
			op = ir.OpOr
		}
		return operand{handle: l.b.Binary(op, lb, rb)}, nil
	}
	op, ok := binaryOps[bin.Op]
	if !ok {
		panic(fmt.Sprintf("irgen: unhandled binary operator %s", bin.Op))
	}
	return operand{handle: l.b.Binary(op, lhs, rhs)}, nil
}
