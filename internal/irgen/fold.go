package irgen

import (
	"fmt"

	"sysyc/internal/ast"
)

// foldBinary evaluates x op y with int32 wraparound and 0/1 booleans.
// Go's int32 division already gives MinInt32/-1 == MinInt32 and MinInt32%-1 == 0.
func foldBinary(op ast.ExprBinaryOp, x, y int32) (int32, error) {
	switch op {
	case ast.ExprBinaryAdd:
		return x + y, nil
	case ast.ExprBinarySub:
		return x - y, nil
	case ast.ExprBinaryMul:
		return x * y, nil
	case ast.ExprBinaryDiv:
		if y == 0 {
			return 0, ErrConstDivisionByZero
		}
		return x / y, nil
	case ast.ExprBinaryMod:
		if y == 0 {
			return 0, ErrConstDivisionByZero
		}
		return x % y, nil
	case ast.ExprBinaryLess:
		return boolInt(x < y), nil
	case ast.ExprBinaryGreater:
		return boolInt(x > y), nil
	case ast.ExprBinaryLessEq:
		return boolInt(x <= y), nil
	case ast.ExprBinaryGreaterEq:
		return boolInt(x >= y), nil
	case ast.ExprBinaryEq:
		return boolInt(x == y), nil
	case ast.ExprBinaryNotEq:
		return boolInt(x != y), nil
	case ast.ExprBinaryLogicalAnd:
		return boolInt(x != 0 && y != 0), nil
	case ast.ExprBinaryLogicalOr:
		return boolInt(x != 0 || y != 0), nil
	}
	panic(fmt.Sprintf("irgen: fold of unknown binary operator %d", op))
}

func foldUnary(op ast.ExprUnaryOp, x int32) int32 {
	switch op {
	case ast.ExprUnaryPlus:
		return x
	case ast.ExprUnaryMinus:
		return -x
	case ast.ExprUnaryNot:
		return boolInt(x == 0)
	}
	panic(fmt.Sprintf("irgen: fold of unknown unary operator %d", op))
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
