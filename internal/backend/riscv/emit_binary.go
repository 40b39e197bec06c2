package riscv

import (
	"sysyc/internal/diag"
	"sysyc/internal/ir"
)

// loweredOp is the instruction pair for one IR operator. fixup, when set,
// normalises the first result to 0/1 in place.
type loweredOp struct {
	op    string
	fixup string
}

var binaryTable = map[ir.BinaryOp]loweredOp{
	ir.OpAdd:   {op: "add"},
	ir.OpSub:   {op: "sub"},
	ir.OpMul:   {op: "mul"},
	ir.OpDiv:   {op: "div"},
	ir.OpMod:   {op: "rem"},
	ir.OpAnd:   {op: "and"},
	ir.OpOr:    {op: "or"},
	ir.OpEq:    {op: "xor", fixup: "seqz"},
	ir.OpNotEq: {op: "xor", fixup: "snez"},
	ir.OpGt:    {op: "sgt", fixup: "snez"},
	ir.OpLt:    {op: "slt", fixup: "snez"},
	ir.OpGe:    {op: "slt", fixup: "seqz"}, // x >= y is !(x < y)
	ir.OpLe:    {op: "sgt", fixup: "seqz"}, // x <= y is !(x > y)
}

// operandReg is a resolved operand register.
type operandReg struct {
	reg  Reg
	temp bool // literal loaded just for this instruction
}

func (fe *funcEmitter) emitBinary(pos int, v ir.Value, d ir.ValueData) error {
	lowered, ok := binaryTable[d.Op]
	if !ok {
		return fe.fail(diag.GenUnsupportedOperator, ErrUnsupportedOperator,
			"operator '%s' has no RISC-V lowering", d.Op)
	}

	lhs, err := fe.operand(d.Lhs)
	if err != nil {
		return err
	}
	rhs, err := fe.operand(d.Rhs)
	if err != nil {
		return err
	}

	fe.release(pos, d.Lhs, lhs)
	if d.Rhs != d.Lhs || rhs.temp {
		fe.release(pos, d.Rhs, rhs)
	}

	dst, ok := fe.regs.alloc(v)
	if !ok {
		return fe.exhausted()
	}
	fe.emitter.inst(lowered.op, dst, lhs.reg, rhs.reg)
	if lowered.fixup != "" {
		fe.emitter.inst(lowered.fixup, dst, dst)
	}

	if _, used := fe.last[v]; !used {
		fe.regs.free(dst)
	}
	return nil
}

// operand resolves v to a register, loading literals other than 0.
func (fe *funcEmitter) operand(v ir.Value) (operandReg, error) {
	n, ok := fe.f.IntegerOf(v)
	if !ok {
		return operandReg{reg: fe.mustReg(v)}, nil
	}
	if n == 0 {
		return operandReg{reg: Zero}, nil
	}
	r, ok := fe.regs.alloc(ir.NoValue)
	if !ok {
		return operandReg{}, fe.exhausted()
	}
	fe.emitter.directive("li %s, %d", r, n)
	return operandReg{reg: r, temp: true}, nil
}

// release frees an operand register if this instruction is its last reader.
func (fe *funcEmitter) release(pos int, v ir.Value, s operandReg) {
	switch {
	case s.reg == Zero:
	case s.temp:
		fe.regs.free(s.reg)
	case fe.last[v] == pos:
		fe.regs.free(s.reg)
	}
}

func (fe *funcEmitter) exhausted() *Error {
	return fe.fail(diag.GenRegisterPoolExhausted, ErrRegisterPoolExhausted,
		"more than %d values are live at once", PoolSize)
}
