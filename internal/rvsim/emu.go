package rvsim

import (
	"fmt"
	"math"
	"strconv"

	"fortio.org/safecast"
)

type instEmulator struct{}

// RunInst executes one instruction. done is set when control returns to
// the sentinel address planted by Call.
func (e instEmulator) RunInst(in inst, m *Machine) (done bool, err error) {
	switch in.op {
	case "li":
		err = e.runLi(in.args, m)
	case "mv":
		err = e.runUnary(in.args, m, func(x int32) int32 { return x })
	case "neg":
		err = e.runUnary(in.args, m, func(x int32) int32 { return -x })
	case "seqz":
		err = e.runUnary(in.args, m, func(x int32) int32 { return b2i(x == 0) })
	case "snez":
		err = e.runUnary(in.args, m, func(x int32) int32 { return b2i(x != 0) })
	case "addi":
		err = e.runAddi(in.args, m)
	case "ret":
		if len(in.args) != 0 {
			return false, fmt.Errorf("%w: ret takes no operands", ErrBadOperand)
		}
		ra := m.read(regRA)
		if ra == retSentinel {
			return true, nil
		}
		m.PC = int(ra)
		return false, nil
	default:
		fn, ok := binaryOps[in.op]
		if !ok {
			return false, fmt.Errorf("%w %q", ErrUnknownInstruction, in.op)
		}
		err = e.runBinary(in.args, m, fn)
	}
	if err != nil {
		return false, err
	}
	m.PC++
	return false, nil
}

var binaryOps = map[string]func(x, y int32) int32{
	"add": func(x, y int32) int32 { return x + y },
	"sub": func(x, y int32) int32 { return x - y },
	"mul": func(x, y int32) int32 { return x * y },
	"div": div,
	"rem": rem,
	"and": func(x, y int32) int32 { return x & y },
	"or":  func(x, y int32) int32 { return x | y },
	"xor": func(x, y int32) int32 { return x ^ y },
	"slt": func(x, y int32) int32 { return b2i(x < y) },
	"sgt": func(x, y int32) int32 { return b2i(x > y) },
	"sltu": func(x, y int32) int32 {
		return b2i(uint32(x) < uint32(y))
	},
}

func div(x, y int32) int32 {
	switch {
	case y == 0:
		return -1
	case x == math.MinInt32 && y == -1:
		return x
	}
	return x / y
}

func rem(x, y int32) int32 {
	switch {
	case y == 0:
		return x
	case x == math.MinInt32 && y == -1:
		return 0
	}
	return x % y
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (e instEmulator) regs(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%w: want %d operands, got %d", ErrBadOperand, want, len(args))
	}
	out := make([]int, want)
	for i, a := range args {
		r, err := RegIndex(a)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (e instEmulator) runBinary(args []string, m *Machine, fn func(x, y int32) int32) error {
	r, err := e.regs(args, 3)
	if err != nil {
		return err
	}
	m.write(r[0], uint32(fn(int32(m.read(r[1])), int32(m.read(r[2])))))
	return nil
}

func (e instEmulator) runUnary(args []string, m *Machine, fn func(x int32) int32) error {
	r, err := e.regs(args, 2)
	if err != nil {
		return err
	}
	m.write(r[0], uint32(fn(int32(m.read(r[1])))))
	return nil
}

func (e instEmulator) runLi(args []string, m *Machine) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: li wants 2 operands", ErrBadOperand)
	}
	rd, err := RegIndex(args[0])
	if err != nil {
		return err
	}
	imm, err := immediate(args[1])
	if err != nil {
		return err
	}
	m.write(rd, uint32(imm))
	return nil
}

func (e instEmulator) runAddi(args []string, m *Machine) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: addi wants 3 operands", ErrBadOperand)
	}
	r, err := e.regs(args[:2], 2)
	if err != nil {
		return err
	}
	imm, err := immediate(args[2])
	if err != nil {
		return err
	}
	if imm < -2048 || imm > 2047 {
		return fmt.Errorf("%w: addi immediate %d out of range", ErrBadOperand, imm)
	}
	m.write(r[0], uint32(int32(m.read(r[1]))+imm))
	return nil
}

// immediate parses a decimal or 0x literal that must fit in 32 bits.
func immediate(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: immediate %q", ErrBadOperand, s)
	}
	if n > math.MaxInt32 && n <= math.MaxUint32 {
		u, _ := safecast.Conv[uint32](n)
		return int32(u), nil
	}
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return 0, fmt.Errorf("%w: immediate %q: %v", ErrBadOperand, s, err)
	}
	return v, nil
}
