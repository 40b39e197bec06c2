package riscv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"sysyc/internal/ir"
)

func buildMain(fn func(b *ir.Builder)) *ir.Program {
	b := ir.NewBuilder(nil)
	b.BeginFunc("main", ir.TypeI32)
	fn(b)
	b.EndFunc()
	return b.Program()
}

func mustGenerate(t *testing.T, prog *ir.Program) []string {
	t.Helper()
	lines, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return lines
}

func assertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestReturnLiteral(t *testing.T) {
	prog := buildMain(func(b *ir.Builder) { b.Return(b.Integer(42)) })
	assertLines(t, mustGenerate(t, prog),
		"  .text", "  .global main", "main:", "  li a0, 42", "  ret")
}

func TestNegationReadsZeroRegister(t *testing.T) {
	prog := buildMain(func(b *ir.Builder) {
		b.Return(b.Binary(ir.OpSub, b.Integer(0), b.Integer(7)))
	})
	lines := mustGenerate(t, prog)
	assertLines(t, lines,
		"  .text", "  .global main", "main:",
		"  li t0, 7",
		"  sub t0, zero, t0",
		"  mv a0, t0",
		"  ret")
	for _, l := range lines {
		if strings.HasSuffix(l, ", 0") && strings.Contains(l, "li") {
			t.Fatalf("literal zero was loaded: %q", l)
		}
	}
}

func TestOperatorTable(t *testing.T) {
	tests := []struct {
		op   ir.BinaryOp
		want []string
	}{
		{ir.OpAdd, []string{"  add t0, t0, t1"}},
		{ir.OpSub, []string{"  sub t0, t0, t1"}},
		{ir.OpMul, []string{"  mul t0, t0, t1"}},
		{ir.OpDiv, []string{"  div t0, t0, t1"}},
		{ir.OpMod, []string{"  rem t0, t0, t1"}},
		{ir.OpAnd, []string{"  and t0, t0, t1"}},
		{ir.OpOr, []string{"  or t0, t0, t1"}},
		{ir.OpEq, []string{"  xor t0, t0, t1", "  seqz t0, t0"}},
		{ir.OpNotEq, []string{"  xor t0, t0, t1", "  snez t0, t0"}},
		{ir.OpGt, []string{"  sgt t0, t0, t1", "  snez t0, t0"}},
		{ir.OpLt, []string{"  slt t0, t0, t1", "  snez t0, t0"}},
		{ir.OpGe, []string{"  slt t0, t0, t1", "  seqz t0, t0"}},
		{ir.OpLe, []string{"  sgt t0, t0, t1", "  seqz t0, t0"}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			prog := buildMain(func(b *ir.Builder) {
				b.Return(b.Binary(tt.op, b.Integer(5), b.Integer(3)))
			})
			want := []string{"  .text", "  .global main", "main:", "  li t0, 5", "  li t1, 3"}
			want = append(want, tt.want...)
			want = append(want, "  mv a0, t0", "  ret")
			assertLines(t, mustGenerate(t, prog), want...)
		})
	}
}

func TestUnsupportedOperators(t *testing.T) {
	for _, op := range []ir.BinaryOp{ir.OpXor, ir.OpShl, ir.OpShr, ir.OpSar} {
		prog := buildMain(func(b *ir.Builder) {
			b.Return(b.Binary(op, b.Integer(1), b.Integer(2)))
		})
		_, err := Generate(prog)
		if !errors.Is(err, ErrUnsupportedOperator) {
			t.Errorf("%s: err = %v", op, err)
		}
		var gerr *Error
		if !errors.As(err, &gerr) || gerr.Func != "main" {
			t.Errorf("%s: error does not name the function: %v", op, err)
		}
	}
}

func TestVoidReturnAndMultipleFunctions(t *testing.T) {
	b := ir.NewBuilder(nil)
	b.BeginFunc("f", ir.TypeUnit)
	b.Return(ir.NoValue)
	b.BeginFunc("main", ir.TypeI32)
	b.Return(b.Integer(0))
	assertLines(t, mustGenerate(t, b.Program()),
		"  .text",
		"  .global f", "f:", "  ret",
		"  .global main", "main:", "  li a0, 0", "  ret")
}

func TestSharedOperandFreedOnce(t *testing.T) {
	prog := buildMain(func(b *ir.Builder) {
		x := b.Binary(ir.OpAdd, b.Integer(0), b.Integer(4))
		b.Return(b.Binary(ir.OpMul, x, x))
	})
	assertLines(t, mustGenerate(t, prog),
		"  .text", "  .global main", "main:",
		"  li t0, 4",
		"  add t0, zero, t0",
		"  mul t0, t0, t0",
		"  mv a0, t0",
		"  ret")
}

func TestDeadValueReleasesRegister(t *testing.T) {
	prog := buildMain(func(b *ir.Builder) {
		b.Binary(ir.OpAdd, b.Integer(0), b.Integer(0))
		b.Return(b.Binary(ir.OpSub, b.Integer(0), b.Integer(0)))
	})
	assertLines(t, mustGenerate(t, prog),
		"  .text", "  .global main", "main:",
		"  add t0, zero, zero",
		"  sub t0, zero, zero",
		"  mv a0, t0",
		"  ret")
}

// liveChain defines n values that all stay live until a final sum.
func liveChain(n int) *ir.Program {
	return buildMain(func(b *ir.Builder) {
		vals := make([]ir.Value, n)
		for i := range vals {
			vals[i] = b.Binary(ir.OpAdd, b.Integer(0), b.Integer(0))
		}
		acc := vals[0]
		for _, v := range vals[1:] {
			acc = b.Binary(ir.OpAdd, acc, v)
		}
		b.Return(acc)
	})
}

func TestPoolLimit(t *testing.T) {
	if _, err := Generate(liveChain(PoolSize)); err != nil {
		t.Fatalf("%d live values should fit: %v", PoolSize, err)
	}
	_, err := Generate(liveChain(PoolSize + 1))
	if !errors.Is(err, ErrRegisterPoolExhausted) {
		t.Fatalf("err = %v, want ErrRegisterPoolExhausted", err)
	}
}

func TestFifteenRegistersInPoolOrder(t *testing.T) {
	lines := mustGenerate(t, liveChain(PoolSize))
	for i, r := range pool {
		want := fmt.Sprintf("  add %s, zero, zero", r)
		if lines[3+i] != want {
			t.Fatalf("line %d = %q, want %q", 3+i, lines[3+i], want)
		}
	}
}
