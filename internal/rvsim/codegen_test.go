package rvsim_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sysyc/internal/backend/riscv"
	"sysyc/internal/ir"
	"sysyc/internal/rvsim"
)

// compare builds "return x op y" with both operands in registers, runs it,
// and returns a0.
func compare(op ir.BinaryOp, x, y int32) int32 {
	b := ir.NewBuilder(nil)
	b.BeginFunc("main", ir.TypeI32)
	lhs := b.Binary(ir.OpAdd, b.Integer(0), b.Integer(x))
	rhs := b.Binary(ir.OpAdd, b.Integer(0), b.Integer(y))
	b.Return(b.Binary(op, lhs, rhs))
	lines, err := riscv.Generate(b.Program())
	Expect(err).NotTo(HaveOccurred())
	got, err := rvsim.Run(lines, "main")
	Expect(err).NotTo(HaveOccurred())
	return got
}

func goCompare(op ir.BinaryOp, x, y int32) int32 {
	var r bool
	switch op {
	case ir.OpEq:
		r = x == y
	case ir.OpNotEq:
		r = x != y
	case ir.OpLt:
		r = x < y
	case ir.OpGt:
		r = x > y
	case ir.OpLe:
		r = x <= y
	case ir.OpGe:
		r = x >= y
	}
	if r {
		return 1
	}
	return 0
}

var _ = Describe("Generated comparisons", func() {
	ops := []ir.BinaryOp{ir.OpEq, ir.OpNotEq, ir.OpLt, ir.OpGt, ir.OpLe, ir.OpGe}
	boundary := []int32{math.MinInt32, math.MinInt32 + 1, -1, 0, 1, math.MaxInt32 - 1, math.MaxInt32}

	It("agree with Go on boundary pairs", func() {
		for _, op := range ops {
			for _, x := range boundary {
				for _, y := range boundary {
					Expect(compare(op, x, y)).To(Equal(goCompare(op, x, y)),
						"%d %s %d", x, op, y)
				}
			}
		}
	})

	It("agree with Go on random pairs", func() {
		r := rand.New(rand.NewSource(99))
		for i := 0; i < 500; i++ {
			op := ops[r.Intn(len(ops))]
			x, y := int32(r.Uint32()), int32(r.Uint32())
			if r.Intn(4) == 0 {
				y = x
			}
			Expect(compare(op, x, y)).To(Equal(goCompare(op, x, y)), "%d %s %d", x, op, y)
		}
	})
})

var _ = Describe("Generated arithmetic", func() {
	DescribeTable("matches int32 semantics",
		func(op ir.BinaryOp, x, y, want int32) {
			Expect(compare(op, x, y)).To(Equal(want))
		},
		Entry("add wraps", ir.OpAdd, int32(math.MaxInt32), int32(1), int32(math.MinInt32)),
		Entry("mul wraps", ir.OpMul, int32(65536), int32(65536), int32(0)),
		Entry("div overflow", ir.OpDiv, int32(math.MinInt32), int32(-1), int32(math.MinInt32)),
		Entry("mod overflow", ir.OpMod, int32(math.MinInt32), int32(-1), int32(0)),
		Entry("and", ir.OpAnd, int32(6), int32(3), int32(2)),
		Entry("or", ir.OpOr, int32(6), int32(3), int32(7)),
	)
})
