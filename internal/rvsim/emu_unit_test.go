package rvsim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("instEmulator", func() {
	var (
		ie instEmulator
		m  *Machine
	)

	run := func(op string, args ...string) {
		_, err := ie.RunInst(inst{op: op, args: args}, m)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		ie = instEmulator{}
		m = &Machine{labels: map[string]int{}}
	})

	Context("Arithmetic", func() {
		It("adds and advances the pc", func() {
			m.Regs[5], m.Regs[6] = 2, 3
			run("add", "t0", "t0", "t1")
			Expect(m.Regs[5]).To(Equal(uint32(5)))
			Expect(m.PC).To(Equal(1))
		})

		It("wraps on overflow", func() {
			m.Regs[5] = math.MaxInt32
			m.Regs[6] = 1
			run("add", "t2", "t0", "t1")
			Expect(int32(m.Regs[7])).To(Equal(int32(math.MinInt32)))
		})

		DescribeTable("division corner cases",
			func(op string, x, y, want int32) {
				m.Regs[10], m.Regs[11] = uint32(x), uint32(y)
				run(op, "a2", "a0", "a1")
				Expect(int32(m.Regs[12])).To(Equal(want))
			},
			Entry("div by zero", "div", int32(7), int32(0), int32(-1)),
			Entry("rem by zero", "rem", int32(7), int32(0), int32(7)),
			Entry("div overflow", "div", int32(math.MinInt32), int32(-1), int32(math.MinInt32)),
			Entry("rem overflow", "rem", int32(math.MinInt32), int32(-1), int32(0)),
			Entry("div truncates", "div", int32(-7), int32(2), int32(-3)),
			Entry("rem keeps sign", "rem", int32(-7), int32(2), int32(-1)),
		)
	})

	Context("Comparisons", func() {
		It("sets 0/1 results", func() {
			m.Regs[5] = uint32(0xFFFFFFFF) // -1
			m.Regs[6] = 1
			run("slt", "a0", "t0", "t1")
			run("sgt", "a1", "t0", "t1")
			run("seqz", "a2", "zero")
			run("snez", "a3", "t1")
			Expect(m.Regs[10:14]).To(Equal([]uint32{1, 0, 1, 1}))
		})
	})

	Context("Registers", func() {
		It("ignores writes to zero", func() {
			run("li", "zero", "42")
			Expect(m.read(0)).To(BeZero())
		})

		It("loads negative and hex immediates", func() {
			run("li", "t0", "-7")
			run("li", "t1", "0x7fffffff")
			Expect(int32(m.Regs[5])).To(Equal(int32(-7)))
			Expect(m.Regs[6]).To(Equal(uint32(math.MaxInt32)))
		})

		It("rejects unknown registers", func() {
			_, err := ie.RunInst(inst{op: "mv", args: []string{"q9", "t0"}}, m)
			Expect(err).To(MatchError(ErrBadOperand))
		})

		It("rejects immediates wider than 32 bits", func() {
			_, err := ie.RunInst(inst{op: "li", args: []string{"t0", "0x1ffffffff"}}, m)
			Expect(err).To(MatchError(ErrBadOperand))
		})
	})

	It("rejects unknown instructions", func() {
		_, err := ie.RunInst(inst{op: "jalr"}, m)
		Expect(err).To(MatchError(ErrUnknownInstruction))
	})
})
