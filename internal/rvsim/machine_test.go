package rvsim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sysyc/internal/rvsim"
)

var _ = Describe("Machine", func() {
	It("runs a function to its return", func() {
		got, err := rvsim.Run([]string{
			"  .text",
			"  .global main",
			"main:",
			"  li t0, 7",
			"  sub t0, zero, t0 # negate",
			"  mv a0, t0",
			"  ret",
		}, "main")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(int32(-7)))
	})

	It("selects functions by label", func() {
		m, err := rvsim.Load([]string{
			"f:", "  li a0, 1", "  ret",
			"g:", "  li a0, 2", "  ret",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Call("g")).To(Equal(int32(2)))
		Expect(m.Call("f")).To(Equal(int32(1)))
	})

	It("reports unknown labels", func() {
		_, err := rvsim.Run([]string{"main:", "  ret"}, "start")
		Expect(err).To(MatchError(rvsim.ErrUnknownLabel))
	})

	It("points at the failing line", func() {
		_, err := rvsim.Run([]string{"main:", "  li a0, 1", "  frob a0", "  ret"}, "main")
		var lerr *rvsim.LineError
		Expect(err).To(BeAssignableToTypeOf(lerr))
		Expect(err).To(MatchError(rvsim.ErrUnknownInstruction))
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})

	It("stops runaway programs", func() {
		m, _ := rvsim.Load([]string{"main:", "  li a0, 1"})
		m.MaxSteps = 10
		_, err := m.Call("main")
		Expect(err).To(HaveOccurred())
	})
})
