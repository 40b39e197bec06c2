// Package rvsim interprets the RV32IM subset that sysyc emits.
//
// Assembly is executed from its text form, one line at a time:
//
//	m, err := rvsim.Load(lines)
//	ret, err := m.Call("main")
//
// Division follows the RISC-V rules: dividing by zero yields -1 (rem yields
// the dividend) and MinInt32 / -1 overflows to MinInt32.
package rvsim
