// Package riscv emits RV32IM assembly text for an *ir.Program.
//
// Every IR value lives in a register from a fixed pool of temporaries and
// argument registers; nothing is spilled. A register is released at the
// last instruction that reads its value, and the literal 0 is always read
// from x0.
package riscv
