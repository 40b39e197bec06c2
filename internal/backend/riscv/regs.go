package riscv

// Reg is a RISC-V integer register.
type Reg uint8

const (
	Zero Reg = iota
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7

	regCount
)

var regNames = [regCount]string{
	Zero: "zero",
	T0:   "t0", T1: "t1", T2: "t2", T3: "t3", T4: "t4", T5: "t5", T6: "t6",
	A0: "a0", A1: "a1", A2: "a2", A3: "a3", A4: "a4", A5: "a5", A6: "a6", A7: "a7",
}

func (r Reg) String() string {
	if r < regCount {
		return regNames[r]
	}
	return "?"
}

// pool is the allocation order. x0 is never handed out.
var pool = [...]Reg{T0, T1, T2, T3, T4, T5, T6, A0, A1, A2, A3, A4, A5, A6, A7}

// PoolSize is how many values can be live at once.
const PoolSize = len(pool)
