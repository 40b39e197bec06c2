package riscv

import (
	"fmt"

	"sysyc/internal/ir"
)

type eventKind uint8

const (
	eventAlloc eventKind = iota + 1
	eventFree
)

// allocEvent is one entry of the allocation log kept for tests.
type allocEvent struct {
	kind  eventKind
	reg   Reg
	value ir.Value // NoValue for literal temporaries
	inst  int
}

type slot struct {
	busy  bool
	value ir.Value
}

// allocator owns the register table of one function.
type allocator struct {
	slots  [regCount]slot
	events []allocEvent
	inst   int
}

// alloc hands out the first free register of the pool.
func (a *allocator) alloc(v ir.Value) (Reg, bool) {
	for _, r := range pool {
		if !a.slots[r].busy {
			a.slots[r] = slot{busy: true, value: v}
			a.events = append(a.events, allocEvent{kind: eventAlloc, reg: r, value: v, inst: a.inst})
			return r, true
		}
	}
	return Zero, false
}

// lookup finds the register holding v by a linear scan.
func (a *allocator) lookup(v ir.Value) (Reg, bool) {
	for _, r := range pool {
		if s := a.slots[r]; s.busy && s.value == v {
			return r, true
		}
	}
	return Zero, false
}

func (a *allocator) free(r Reg) {
	if r == Zero {
		return
	}
	if !a.slots[r].busy {
		panic(fmt.Sprintf("riscv: double free of %s", r))
	}
	a.events = append(a.events, allocEvent{kind: eventFree, reg: r, value: a.slots[r].value, inst: a.inst})
	a.slots[r] = slot{}
}

func (a *allocator) live() int {
	n := 0
	for _, r := range pool {
		if a.slots[r].busy {
			n++
		}
	}
	return n
}

// lastUses maps every value read in f to the position of its final reader
// in layout order.
func lastUses(f *ir.Func) map[ir.Value]int {
	last := make(map[ir.Value]int)
	pos := 0
	for _, b := range f.Blocks {
		for _, v := range b.Insts {
			for _, op := range f.Value(v).Operands() {
				last[op] = pos
			}
			pos++
		}
	}
	return last
}
