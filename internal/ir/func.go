package ir

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Func is one function. Values are addressed by 1-based handles into values.
type Func struct {
	Name   string // with the "@" sigil
	Result Type
	Blocks []*Block

	values []ValueData
}

func NewFunc(name string, result Type) *Func {
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}
	return &Func{
		Name:   name,
		Result: result,
		Blocks: []*Block{{Name: "%entry"}},
	}
}

// Symbol is the name without its sigil, as used by the assembler.
func (f *Func) Symbol() string {
	return strings.TrimPrefix(f.Name, "@")
}

// Entry returns the first block.
func (f *Func) Entry() *Block {
	return f.Blocks[0]
}

// Value returns the data behind v. It panics on a handle this function never issued.
func (f *Func) Value(v Value) ValueData {
	if v == NoValue || int(v) > len(f.values) {
		panic(fmt.Sprintf("ir: %s has no value %d", f.Name, v))
	}
	return f.values[v-1]
}

// IntegerOf reports the constant behind v, if v is an integer value.
func (f *Func) IntegerOf(v Value) (int32, bool) {
	d := f.Value(v)
	if d.Kind != ValueInteger {
		return 0, false
	}
	return d.Int, true
}

// NumValues counts every value created for f, integers included.
func (f *Func) NumValues() int {
	return len(f.values)
}

func (f *Func) newValue(d ValueData) Value {
	f.values = append(f.values, d)
	n, err := safecast.Conv[uint32](len(f.values))
	if err != nil {
		panic(fmt.Errorf("value table overflow: %w", err))
	}
	return Value(n)
}
