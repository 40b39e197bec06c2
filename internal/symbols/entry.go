package symbols

import (
	"fmt"

	"sysyc/internal/ir"
	"sysyc/internal/source"
)

type EntryKind uint8

const (
	// EntryConstant binds a compile-time value; uses are inlined.
	EntryConstant EntryKind = iota + 1
	// EntryVariable binds the IR value currently held by a variable.
	EntryVariable
)

func (k EntryKind) String() string {
	switch k {
	case EntryConstant:
		return "constant"
	case EntryVariable:
		return "variable"
	}
	return "invalid"
}

// Entry is what a name resolves to.
type Entry struct {
	Kind   EntryKind
	Const  int32    // EntryConstant
	Handle ir.Value // EntryVariable
	Span   source.Span
}

func Constant(v int32, span source.Span) Entry {
	return Entry{Kind: EntryConstant, Const: v, Span: span}
}

func Variable(h ir.Value, span source.Span) Entry {
	return Entry{Kind: EntryVariable, Handle: h, Span: span}
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryConstant:
		return fmt.Sprintf("const %d", e.Const)
	case EntryVariable:
		return fmt.Sprintf("var %%v%d", e.Handle)
	}
	return "invalid"
}
