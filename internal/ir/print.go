package ir

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Dump writes p in Koopa text form:
//
//	fun @main(): i32 {
//	%entry:
//	  %0 = sub 0, 7
//	  ret %0
//	}
func Dump(w io.Writer, p *Program) error {
	if w == nil || p == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	for i, f := range p.Funcs {
		if i > 0 {
			bw.WriteString("\n")
		}
		dumpFunc(bw, f)
	}
	return bw.Flush()
}

func dumpFunc(w *bufio.Writer, f *Func) {
	if f.Result == TypeUnit {
		fmt.Fprintf(w, "fun %s() {\n", f.Name)
	} else {
		fmt.Fprintf(w, "fun %s(): %s {\n", f.Name, f.Result)
	}

	names := make(map[Value]string)
	next := 0
	operand := func(v Value) string {
		if n, ok := f.IntegerOf(v); ok {
			return strconv.FormatInt(int64(n), 10)
		}
		return names[v]
	}

	for _, b := range f.Blocks {
		fmt.Fprintf(w, "%s:\n", b.Name)
		for _, v := range b.Insts {
			d := f.Value(v)
			switch d.Kind {
			case ValueBinary:
				name := "%" + strconv.Itoa(next)
				next++
				names[v] = name
				fmt.Fprintf(w, "  %s = %s %s, %s\n", name, d.Op, operand(d.Lhs), operand(d.Rhs))
			case ValueReturn:
				if d.Ret.IsValid() {
					fmt.Fprintf(w, "  ret %s\n", operand(d.Ret))
				} else {
					w.WriteString("  ret\n")
				}
			default:
				panic(fmt.Sprintf("ir: %s value in block layout", d.Kind))
			}
		}
	}
	w.WriteString("}\n")
}
