package riscv

import (
	"context"
	"errors"
	"fmt"

	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/trace"
)

// Generate renders prog as assembly lines, one instruction or directive
// per element, without trailing newlines.
func Generate(prog *ir.Program) ([]string, error) {
	return GenerateContext(context.Background(), prog)
}

// GenerateContext is Generate with tracing taken from ctx. Generation
// stops at the first function that fails.
func GenerateContext(ctx context.Context, prog *ir.Program) ([]string, error) {
	if prog == nil {
		return nil, errors.New("riscv: nil program")
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "codegen", trace.CurrentSpan(ctx))
	defer span.End("")

	e := &Emitter{lines: []string{"  .text"}}
	for _, f := range prog.Funcs {
		fspan := trace.Begin(tracer, trace.ScopeModule, "func:"+f.Symbol(), span.ID())
		fe := &funcEmitter{emitter: e, f: f, last: lastUses(f)}
		err := fe.emit()
		fspan.WithExtra("regs", fmt.Sprint(fe.peak)).End("")
		if err != nil {
			return e.lines, err
		}
	}
	span.WithExtra("lines", fmt.Sprint(len(e.lines)))
	return e.lines, nil
}

// Emitter accumulates the output of one program.
type Emitter struct {
	lines []string
}

func (e *Emitter) label(name string) {
	e.lines = append(e.lines, name+":")
}

func (e *Emitter) directive(format string, args ...any) {
	e.lines = append(e.lines, "  "+fmt.Sprintf(format, args...))
}

func (e *Emitter) inst(op string, args ...Reg) {
	line := "  " + op
	for i, r := range args {
		if i == 0 {
			line += " " + r.String()
		} else {
			line += ", " + r.String()
		}
	}
	e.lines = append(e.lines, line)
}

type funcEmitter struct {
	emitter *Emitter
	f       *ir.Func
	regs    allocator
	last    map[ir.Value]int
	peak    int
}

func (fe *funcEmitter) fail(code diag.Code, sentinel error, format string, args ...any) *Error {
	return &Error{Code: code, Func: fe.f.Symbol(), Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

func (fe *funcEmitter) emit() error {
	sym := fe.f.Symbol()
	fe.emitter.directive(".global %s", sym)
	fe.emitter.label(sym)

	pos := 0
	for bi, b := range fe.f.Blocks {
		if bi > 0 {
			fe.emitter.label(sym + "_" + trimSigil(b.Name))
		}
		for _, v := range b.Insts {
			fe.regs.inst = pos
			d := fe.f.Value(v)
			var err error
			switch d.Kind {
			case ir.ValueBinary:
				err = fe.emitBinary(pos, v, d)
			case ir.ValueReturn:
				fe.emitReturn(d)
			default:
				panic(fmt.Sprintf("riscv: %s value in block layout", d.Kind))
			}
			if err != nil {
				return err
			}
			fe.peak = max(fe.peak, fe.regs.live())
			pos++
		}
	}
	return nil
}

func trimSigil(name string) string {
	if len(name) > 0 && name[0] == '%' {
		return name[1:]
	}
	return name
}

func (fe *funcEmitter) emitReturn(d ir.ValueData) {
	if d.Ret.IsValid() {
		if n, ok := fe.f.IntegerOf(d.Ret); ok {
			fe.emitter.directive("li a0, %d", n)
		} else {
			fe.emitter.inst("mv", A0, fe.mustReg(d.Ret))
		}
	}
	fe.emitter.directive("ret")
}

// mustReg returns the register of a previously computed value.
func (fe *funcEmitter) mustReg(v ir.Value) Reg {
	r, ok := fe.regs.lookup(v)
	if !ok {
		panic(fmt.Sprintf("riscv: %s: value %d has no register", fe.f.Name, v))
	}
	return r
}
