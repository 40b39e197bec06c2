package irgen

import (
	"fmt"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/symbols"
	"sysyc/internal/trace"
)

func (l *lowerer) lowerFn(item *ast.Item, fn *ast.FnItem) {
	name := l.ast.Name(fn.Name)
	if l.funcs[name] {
		l.fail(newError(diag.LowDuplicateFunction, fn.NameSpan, ErrDuplicateFunction,
			"function '%s' is already defined", name))
		return
	}
	l.funcs[name] = true
	if len(fn.Params) > 0 {
		l.fail(newError(diag.LowUnsupportedConstruct, fn.Params[0].Span, ErrUnsupportedConstruct,
			"function parameters are not supported ('%s')", name))
		return
	}

	span := trace.Begin(l.tracer, trace.ScopeModule, "func:"+name, l.parent)
	defer span.End("")

	result := ir.TypeI32
	if fn.Result == ast.TypeVoid {
		result = ir.TypeUnit
	}
	l.b.BeginFunc(name, result)
	l.fn = fn
	l.returned = false
	l.warned = false
	l.syms.Push(symbols.ScopeFunction, item.Span)

	if body, ok := l.ast.Stmts.Block(fn.Body); ok {
		l.lowerStmts(body.Stmts)
	}

	if !l.returned {
		if result == ir.TypeUnit {
			l.b.Return(ir.NoValue)
		} else {
			l.b.Return(l.b.Integer(0))
		}
	}

	span.WithExtra("values", fmt.Sprint(l.b.Func().NumValues()))
	l.syms.Pop()
	l.b.EndFunc()
	l.fn = nil
}

// lowerGlobalDecl accepts global constants only; they are folded into the
// global scope and never produce IR.
func (l *lowerer) lowerGlobalDecl(item *ast.Item, decl *ast.DeclData) {
	if !decl.Const {
		l.fail(newError(diag.LowUnsupportedConstruct, item.Span, ErrUnsupportedConstruct,
			"global variables are not supported"))
		return
	}
	for _, def := range decl.Defs {
		v, err := l.foldConst(def.Init)
		if err != nil {
			l.fail(err)
			l.syms.Declare(def.Name, symbols.Constant(0, def.NameSpan))
			continue
		}
		l.syms.Declare(def.Name, symbols.Constant(v, def.NameSpan))
	}
}
