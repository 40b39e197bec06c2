package irgen

import (
	"fmt"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/symbols"
	"sysyc/internal/trace"
)

func (l *lowerer) lowerStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		if l.returned {
			l.warnUnreachable(id)
			return
		}
		l.lowerStmt(id)
	}
}

func (l *lowerer) warnUnreachable(id ast.StmtID) {
	if l.warned {
		return
	}
	l.warned = true
	if st := l.ast.Stmts.Get(id); st != nil {
		diag.ReportWarning(l.reporter, diag.LowUnreachableCode, st.Span, "statement is never executed").Emit()
	}
}

func (l *lowerer) lowerStmt(id ast.StmtID) {
	st := l.ast.Stmts.Get(id)
	if st == nil {
		return
	}
	trace.Point(l.tracer, trace.ScopeNode, "stmt", st.Kind.String(), l.parent)

	switch st.Kind {
	case ast.StmtBlock:
		block, _ := l.ast.Stmts.Block(id)
		l.syms.Push(symbols.ScopeBlock, st.Span)
		l.lowerStmts(block.Stmts)
		l.syms.Pop()
	case ast.StmtDecl:
		decl, _ := l.ast.Stmts.Decl(id)
		l.lowerLocalDecl(decl)
	case ast.StmtAssign:
		assign, _ := l.ast.Stmts.Assign(id)
		l.guard(func() *Error { return l.lowerAssign(assign) })
	case ast.StmtExpr:
		es, _ := l.ast.Stmts.Expr(id)
		l.guard(func() *Error {
			_, err := l.lowerExpr(es.Expr)
			return err
		})
	case ast.StmtEmpty:
	case ast.StmtReturn:
		ret, _ := l.ast.Stmts.Return(id)
		l.guard(func() *Error { return l.lowerReturn(st, ret) })
	case ast.StmtIf, ast.StmtWhile, ast.StmtBreak, ast.StmtContinue:
		l.fail(newError(diag.LowUnsupportedConstruct, st.Span, ErrUnsupportedConstruct,
			"'%s' statements are not supported", keyword(st.Kind)))
	default:
		panic(fmt.Sprintf("irgen: unhandled statement kind %s", st.Kind))
	}
}

// guard runs one statement and undoes its partial IR if it fails.
func (l *lowerer) guard(fn func() *Error) {
	cp := l.b.Checkpoint()
	if err := fn(); err != nil {
		l.b.Rollback(cp)
		l.fail(err)
	}
}

func keyword(k ast.StmtKind) string {
	switch k {
	case ast.StmtIf:
		return "if"
	case ast.StmtWhile:
		return "while"
	case ast.StmtBreak:
		return "break"
	case ast.StmtContinue:
		return "continue"
	}
	return k.String()
}

// lowerLocalDecl binds each definition in turn. A failing definition is
// rolled back alone, so earlier names stay bound to live values.
func (l *lowerer) lowerLocalDecl(decl *ast.DeclData) {
	for _, def := range decl.Defs {
		if decl.Const {
			v, err := l.foldConst(def.Init)
			if err != nil {
				l.fail(err)
				// bound to 0 so later uses do not add an undeclared error
				l.syms.Declare(def.Name, symbols.Constant(0, def.NameSpan))
				continue
			}
			l.syms.Declare(def.Name, symbols.Constant(v, def.NameSpan))
			continue
		}
		l.guard(func() *Error {
			if !def.Init.IsValid() {
				l.syms.Declare(def.Name, symbols.Variable(l.b.Integer(0), def.NameSpan))
				return nil
			}
			op, err := l.lowerExpr(def.Init)
			if err != nil {
				return err
			}
			l.syms.Declare(def.Name, symbols.Variable(op.handle, def.NameSpan))
			return nil
		})
	}
}

func (l *lowerer) lowerAssign(assign *ast.AssignStmt) *Error {
	target := l.ast.Exprs.Get(assign.Target)
	ident, ok := l.ast.Exprs.Ident(assign.Target)
	if !ok {
		return newError(diag.LowUnsupportedConstruct, target.Span, ErrUnsupportedConstruct,
			"assignment target is not a variable")
	}
	entry, err := l.syms.Resolve(ident.Name)
	if err != nil {
		return undeclared(err, target.Span)
	}
	if entry.Kind == symbols.EntryConstant {
		return newError(diag.LowConstantAssignment, target.Span, ErrConstantAssignment,
			"cannot assign to constant '%s'", l.ast.Name(ident.Name))
	}
	op, lerr := l.lowerExpr(assign.Value)
	if lerr != nil {
		return lerr
	}
	if err := l.syms.Rebind(ident.Name, symbols.Variable(op.handle, entry.Span)); err != nil {
		return undeclared(err, target.Span)
	}
	return nil
}

func (l *lowerer) lowerReturn(st *ast.Stmt, ret *ast.ReturnStmt) *Error {
	void := l.fn.Result == ast.TypeVoid
	switch {
	case ret.Expr.IsValid() && void:
		return newError(diag.LowReturnTypeMismatch, st.Span, ErrReturnTypeMismatch,
			"void function '%s' cannot return a value", l.ast.Name(l.fn.Name))
	case !ret.Expr.IsValid() && !void:
		return newError(diag.LowReturnTypeMismatch, st.Span, ErrReturnTypeMismatch,
			"function '%s' must return a value", l.ast.Name(l.fn.Name))
	}

	value := ir.NoValue
	if ret.Expr.IsValid() {
		op, err := l.lowerExpr(ret.Expr)
		if err != nil {
			return err
		}
		value = op.handle
	}
	l.b.Return(value)
	l.returned = true
	return nil
}
