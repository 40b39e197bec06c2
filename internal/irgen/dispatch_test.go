package irgen

import (
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/source"
	"sysyc/internal/symbols"
	"sysyc/internal/trace"
)

func newTestLowerer(b *ast.Builder) *lowerer {
	l := &lowerer{
		ast:      b,
		b:        ir.NewBuilder(nil),
		syms:     symbols.NewTable(symbols.Hints{}, b.Strings),
		reporter: diag.NopReporter{},
		tracer:   trace.Nop,
		funcs:    make(map[string]bool),
	}
	l.b.BeginFunc("probe", ir.TypeI32)
	l.fn = &ast.FnItem{Name: b.Strings.Intern("probe"), Result: ast.TypeInt}
	l.syms.Push(symbols.ScopeFunction, source.Span{})
	return l
}

// Every kind below the Count sentinel needs a sample here and a case in
// the lowering switch; a missing case panics.
func TestEveryExprKindLowers(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	x := b.Strings.Intern("x")
	lit := func() ast.ExprID { return b.Exprs.NewLiteral(sp, 1, "1") }

	for k := ast.ExprKind(0); k < ast.ExprKindCount; k++ {
		var id ast.ExprID
		switch k {
		case ast.ExprIdent:
			id = b.Exprs.NewIdent(sp, x)
		case ast.ExprLit:
			id = lit()
		case ast.ExprBinary:
			id = b.Exprs.NewBinary(sp, ast.ExprBinaryMul, lit(), lit())
		case ast.ExprUnary:
			id = b.Exprs.NewUnary(sp, ast.ExprUnaryNot, lit())
		case ast.ExprGroup:
			id = b.Exprs.NewGroup(sp, lit())
		case ast.ExprCall:
			id = b.Exprs.NewCall(sp, x, nil)
		default:
			t.Fatalf("no sample for expression kind %s", k)
		}
		t.Run(k.String(), func(t *testing.T) {
			l := newTestLowerer(b)
			l.syms.Declare(x, symbols.Variable(l.b.Integer(3), sp))
			_, _ = l.lowerExpr(id)
		})
	}
}

func TestEveryStmtKindLowers(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	x := b.Strings.Intern("x")
	lit := func() ast.ExprID { return b.Exprs.NewLiteral(sp, 1, "1") }

	for k := ast.StmtKind(0); k < ast.StmtKindCount; k++ {
		var id ast.StmtID
		switch k {
		case ast.StmtBlock:
			id = b.Stmts.NewBlock(sp, nil)
		case ast.StmtDecl:
			id = b.Stmts.NewDecl(sp, ast.DeclData{Defs: []ast.VarDef{{Name: x, Init: lit()}}})
		case ast.StmtAssign:
			id = b.Stmts.NewAssign(sp, b.Exprs.NewIdent(sp, x), lit())
		case ast.StmtExpr:
			id = b.Stmts.NewExpr(sp, lit())
		case ast.StmtEmpty, ast.StmtBreak, ast.StmtContinue:
			id = b.Stmts.NewSimple(k, sp)
		case ast.StmtReturn:
			id = b.Stmts.NewReturn(sp, lit())
		case ast.StmtIf:
			id = b.Stmts.NewIf(sp, lit(), b.Stmts.NewBlock(sp, nil), ast.NoStmtID)
		case ast.StmtWhile:
			id = b.Stmts.NewWhile(sp, lit(), b.Stmts.NewBlock(sp, nil))
		default:
			t.Fatalf("no sample for statement kind %s", k)
		}
		t.Run(k.String(), func(t *testing.T) {
			l := newTestLowerer(b)
			l.syms.Declare(x, symbols.Variable(l.b.Integer(3), sp))
			l.lowerStmt(id)
		})
	}
}

func TestEveryItemKindLowers(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	sp := source.Span{}
	for k := ast.ItemKind(0); k < ast.ItemKindCount; k++ {
		var id ast.ItemID
		switch k {
		case ast.ItemFn:
			id = b.Items.NewFn(sp, ast.FnItem{Name: b.Strings.Intern("main"), Body: b.Stmts.NewBlock(sp, nil)})
		case ast.ItemDecl:
			id = b.Items.NewDecl(sp, ast.DeclData{Const: true, Defs: []ast.VarDef{{
				Name: b.Strings.Intern("k"),
				Init: b.Exprs.NewLiteral(sp, 2, "2"),
			}}})
		default:
			t.Fatalf("no sample for item kind %s", k)
		}
		t.Run(k.String(), func(t *testing.T) {
			l := newTestLowerer(b)
			l.lowerItem(id)
		})
	}
}
