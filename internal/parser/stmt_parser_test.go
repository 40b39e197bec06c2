package parser

import (
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
)

func TestTopLevelItems(t *testing.T) {
	p := mustParse(t, `
const int N = 10, M = N * 2;
int g;
void helper() { return; }
int main() { return M; }
`)
	if len(p.file.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(p.file.Items))
	}
	decl, ok := p.b.Items.Decl(p.file.Items[0])
	if !ok || !decl.Const || len(decl.Defs) != 2 {
		t.Fatalf("const decl %+v", decl)
	}
	if p.b.Name(decl.Defs[1].Name) != "M" || sexpr(p.b, decl.Defs[1].Init) != "(* N 2)" {
		t.Fatalf("second const def wrong")
	}
	g, ok := p.b.Items.Decl(p.file.Items[1])
	if !ok || g.Const || g.Defs[0].Init.IsValid() {
		t.Fatalf("var decl %+v", g)
	}
	helper, ok := p.b.Items.Fn(p.file.Items[2])
	if !ok || helper.Result != ast.TypeVoid || p.b.Name(helper.Name) != "helper" {
		t.Fatalf("void fn %+v", helper)
	}
	main, ok := p.b.Items.Fn(p.file.Items[3])
	if !ok || main.Result != ast.TypeInt {
		t.Fatalf("main fn %+v", main)
	}
}

func TestStatementKinds(t *testing.T) {
	p := mustParse(t, `int main(int argc) {
	int a = 1, b;
	const int c = 2;
	a = a + c;
	a;
	;
	{ int a = 5; }
	if (a) b = 1; else { b = 2; }
	while (b < 10) { b = b + 1; if (b) break; else continue; }
	return a;
}`)
	fn, _ := p.b.Items.Fn(p.file.Items[0])
	if len(fn.Params) != 1 || p.b.Name(fn.Params[0].Name) != "argc" {
		t.Fatalf("params %+v", fn.Params)
	}
	body, _ := p.b.Stmts.Block(fn.Body)
	want := []ast.StmtKind{
		ast.StmtDecl, ast.StmtDecl, ast.StmtAssign, ast.StmtExpr, ast.StmtEmpty,
		ast.StmtBlock, ast.StmtIf, ast.StmtWhile, ast.StmtReturn,
	}
	if len(body.Stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(body.Stmts), len(want))
	}
	for i, k := range want {
		if got := p.b.Stmts.Get(body.Stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: %v, want %v", i, got, k)
		}
	}
	ifs, _ := p.b.Stmts.If(body.Stmts[6])
	if !ifs.Else.IsValid() {
		t.Fatalf("else branch missing")
	}
}

func TestReturnWithoutValue(t *testing.T) {
	p := mustParse(t, "void f() { return; }")
	fn, _ := p.b.Items.Fn(p.file.Items[0])
	body, _ := p.b.Stmts.Block(fn.Body)
	r, ok := p.b.Stmts.Return(body.Stmts[0])
	if !ok || r.Expr.IsValid() {
		t.Fatalf("return; must carry no expression")
	}
}

func TestSyntaxErrorsRecover(t *testing.T) {
	p := parseSource(t, `int main() {
	int a = ;
	a = 1
	return a;
}
int other() { return 1; }`)
	codes := map[diag.Code]int{}
	for _, d := range p.bag.Items() {
		codes[d.Code]++
	}
	if codes[diag.SynExpectExpression] != 1 || codes[diag.SynExpectSemicolon] != 1 {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
	if len(p.file.Items) != 2 {
		t.Fatalf("recovery lost items: %d", len(p.file.Items))
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	p := parseSource(t, "int main() { 1 = 2; return 0; }")
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SynInvalidAssignTarget {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
}

func TestConstNeedsInitializer(t *testing.T) {
	p := parseSource(t, "const int a;")
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SynExpectAssign {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
}

func TestUnexpectedTopLevel(t *testing.T) {
	p := parseSource(t, "return 1; int main() { return 0; }")
	if !p.bag.HasErrors() || p.bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("diagnostics: %+v", p.bag.Items())
	}
	if len(p.file.Items) != 1 {
		t.Fatalf("main lost after recovery")
	}
}

func TestMaxErrors(t *testing.T) {
	bag := diag.NewBag(100)
	res := parseWithLimit(t, "} } } } }", bag, 2)
	if bag.Len() != 2 || res.Errors != 2 {
		t.Fatalf("limit ignored: %d diagnostics, %d errors", bag.Len(), res.Errors)
	}
}
