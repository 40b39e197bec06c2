package parser

import (
	"fmt"
	"strings"
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/source"
)

type parsed struct {
	b    *ast.Builder
	file *ast.File
	bag  *diag.Bag
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sy", []byte(src)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lexer.New(f, lexer.Options{Reporter: rep}), b, Options{Reporter: rep})
	return parsed{b: b, file: b.Files.Get(res.File), bag: bag}
}

func mustParse(t *testing.T, src string) parsed {
	t.Helper()
	p := parseSource(t, src)
	if p.bag.Len() != 0 {
		for _, d := range p.bag.Items() {
			t.Errorf("%s %s at %v", d.Code.ID(), d.Message, d.Primary)
		}
		t.FailNow()
	}
	return p
}

// sexpr renders an expression as a fully parenthesised prefix form.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprLit:
		l, _ := b.Exprs.Literal(id)
		return fmt.Sprint(l.Value)
	case ast.ExprIdent:
		n, _ := b.Exprs.Ident(id)
		return b.Name(n.Name)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, sexpr(b, d.Left), sexpr(b, d.Right))
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", d.Op, sexpr(b, d.Operand))
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return sexpr(b, d.Inner)
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, 0, len(d.Args))
		for _, a := range d.Args {
			args = append(args, sexpr(b, a))
		}
		return fmt.Sprintf("%s(%s)", b.Name(d.Callee), strings.Join(args, ", "))
	}
	return "?"
}

// firstReturnExpr digs the expression out of "int main() { return <e>; }".
func firstReturnExpr(t *testing.T, p parsed) ast.ExprID {
	t.Helper()
	fn, ok := p.b.Items.Fn(p.file.Items[len(p.file.Items)-1])
	if !ok {
		t.Fatalf("last item is not a function")
	}
	body, _ := p.b.Stmts.Block(fn.Body)
	for _, st := range body.Stmts {
		if r, ok := p.b.Stmts.Return(st); ok {
			return r.Expr
		}
	}
	t.Fatalf("no return statement")
	return ast.NoExprID
}

func parseWithLimit(t *testing.T, src string, bag *diag.Bag, limit uint) Result {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("limit.sy", []byte(src)))
	rep := diag.BagReporter{Bag: bag}
	return ParseFile(lexer.New(f, lexer.Options{Reporter: rep}), ast.NewBuilder(ast.Hints{}, nil),
		Options{Reporter: rep, MaxErrors: limit})
}
