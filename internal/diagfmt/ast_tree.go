package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"sysyc/internal/ast"
	"sysyc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	n.children = append(n.children, children...)
	return n
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

// FormatASTTree prints the file as an indented tree.
func FormatASTTree(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root := buildFileTree(b, fileID, fs)
	var sb strings.Builder
	sb.WriteString(root.label + "\n")
	renderChildren(&sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChildren(sb *strings.Builder, n *treeNode, indent string) {
	for i, c := range n.children {
		last := i == len(n.children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(indent + branch + c.label + "\n")
		renderChildren(sb, c, indent+next)
	}
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func buildFileTree(b *ast.Builder, fileID ast.FileID, fs *source.FileSet) *treeNode {
	file := b.Files.Get(fileID)
	if file == nil {
		return leaf("File[%d]: <nil>", fileID)
	}
	header := "File"
	if fs != nil {
		header = fs.Get(file.Source).FormatPath(source.PathAuto, fs.BaseDir())
	}
	root := leaf("%s (span: %s)", header, formatSpan(file.Span, fs))
	for _, id := range file.Items {
		root.add(buildItemTree(b, id, fs))
	}
	return root
}

func buildItemTree(b *ast.Builder, id ast.ItemID, fs *source.FileSet) *treeNode {
	item := b.Items.Get(id)
	if item == nil {
		return leaf("<nil item>")
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := b.Items.Fn(id)
		node := leaf("Fn %s(): %s (span: %s)", b.Name(fn.Name), fn.Result, formatSpan(item.Span, fs))
		for _, p := range fn.Params {
			node.add(leaf("Param %s", b.Name(p.Name)))
		}
		return node.add(buildStmtTree(b, fn.Body, fs))
	case ast.ItemDecl:
		decl, _ := b.Items.Decl(id)
		return buildDeclTree(b, decl, item.Span, fs)
	}
	return leaf("Item(%s)", item.Kind)
}

func buildDeclTree(b *ast.Builder, decl *ast.DeclData, sp source.Span, fs *source.FileSet) *treeNode {
	kind := "Var"
	if decl.Const {
		kind = "Const"
	}
	node := leaf("%s (span: %s)", kind, formatSpan(sp, fs))
	for _, def := range decl.Defs {
		if def.Init.IsValid() {
			node.add(leaf("%s = %s", b.Name(def.Name), FormatExpr(b, def.Init)))
		} else {
			node.add(leaf("%s", b.Name(def.Name)))
		}
	}
	return node
}

func buildStmtTree(b *ast.Builder, id ast.StmtID, fs *source.FileSet) *treeNode {
	st := b.Stmts.Get(id)
	if st == nil {
		return leaf("<nil stmt>")
	}
	span := formatSpan(st.Span, fs)
	switch st.Kind {
	case ast.StmtBlock:
		block, _ := b.Stmts.Block(id)
		node := leaf("Block (span: %s)", span)
		for _, s := range block.Stmts {
			node.add(buildStmtTree(b, s, fs))
		}
		return node
	case ast.StmtDecl:
		decl, _ := b.Stmts.Decl(id)
		return buildDeclTree(b, decl, st.Span, fs)
	case ast.StmtAssign:
		a, _ := b.Stmts.Assign(id)
		return leaf("Assign %s = %s (span: %s)", FormatExpr(b, a.Target), FormatExpr(b, a.Value), span)
	case ast.StmtExpr:
		e, _ := b.Stmts.Expr(id)
		return leaf("Expr %s (span: %s)", FormatExpr(b, e.Expr), span)
	case ast.StmtReturn:
		r, _ := b.Stmts.Return(id)
		if !r.Expr.IsValid() {
			return leaf("Return (span: %s)", span)
		}
		return leaf("Return %s (span: %s)", FormatExpr(b, r.Expr), span)
	case ast.StmtIf:
		s, _ := b.Stmts.If(id)
		node := leaf("If %s (span: %s)", FormatExpr(b, s.Cond), span)
		node.add(buildStmtTree(b, s.Then, fs))
		if s.Else.IsValid() {
			node.add(leaf("Else").add(buildStmtTree(b, s.Else, fs)))
		}
		return node
	case ast.StmtWhile:
		s, _ := b.Stmts.While(id)
		return leaf("While %s (span: %s)", FormatExpr(b, s.Cond), span).add(buildStmtTree(b, s.Body, fs))
	}
	return leaf("%s (span: %s)", st.Kind, span)
}

// FormatExpr renders an expression fully parenthesised, e.g. "(a + (b * 2))".
func FormatExpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprLit:
		l, _ := b.Exprs.Literal(id)
		return l.Text
	case ast.ExprIdent:
		n, _ := b.Exprs.Ident(id)
		return b.Name(n.Name)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", FormatExpr(b, d.Left), d.Op, FormatExpr(b, d.Right))
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("%s%s", d.Op, FormatExpr(b, d.Operand))
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return FormatExpr(b, d.Inner)
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, 0, len(d.Args))
		for _, a := range d.Args {
			args = append(args, FormatExpr(b, a))
		}
		return fmt.Sprintf("%s(%s)", b.Name(d.Callee), strings.Join(args, ", "))
	}
	return "?"
}
