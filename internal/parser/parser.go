package parser

import (
	"slices"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/source"
	"sysyc/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses a whole compilation unit from lx into arenas.
// Syntax errors go to opts.Reporter; the returned file holds every item that
// parsed successfully.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	start := lx.Peek().Span
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start.StartPoint()),
		opts:     opts,
		lastSpan: start.StartPoint(),
	}

	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			return
		}
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lastSpan)
}

// parseItem dispatches on the first token of a top-level construct.
//
//	const int a = 1, b = a;   ItemDecl (const)
//	int g = 3;                ItemDecl (var)
//	int main() { ... }        ItemFn
//	void f() { ... }          ItemFn
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwConst:
		start := p.lx.Peek().Span
		decl, ok := p.parseConstDecl()
		if !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewDecl(start.Cover(p.lastSpan), decl), true

	case token.KwVoid:
		typeTok := p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'void'")
		if !ok {
			return ast.NoItemID, false
		}
		return p.parseFnRest(typeTok, ast.TypeVoid, name)

	case token.KwInt:
		typeTok := p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'int'")
		if !ok {
			return ast.NoItemID, false
		}
		if p.at(token.LParen) {
			return p.parseFnRest(typeTok, ast.TypeInt, name)
		}
		decl, ok := p.parseVarDefsFrom(name)
		if !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewDecl(typeTok.Span.Cover(p.lastSpan), decl), true

	default:
		p.err(diag.SynUnexpectedTopLevel, "expected declaration or function definition")
		p.advance()
		return ast.NoItemID, false
	}
}

// resyncTop skips to the next token that can start an item.
func (p *Parser) resyncTop() {
	for !p.atOr(token.EOF, token.KwConst, token.KwInt, token.KwVoid) {
		if p.at(token.Semicolon) || p.at(token.RBrace) {
			p.advance()
			return
		}
		p.advance()
	}
}
