package parser

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/token"
)

// parseConstDecl parses "const int a = e, b = e;". Every definition needs an initializer.
func (p *Parser) parseConstDecl() (ast.DeclData, bool) {
	p.advance() // const
	if _, ok := p.expect(token.KwInt, diag.SynExpectType, "expected 'int' after 'const'"); !ok {
		return ast.DeclData{}, false
	}
	decl := ast.DeclData{Const: true}
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected constant name")
		if !ok {
			return ast.DeclData{}, false
		}
		if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "constant '"+name.Text+"' needs an initializer"); !ok {
			return ast.DeclData{}, false
		}
		init, ok := p.parseExpr()
		if !ok {
			return ast.DeclData{}, false
		}
		decl.Defs = append(decl.Defs, ast.VarDef{
			Name:     p.arenas.Strings.Intern(name.Text),
			NameSpan: name.Span,
			Init:     init,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant declaration"); !ok {
		return ast.DeclData{}, false
	}
	return decl, true
}

// parseVarDecl parses "int a, b = e;" starting at the 'int' keyword.
func (p *Parser) parseVarDecl() (ast.DeclData, bool) {
	p.advance() // int
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	if !ok {
		return ast.DeclData{}, false
	}
	return p.parseVarDefsFrom(name)
}

// parseVarDefsFrom continues a variable declaration whose first name is already consumed.
func (p *Parser) parseVarDefsFrom(first token.Token) (ast.DeclData, bool) {
	var decl ast.DeclData
	name := first
	for {
		def := ast.VarDef{
			Name:     p.arenas.Strings.Intern(name.Text),
			NameSpan: name.Span,
		}
		if p.at(token.Assign) {
			p.advance()
			init, ok := p.parseExpr()
			if !ok {
				return ast.DeclData{}, false
			}
			def.Init = init
		}
		decl.Defs = append(decl.Defs, def)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		var ok bool
		name, ok = p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after ','")
		if !ok {
			return ast.DeclData{}, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration"); !ok {
		return ast.DeclData{}, false
	}
	return decl, true
}
