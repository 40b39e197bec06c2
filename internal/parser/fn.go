package parser

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/token"
)

// parseFnRest parses "( [int a, int b] ) Block" after the result type and name.
func (p *Parser) parseFnRest(typeTok token.Token, result ast.BaseType, name token.Token) (ast.ItemID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		if _, ok := p.expect(token.KwInt, diag.SynExpectType, "expected parameter type 'int'"); !ok {
			return ast.NoItemID, false
		}
		pn, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.NoItemID, false
		}
		params = append(params, ast.FnParam{Name: p.arenas.Strings.Intern(pn.Text), Span: pn.Span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to start function body")
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewFn(typeTok.Span.Cover(p.lastSpan), ast.FnItem{
		Name:     p.arenas.Strings.Intern(name.Text),
		NameSpan: name.Span,
		Result:   result,
		Params:   params,
		Body:     body,
	}), true
}
