package parser

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/source"
	"sysyc/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr is a precedence-climbing loop over left-associative operators.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := binaryPrec(p.lx.Peek().Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, tokenKindToBinaryOp(opTok.Kind), left, right)
	}
	return left, true
}

// parseUnaryExpr handles prefix chains such as "-!+x".
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}
	var prefixes []prefixOp
	for {
		op, ok := tokenKindToUnaryOp(p.lx.Peek().Kind)
		if !ok {
			break
		}
		prefixes = append(prefixes, prefixOp{op: op, span: p.advance().Span})
	}

	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		span := prefixes[i].span.Cover(p.arenas.Exprs.Get(expr).Span)
		expr = p.arenas.Exprs.NewUnary(span, prefixes[i].op, expr)
	}
	return expr, true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		value, err := lexer.ParseInt(tok.Text)
		if err != nil {
			// the lexer has already reported the overflow
			value = 0
		}
		return p.arenas.Exprs.NewLiteral(tok.Span, value, tok.Text), true

	case token.Ident:
		p.advance()
		name := p.arenas.Strings.Intern(tok.Text)
		if p.at(token.LParen) {
			return p.parseCallRest(tok, name)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, name), true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(open.Span.Cover(p.lastSpan), inner), true

	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return ast.NoExprID, false
	}
}

func (p *Parser) parseCallRest(nameTok token.Token, name source.StringID) (ast.ExprID, bool) {
	p.advance() // (
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(nameTok.Span.Cover(p.lastSpan), name, args), true
}
