package parser

import (
	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/token"
)

// parseBlock parses "{ ... }". A broken statement is skipped and parsing
// resumes at the next one, so one typo yields one diagnostic.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open := p.advance() // {
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.opts.Enough() {
			return ast.NoStmtID, false
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(open.Span.Cover(p.lastSpan), stmts), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()

	case token.KwConst:
		decl, ok := p.parseConstDecl()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewDecl(start.Cover(p.lastSpan), decl), true

	case token.KwInt:
		decl, ok := p.parseVarDecl()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewDecl(start.Cover(p.lastSpan), decl), true

	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtEmpty, start), true

	case token.KwReturn:
		p.advance()
		expr := ast.NoExprID
		if !p.at(token.Semicolon) {
			var ok bool
			if expr, ok = p.parseExpr(); !ok {
				return ast.NoStmtID, false
			}
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewReturn(start.Cover(p.lastSpan), expr), true

	case token.KwIf:
		return p.parseIf()

	case token.KwWhile:
		p.advance()
		cond, ok := p.parseCond()
		if !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewWhile(start.Cover(p.lastSpan), cond, body), true

	case token.KwBreak, token.KwContinue:
		kind := ast.StmtBreak
		if p.advance().Kind == token.KwContinue {
			kind = ast.StmtContinue
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewSimple(kind, start.Cover(p.lastSpan)), true

	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance().Span // if
	cond, ok := p.parseCond()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if els, ok = p.parseStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(start.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseCond() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before condition"); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

// parseAssignOrExprStmt parses "lval = e;" or "e;".
func (p *Parser) parseAssignOrExprStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.Assign) {
		if p.arenas.Exprs.Get(expr).Kind != ast.ExprIdent {
			p.report(diag.SynInvalidAssignTarget, diag.SevError, p.arenas.Exprs.Get(expr).Span, "left side of '=' must be a variable")
			return ast.NoStmtID, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(start.Cover(p.lastSpan), expr, value), true
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), expr), true
}
