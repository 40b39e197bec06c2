package lexer

import (
	"sysyc/internal/diag"
	"sysyc/internal/token"
)

// scanNumber accepts SysY integer constants:
//
//	decimal      [1-9][0-9]* | 0
//	octal        0[0-7]+
//	hexadecimal  0[xX][0-9a-fA-F]+
//
// Malformed literals are reported and still produce an IntLit so the parser
// can keep going; ParseInt rejects them again later.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	bad := false
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch b := lx.cursor.Peek(); {
		case b == 'x' || b == 'X':
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				bad = true
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		default:
			for isDec(lx.cursor.Peek()) {
				if !isOct(lx.cursor.Bump()) {
					bad = true
				}
			}
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	// 12abc is one malformed token, not a number followed by an identifier
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}

	sp := lx.cursor.SpanFrom(start)
	if bad {
		lx.errLex(diag.LexBadNumber, sp, "malformed integer literal "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	if _, err := ParseInt(lx.text(sp)); err != nil {
		lx.errLex(diag.LexIntegerOverflow, sp, err.Error())
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}
