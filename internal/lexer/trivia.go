package lexer

import (
	"sysyc/internal/diag"
	"sysyc/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token.
// Runs of blanks coalesce into one TriviaSpace and runs of newlines into one
// TriviaNewline. Block comments do not nest.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for {
				c := lx.cursor.Peek()
				if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
					break
				}
				lx.cursor.Bump()
			}
			lx.push(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaNewline, start)
		case b == '/' && lx.scanComment():
		default:
			return
		}
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanComment consumes // and /* */ comments. It returns false and leaves the
// cursor untouched when the slash starts a division instead.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	switch {
	case lx.try2('/', '/'):
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.push(token.TriviaLineComment, start)
		return true
	case lx.try2('/', '*'):
		closed := false
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.push(token.TriviaBlockComment, start)
		return true
	}
	return false
}
