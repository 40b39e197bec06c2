// Package token defines lexical token kinds and trivia for SysY sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Comments and whitespace are leading Trivia and never appear in the main stream.
//   - "int" and "void" are keywords; SysY has no user-defined type names.
package token
