// Package diag defines the diagnostic model shared by all pipeline phases.
//
// A Diagnostic carries a Severity, a compact numeric Code, a short message,
// the primary source.Span and optional notes pointing at related spans.
//
// Phases never format or print diagnostics. They emit through a Reporter
// (usually a BagReporter collecting into a Bag), and rendering lives in
// internal/diagfmt. The driver owns one Bag per compiled file.
//
// Code ranges:
//
//	1000  lexer
//	2000  parser
//	3000  IR lowering (symbols, constant folding)
//	4000  code generation
//	5000  I/O
//	6000  observability
package diag
