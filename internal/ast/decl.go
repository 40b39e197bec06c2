package ast

import "sysyc/internal/source"

// VarDef is one "name [= init]" entry of a declaration.
type VarDef struct {
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID when absent
}

// DeclData is shared by global and local declarations.
type DeclData struct {
	Const bool
	Defs  []VarDef
}
