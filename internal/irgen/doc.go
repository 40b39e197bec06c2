// Package irgen lowers a parsed SysY file into an *ir.Program.
//
// Lowering resolves identifiers through a scope chain, folds constant
// initializers, and inlines constants at their use sites. Variables have no
// storage: each one is bound to the SSA value it currently holds.
package irgen
