// Package ir is the Koopa-style intermediate representation produced by
// internal/irgen and consumed by the RISC-V backend.
//
// A Program owns Funcs. Each Func owns a value table and its basic blocks;
// the lowering pipeline only ever creates the single entry block "%entry".
// Integer constants live in the value table but never in a block layout,
// so a block lists only instructions with effects or results (binary
// operations and the return).
package ir
