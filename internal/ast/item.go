package ast

import (
	"sysyc/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemDecl

	// ItemKindCount is the number of item kinds; keep it last.
	ItemKindCount
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemDecl:
		return "Decl"
	}
	return "ItemKind(?)"
}

// BaseType is the declared result type of a function.
type BaseType uint8

const (
	TypeInt BaseType = iota
	TypeVoid
)

func (t BaseType) String() string {
	if t == TypeVoid {
		return "void"
	}
	return "int"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type FnParam struct {
	Name source.StringID
	Span source.Span
}

type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Result   BaseType
	Params   []FnParam
	Body     StmtID
}

type Items struct {
	Arena *Arena[Item]
	Fns   *Arena[FnItem]
	Decls *Arena[DeclData]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena: NewArena[Item](capHint),
		Fns:   NewArena[FnItem](capHint),
		Decls: NewArena[DeclData](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	payload := i.Fns.Allocate(fn)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemFn, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewDecl(span source.Span, decl DeclData) ItemID {
	payload := i.Decls.Allocate(decl)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemDecl, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Decl(id ItemID) (*DeclData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemDecl {
		return nil, false
	}
	return i.Decls.Get(uint32(item.Payload)), true
}
