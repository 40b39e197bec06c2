package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"sysyc/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes uint }

// Table is a chain of scopes with one active scope. Lookups walk from the
// active scope to the global one through Parent links.
type Table struct {
	Scopes  *Scopes
	Strings *source.Interner
	current ScopeID
}

// NewTable builds a table whose active scope is a fresh global scope.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Strings: strings,
	}
	t.current = t.Scopes.New(ScopeGlobal, NoScopeID, source.Span{})
	return t
}

// Current returns the active scope.
func (t *Table) Current() ScopeID { return t.current }

// Depth counts scopes on the active chain, the global one included.
func (t *Table) Depth() int {
	n := 0
	for id := t.current; id.IsValid(); id = t.Scopes.Get(id).Parent {
		n++
	}
	return n
}

// Push opens a child of the active scope and makes it active.
func (t *Table) Push(kind ScopeKind, span source.Span) ScopeID {
	t.current = t.Scopes.New(kind, t.current, span)
	return t.current
}

// Pop closes the active scope. Popping the global scope is a bug.
func (t *Table) Pop() {
	sc := t.Scopes.Get(t.current)
	if sc.Kind == ScopeGlobal {
		panic("symbols: pop of global scope")
	}
	t.current = sc.Parent
}

// Declare binds name in the active scope. A second declaration of the same
// name in the same scope replaces the first; replaced reports that case.
func (t *Table) Declare(name source.StringID, e Entry) (replaced bool) {
	names := t.Scopes.Get(t.current).Names
	_, replaced = names[name]
	names[name] = e
	return replaced
}

// Rebind updates the innermost binding of name, wherever it lives on the chain.
// It is how assignment moves a variable to a new value.
func (t *Table) Rebind(name source.StringID, e Entry) error {
	for id := t.current; id.IsValid(); {
		sc := t.Scopes.Get(id)
		if _, ok := sc.Names[name]; ok {
			sc.Names[name] = e
			return nil
		}
		id = sc.Parent
	}
	return t.undeclared(name)
}

// Resolve walks the chain innermost to outermost.
func (t *Table) Resolve(name source.StringID) (Entry, error) {
	for id := t.current; id.IsValid(); {
		sc := t.Scopes.Get(id)
		if e, ok := sc.Names[name]; ok {
			return e, nil
		}
		id = sc.Parent
	}
	return Entry{}, t.undeclared(name)
}

func (t *Table) undeclared(name source.StringID) error {
	s, _ := t.Strings.Lookup(name)
	return &UndeclaredError{Name: s}
}
