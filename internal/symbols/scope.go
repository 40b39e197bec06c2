package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"sysyc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // compilation unit
	ScopeFunction           // function body
	ScopeBlock              // nested { }
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope owns the names declared directly in it and links to its parent.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Span   source.Span
	Names  map[source.StringID]Entry
}

// Scopes is an arena of scopes; popped scopes stay addressable for debugging dumps.
type Scopes struct {
	data []Scope
}

func NewScopes(capHint uint32) *Scopes {
	return &Scopes{data: make([]Scope, 0, capHint)}
}

func (s *Scopes) New(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	s.data = append(s.data, Scope{
		Kind:   kind,
		Parent: parent,
		Span:   span,
		Names:  make(map[source.StringID]Entry),
	})
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	return ScopeID(n)
}

func (s *Scopes) Get(id ScopeID) *Scope {
	if id == NoScopeID || int(id) > len(s.data) {
		return nil
	}
	return &s.data[id-1]
}

func (s *Scopes) Len() int { return len(s.data) }
