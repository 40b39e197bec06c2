package symbols

// ScopeID addresses a scope inside Scopes; NoScopeID marks the missing parent of the root.
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }
