package ir

// Program owns every function of one compilation unit, in source order.
type Program struct {
	Funcs []*Func
}

// Func finds a function by name, with or without the "@" sigil.
func (p *Program) Func(name string) *Func {
	for _, f := range p.Funcs {
		if f.Name == name || f.Symbol() == name {
			return f
		}
	}
	return nil
}
