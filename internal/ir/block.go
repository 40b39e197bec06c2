package ir

// Block is a basic block: instruction handles in execution order.
type Block struct {
	Name  string
	Insts []Value
}

// Terminated reports whether the last instruction ends the block.
func (b *Block) Terminated(f *Func) bool {
	if len(b.Insts) == 0 {
		return false
	}
	return f.Value(b.Insts[len(b.Insts)-1]).Kind == ValueReturn
}
