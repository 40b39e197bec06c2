package ir

// Builder appends values to the entry block of the current function.
type Builder struct {
	prog *Program
	fn   *Func
}

func NewBuilder(prog *Program) *Builder {
	if prog == nil {
		prog = &Program{}
	}
	return &Builder{prog: prog}
}

func (b *Builder) Program() *Program { return b.prog }

// Func returns the function being built, or nil between functions.
func (b *Builder) Func() *Func { return b.fn }

// BeginFunc creates a function, registers it and makes it current.
func (b *Builder) BeginFunc(name string, result Type) *Func {
	b.fn = NewFunc(name, result)
	b.prog.Funcs = append(b.prog.Funcs, b.fn)
	return b.fn
}

func (b *Builder) EndFunc() {
	b.fn = nil
}

// Integer creates a constant. It is not placed in the block layout.
func (b *Builder) Integer(n int32) Value {
	return b.fn.newValue(ValueData{Kind: ValueInteger, Int: n})
}

// Binary appends "op lhs, rhs" to the current block.
func (b *Builder) Binary(op BinaryOp, lhs, rhs Value) Value {
	b.mustDefined(lhs)
	b.mustDefined(rhs)
	return b.append(ValueData{Kind: ValueBinary, Op: op, Lhs: lhs, Rhs: rhs})
}

// Return appends "ret [v]". Pass NoValue for a bare return.
func (b *Builder) Return(v Value) Value {
	if v.IsValid() {
		b.mustDefined(v)
	}
	return b.append(ValueData{Kind: ValueReturn, Ret: v})
}

func (b *Builder) append(d ValueData) Value {
	v := b.fn.newValue(d)
	entry := b.fn.Entry()
	entry.Insts = append(entry.Insts, v)
	return v
}

func (b *Builder) mustDefined(v Value) {
	if v == NoValue || int(v) > len(b.fn.values) {
		panic("ir: operand used before definition")
	}
}

// Checkpoint marks the current end of the value table and the block.
type Checkpoint struct {
	values int
	insts  int
}

func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint{values: len(b.fn.values), insts: len(b.fn.Entry().Insts)}
}

// Rollback forgets every value created since c.
func (b *Builder) Rollback(c Checkpoint) {
	b.fn.values = b.fn.values[:c.values]
	entry := b.fn.Entry()
	entry.Insts = entry.Insts[:c.insts]
}
