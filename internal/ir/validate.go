package ir

import (
	"errors"
	"fmt"
)

// Validate checks the invariants the backend relies on:
// operands are defined before use, integers stay out of the block layout,
// and every block ends with exactly one return.
func Validate(p *Program) error {
	if p == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]bool, len(p.Funcs))
	for _, f := range p.Funcs {
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("function %s: defined twice", f.Name))
		}
		seen[f.Name] = true
		if err := validateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func) error {
	var errs []error
	for _, b := range f.Blocks {
		defined := make(map[Value]bool, len(b.Insts))
		for i, v := range b.Insts {
			d := f.Value(v)
			switch d.Kind {
			case ValueInteger:
				errs = append(errs, fmt.Errorf("%s[%d]: integer in block layout", b.Name, i))
				continue
			case ValueReturn:
				if i != len(b.Insts)-1 {
					errs = append(errs, fmt.Errorf("%s[%d]: return is not the last instruction", b.Name, i))
				}
				if d.Ret.IsValid() && f.Result == TypeUnit {
					errs = append(errs, fmt.Errorf("%s[%d]: unit function returns a value", b.Name, i))
				}
				if !d.Ret.IsValid() && f.Result == TypeI32 {
					errs = append(errs, fmt.Errorf("%s[%d]: i32 function returns nothing", b.Name, i))
				}
			}
			for _, op := range d.Operands() {
				if f.Value(op).Kind == ValueInteger {
					continue
				}
				if !defined[op] {
					errs = append(errs, fmt.Errorf("%s[%d]: operand %d used before definition", b.Name, i, op))
				}
			}
			defined[v] = true
		}
		if !b.Terminated(f) {
			errs = append(errs, fmt.Errorf("%s: missing return", b.Name))
		}
	}
	return errors.Join(errs...)
}
