package irgen

import (
	"context"
	"strings"
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/lexer"
	"sysyc/internal/parser"
	"sysyc/internal/source"
)

type lowered struct {
	prog  *ir.Program
	koopa string
	bag   *diag.Bag
	err   error
}

// lowerSource parses src, which must be free of syntax errors, and lowers it.
func lowerSource(t *testing.T, src string) lowered {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sy", []byte(src)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(f, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Errorf("%s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("source does not parse:\n%s", src)
	}

	prog, err := Lower(context.Background(), b, res.File, Options{Reporter: rep})
	var sb strings.Builder
	if prog != nil {
		if derr := ir.Dump(&sb, prog); derr != nil {
			t.Fatalf("dump: %v", derr)
		}
	}
	return lowered{prog: prog, koopa: sb.String(), bag: bag, err: err}
}

// mustLower fails the test on any lowering error and validates the IR.
func mustLower(t *testing.T, src string) lowered {
	t.Helper()
	l := lowerSource(t, src)
	if l.err != nil {
		t.Fatalf("lowering failed: %v", l.err)
	}
	if err := ir.Validate(l.prog); err != nil {
		t.Fatalf("invalid IR: %v\n%s", err, l.koopa)
	}
	return l
}

func koopaMain(lines ...string) string {
	var sb strings.Builder
	sb.WriteString("fun @main(): i32 {\n%entry:\n")
	for _, line := range lines {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func validateOK(l lowered) error { return ir.Validate(l.prog) }
