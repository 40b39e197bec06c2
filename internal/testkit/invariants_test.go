package testkit

import (
	"strings"
	"testing"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/parser"
	"sysyc/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("inv.sy", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(f, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return b, res.File, f
}

func TestCheckSpanInvariants(t *testing.T) {
	srcs := []string{
		"int main() { return 0; }",
		"const int N = 3;\nint g;\nint main() {\n  int x = N;\n  { x = x + 1; }\n  return x;\n}\n",
	}
	for _, src := range srcs {
		b, fileID, f := parse(t, src)
		if err := CheckSpanInvariants(b, fileID, f); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsBrokenItem(t *testing.T) {
	b, fileID, f := parse(t, "int main() { return 0; }")
	item := b.Items.Get(b.Files.Get(fileID).Items[0])
	item.Span.End = item.Span.Start

	err := CheckSpanInvariants(b, fileID, f)
	if err == nil || !strings.Contains(err.Error(), "empty Fn item span") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckSpanInvariantsWrongFile(t *testing.T) {
	b, fileID, _ := parse(t, "int main() { return 0; }")
	other := &source.File{ID: 7, Content: []byte("int main() { return 0; }")}
	if err := CheckSpanInvariants(b, fileID, other); err == nil {
		t.Fatalf("expected file id mismatch")
	}
	if err := CheckSpanInvariants(nil, fileID, other); err == nil {
		t.Fatalf("expected nil builder error")
	}
}
