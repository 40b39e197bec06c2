package lexer

import (
	"testing"

	"sysyc/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.sy", []byte("ab"))))

	m := c.Mark()
	if c.Peek() != 'a' || c.Bump() != 'a' {
		t.Fatalf("first byte")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 past end should fail")
	}
	if !c.Eat('b') || !c.EOF() {
		t.Fatalf("Eat")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("reads past EOF must return 0")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset")
	}
}
