package lexer_test

import (
	"testing"

	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/source"
	"sysyc/internal/token"
)

// testReporter collects everything the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sy", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics %+v", input, rep.diagnostics)
	}
	return toks
}

func TestMainFunction(t *testing.T) {
	toks := expectKinds(t, "int main() { return 42; }",
		token.KwInt, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.KwReturn, token.IntLit, token.Semicolon, token.RBrace)
	if toks[1].Text != "main" || toks[6].Text != "42" {
		t.Fatalf("texts: %q %q", toks[1].Text, toks[6].Text)
	}
	if toks[6].Span.Start != 21 || toks[6].Span.End != 23 {
		t.Fatalf("literal span %v", toks[6].Span)
	}
}

func TestOperatorsGreedy(t *testing.T) {
	expectKinds(t, "a<=b>=c==d!=e&&f||!g<h>i=j",
		token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EqEq,
		token.Ident, token.BangEq, token.Ident, token.AndAnd, token.Ident, token.OrOr,
		token.Bang, token.Ident, token.Lt, token.Ident, token.Gt, token.Ident, token.Assign, token.Ident)
	expectKinds(t, "+-*/%,;[]", token.Plus, token.Minus, token.Star, token.Slash,
		token.Percent, token.Comma, token.Semicolon, token.LBracket, token.RBracket)
}

func TestCommentsAreTrivia(t *testing.T) {
	toks := expectKinds(t, "// line\nconst /* block\n comment */ int x = 1 / 2;",
		token.KwConst, token.KwInt, token.Ident, token.Assign, token.IntLit,
		token.Slash, token.IntLit, token.Semicolon)
	lead := toks[0].Leading
	if len(lead) != 2 || lead[0].Kind != token.TriviaLineComment || lead[1].Kind != token.TriviaNewline {
		t.Fatalf("leading trivia of const: %+v", lead)
	}
	if toks[1].Leading[1].Kind != token.TriviaBlockComment {
		t.Fatalf("block comment not attached to int: %+v", toks[1].Leading)
	}
}

func TestNumberForms(t *testing.T) {
	tests := []struct {
		text string
		want int32
	}{
		{"0", 0},
		{"42", 42},
		{"017", 15},
		{"0x1F", 31},
		{"0XfF", 255},
		{"2147483647", 2147483647},
		{"2147483648", -2147483648},
		{"0xFFFFFFFF", -1},
	}
	for _, tt := range tests {
		toks := expectKinds(t, tt.text, token.IntLit)
		got, err := lexer.ParseInt(toks[0].Text)
		if err != nil || got != tt.want {
			t.Errorf("ParseInt(%q) = %d, %v; want %d", tt.text, got, err, tt.want)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"09", "0x", "12ab"} {
		lx, rep := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("%q: kind %v, want Invalid", input, tok.Kind)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
			t.Errorf("%q: diagnostics %+v", input, rep.diagnostics)
		}
	}

	lx, rep := makeTestLexer("4294967296")
	if tok := lx.Next(); tok.Kind != token.IntLit {
		t.Fatalf("overflowing literal kind %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexIntegerOverflow {
		t.Fatalf("overflow diagnostics %+v", rep.diagnostics)
	}
}

func TestUnknownCharAndUnterminatedComment(t *testing.T) {
	lx, rep := makeTestLexer("a $ b /* open")
	got := kinds(lx.All())
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(rep.diagnostics) != 2 ||
		rep.diagnostics[0].Code != diag.LexUnknownChar ||
		rep.diagnostics[1].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics %+v", rep.diagnostics)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "x" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "y" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("want EOF, got %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("EOF must be sticky, got %v", n.Kind)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	toks := expectKinds(t, "int счёт = 1;", token.KwInt, token.Ident, token.Assign, token.IntLit, token.Semicolon)
	if toks[1].Text != "счёт" {
		t.Fatalf("ident text %q", toks[1].Text)
	}
}
