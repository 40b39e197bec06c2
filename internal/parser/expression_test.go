package parser

import (
	"testing"
)

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 % 3", "(% (/ 8 4) 3)"},
		{"1 < 2 == 3 > 4", "(== (< 1 2) (> 3 4))"},
		{"1 <= 2 != 3 >= 4", "(!= (<= 1 2) (>= 3 4))"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a && b || c && d", "(|| (&& a b) (&& c d))"},
		{"-!+x", "(- (! (+ x)))"},
		{"- -5", "(- (- 5))"},
		{"!a == 0", "(== (! a) 0)"},
		{"0x10 + 010", "(+ 16 8)"},
		{"f(1, a + 2)", "f(1, (+ a 2))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := mustParse(t, "int main() { return "+tt.src+"; }")
			if got := sexpr(p.b, firstReturnExpr(t, p)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMinInt32Literal(t *testing.T) {
	p := mustParse(t, "int main() { return -2147483648; }")
	if got := sexpr(p.b, firstReturnExpr(t, p)); got != "(- -2147483648)" {
		t.Fatalf("got %s", got)
	}
}
