package gopoly_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/njchilds90/gopoly"
)

// ============================================================
// End-to-end canonicalization
// ============================================================

func TestCanonicalize_EdgeCases(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "0 = 0"},
		{"   ", "0 = 0"},
		{"x = y", "x - y = 0"},
		{"x = 10", "x - 10 = 0"},
		{"-10 = x", "- x - 10 = 0"},
		{"10x = 10.5", "10x - 10.5 = 0"},
		{"x+y=0", "x + y = 0"},
		{"0", "0 = 0"},
		{"x - x", "0 = 0"},
		{"x", "x = 0"},
	}
	for _, c := range cases {
		got, err := gopoly.Canonicalize(c.in)
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Canonicalize(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCanonicalize_Complex(t *testing.T) {
	cases := []struct{ in, want string }{
		{"x + y - x^2 = y^2 - xy", "- x^2 - y^2 + x + y + xy = 0"},
		{"x^2 + 3xy + y^2 = x^2 + xy", "y^2 + 2xy = 0"},
		{"3x^2 + 3.5xy - y^2 - 1.3zyx = 2.2xyz", "3x^2 - y^2 + 3.5xy - 3.5zyx = 0"},
		{"-15y^2 + 13yx - x^2 = 2x^2 + xy", "- 3x^2 - 15y^2 + 12yx = 0"},
		{"0 = -12.7x^2 + xy", "12.7x^2 - xy = 0"},
		{"-1000.55x^2 + 100.66xy = y^2", "- 1000.55x^2 - y^2 + 100.66xy = 0"},
	}
	for _, c := range cases {
		got, err := gopoly.Canonicalize(c.in)
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Canonicalize(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCanonicalize_Parenthesized(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(10) = x", "- x + 10 = 0"},
		{"x + y - (x^2 + y^2) - xy = 0", "- x^2 - y^2 + x + y - xy = 0"},
		{"x^3 + 3xy + y^2 = (x^2 + xy)", "x^3 - x^2 + y^2 + 2xy = 0"},
		{"-15y^2 + (13yx - x^2) = (2x^2) + xy", "- 3x^2 - 15y^2 + 12yx = 0"},
		{"(x^2 + 3xy + y^2) = (x^2 + xy)", "y^2 + 2xy = 0"},
		{"x^2 - (3xy + y^2) = -(x + y - ((x^2 - 3x^2 + y^2) - xy))", "3x^2 - 2y^2 - 2xy + x + y = 0"},
	}
	for _, c := range cases {
		got, err := gopoly.Canonicalize(c.in)
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Canonicalize(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestCanonicalize_Errors(t *testing.T) {
	cases := []struct {
		in   string
		kind error
	}{
		{"x = y = z", gopoly.ErrMalformedEquation},
		{"x = ", gopoly.ErrMalformedEquation},
		{"= x", gopoly.ErrMalformedEquation},
		{"x + $", gopoly.ErrInvalidCharacter},
		{"x ^ 2", gopoly.ErrInvalidCharacter},
		{"(x + y", gopoly.ErrMismatchedParenthesis},
		{"x + y)", gopoly.ErrMismatchedParenthesis},
		{"x * y", gopoly.ErrUnsupportedOperator},
		{"x / 2", gopoly.ErrUnsupportedOperator},
		{"x + ", gopoly.ErrInsufficientOperands},
		{"x y", gopoly.ErrUnbalancedExpression},
		{"xx", gopoly.ErrInvalidOperand},
	}
	for _, c := range cases {
		_, err := gopoly.Canonicalize(c.in)
		if !errors.Is(err, c.kind) {
			t.Errorf("Canonicalize(%q): want %v, got %v", c.in, c.kind, err)
		}
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"x^2 - (3xy + y^2) = -(x + y)",
		"-1000.55x^2 + 100.66xy = y^2",
		"x + y - x^2 = y^2 - xy",
		"(10) = x",
		"3x^2 + 3.5xy - y^2 - 1.3zyx = 2.2xyz",
		"",
	}
	for _, in := range inputs {
		first, err := gopoly.Canonicalize(in)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", in, err)
		}
		second, err := gopoly.Canonicalize(strings.TrimSuffix(first, " = 0"))
		if err != nil {
			t.Fatalf("re-canonicalize %q: %v", first, err)
		}
		if first != second {
			t.Errorf("not idempotent for %q: %q then %q", in, first, second)
		}
	}
}

func TestRun_IntermediateProducts(t *testing.T) {
	res, err := gopoly.Run("x = -y")
	if err != nil {
		t.Fatal(err)
	}
	if res.Sanitized != "x  - (0-y)" {
		t.Errorf("sanitized: got %q", res.Sanitized)
	}
	if res.Postfix != "x 0 y - -" {
		t.Errorf("postfix: got %q", res.Postfix)
	}
	if res.Output != "x + y = 0" {
		t.Errorf("output: got %q", res.Output)
	}
	if len(res.Terms) != 2 {
		t.Errorf("want 2 terms, got %d", len(res.Terms))
	}
}

// ============================================================
// Pipeline seams
// ============================================================

type reverseSorter struct{}

func (reverseSorter) Sort(expr gopoly.Expression) {
	for i, j := 0, len(expr)-1; i < j; i, j = i+1, j-1 {
		expr[i], expr[j] = expr[j], expr[i]
	}
}

func TestPipeline_CustomSorter(t *testing.T) {
	p := gopoly.NewPipeline(gopoly.WithSorter(reverseSorter{}))
	got, err := p.Canonicalize("x + y + 2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2 + y + x = 0" {
		t.Errorf("want '2 + y + x = 0', got %q", got)
	}
}

type countingConverter struct{ calls *int }

func (c countingConverter) ToPostfix(sanitized string) (string, error) {
	*c.calls++
	return gopoly.ToPostfix(sanitized)
}

type constantEvaluator struct{}

func (constantEvaluator) Simplify(string) (gopoly.Expression, error) {
	term, err := gopoly.ParseTerm("7z")
	return gopoly.Expression{term}, err
}

func TestPipeline_CustomConverter(t *testing.T) {
	calls := 0
	p := gopoly.NewPipeline(gopoly.WithConverter(countingConverter{calls: &calls}))
	res, err := p.Run("x = y")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("want converter called once, got %d", calls)
	}
	if res.Postfix != "x y -" || res.Output != "x - y = 0" {
		t.Errorf("got postfix %q, output %q", res.Postfix, res.Output)
	}
}

func TestPipeline_CustomEvaluator(t *testing.T) {
	p := gopoly.NewPipeline(gopoly.WithEvaluator(constantEvaluator{}))
	got, err := p.Canonicalize("x = y")
	if err != nil {
		t.Fatal(err)
	}
	if got != "7z = 0" {
		t.Errorf("want '7z = 0', got %q", got)
	}
}

func TestPipeline_LaTeXFormatter(t *testing.T) {
	p := gopoly.NewPipeline(gopoly.WithFormatter(gopoly.EquationFormatter{LaTeX: true}))
	got, err := p.Canonicalize("x^2 = 2y^3")
	if err != nil {
		t.Fatal(err)
	}
	if got != "- 2y^{3} + x^{2} = 0" {
		t.Errorf("got %q", got)
	}
}

func TestPipeline_ConcurrentUse(t *testing.T) {
	p := gopoly.NewPipeline()
	inputs := map[string]string{
		"x = y":                      "x - y = 0",
		"x^2 + 3xy + y^2 = x^2 + xy": "y^2 + 2xy = 0",
		"(10) = x":                   "- x + 10 = 0",
		"0 = -12.7x^2 + xy":          "12.7x^2 - xy = 0",
	}
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		for in, want := range inputs {
			wg.Add(1)
			go func(in, want string) {
				defer wg.Done()
				got, err := p.Canonicalize(in)
				if err != nil || got != want {
					errs <- in + " -> " + got
				}
			}(in, want)
		}
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent mismatch: %s", e)
	}
}
