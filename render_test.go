package gopoly_test

import (
	"math/big"
	"testing"

	"github.com/njchilds90/gopoly"
)

func term(num, den int64, vars ...gopoly.Var) gopoly.Term {
	return gopoly.NewTerm(big.NewRat(num, den), vars...)
}

func v(name byte, exp int) gopoly.Var { return gopoly.Var{Name: name, Exp: exp} }

// ============================================================
// Sort tests
// ============================================================

func TestSort_MaxExponentDescending(t *testing.T) {
	expr := gopoly.Expression{
		term(1, 1),
		term(1, 1, v('x', 1)),
		term(1, 1, v('y', 3)),
		term(1, 1, v('x', 2), v('y', 1)),
	}
	gopoly.Sort(expr)
	for i := 1; i < len(expr); i++ {
		if expr[i-1].MaxExp() < expr[i].MaxExp() {
			t.Errorf("terms %d and %d out of order: %s before %s", i-1, i, expr[i-1], expr[i])
		}
	}
	if got := gopoly.Format(expr); got != "y^3 + x^2y + x + 1 = 0" {
		t.Errorf("got %q", got)
	}
}

func TestSort_PreferredVariableFirst(t *testing.T) {
	expr := gopoly.Expression{term(1, 1, v('y', 2)), term(1, 1, v('x', 2))}
	gopoly.Sort(expr)
	if got := gopoly.Format(expr); got != "x^2 + y^2 = 0" {
		t.Errorf("got %q", got)
	}

	expr = gopoly.Expression{term(1, 1, v('x', 2)), term(1, 1, v('y', 2))}
	gopoly.DegreeSorter{Preferred: 'y'}.Sort(expr)
	if got := gopoly.Format(expr); got != "y^2 + x^2 = 0" {
		t.Errorf("preferred y: got %q", got)
	}
}

func TestSort_StableForUncoveredTies(t *testing.T) {
	// Multi-variable terms of equal degree keep their input order.
	expr := gopoly.Expression{
		term(1, 1, v('y', 1), v('z', 1)),
		term(2, 1, v('x', 1), v('y', 1)),
		term(3, 1, v('z', 1)),
		term(4, 1, v('y', 1)),
	}
	gopoly.Sort(expr)
	if got := gopoly.Format(expr); got != "yz + 2xy + 3z + 4y = 0" {
		t.Errorf("got %q", got)
	}
}

// ============================================================
// Format tests
// ============================================================

func TestFormat(t *testing.T) {
	cases := []struct {
		expr gopoly.Expression
		want string
	}{
		{nil, "0 = 0"},
		{gopoly.Expression{term(1, 1, v('x', 1))}, "x = 0"},
		{gopoly.Expression{term(-1, 1, v('x', 1))}, "- x = 0"},
		{gopoly.Expression{term(3, 1, v('x', 2)), term(-2, 1, v('y', 1))}, "3x^2 - 2y = 0"},
		{gopoly.Expression{term(-127, 10, v('x', 2), v('y', 1))}, "- 12.7x^2y = 0"},
		{gopoly.Expression{term(10, 1)}, "10 = 0"},
		{gopoly.Expression{term(1, 1)}, "1 = 0"},
		{gopoly.Expression{term(-1, 1)}, "- 1 = 0"},
		{gopoly.Expression{term(1, 3000000000000000)}, "0.000000000000000333333333333 = 0"},
	}
	for _, c := range cases {
		if got := gopoly.Format(c.expr); got != c.want {
			t.Errorf("want %q, got %q", c.want, got)
		}
	}
}

func TestFormatLaTeX(t *testing.T) {
	expr := gopoly.Expression{term(3, 1, v('x', 2)), term(-1, 2, v('x', 1), v('y', 3))}
	if got := gopoly.FormatLaTeX(expr); got != "3x^{2} - 0.5xy^{3} = 0" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCoefficient(t *testing.T) {
	cases := []struct {
		r    *big.Rat
		want string
	}{
		{big.NewRat(10, 1), "10"},
		{big.NewRat(21, 2), "10.5"},
		{big.NewRat(100055, 100), "1000.55"},
		{big.NewRat(1, 8), "0.125"},
		{big.NewRat(1, 3), "0.333333333333"},
		{big.NewRat(2, 3), "0.666666666667"},
		{big.NewRat(1, 30), "0.0333333333333"},
		{big.NewRat(-1, 3000000000000000), "-0.000000000000000333333333333"},
		{big.NewRat(7, 3), "2.333333333333"},
	}
	for _, c := range cases {
		if got := gopoly.FormatCoefficient(c.r); got != c.want {
			t.Errorf("FormatCoefficient(%s): want %s, got %s", c.r.RatString(), c.want, got)
		}
	}
}
