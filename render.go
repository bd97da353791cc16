package gopoly

import (
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Sorting
// ============================================================

// DefaultPreferred is the variable a single-variable term is ranked by when
// maximum exponents tie.
const DefaultPreferred byte = 'x'

// DegreeSorter orders terms by descending maximum exponent. Among two
// single-variable terms of equal degree, the one in the preferred variable goes
// first. Every other pair keeps its input order, so this is a partial order
// applied with a stable insertion sort.
type DegreeSorter struct {
	Preferred byte // defaults to DefaultPreferred
}

func (s DegreeSorter) Sort(expr Expression) {
	for i := 1; i < len(expr); i++ {
		for j := i; j > 0 && s.Less(expr[j], expr[j-1]); j-- {
			expr[j], expr[j-1] = expr[j-1], expr[j]
		}
	}
}

// Less reports whether a must be placed before b.
func (s DegreeSorter) Less(a, b Term) bool {
	ma, mb := a.MaxExp(), b.MaxExp()
	if ma != mb {
		return ma > mb
	}
	if len(a.Vars) != 1 || len(b.Vars) != 1 {
		return false
	}
	pref := s.Preferred
	if pref == 0 {
		pref = DefaultPreferred
	}
	return a.Vars[0].Name == pref && b.Vars[0].Name != pref
}

// Sort orders expr in place with the default sorter.
func Sort(expr Expression) { DegreeSorter{}.Sort(expr) }

// ============================================================
// Formatting
// ============================================================

// EquationFormatter renders "<signed terms> = 0".
type EquationFormatter struct {
	LaTeX bool
}

func (f EquationFormatter) Format(expr Expression) string {
	var b strings.Builder
	for _, t := range expr {
		b.WriteString(termFragment(t, f.LaTeX))
	}
	body := strings.TrimPrefix(b.String(), "+")
	body = strings.ReplaceAll(body, "+", " + ")
	body = strings.ReplaceAll(body, "-", " - ")
	body = strings.TrimSpace(body)
	if body == "" {
		body = "0"
	}
	return body + " = 0"
}

// Format renders expr as a canonical equation.
func Format(expr Expression) string { return EquationFormatter{}.Format(expr) }

// FormatLaTeX renders expr with LaTeX exponents, e.g. "3x^{2} - y = 0".
func FormatLaTeX(expr Expression) string { return EquationFormatter{LaTeX: true}.Format(expr) }

// termFragment renders a signed term: "+3x^2y", "-xy", "+10".
func termFragment(t Term, latex bool) string {
	var b strings.Builder
	coeff := t.Coefficient
	if coeff == nil {
		coeff = new(big.Rat)
	}
	if coeff.Sign() >= 0 {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	// A unit coefficient is implied by its variables; a bare constant keeps it.
	abs := new(big.Rat).Abs(coeff)
	if abs.Cmp(big.NewRat(1, 1)) != 0 || len(t.Vars) == 0 {
		b.WriteString(FormatCoefficient(abs))
	}
	for _, v := range t.Vars {
		b.WriteByte(v.Name)
		if v.Exp == 1 {
			continue
		}
		if latex {
			b.WriteString("^{" + strconv.Itoa(v.Exp) + "}")
		} else {
			b.WriteString("^" + strconv.Itoa(v.Exp))
		}
	}
	return b.String()
}

// FormatCoefficient renders r as the shortest exact decimal. Values without a
// terminating decimal expansion keep 12 digits after their leading zeros, so a
// non-zero coefficient never renders as 0.
func FormatCoefficient(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if places, ok := decimalPlaces(r.Denom()); ok {
		return r.FloatString(places)
	}
	s := strings.TrimRight(r.FloatString(12+leadingZeros(r)), "0")
	return strings.TrimSuffix(s, ".")
}

// leadingZeros counts the zeros between the decimal point and the first
// significant digit of |r|.
func leadingZeros(r *big.Rat) int {
	scaled := new(big.Rat).Abs(r)
	if scaled.Sign() == 0 {
		return 0
	}
	one, ten := big.NewRat(1, 1), big.NewRat(10, 1)
	n := 0
	for scaled.Mul(scaled, ten).Cmp(one) < 0 {
		n++
	}
	return n
}

// decimalPlaces returns how many decimal places represent 1/d exactly, which
// is possible only when d = 2^a * 5^b.
func decimalPlaces(d *big.Int) (int, bool) {
	n := new(big.Int).Set(d)
	two, five := big.NewInt(2), big.NewInt(5)
	mod := new(big.Int)
	var twos, fives int
	for {
		q, m := new(big.Int).QuoRem(n, two, mod)
		if m.Sign() != 0 {
			break
		}
		n, twos = q, twos+1
	}
	for {
		q, m := new(big.Int).QuoRem(n, five, mod)
		if m.Sign() != 0 {
			break
		}
		n, fives = q, fives+1
	}
	if n.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	if twos > fives {
		return twos, true
	}
	return fives, true
}
