package gopoly

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
)

// ============================================================
// JSON Serialization
// ============================================================

type jsonVar struct {
	Name string `json:"name"`
	Exp  int    `json:"exp"`
}

type jsonTerm struct {
	Coefficient string    `json:"coefficient"`
	Vars        []jsonVar `json:"vars,omitempty"`
}

type jsonExpression struct {
	Terms []jsonTerm `json:"terms"`
}

func coefficientString(r *big.Rat) string {
	if _, ok := decimalPlaces(r.Denom()); ok {
		s := FormatCoefficient(new(big.Rat).Abs(r))
		if r.Sign() < 0 {
			return "-" + s
		}
		return s
	}
	return r.RatString()
}

// ToJSON encodes expr as {"terms":[{"coefficient":"-3.5","vars":[{"name":"x","exp":2}]}]}.
// Coefficients are strings so they stay exact.
func ToJSON(expr Expression) (string, error) {
	b, err := json.Marshal(toJSONExpression(expr))
	return string(b), err
}

func toJSONExpression(expr Expression) jsonExpression {
	out := jsonExpression{Terms: make([]jsonTerm, 0, len(expr))}
	for _, t := range expr {
		jt := jsonTerm{Coefficient: "0"}
		if t.Coefficient != nil {
			jt.Coefficient = coefficientString(t.Coefficient)
		}
		for _, v := range t.Vars {
			jt.Vars = append(jt.Vars, jsonVar{Name: string(v.Name), Exp: v.Exp})
		}
		out.Terms = append(out.Terms, jt)
	}
	return out
}

// FromJSON decodes the format written by ToJSON. Coefficients may be decimals
// ("2.5") or fractions ("5/2").
func FromJSON(data []byte) (Expression, error) {
	var je jsonExpression
	if err := json.Unmarshal(data, &je); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	expr := make(Expression, 0, len(je.Terms))
	for i, jt := range je.Terms {
		coeff, ok := new(big.Rat).SetString(jt.Coefficient)
		if !ok {
			return nil, fmt.Errorf("term %d: invalid coefficient %q", i, jt.Coefficient)
		}
		t := Term{Coefficient: coeff}
		for _, jv := range jt.Vars {
			if len(jv.Name) != 1 || !isLetter(jv.Name[0]) {
				return nil, fmt.Errorf("term %d: variable name %q must be one letter", i, jv.Name)
			}
			if jv.Exp < 0 {
				return nil, fmt.Errorf("term %d: negative exponent for %s", i, jv.Name)
			}
			if _, dup := t.Exp(jv.Name[0]); dup {
				return nil, fmt.Errorf("term %d: variable %s repeated", i, jv.Name)
			}
			t.Vars = append(t.Vars, Var{Name: jv.Name[0], Exp: jv.Exp})
		}
		expr = append(expr, t)
	}
	return expr, nil
}

// ============================================================
// Inspection
// ============================================================

// Degree returns the highest exponent of the named variable across expr.
func Degree(expr Expression, name byte) int {
	max := 0
	for _, t := range expr {
		if e, ok := t.Exp(name); ok && e > max {
			max = e
		}
	}
	return max
}

// TotalDegree returns the largest sum of exponents of any single term.
func TotalDegree(expr Expression) int {
	max := 0
	for _, t := range expr {
		sum := 0
		for _, v := range t.Vars {
			sum += v.Exp
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

// Variables returns the variable names used in expr, sorted.
func Variables(expr Expression) []string {
	seen := map[byte]struct{}{}
	for _, t := range expr {
		for _, v := range t.Vars {
			seen[v.Name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}
