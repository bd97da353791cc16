package gopoly

import (
	"math/big"
	"regexp"
	"strings"
)

// ============================================================
// Operand parsing
// ============================================================

var coefficientPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?`)

// ParseTerm parses an operand token of the form [coefficient][variable[^exponent]]*,
// e.g. "12.7x^2y". Exponents are a single digit; variables a single letter.
func ParseTerm(token string) (Term, error) {
	if token == "" {
		return Term{}, newError("simplify", ErrInvalidOperand, -1, "empty operand")
	}

	coeff := new(big.Rat)
	if lit := coefficientPattern.FindString(token); lit != "" {
		if _, ok := coeff.SetString(lit); !ok {
			return Term{}, newError("simplify", ErrInvalidOperand, -1, "bad coefficient %q", lit)
		}
	} else if isLetter(token[0]) {
		coeff.SetInt64(1)
	} else {
		return Term{}, newError("simplify", ErrInvalidOperand, -1, "%q has no coefficient or variable", token)
	}

	term := Term{Coefficient: coeff}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if !isLetter(c) {
			continue
		}
		v := Var{Name: c, Exp: 1}
		if i+2 < len(token) && token[i+1] == '^' && isDigit(token[i+2]) {
			v.Exp = int(token[i+2] - '0')
			i += 2
		}
		if _, dup := term.Exp(c); dup {
			return Term{}, newError("simplify", ErrInvalidOperand, -1, "variable %q repeated in %q", c, token)
		}
		term.Vars = append(term.Vars, v)
	}
	return term, nil
}

// ============================================================
// Postfix evaluation
// ============================================================

// FieldsTokenizer splits postfix text on whitespace.
type FieldsTokenizer struct{}

func (FieldsTokenizer) Tokenize(postfix string) []string { return strings.Fields(postfix) }

// StackEvaluator reduces postfix text with a stack of partial expressions, so an
// operator can combine two whole sub-expressions.
type StackEvaluator struct {
	Tokenizer Tokenizer // defaults to FieldsTokenizer
}

func (e StackEvaluator) Simplify(postfix string) (Expression, error) {
	tokenizer := e.Tokenizer
	if tokenizer == nil {
		tokenizer = FieldsTokenizer{}
	}

	var stack []Expression
	for _, tok := range tokenizer.Tokenize(postfix) {
		if !isOperator(tok) {
			term, err := ParseTerm(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, Expression{term})
			continue
		}

		if tok != "+" && tok != "-" {
			return nil, newError("simplify", ErrUnsupportedOperator, -1,
				"%q between sub-expressions is not supported", tok)
		}
		if len(stack) < 2 {
			return nil, newError("simplify", ErrInsufficientOperands, -1,
				"%q needs 2 operands, have %d", tok, len(stack))
		}
		right, left := stack[len(stack)-1], stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, combine(tok == "-", left, right))
	}

	switch len(stack) {
	case 0:
		return Expression{}, nil
	case 1:
		return dropZeros(stack[0]), nil
	}
	return nil, newError("simplify", ErrUnbalancedExpression, -1,
		"%d expressions left without an operator", len(stack))
}

// combine folds right into left: like terms merge coefficients, the rest are
// appended (negated when subtracting). Zero coefficients are dropped.
func combine(subtract bool, left, right Expression) Expression {
	for _, t2 := range right {
		merged := false
		for i := range left {
			if !left[i].SameVars(t2) {
				continue
			}
			if subtract {
				left[i].Coefficient = new(big.Rat).Sub(left[i].Coefficient, t2.Coefficient)
			} else {
				left[i].Coefficient = new(big.Rat).Add(left[i].Coefficient, t2.Coefficient)
			}
			merged = true
			break
		}
		if !merged {
			t := t2.Clone()
			if subtract {
				t.Coefficient.Neg(t.Coefficient)
			}
			left = append(left, t)
		}
	}
	return dropZeros(left)
}

func dropZeros(expr Expression) Expression {
	out := expr[:0]
	for _, t := range expr {
		if !t.IsZero() {
			out = append(out, t)
		}
	}
	return out
}

// Simplify evaluates postfix text with the default evaluator.
func Simplify(postfix string) (Expression, error) { return StackEvaluator{}.Simplify(postfix) }
