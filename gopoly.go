// Package gopoly rewrites polynomial equations into a canonical simplified form.
//
// An input such as
//
//	x^2 - (3xy + y^2) = -(x + y - ((x^2 - 3x^2 + y^2) - xy))
//
// is reduced to
//
//	3x^2 - 2y^2 - 2xy + x + y = 0
//
// Design goals:
//   - Strictly sequential pipeline: sanitize, convert to postfix, combine like terms, sort, format
//   - Exact rational coefficients (math/big.Rat), so decimal literals never drift
//   - Deterministic output for a given input
//   - No shared state between calls; a Pipeline is safe for concurrent use
//   - Every stage is an interface, so alternative strategies can be swapped in
package gopoly

import (
	"math/big"
	"strings"
)

// ============================================================
// Terms
// ============================================================

// Var is one variable of a term together with its exponent.
type Var struct {
	Name byte
	Exp  int
}

// Term is a coefficient times a product of variables. Vars keeps the order in
// which the variables were written; equality of variable sets ignores it.
type Term struct {
	Coefficient *big.Rat
	Vars        []Var
}

// NewTerm builds a term from a coefficient and its variables.
func NewTerm(coeff *big.Rat, vars ...Var) Term {
	return Term{Coefficient: new(big.Rat).Set(coeff), Vars: append([]Var(nil), vars...)}
}

func (t Term) IsZero() bool { return t.Coefficient == nil || t.Coefficient.Sign() == 0 }

// Exp returns the exponent of the named variable.
func (t Term) Exp(name byte) (int, bool) {
	for _, v := range t.Vars {
		if v.Name == name {
			return v.Exp, true
		}
	}
	return 0, false
}

// SameVars reports whether t and o are like terms: the same variable names with
// the same exponents, in any order.
func (t Term) SameVars(o Term) bool {
	if len(t.Vars) != len(o.Vars) {
		return false
	}
	for _, v := range o.Vars {
		exp, ok := t.Exp(v.Name)
		if !ok || exp != v.Exp {
			return false
		}
	}
	return true
}

// MaxExp is the largest exponent among the term's variables, 0 for a constant.
func (t Term) MaxExp() int {
	max := 0
	for _, v := range t.Vars {
		if v.Exp > max {
			max = v.Exp
		}
	}
	return max
}

// Clone returns a deep copy of t.
func (t Term) Clone() Term {
	c := Term{Vars: append([]Var(nil), t.Vars...)}
	if t.Coefficient != nil {
		c.Coefficient = new(big.Rat).Set(t.Coefficient)
	} else {
		c.Coefficient = new(big.Rat)
	}
	return c
}

// String renders the term without the equation suffix, e.g. "-3.5xy^2".
func (t Term) String() string {
	frag := termFragment(t, false)
	return strings.TrimPrefix(frag, "+")
}

// ============================================================
// Expressions
// ============================================================

// Expression is a sum of terms. Order is only meaningful after sorting.
type Expression []Term

// Clone returns a deep copy of e.
func (e Expression) Clone() Expression {
	out := make(Expression, len(e))
	for i, t := range e {
		out[i] = t.Clone()
	}
	return out
}

func (e Expression) String() string { return Format(e) }

// ============================================================
// Capabilities
// ============================================================

// Converter turns a sanitized infix string into space-separated postfix tokens.
type Converter interface {
	ToPostfix(sanitized string) (string, error)
}

// Tokenizer splits a postfix string into tokens.
type Tokenizer interface {
	Tokenize(postfix string) []string
}

// Evaluator reduces a postfix string to a combined expression.
type Evaluator interface {
	Simplify(postfix string) (Expression, error)
}

// Sorter orders an expression in place.
type Sorter interface {
	Sort(expr Expression)
}

// Formatter renders an expression as equation text.
type Formatter interface {
	Format(expr Expression) string
}

// ============================================================
// Pipeline
// ============================================================

// Pipeline wires the stages together. The zero value is not usable; build one
// with NewPipeline. A Pipeline holds no per-call state.
type Pipeline struct {
	converter Converter
	evaluator Evaluator
	sorter    Sorter
	formatter Formatter
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

func WithConverter(c Converter) Option { return func(p *Pipeline) { p.converter = c } }
func WithEvaluator(e Evaluator) Option { return func(p *Pipeline) { p.evaluator = e } }
func WithSorter(s Sorter) Option       { return func(p *Pipeline) { p.sorter = s } }
func WithFormatter(f Formatter) Option { return func(p *Pipeline) { p.formatter = f } }

// NewPipeline returns a pipeline using the production stages unless overridden.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		converter: ShuntingYard{},
		evaluator: StackEvaluator{},
		sorter:    DegreeSorter{},
		formatter: EquationFormatter{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result carries every intermediate product of one pipeline run.
type Result struct {
	Input     string
	Sanitized string
	Postfix   string
	Terms     Expression
	Output    string
}

// Run executes all stages and returns the intermediate products.
func (p *Pipeline) Run(input string) (*Result, error) {
	sanitized, err := Sanitize(input)
	if err != nil {
		return nil, err
	}
	postfix, err := p.converter.ToPostfix(sanitized)
	if err != nil {
		return nil, err
	}
	terms, err := p.evaluator.Simplify(postfix)
	if err != nil {
		return nil, err
	}
	p.sorter.Sort(terms)
	return &Result{
		Input:     input,
		Sanitized: sanitized,
		Postfix:   postfix,
		Terms:     terms,
		Output:    p.formatter.Format(terms),
	}, nil
}

// Canonicalize returns the canonical form of input.
func (p *Pipeline) Canonicalize(input string) (string, error) {
	res, err := p.Run(input)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

var defaultPipeline = NewPipeline()

// Canonicalize runs input through the default pipeline.
func Canonicalize(input string) (string, error) { return defaultPipeline.Canonicalize(input) }

// Run runs input through the default pipeline and keeps the intermediate products.
func Run(input string) (*Result, error) { return defaultPipeline.Run(input) }
