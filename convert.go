package gopoly

import (
	"strings"
	"unicode/utf8"
)

// ============================================================
// Sanitizer
// ============================================================

// Sanitize trims raw, turns a leading unary minus into a subtraction from zero
// and folds an equation "l = r" into the single expression "l - (r)".
func Sanitize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if s[0] == '-' {
		s = "0" + s
	}

	switch strings.Count(s, "=") {
	case 0:
		return s, nil
	case 1:
	default:
		return "", newError("sanitize", ErrMalformedEquation, strings.LastIndex(s, "="),
			"expected at most one '=', found %d", strings.Count(s, "="))
	}

	eq := strings.Index(s, "=")
	left, right := s[:eq], strings.TrimSpace(s[eq+1:])
	if strings.TrimSpace(left) == "" {
		return "", newError("sanitize", ErrMalformedEquation, eq, "missing left-hand side")
	}
	if right == "" {
		return "", newError("sanitize", ErrMalformedEquation, eq, "missing right-hand side")
	}
	if right[0] == '-' {
		right = "0" + right
	}
	return left + " - (" + right + ")", nil
}

// ============================================================
// Tokens
// ============================================================

type TokenKind int

const (
	Operand TokenKind = iota
	Operator
	OpenParen
	CloseParen
)

func (k TokenKind) String() string {
	switch k {
	case Operand:
		return "operand"
	case Operator:
		return "operator"
	case OpenParen:
		return "open-paren"
	case CloseParen:
		return "close-paren"
	}
	return "unknown"
}

// Token is a classified fragment of a sanitized expression.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

type associativity int

const (
	leftAssoc associativity = iota
	rightAssoc
)

type operatorInfo struct {
	precedence int
	assoc      associativity
}

var operators = map[string]operatorInfo{
	"+": {1, leftAssoc},
	"-": {1, leftAssoc},
	"*": {2, leftAssoc},
	"/": {2, leftAssoc},
	"^": {3, rightAssoc},
}

func isOperator(s string) bool { _, ok := operators[s]; return ok }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

// scanner reads tokens from a sanitized string, one character at a time.
type scanner struct {
	src string
	pos int
}

// next returns the next token; ok is false at end of input.
func (sc *scanner) next() (tok Token, ok bool, err error) {
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		start := sc.pos
		switch {
		case isLetter(c) || isDigit(c):
			for sc.pos < len(sc.src) {
				n := sc.src[sc.pos]
				if !isLetter(n) && !isDigit(n) && n != '.' && n != '^' {
					break
				}
				sc.pos++
			}
			return Token{Kind: Operand, Text: sc.src[start:sc.pos], Pos: start}, true, nil
		case c == '+' || c == '-' || c == '*' || c == '/':
			sc.pos++
			return Token{Kind: Operator, Text: string(c), Pos: start}, true, nil
		case c == '(':
			sc.pos++
			return Token{Kind: OpenParen, Text: "(", Pos: start}, true, nil
		case c == ')':
			sc.pos++
			return Token{Kind: CloseParen, Text: ")", Pos: start}, true, nil
		case c == ' ':
			sc.pos++
		default:
			r, _ := utf8.DecodeRuneInString(sc.src[start:])
			return Token{}, false, newError("postfix", ErrInvalidCharacter, start, "%q", r)
		}
	}
	return Token{}, false, nil
}

// Scan splits a sanitized expression into tokens.
func Scan(sanitized string) ([]Token, error) {
	sc := &scanner{src: sanitized}
	var tokens []Token
	for {
		tok, ok, err := sc.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// ============================================================
// Infix to postfix (shunting-yard)
// ============================================================

// ShuntingYard converts infix to postfix with Dijkstra's shunting-yard
// algorithm. The output queue and operator stack live for one call only.
type ShuntingYard struct{}

func (ShuntingYard) ToPostfix(sanitized string) (string, error) {
	if strings.TrimSpace(sanitized) == "" {
		return "", nil
	}

	sc := &scanner{src: sanitized}
	var (
		output []string
		stack  []Token
		prev   = TokenKind(-1)
	)
	pop := func() Token {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for {
		tok, ok, err := sc.next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		switch tok.Kind {
		case Operand:
			output = append(output, tok.Text)
		case Operator:
			op := operators[tok.Text]
			for len(stack) > 0 && stack[len(stack)-1].Kind == Operator {
				top := operators[stack[len(stack)-1].Text]
				if (op.assoc == leftAssoc && op.precedence <= top.precedence) ||
					(op.assoc == rightAssoc && op.precedence < top.precedence) {
					output = append(output, pop().Text)
					continue
				}
				break
			}
			stack = append(stack, tok)
		case OpenParen:
			stack = append(stack, tok)
		case CloseParen:
			if prev == OpenParen {
				return "", newError("postfix", ErrInvalidOperand, tok.Pos, "empty parentheses")
			}
			for {
				if len(stack) == 0 {
					return "", newError("postfix", ErrMismatchedParenthesis, tok.Pos, "unexpected ')'")
				}
				top := pop()
				if top.Kind == OpenParen {
					break
				}
				output = append(output, top.Text)
			}
		}
		prev = tok.Kind
	}

	for len(stack) > 0 {
		top := pop()
		if top.Kind == OpenParen || top.Kind == CloseParen {
			return "", newError("postfix", ErrMismatchedParenthesis, top.Pos, "unclosed '('")
		}
		output = append(output, top.Text)
	}
	return strings.Join(output, " "), nil
}

// ToPostfix converts a sanitized infix expression to postfix.
func ToPostfix(sanitized string) (string, error) { return ShuntingYard{}.ToPostfix(sanitized) }
