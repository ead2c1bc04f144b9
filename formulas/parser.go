package formulas

type operator struct {
	precedence    int
	associativity string
}

// Excel operator precedence, low to high. Unary minus gets its own entry so
// it can bind tighter than binary minus.
var operators = map[string]operator{
	":":  {8, "left"},
	" ":  {8, "left"}, // range intersection
	",":  {8, "left"},
	"u-": {7, "left"}, // unary negation
	"%":  {6, "left"},
	"^":  {5, "left"},
	"*":  {4, "left"},
	"/":  {4, "left"},
	"+":  {3, "left"},
	"-":  {3, "left"},
	"&":  {2, "left"},
	"=":  {1, "left"},
	"<":  {1, "left"},
	">":  {1, "left"},
	"<=": {1, "left"},
	">=": {1, "left"},
	"<>": {1, "left"},
}

// yieldsTo reports whether o must leave the stack before other is pushed.
func (o operator) yieldsTo(other operator) bool {
	return o.precedence < other.precedence ||
		o.associativity == "left" && o.precedence == other.precedence
}

func resolveOperator(t Token) (operator, error) {
	key := t.Value
	if t.Type == TokenTypeOperatorPrefix && t.Value == "-" {
		key = "u-"
	}
	op, ok := operators[key]
	if !ok {
		return operator{}, parseErrorf("unknown operator: %q", t.Value)
	}
	return op, nil
}

// canonicalize rewrites the token stream so the shunting yard only ever sees
// generic parens as brackets: function and array opens keep their name token
// and gain a paren, closes become parens, and a row separator becomes
// close-row, separator, open-row.
func canonicalize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+4)
	openParen := Token{"(", TokenTypeParen, TokenSubTypeOpen}
	closeParen := Token{")", TokenTypeParen, TokenSubTypeClose}

	for _, token := range tokens {
		switch {
		case token.Matches(TokenTypeFunction, TokenSubTypeOpen):
			out = append(out, token, openParen)

		case token.Matches(TokenTypeFunction, TokenSubTypeClose):
			out = append(out, closeParen)

		case token.Matches(TokenTypeArray, TokenSubTypeOpen):
			out = append(out, token, openParen,
				Token{"", TokenTypeArrayRow, TokenSubTypeOpen}, openParen)

		case token.Matches(TokenTypeArray, TokenSubTypeClose):
			out = append(out, closeParen, closeParen)

		case token.Matches(TokenTypeSep, TokenSubTypeRow):
			out = append(out, closeParen,
				Token{",", TokenTypeSep, TokenSubTypeArg},
				Token{"", TokenTypeArrayRow, TokenSubTypeOpen}, openParen)

		case token.Matches(TokenTypeParen, TokenSubTypeOpen):
			out = append(out, openParen)

		case token.Matches(TokenTypeParen, TokenSubTypeClose):
			out = append(out, closeParen)

		default:
			out = append(out, token)
		}
	}
	return out
}

// parseToRPN converts a token sequence to postfix order. The standard
// shunting yard is extended with a were-values flag and an argument count per
// bracket level, so each function node comes out knowing its arity.
func parseToRPN(tokens []Token) ([]Node, error) {
	var output []Node
	var stack []Token
	var wereValues []bool
	var argCount []int

	emit := func(t Token) error {
		node, err := newNode(t)
		if err != nil {
			return err
		}
		output = append(output, node)
		return nil
	}

	for _, token := range canonicalize(tokens) {
		switch {
		case token.Type == TokenTypeOperand:
			if err := emit(token); err != nil {
				return nil, err
			}
			if len(wereValues) > 0 {
				wereValues[len(wereValues)-1] = true
			}

		case token.Type != TokenTypeParen && token.Subtype == TokenSubTypeOpen:
			if token.Type == TokenTypeArray || token.Type == TokenTypeArrayRow {
				// relabel so the node dispatches by type name
				token = Token{token.Type, token.Type, token.Subtype}
			}
			stack = append(stack, token)
			argCount = append(argCount, 0)
			if len(wereValues) > 0 {
				wereValues[len(wereValues)-1] = true
			}
			wereValues = append(wereValues, false)

		case token.Type == TokenTypeSep:
			for len(stack) > 0 && stack[len(stack)-1].Subtype != TokenSubTypeOpen {
				if err := emit(stack[len(stack)-1]); err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
			}
			if len(wereValues) == 0 {
				return nil, parseErrorf("mismatched or misplaced parentheses")
			}
			if wereValues[len(wereValues)-1] {
				argCount[len(argCount)-1]++
			}
			wereValues[len(wereValues)-1] = false

		case token.IsOperator():
			o1, err := resolveOperator(token)
			if err != nil {
				return nil, err
			}
			for len(stack) > 0 && stack[len(stack)-1].IsOperator() {
				o2, err := resolveOperator(stack[len(stack)-1])
				if err != nil {
					return nil, err
				}
				if !o1.yieldsTo(o2) {
					break
				}
				if err := emit(stack[len(stack)-1]); err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, token)

		case token.Subtype == TokenSubTypeOpen:
			stack = append(stack, token)

		case token.Subtype == TokenSubTypeClose:
			for len(stack) > 0 && stack[len(stack)-1].Subtype != TokenSubTypeOpen {
				if err := emit(stack[len(stack)-1]); err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, parseErrorf("mismatched or misplaced parentheses")
			}
			stack = stack[:len(stack)-1]

			if len(stack) > 0 && stack[len(stack)-1].IsFuncOpen() {
				node, err := newNode(stack[len(stack)-1])
				if err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]

				f := node.(*FunctionNode)
				f.NumArgs = argCount[len(argCount)-1]
				if wereValues[len(wereValues)-1] {
					f.NumArgs++
				}
				argCount = argCount[:len(argCount)-1]
				wereValues = wereValues[:len(wereValues)-1]
				output = append(output, f)
			}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Subtype == TokenSubTypeOpen || top.Subtype == TokenSubTypeClose {
			return nil, parseErrorf("mismatched or misplaced parentheses")
		}
		if err := emit(top); err != nil {
			return nil, err
		}
		stack = stack[:len(stack)-1]
	}

	return output, nil
}
