package formulas

import (
	"strings"
	"testing"
)

func rpnValues(t *testing.T, formula string) string {
	rpn, err := parseToRPN(Tokenize(formula))
	if err != nil {
		t.Fatalf("%s: %s", formula, err)
	}
	values := make([]string, len(rpn))
	for i, node := range rpn {
		values[i] = node.Value()
	}
	return strings.Join(values, " ")
}

func TestRPNOrder(t *testing.T) {
	formulasAndRPN := map[string]string{
		"1+2*3":      "1 2 3 * +",
		"1*2+3":      "1 2 * 3 +",
		"(1+2)*3":    "1 2 + 3 *",
		"2^3^4":      "2 3 ^ 4 ^",
		"2*-3":       "2 3 - *",
		"SUM(1,2)+3": "1 2 SUM 3 +",
		"A1 B1":      "A1 B1  ",
	}
	for formula, expected := range formulasAndRPN {
		actual := rpnValues(t, formula)
		if actual != expected {
			t.Errorf("%s: %q != %q", formula, actual, expected)
		}
	}
}

func TestFunctionArity(t *testing.T) {
	formulasAndArity := map[string]int{
		"PI()":          0,
		"SUM(1)":        1,
		"SUM(1,2,3)":    3,
		"IF(1,2,3)":     3,
		"SUM(1,(2+3))":  2,
		"SUM(SUM(1,2))": 1,
	}
	for formula, expected := range formulasAndArity {
		rpn, err := parseToRPN(Tokenize(formula))
		if err != nil {
			t.Fatalf("%s: %s", formula, err)
		}
		f, ok := rpn[len(rpn)-1].(*FunctionNode)
		if !ok {
			t.Fatalf("%s: last node is not a function", formula)
		}
		if f.NumArgs != expected {
			t.Errorf("%s: %d != %d", formula, f.NumArgs, expected)
		}
	}
}

// Arrays can also arrive in token form with compact row separators, the way
// the token model spells them, rather than efp's open/close row markers.
func TestRowSeparatorTokens(t *testing.T) {
	tokens := []Token{
		{"{", TokenTypeArray, TokenSubTypeOpen},
		{"1", TokenTypeOperand, TokenSubTypeNumber},
		{";", TokenTypeSep, TokenSubTypeRow},
		{"2", TokenTypeOperand, TokenSubTypeNumber},
		{"}", TokenTypeArray, TokenSubTypeClose},
	}
	rpn, err := parseToRPN(tokens)
	if err != nil {
		t.Fatal(err)
	}
	root, err := buildAST(rpn)
	if err != nil {
		t.Fatal(err)
	}
	code, err := root.Emit(nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != "[[1], [2]]" {
		t.Errorf("%s != [[1], [2]]", code)
	}
}

func TestParserErrors(t *testing.T) {
	streams := map[string][]Token{
		"unmatched close": {
			{"1", TokenTypeOperand, TokenSubTypeNumber},
			{")", TokenTypeParen, TokenSubTypeClose},
		},
		"unclosed open": {
			{"(", TokenTypeParen, TokenSubTypeOpen},
			{"1", TokenTypeOperand, TokenSubTypeNumber},
		},
		"separator outside brackets": {
			{"1", TokenTypeOperand, TokenSubTypeNumber},
			{",", TokenTypeSep, TokenSubTypeArg},
			{"2", TokenTypeOperand, TokenSubTypeNumber},
		},
	}
	for name, tokens := range streams {
		if _, err := parseToRPN(tokens); err == nil {
			t.Errorf("%s should have errored", name)
		}
	}

	unknown := []Token{
		{"1", TokenTypeOperand, TokenSubTypeNumber},
		{"~", TokenTypeOperatorInfix, ""},
		{"2", TokenTypeOperand, TokenSubTypeNumber},
	}
	_, err := parseToRPN(unknown)
	if err == nil || !strings.Contains(err.Error(), "unknown operator") {
		t.Errorf("unknown operator: %v", err)
	}
}
