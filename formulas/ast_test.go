package formulas

import (
	"strings"
	"testing"
)

func TestChildOrder(t *testing.T) {
	root, err := Parse("1-2")
	if err != nil {
		t.Fatal(err)
	}
	op, ok := root.(*OperatorNode)
	if !ok {
		t.Fatalf("root is %T, not an operator", root)
	}
	if op.Parent() != nil {
		t.Error("root has a parent")
	}
	children := op.Children()
	if len(children) != 2 || children[0].Value() != "1" || children[1].Value() != "2" {
		t.Errorf("wrong children: %v", children)
	}
	for _, child := range children {
		if child.Parent() != root {
			t.Errorf("%s is not wired to its parent", child.Value())
		}
	}
}

func TestFunctionChildOrder(t *testing.T) {
	root, err := Parse("IF(A1,2,3)")
	if err != nil {
		t.Fatal(err)
	}
	f, ok := root.(*FunctionNode)
	if !ok {
		t.Fatalf("root is %T, not a function", root)
	}
	if f.NumArgs != 3 {
		t.Errorf("NumArgs: %d != 3", f.NumArgs)
	}
	values := make([]string, len(f.Children()))
	for i, child := range f.Children() {
		values[i] = child.Value()
	}
	if strings.Join(values, " ") != "A1 2 3" {
		t.Errorf("wrong argument order: %v", values)
	}
	if _, ok := f.Children()[0].(*RangeNode); !ok {
		t.Errorf("A1 is %T, not a range", f.Children()[0])
	}
}

func TestMissingOperand(t *testing.T) {
	infix, err := newNode(Token{"+", TokenTypeOperatorInfix, ""})
	if err != nil {
		t.Fatal(err)
	}
	operand, err := newNode(Token{"1", TokenTypeOperand, TokenSubTypeNumber})
	if err != nil {
		t.Fatal(err)
	}
	_, err = buildAST([]Node{operand, infix})
	if err == nil || !strings.Contains(err.Error(), "operator missing operand") {
		t.Errorf("infix: %v", err)
	}

	prefix, err := newNode(Token{"-", TokenTypeOperatorPrefix, ""})
	if err != nil {
		t.Fatal(err)
	}
	_, err = buildAST([]Node{prefix})
	if err == nil || !strings.Contains(err.Error(), "operator missing operand") {
		t.Errorf("prefix: %v", err)
	}
}

func TestLeftoverNodes(t *testing.T) {
	a, _ := newNode(Token{"1", TokenTypeOperand, TokenSubTypeNumber})
	b, _ := newNode(Token{"2", TokenTypeOperand, TokenSubTypeNumber})
	_, err := buildAST([]Node{a, b})
	if err == nil {
		t.Error("two loose operands should not reduce to a tree")
	}
}

func TestUnknownToken(t *testing.T) {
	_, err := newNode(Token{"(", TokenTypeParen, TokenSubTypeOpen})
	if err == nil || !strings.Contains(err.Error(), "unknown token type") {
		t.Errorf("%v", err)
	}
}
