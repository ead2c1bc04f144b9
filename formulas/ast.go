package formulas

import "strings"

// Node is one vertex of a formula's syntax tree. The implementations are the
// closed set OperandNode, RangeNode, OperatorNode and FunctionNode; which one
// a token becomes is decided once, at creation.
type Node interface {
	Token() Token
	Value() string
	Children() []Node
	Parent() Node
	Emit(ctx *Context) (string, error)

	base() *baseNode
}

type baseNode struct {
	token    Token
	parent   Node
	children []Node
}

func (n *baseNode) Token() Token     { return n.token }
func (n *baseNode) Value() string    { return n.token.Value }
func (n *baseNode) Children() []Node { return n.children }
func (n *baseNode) Parent() Node     { return n.parent }
func (n *baseNode) base() *baseNode  { return n }

// OperandNode is a literal: number, text, logical or error value.
type OperandNode struct {
	baseNode
}

// RangeNode is a cell or range reference, e.g. A5 or B3:C20.
type RangeNode struct {
	baseNode
}

type OperatorNode struct {
	baseNode
}

// FunctionNode is a named call. Arity is variadic, so NumArgs is resolved
// during parsing rather than read off the token.
type FunctionNode struct {
	baseNode
	NumArgs int
}

func (n *FunctionNode) name() string {
	return strings.ToLower(strings.TrimSuffix(n.token.Value, "("))
}

func newNode(token Token) (Node, error) {
	switch {
	case token.Type == TokenTypeOperand:
		if token.Subtype == TokenSubTypeRange {
			return &RangeNode{baseNode{token: token}}, nil
		}
		return &OperandNode{baseNode{token: token}}, nil

	case token.IsFuncOpen():
		return &FunctionNode{baseNode: baseNode{token: token}}, nil

	case token.IsOperator():
		return &OperatorNode{baseNode{token: token}}, nil
	}
	return nil, parseErrorf("unknown token type: %v", token)
}

func attach(parent, child Node) {
	child.base().parent = parent
	parent.base().children = append(parent.base().children, child)
}

// buildAST reduces a postfix sequence to a tree. Children are attached in
// source order, so child order on the node is argument order.
func buildAST(rpn []Node) (Node, error) {
	var stack []Node

	for _, node := range rpn {
		switch n := node.(type) {
		case *OperatorNode:
			if n.token.Type == TokenTypeOperatorInfix {
				if len(stack) < 2 {
					return nil, parseErrorf("%q operator missing operand", n.Value())
				}
				right := stack[len(stack)-1]
				left := stack[len(stack)-2]
				stack = stack[:len(stack)-2]
				attach(n, left)
				attach(n, right)
			} else {
				if len(stack) < 1 {
					return nil, parseErrorf("%q operator missing operand", n.Value())
				}
				attach(n, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}

		case *FunctionNode:
			if n.NumArgs > 0 {
				if len(stack) < n.NumArgs {
					return nil, parseErrorf("%q missing arguments", n.name())
				}
				args := stack[len(stack)-n.NumArgs:]
				stack = stack[:len(stack)-n.NumArgs]
				for _, arg := range args {
					attach(n, arg)
				}
			}
		}
		stack = append(stack, node)
	}

	if len(stack) != 1 {
		return nil, parseErrorf("invalid formula: %d nodes left after reduction", len(stack))
	}
	return stack[0], nil
}
