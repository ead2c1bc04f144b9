package formulas

import "fmt"

// ParseError is the single error kind for a failed compile. Invalid formulas
// and internal invariant failures both surface as a ParseError; neither is
// recoverable.
type ParseError struct {
	Message string
}

func (e ParseError) Error() string {
	return e.Message
}

func parseErrorf(format string, args ...interface{}) ParseError {
	return ParseError{fmt.Sprintf(format, args...)}
}

// DegreeResolver reports where an array formula's current cell falls in the
// cell span of a regression call: the fit degree and the 1-based coefficient
// index the cell selects.
type DegreeResolver interface {
	ResolveDegree(cell string) (degree, coef int)
}

// Context supplies the surroundings of a compile: the sheet that qualifies
// bare references, the cell being compiled, and the degree resolver for
// regression calls. A nil Context compiles the formula standalone.
type Context struct {
	Sheet   string
	Cell    string
	Degrees DegreeResolver
}

// Parse compiles a formula string to the root of its syntax tree.
func Parse(formula string) (Node, error) {
	if err := checkBrackets(formula); err != nil {
		return nil, err
	}
	rpn, err := parseToRPN(Tokenize(formula))
	if err != nil {
		return nil, err
	}
	return buildAST(rpn)
}

// Compile translates a formula string into runtime expression text.
func Compile(formula string, ctx *Context) (string, error) {
	root, err := Parse(formula)
	if err != nil {
		return "", err
	}
	return root.Emit(ctx)
}

// Dependencies lists the cell and range references of a tree in source
// order, deduplicated. Consumers use it to seed recalculation graphs.
func Dependencies(root Node) []string {
	var deps []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		if r, ok := n.(*RangeNode); ok && !seen[r.Value()] {
			seen[r.Value()] = true
			deps = append(deps, r.Value())
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(root)
	return deps
}

// checkBrackets rejects formulas with unbalanced parens or array braces
// before tokenization; the base classifier silently closes open brackets at
// end of input, which would otherwise mask the mismatch. Brackets inside
// quoted text and quoted sheet names don't count.
func checkBrackets(formula string) error {
	var stack []byte
	inText, inName := false, false
	for i := 0; i < len(formula); i++ {
		c := formula[i]
		switch {
		case inText:
			inText = c != '"'
		case inName:
			inName = c != '\''
		case c == '"':
			inText = true
		case c == '\'':
			inName = true
		case c == '(' || c == '{':
			stack = append(stack, c)
		case c == ')' || c == '}':
			open := byte('(')
			if c == '}' {
				open = '{'
			}
			if len(stack) == 0 || stack[len(stack)-1] != open {
				return parseErrorf("mismatched or misplaced parentheses")
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return parseErrorf("mismatched or misplaced parentheses")
	}
	return nil
}
