package formulas

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
)

// opMap converts formula operators to their runtime equivalents.
var opMap = map[string]string{
	"^": "**",
	"=": "==",
	"&": "+",
	" ": "+", // range intersection
}

// funcMap renames functions whose name would collide with a runtime builtin.
// A function missing here is emitted under its own name; the runtime is
// expected to provide it.
var funcMap = map[string]string{
	"ln":      "xlog",
	"min":     "xmin",
	"max":     "xmax",
	"sum":     "xsum",
	"gammaln": "lgamma",
	"round":   "xround",
}

// Renames returns a copy of the function rename table.
func Renames() map[string]string {
	return maps.Clone(funcMap)
}

func (n *OperandNode) Emit(ctx *Context) (string, error) {
	switch n.token.Subtype {
	case TokenSubTypeLogical:
		if strings.EqualFold(n.Value(), "true") {
			return "True", nil
		}
		return "False", nil
	case TokenSubTypeText, TokenSubTypeError:
		return quoteLiteral(n.Value()), nil
	default:
		return n.Value(), nil
	}
}

// quoteLiteral rewraps a text or error literal for the runtime. The
// classifier hands text values over unquoted; values still carrying formula
// quoting are unwrapped first, with doubled quotes collapsed.
func quoteLiteral(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = strings.ReplaceAll(v[1:len(v)-1], `""`, `"`)
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

func (n *RangeNode) Emit(ctx *Context) (string, error) {
	rng := strings.ReplaceAll(n.Value(), "$", "")
	sheet := ""
	if ctx != nil && ctx.Sheet != "" {
		sheet = ctx.Sheet + "!"
	}
	if IsRange(rng) {
		sh, _, _, err := SplitRange(rng)
		if err != nil {
			return "", err
		}
		if sh != "" {
			return `lookup_range("` + rng + `")`, nil
		}
		return `lookup_range("` + sheet + rng + `")`, nil
	}
	sh, _, _, err := SplitAddress(rng)
	if err != nil {
		return "", err
	}
	if sh != "" {
		return `lookup_cell("` + rng + `")`, nil
	}
	return `lookup_cell("` + sheet + rng + `")`, nil
}

func (n *OperatorNode) Emit(ctx *Context) (string, error) {
	args := n.Children()
	op := n.Value()
	if mapped, ok := opMap[op]; ok {
		op = mapped
	}

	if n.token.Type == TokenTypeOperatorPrefix {
		operand, err := args[0].Emit(ctx)
		if err != nil {
			return "", err
		}
		return n.Value() + operand, nil
	}

	parent := n.Parent()

	// don't render the ^{1,2,..} part of an array-spanning linest; the
	// exponent selects an output there, it is not a real power
	if op == "**" {
		if f, ok := parent.(*FunctionNode); ok && f.name() == "linest" {
			return args[0].Emit(ctx)
		}
	}

	var ss string
	switch {
	case n.token.Type == TokenTypeOperatorPostfix:
		operand, err := args[0].Emit(ctx)
		if err != nil {
			return "", err
		}
		ss = operand + " / 100"

	case strings.HasPrefix(op, "<"):
		aa, err := n.guardBlank(args[0], ctx)
		if err != nil {
			return "", err
		}
		bb, err := args[1].Emit(ctx)
		if err != nil {
			return "", err
		}
		ss = aa + " " + op + " " + bb

	case strings.HasPrefix(op, ">"):
		aa, err := args[0].Emit(ctx)
		if err != nil {
			return "", err
		}
		bb, err := n.guardBlank(args[1], ctx)
		if err != nil {
			return "", err
		}
		ss = aa + " " + op + " " + bb

	default:
		aa, err := args[0].Emit(ctx)
		if err != nil {
			return "", err
		}
		bb, err := args[1].Emit(ctx)
		if err != nil {
			return "", err
		}
		if op != "," {
			op = " " + op
		}
		ss = aa + op + " " + bb
	}

	// avoid needless parentheses
	if parent != nil {
		if _, ok := parent.(*FunctionNode); !ok {
			ss = "(" + ss + ")"
		}
	}
	return ss, nil
}

// guardBlank emits arg so that an empty cell compares as zero. Number
// literals can't be blank and are emitted as-is.
func (n *OperatorNode) guardBlank(arg Node, ctx *Context) (string, error) {
	aa, err := arg.Emit(ctx)
	if err != nil {
		return "", err
	}
	if !arg.Token().Matches(TokenTypeOperand, TokenSubTypeNumber) {
		aa = "(" + aa + " if " + aa + " is not None else 0)"
	}
	return aa, nil
}

func (n *FunctionNode) Emit(ctx *Context) (string, error) {
	switch name := n.name(); name {
	case "atan2":
		return n.emitAtan2(ctx)
	case "pi":
		// constant, no parens
		return "pi", nil
	case "if":
		return n.emitIf(ctx)
	case "array":
		return n.emitArray(ctx)
	case "arrayrow":
		// bare list, the enclosing array supplies the brackets
		return n.commaJoin(ctx, "%s")
	case "linest", "linestmario":
		return n.emitRegression(ctx)
	case "and":
		args, err := n.commaJoin(ctx, "%s")
		if err != nil {
			return "", err
		}
		return "all([" + args + "])", nil
	case "or":
		args, err := n.commaJoin(ctx, "%s")
		if err != nil {
			return "", err
		}
		return "any([" + args + "])", nil
	default:
		args, err := n.commaJoin(ctx, "%s")
		if err != nil {
			return "", err
		}
		if mapped, ok := funcMap[name]; ok {
			name = mapped
		}
		return name + "(" + args + ")", nil
	}
}

func (n *FunctionNode) commaJoin(ctx *Context, format string) (string, error) {
	parts := make([]string, 0, len(n.children))
	for _, child := range n.children {
		code, err := child.Emit(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf(format, code))
	}
	return strings.Join(parts, ", "), nil
}

func (n *FunctionNode) emitAtan2(ctx *Context) (string, error) {
	if len(n.children) != 2 {
		return "", parseErrorf("ATAN2 with %d arguments not supported", len(n.children))
	}
	// the argument order is swapped relative to the runtime's atan2
	a1, err := n.children[0].Emit(ctx)
	if err != nil {
		return "", err
	}
	a2, err := n.children[1].Emit(ctx)
	if err != nil {
		return "", err
	}
	return "atan2(" + a2 + ", " + a1 + ")", nil
}

func (n *FunctionNode) emitIf(ctx *Context) (string, error) {
	if len(n.children) != 2 && len(n.children) != 3 {
		return "", parseErrorf("IF with %d arguments not supported", len(n.children))
	}
	args := make([]string, 0, 3)
	for _, child := range n.children {
		code, err := child.Emit(ctx)
		if err != nil {
			return "", err
		}
		args = append(args, code)
	}
	if len(args) == 2 {
		// a missing else branch yields 0
		args = append(args, "0")
	}
	return "(" + args[1] + " if " + args[0] + " else " + args[2] + ")", nil
}

func (n *FunctionNode) emitArray(ctx *Context) (string, error) {
	if len(n.children) == 1 {
		row, err := n.children[0].Emit(ctx)
		if err != nil {
			return "", err
		}
		return "[" + row + "]", nil
	}
	// multiple rows
	rows, err := n.commaJoin(ctx, "[%s]")
	if err != nil {
		return "", err
	}
	return "[" + rows + "]", nil
}

// emitRegression handles the linest family. These calls usually sit in an
// array formula spanning one cell per coefficient; the context's degree
// resolver says where the current cell falls in that span. The
// coefficient-index suffix is suppressed exactly when the fit is
// single-coefficient and the call is nested.
func (n *FunctionNode) emitRegression(ctx *Context) (string, error) {
	name := n.name()
	args, err := n.commaJoin(ctx, "%s")
	if err != nil {
		return "", err
	}
	code := name + "(" + args

	degree, coef := -1, -1
	if ctx != nil && ctx.Degrees != nil {
		degree, coef = ctx.Degrees.ResolveDegree(ctx.Cell)
	}

	if name == "linest" {
		code += fmt.Sprintf(", degree=%d)", degree)
	} else {
		code += ")"
	}

	if !(degree == 1 && n.Parent() != nil) {
		code += fmt.Sprintf("[%d]", coef-1)
	}
	return code, nil
}
