package formulas

// Token is one classified lexical unit of a formula. Subtype is only
// meaningful relative to Type.
type Token struct {
	Value   string
	Type    string
	Subtype string
}

const (
	TokenTypeOperand         = "OPERAND"
	TokenTypeFunction        = "FUNC"
	TokenTypeArray           = "ARRAY"
	TokenTypeArrayRow        = "ARRAYROW"
	TokenTypeParen           = "PAREN"
	TokenTypeSep             = "SEP"
	TokenTypeOperatorPrefix  = "OPERATOR-PREFIX"
	TokenTypeOperatorInfix   = "OPERATOR-INFIX"
	TokenTypeOperatorPostfix = "OPERATOR-POSTFIX"
	TokenTypeWhitespace      = "WHITE-SPACE"

	TokenSubTypeOpen      = "OPEN"
	TokenSubTypeClose     = "CLOSE"
	TokenSubTypeRange     = "RANGE"
	TokenSubTypeNumber    = "NUMBER"
	TokenSubTypeText      = "TEXT"
	TokenSubTypeLogical   = "LOGICAL"
	TokenSubTypeError     = "ERROR"
	TokenSubTypeRow       = "ROW"
	TokenSubTypeArg       = "ARG"
	TokenSubTypeIntersect = "INTERSECT"
)

// Matches reports whether the token has the given type and subtype, with ""
// acting as a wildcard.
func (t Token) Matches(ttype, subtype string) bool {
	return (ttype == "" || t.Type == ttype) &&
		(subtype == "" || t.Subtype == subtype)
}

func (t Token) IsOperator() bool {
	return t.Type == TokenTypeOperatorPrefix ||
		t.Type == TokenTypeOperatorInfix ||
		t.Type == TokenTypeOperatorPostfix
}

func (t Token) IsFuncOpen() bool {
	return t.Subtype == TokenSubTypeOpen &&
		(t.Type == TokenTypeFunction ||
			t.Type == TokenTypeArray ||
			t.Type == TokenTypeArrayRow)
}
