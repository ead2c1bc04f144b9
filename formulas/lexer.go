package formulas

import (
	"strings"

	"github.com/xuri/efp"
)

// Tokenize classifies a formula into an ordered token sequence. A leading "="
// is ignored. The base classification is done by efp; its tokens are mapped
// onto our model and whitespace is converted or dropped.
func Tokenize(formula string) []Token {
	formula = strings.TrimPrefix(formula, "=")
	parser := efp.ExcelParser()
	return convertWhitespace(fromBase(parser.Parse(formula)))
}

// fromBase maps efp's token taxonomy onto ours. efp reports array literals as
// pseudo-functions named ARRAY and ARRAYROW; here they collapse back into
// array open/close tokens and ROW separators, so an array literal tokenizes
// the same way whether it came from efp or was written out by hand. Stop
// tokens carry no type of their own, so opens are tracked on a stack.
func fromBase(base []efp.Token) []Token {
	tokens := make([]Token, 0, len(base))
	var opens []string

	for i := 0; i < len(base); i++ {
		t := base[i]
		switch t.TType {
		case efp.TokenTypeOperand:
			tokens = append(tokens, Token{t.TValue, TokenTypeOperand, operandSubtype(t.TSubType)})

		case efp.TokenTypeFunction:
			if t.TSubType == efp.TokenSubTypeStart {
				switch t.TValue {
				case "ARRAY":
					opens = append(opens, TokenTypeArray)
					tokens = append(tokens, Token{"{", TokenTypeArray, TokenSubTypeOpen})
				case "ARRAYROW":
					opens = append(opens, TokenTypeArrayRow)
				default:
					opens = append(opens, TokenTypeFunction)
					tokens = append(tokens, Token{t.TValue, TokenTypeFunction, TokenSubTypeOpen})
				}
				continue
			}
			ttype := TokenTypeFunction
			if len(opens) > 0 {
				ttype = opens[len(opens)-1]
				opens = opens[:len(opens)-1]
			}
			switch ttype {
			case TokenTypeArray:
				tokens = append(tokens, Token{"}", TokenTypeArray, TokenSubTypeClose})
			case TokenTypeArrayRow:
				// a row boundary inside an array shows up as
				// stop, separator, start; fold it into one ROW
				// token. The last row's stop emits nothing.
				next := i
				if next+1 < len(base) && base[next+1].TType == efp.TokenTypeArgument {
					next++
				}
				if next+1 < len(base) &&
					base[next+1].TType == efp.TokenTypeFunction &&
					base[next+1].TSubType == efp.TokenSubTypeStart &&
					base[next+1].TValue == "ARRAYROW" {
					tokens = append(tokens, Token{";", TokenTypeSep, TokenSubTypeRow})
					opens = append(opens, TokenTypeArrayRow)
					i = next + 1
				}
			default:
				tokens = append(tokens, Token{")", TokenTypeFunction, TokenSubTypeClose})
			}

		case efp.TokenTypeSubexpression:
			if t.TSubType == efp.TokenSubTypeStart {
				tokens = append(tokens, Token{"(", TokenTypeParen, TokenSubTypeOpen})
			} else {
				tokens = append(tokens, Token{")", TokenTypeParen, TokenSubTypeClose})
			}

		case efp.TokenTypeArgument:
			tokens = append(tokens, Token{",", TokenTypeSep, TokenSubTypeArg})

		case efp.TokenTypeOperatorPrefix:
			tokens = append(tokens, Token{t.TValue, TokenTypeOperatorPrefix, ""})

		case efp.TokenTypeOperatorInfix:
			if t.TSubType == efp.TokenSubTypeIntersection {
				tokens = append(tokens, Token{" ", TokenTypeOperatorInfix, TokenSubTypeIntersect})
			} else {
				tokens = append(tokens, Token{t.TValue, TokenTypeOperatorInfix, ""})
			}

		case efp.TokenTypeOperatorPostfix:
			tokens = append(tokens, Token{t.TValue, TokenTypeOperatorPostfix, ""})

		case efp.TokenTypeWhitespace:
			tokens = append(tokens, Token{" ", TokenTypeWhitespace, ""})

		default:
			tokens = append(tokens, Token{t.TValue, t.TType, t.TSubType})
		}
	}
	return tokens
}

func operandSubtype(sub string) string {
	switch sub {
	case efp.TokenSubTypeRange:
		return TokenSubTypeRange
	case efp.TokenSubTypeText:
		return TokenSubTypeText
	case efp.TokenSubTypeLogical:
		return TokenSubTypeLogical
	case efp.TokenSubTypeError:
		return TokenSubTypeError
	default:
		return TokenSubTypeNumber
	}
}

// convertWhitespace resolves the intersection ambiguity: whitespace between
// two value-like neighbors is the intersection operator, any other whitespace
// carries no meaning. Boundary whitespace is always dropped. efp performs the
// same conversion on plain formulas; this pass is what defines the rule for
// token streams that still contain whitespace.
func convertWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i, token := range tokens {
		if token.Type != TokenTypeWhitespace {
			out = append(out, token)
			continue
		}
		if i == 0 || i == len(tokens)-1 {
			continue
		}
		prev, next := tokens[i-1], tokens[i+1]
		if (prev.Matches(TokenTypeFunction, TokenSubTypeClose) ||
			prev.Matches(TokenTypeParen, TokenSubTypeClose) ||
			prev.Type == TokenTypeOperand) &&
			(next.Matches(TokenTypeFunction, TokenSubTypeOpen) ||
				next.Matches(TokenTypeParen, TokenSubTypeOpen) ||
				next.Type == TokenTypeOperand) {
			// this whitespace is an intersect operator
			out = append(out, Token{" ", TokenTypeOperatorInfix, TokenSubTypeIntersect})
		}
	}
	return out
}
