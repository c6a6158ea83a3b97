package frontend

// Grammar holds the rune classification and keyword table that drive the
// lexer. It is a separate struct from the Lexer (as the teacher's Plaid
// frontend keeps it) so that the same scanning machinery could in principle
// drive a different surface grammar
type Grammar struct {
	OperatorRunes   []rune
	PunctuatorRunes []rune
	Keywords        map[string]TokenKind
}

// NewGrammar builds the Slanguage grammar: the slang keyword table, the
// arithmetic/comparison operator runes, and the single-character
// punctuators
func NewGrammar() *Grammar {
	return &Grammar{
		OperatorRunes:   []rune{'+', '-', '*', '/', '%', '>', '<', '=', '!'},
		PunctuatorRunes: []rune{'(', ')', '{', '}', ':', ',', '|'},
		Keywords: map[string]TokenKind{
			"pluh":                DEF,
			"plug":                EXTERN,
			"cookUp":              LET,
			"fr?":                 IF,
			"ong?":                ELSEIF,
			"justLikeThat?":       ELSE,
			"holdUp":              WHILE,
			"ratioed":             FOR,
			"ghost":               BREAK,
			"rizz":                CONTINUE,
			"periodt":             RETURN,
			"yeet":                RETURN,
			"facts":               BOOL,
			"cap":                 BOOL,
			"spillingTheTeaAbout": PROGRAM,
			"gang":                ARRAYKW,
		},
	}
}

// commentLineWord and commentBlock{Start,End}Word are keywords in the
// lexical sense (§4.1: "comment delimiters are themselves lexical tokens")
// but they never reach the keyword table above because the lexer intercepts
// them before an identifier/keyword lookup happens
const (
	commentLineWord       = "Cancelled"
	commentBlockStartWord = "Blocked"
	commentBlockEndWord   = "Unblocked"
)

func (g *Grammar) isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (g *Grammar) isAlphabetical(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (g *Grammar) isNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentContinue reports whether r can continue an identifier once it has
// begun; slang identifiers like "fr?" and "justLikeThat?" require '?' here
func (g *Grammar) isIdentContinue(r rune) bool {
	return g.isAlphabetical(r) || g.isNumeric(r) || r == '_' || r == '?'
}

func (g *Grammar) isOperatorRune(r rune) bool {
	for _, op := range g.OperatorRunes {
		if op == r {
			return true
		}
	}

	return false
}

func (g *Grammar) isPunctuatorRune(r rune) bool {
	for _, p := range g.PunctuatorRunes {
		if p == r {
			return true
		}
	}

	return false
}

// isExtendableOperator reports whether op is one of the comparison/equality
// operators that may be extended by a trailing '='; the arithmetic runes
// are always single-character per §4.1
func isExtendableOperator(op rune) bool {
	return op == '<' || op == '>' || op == '=' || op == '!'
}

func (g *Grammar) lookupKeyword(word string) (TokenKind, bool) {
	kind, ok := g.Keywords[word]
	return kind, ok
}
