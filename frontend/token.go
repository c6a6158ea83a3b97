package frontend

import "github.com/sagarpatel/slanguage/source"

// TokenKind is the closed set of lexical categories the lexer can produce
type TokenKind int

const (
	INT TokenKind = iota
	FLOAT
	BOOL
	CHAR
	STRING
	DEF
	EXTERN
	LET
	PROGRAM
	ARRAYKW
	IF
	ELSEIF
	ELSE
	WHILE
	FOR
	BREAK
	CONTINUE
	RETURN
	END_OF_FILE
	IDENTIFIER
	OPERATOR
	COMPLEX
	UNKNOWN
)

var kindNames = map[TokenKind]string{
	INT:         "INT",
	FLOAT:       "FLOAT",
	BOOL:        "BOOL",
	CHAR:        "CHAR",
	STRING:      "STRING",
	DEF:         "DEF",
	EXTERN:      "EXTERN",
	LET:         "LET",
	PROGRAM:     "PROGRAM",
	ARRAYKW:     "ARRAY",
	IF:          "IF",
	ELSEIF:      "ELSEIF",
	ELSE:        "ELSE",
	WHILE:       "WHILE",
	FOR:         "FOR",
	BREAK:       "BREAK",
	CONTINUE:    "CONTINUE",
	RETURN:      "RETURN",
	END_OF_FILE: "END_OF_FILE",
	IDENTIFIER:  "IDENTIFIER",
	OPERATOR:    "OPERATOR",
	COMPLEX:     "COMPLEX",
	UNKNOWN:     "UNKNOWN",
}

// String renders a TokenKind the way diagnostics name it
func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "UNKNOWN"
}

// Token is a lexical atom tagged with its kind, the raw matched text, and
// the source span it occupies
type Token struct {
	Kind   TokenKind
	Lexeme string
	Span   source.Span
}
