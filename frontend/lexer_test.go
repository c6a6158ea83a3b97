package frontend

import (
	"testing"

	"github.com/sagarpatel/slanguage/source"
)

func newTestLexer(t *testing.T, contents string) *Lexer {
	t.Helper()
	return NewLexer(source.NewFile("test.slang", contents))
}

func drainKinds(t *testing.T, l *Lexer) []TokenKind {
	t.Helper()

	var kinds []TokenKind
	for {
		tok, msg := l.Next()
		if msg != nil {
			t.Fatalf("unexpected lex error: %s", msg.Make(false))
		}

		kinds = append(kinds, tok.Kind)

		if tok.Kind == END_OF_FILE {
			return kinds
		}
	}
}

func TestLexKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenKind
	}{
		{"pluh", DEF},
		{"plug", EXTERN},
		{"cookUp", LET},
		{"fr?", IF},
		{"ong?", ELSEIF},
		{"justLikeThat?", ELSE},
		{"holdUp", WHILE},
		{"ratioed", FOR},
		{"ghost", BREAK},
		{"rizz", CONTINUE},
		{"periodt", RETURN},
		{"yeet", RETURN},
		{"facts", BOOL},
		{"cap", BOOL},
		{"spillingTheTeaAbout", PROGRAM},
		{"gang", ARRAYKW},
		{"someIdentifier", IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := newTestLexer(t, tt.input)

			tok, msg := l.Next()
			if msg != nil {
				t.Fatalf("unexpected lex error: %s", msg.Make(false))
			}

			if tok.Kind != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tok.Kind)
			}

			if tok.Lexeme != tt.input {
				t.Errorf("expected lexeme %q, got %q", tt.input, tok.Lexeme)
			}
		})
	}
}

func TestLexEndsWithSingleEOF(t *testing.T) {
	l := newTestLexer(t, "cookUp x: int = 1")
	kinds := drainKinds(t, l)

	if kinds[len(kinds)-1] != END_OF_FILE {
		t.Fatalf("expected last token to be END_OF_FILE, got %s", kinds[len(kinds)-1])
	}

	for _, k := range kinds[:len(kinds)-1] {
		if k == END_OF_FILE {
			t.Fatalf("found END_OF_FILE before the end of the token stream")
		}
	}

	again := drainKinds(t, newTestLexer(t, "cookUp x: int = 1"))
	if len(again) != len(kinds) {
		t.Fatalf("re-lexing an identical string produced a different token count: %d vs %d", len(again), len(kinds))
	}
	for i := range kinds {
		if kinds[i] != again[i] {
			t.Fatalf("re-lexing an identical string was not deterministic at index %d", i)
		}
	}
}

func TestLexWhitespaceInsensitive(t *testing.T) {
	tight := drainKinds(t, newTestLexer(t, "cookUp x:int=1"))
	spaced := drainKinds(t, newTestLexer(t, "cookUp   x : int  =   1"))

	if len(tight) != len(spaced) {
		t.Fatalf("expected the same token sequence regardless of whitespace: %v vs %v", tight, spaced)
	}
	for i := range tight {
		if tight[i] != spaced[i] {
			t.Fatalf("token %d differs: %s vs %s", i, tight[i], spaced[i])
		}
	}
}

func TestLexLineComment(t *testing.T) {
	l := newTestLexer(t, "cookUp Cancelled this whole line is ignored\nx: int")

	tok, msg := l.Next()
	if msg != nil {
		t.Fatalf("unexpected lex error: %s", msg.Make(false))
	}
	if tok.Kind != LET {
		t.Fatalf("expected LET, got %s", tok.Kind)
	}

	tok, msg = l.Next()
	if msg != nil {
		t.Fatalf("unexpected lex error: %s", msg.Make(false))
	}
	if tok.Kind != IDENTIFIER || tok.Lexeme != "x" {
		t.Fatalf("expected identifier 'x', got %s %q", tok.Kind, tok.Lexeme)
	}
}

func TestLexBlockComment(t *testing.T) {
	l := newTestLexer(t, "cookUp Blocked anything at all Unblocked x: int")

	tok, _ := l.Next()
	if tok.Kind != LET {
		t.Fatalf("expected LET, got %s", tok.Kind)
	}

	tok, _ = l.Next()
	if tok.Kind != IDENTIFIER || tok.Lexeme != "x" {
		t.Fatalf("expected identifier 'x', got %s %q", tok.Kind, tok.Lexeme)
	}
}

func TestLexStringContainingCommentWords(t *testing.T) {
	l := newTestLexer(t, `"Blocked and Cancelled and Unblocked"`)

	tok, msg := l.Next()
	if msg != nil {
		t.Fatalf("unexpected lex error: %s", msg.Make(false))
	}

	if tok.Kind != STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}

	if tok.Lexeme != "Blocked and Cancelled and Unblocked" {
		t.Fatalf("unexpected lexeme: %q", tok.Lexeme)
	}
}

func TestLexLeadingDotFloat(t *testing.T) {
	l := newTestLexer(t, ".5")

	tok, msg := l.Next()
	if msg != nil {
		t.Fatalf("unexpected lex error: %s", msg.Make(false))
	}

	if tok.Kind != FLOAT {
		t.Fatalf("expected FLOAT, got %s", tok.Kind)
	}

	if tok.Lexeme != "0.5" {
		t.Fatalf("expected lexeme \"0.5\", got %q", tok.Lexeme)
	}
}

func TestLexSecondDecimalPointIsInvalid(t *testing.T) {
	l := newTestLexer(t, "1.2.3")

	_, msg := l.Next()
	if msg == nil {
		t.Fatalf("expected an invalid literal error for a second decimal point")
	}
}

func TestLexUnterminatedStringIsInvalid(t *testing.T) {
	l := newTestLexer(t, `"never closed`)

	_, msg := l.Next()
	if msg == nil {
		t.Fatalf("expected an invalid literal error for an unterminated string")
	}
}

func TestLexOperatorExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<=", "<="},
		{">=", ">="},
		{"==", "=="},
		{"!=", "!="},
		{"+", "+"},
		{"-", "-"},
		{"*", "*"},
		{"/", "/"},
		{"%", "%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := newTestLexer(t, tt.input)
			tok, msg := l.Next()
			if msg != nil {
				t.Fatalf("unexpected lex error: %s", msg.Make(false))
			}
			if tok.Kind != OPERATOR {
				t.Fatalf("expected OPERATOR, got %s", tok.Kind)
			}
			if tok.Lexeme != tt.expected {
				t.Fatalf("expected lexeme %q, got %q", tt.expected, tok.Lexeme)
			}
		})
	}
}
