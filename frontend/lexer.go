package frontend

import (
	"fmt"
	"strings"

	"github.com/sagarpatel/slanguage/feedback"
	"github.com/sagarpatel/slanguage/source"
)

// Lexer draws tokens one at a time from a Scanner on demand. It is not
// restartable mid-stream: once it reports END_OF_FILE it keeps reporting
// END_OF_FILE, and a fresh instance is required to re-scan the same source
type Lexer struct {
	Scanner    *Scanner
	Grammar    *Grammar
	peekBuffer []Token
	eof        bool
}

// NewLexer constructs a Lexer over file using the Slanguage grammar
func NewLexer(file *source.File) *Lexer {
	return &Lexer{
		Scanner: NewScanner(file),
		Grammar: NewGrammar(),
	}
}

// Next returns the upcoming token and advances the lexer
func (l *Lexer) Next() (Token, feedback.Message) {
	if len(l.peekBuffer) > 0 {
		tok := l.peekBuffer[0]
		l.peekBuffer = l.peekBuffer[1:]
		return tok, nil
	}

	return l.readNextToken()
}

// Peek returns the upcoming token without advancing the lexer. The token is
// cached so repeated Peek calls do not re-scan
func (l *Lexer) Peek() (Token, feedback.Message) {
	if len(l.peekBuffer) > 0 {
		return l.peekBuffer[0], nil
	}

	tok, msg := l.readNextToken()
	if msg == nil {
		l.peekBuffer = append(l.peekBuffer, tok)
	}

	return tok, msg
}

// ExpectNext consumes the next token and fails with a parse logic error if
// its kind does not match want
func (l *Lexer) ExpectNext(want TokenKind) (Token, feedback.Message) {
	tok, msg := l.Next()
	if msg != nil {
		return tok, msg
	}

	if tok.Kind == want {
		return tok, nil
	}

	return tok, feedback.Error{
		Classification: feedback.ParseLogicError,
		File:           l.Scanner.File,
		What: feedback.Selection{
			Description: fmt.Sprintf("expected %s, found '%s'", want, tok.Lexeme),
			Span:        tok.Span,
		},
	}
}

func (l *Lexer) readNextToken() (Token, feedback.Message) {
	if l.eof {
		return Token{Kind: END_OF_FILE, Lexeme: "<EOF>", Span: source.Span{Start: l.Scanner.Pos(), End: l.Scanner.Pos()}}, nil
	}

	peek, pos, atEOF := l.Scanner.Peek()
	if atEOF {
		l.eof = true
		return Token{Kind: END_OF_FILE, Lexeme: "<EOF>", Span: source.Span{Start: pos, End: pos}}, nil
	}

	if l.Grammar.isWhitespace(peek) {
		l.Scanner.Next()
		return l.readNextToken()
	}

	if l.Grammar.isAlphabetical(peek) {
		return l.lexWord()
	}

	if l.Grammar.isNumeric(peek) || peek == '.' {
		return l.lexNumber()
	}

	if peek == '\'' {
		return l.lexChar()
	}

	if peek == '"' {
		return l.lexString()
	}

	if l.Grammar.isOperatorRune(peek) {
		return l.lexOperator()
	}

	if l.Grammar.isPunctuatorRune(peek) {
		return l.lexPunctuator()
	}

	r, rpos, _ := l.Scanner.Next()
	return Token{Kind: UNKNOWN, Lexeme: string(r), Span: source.Span{Start: rpos, End: rpos}}, feedback.Error{
		Classification: feedback.ParseLogicError,
		File:           l.Scanner.File,
		What: feedback.Selection{
			Description: fmt.Sprintf("unexpected character '%s'", string(r)),
			Span:        source.Span{Start: rpos, End: rpos},
		},
	}
}

// lexWord scans identifiers and keywords, and intercepts the comment
// keywords "Cancelled"/"Blocked"/"Unblocked" before any keyword lookup
// happens, per §4.1's comment-as-keyword design note
func (l *Lexer) lexWord() (Token, feedback.Message) {
	var lexeme string
	var span source.Span
	var eof bool

	r, pos, _ := l.Scanner.Next()
	lexeme = string(r)
	span.Start = pos
	span.End = pos

	for {
		peek, _, atEOF := l.Scanner.Peek()
		if atEOF || !l.Grammar.isIdentContinue(peek) {
			break
		}

		var rpos source.Pos
		r, rpos, eof = l.Scanner.Next()
		lexeme += string(r)
		span.End = rpos

		if eof {
			break
		}
	}

	switch lexeme {
	case commentLineWord:
		l.skipLineComment()
		return l.readNextToken()
	case commentBlockStartWord:
		l.skipBlockComment()
		return l.readNextToken()
	}

	if kind, ok := l.Grammar.lookupKeyword(lexeme); ok {
		return Token{Kind: kind, Lexeme: lexeme, Span: span}, nil
	}

	return Token{Kind: IDENTIFIER, Lexeme: lexeme, Span: span}, nil
}

// skipLineComment consumes runes until end-of-line or end-of-file
func (l *Lexer) skipLineComment() {
	for {
		peek, _, atEOF := l.Scanner.Peek()
		if atEOF || peek == '\n' {
			return
		}

		l.Scanner.Next()
	}
}

// skipBlockComment consumes runes until the word "Unblocked" has been
// consumed, matching the literal substring search the original lexer
// performs rather than a word-boundary-aware scan
func (l *Lexer) skipBlockComment() {
	matched := 0

	for {
		peek, _, atEOF := l.Scanner.Peek()
		if atEOF {
			l.Scanner.Next()
			return
		}

		l.Scanner.Next()

		if peek == rune(commentBlockEndWord[matched]) {
			matched++
			if matched == len(commentBlockEndWord) {
				return
			}
		} else if peek == rune(commentBlockEndWord[0]) {
			matched = 1
		} else {
			matched = 0
		}
	}
}

// lexChar scans a character literal: ', one character, '
func (l *Lexer) lexChar() (Token, feedback.Message) {
	_, startPos, _ := l.Scanner.Next() // consume opening quote

	ch, _, atEOF := l.Scanner.Next()
	if atEOF {
		return Token{Kind: CHAR, Lexeme: "", Span: source.Span{Start: startPos, End: startPos}}, invalidLiteral(l, "unterminated char literal", startPos)
	}

	closing, closePos, atEOF := l.Scanner.Next()
	if atEOF || closing != '\'' {
		return Token{Kind: CHAR, Lexeme: string(ch), Span: source.Span{Start: startPos, End: closePos}}, invalidLiteral(l, "invalid literal", closePos)
	}

	return Token{Kind: CHAR, Lexeme: string(ch), Span: source.Span{Start: startPos, End: closePos}}, nil
}

// lexString scans a string literal: ", arbitrary non-null characters, "
func (l *Lexer) lexString() (Token, feedback.Message) {
	_, startPos, _ := l.Scanner.Next() // consume opening quote

	var sb strings.Builder
	endPos := startPos

	for {
		r, pos, atEOF := l.Scanner.Next()
		if atEOF {
			return Token{Kind: STRING, Lexeme: sb.String(), Span: source.Span{Start: startPos, End: endPos}}, invalidLiteral(l, "invalid literal", pos)
		}

		if r == '"' {
			endPos = pos
			break
		}

		sb.WriteRune(r)
		endPos = pos
	}

	return Token{Kind: STRING, Lexeme: sb.String(), Span: source.Span{Start: startPos, End: endPos}}, nil
}

// lexNumber scans a maximal run of digits with at most one decimal point.
// A leading '.' is accepted and normalized with a leading zero, matching
// the boundary case in §8 (".5" -> FLOAT "0.5")
func (l *Lexer) lexNumber() (Token, feedback.Message) {
	var lexeme string
	var span source.Span
	isFloat := false

	r, pos, _ := l.Scanner.Next()
	span.Start = pos
	span.End = pos

	if r == '.' {
		isFloat = true
		lexeme = "0."
	} else {
		lexeme = string(r)
	}

	for {
		peek, _, atEOF := l.Scanner.Peek()
		if atEOF {
			break
		}

		if peek == '.' {
			if isFloat {
				_, dotPos, _ := l.Scanner.Next()
				return Token{Kind: FLOAT, Lexeme: lexeme, Span: span}, invalidLiteral(l, "more than one decimal point in number literal", dotPos)
			}

			isFloat = true
			var dotPos source.Pos
			_, dotPos, _ = l.Scanner.Next()
			lexeme += "."
			span.End = dotPos
			continue
		}

		if !l.Grammar.isNumeric(peek) {
			break
		}

		var npos source.Pos
		r, npos, _ = l.Scanner.Next()
		lexeme += string(r)
		span.End = npos
	}

	if isFloat {
		return Token{Kind: FLOAT, Lexeme: lexeme, Span: span}, nil
	}

	return Token{Kind: INT, Lexeme: lexeme, Span: span}, nil
}

// lexOperator scans one of + - * / % > < = !. The comparison/equality
// operators may extend by a trailing '='; the arithmetic operators are
// always single-character
func (l *Lexer) lexOperator() (Token, feedback.Message) {
	r, pos, _ := l.Scanner.Next()
	lexeme := string(r)
	span := source.Span{Start: pos, End: pos}

	if isExtendableOperator(r) {
		if peek, _, atEOF := l.Scanner.Peek(); !atEOF && peek == '=' {
			var epos source.Pos
			_, epos, _ = l.Scanner.Next()
			lexeme += "="
			span.End = epos
		}
	}

	return Token{Kind: OPERATOR, Lexeme: lexeme, Span: span}, nil
}

// lexPunctuator scans a single punctuation character: ( ) { } : , |
func (l *Lexer) lexPunctuator() (Token, feedback.Message) {
	r, pos, _ := l.Scanner.Next()
	return Token{Kind: COMPLEX, Lexeme: string(r), Span: source.Span{Start: pos, End: pos}}, nil
}

func invalidLiteral(l *Lexer, description string, pos source.Pos) feedback.Message {
	return feedback.Error{
		Classification: feedback.InvalidLiteral,
		File:           l.Scanner.File,
		What: feedback.Selection{
			Description: description,
			Span:        source.Span{Start: pos, End: pos},
		},
	}
}
