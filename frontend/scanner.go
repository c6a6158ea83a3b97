package frontend

import (
	"unicode/utf8"

	"github.com/sagarpatel/slanguage/source"
)

// Scanner holds the state of a scanner instance which consumes source code
// runes one at a time. Source documents can be Unicode so the scanner keeps
// track of each rune's byte offset as well as its line and column
type Scanner struct {
	File     *source.File
	nextByte int
	nextLine int
	nextCol  int
}

// NewScanner constructs a Scanner positioned at the start of file
func NewScanner(file *source.File) *Scanner {
	return &Scanner{
		File:     file,
		nextByte: 0,
		nextLine: 1,
		nextCol:  1,
	}
}

// Peek returns the next rune, its position, and an end-of-file flag without
// advancing the scanner. Repeated Peek calls are idempotent
func (s *Scanner) Peek() (r rune, pos source.Pos, EOF bool) {
	if s.nextByte >= len(s.File.Contents) {
		return 0, source.Pos{Line: s.nextLine, Col: s.nextCol}, true
	}

	runeValue, _ := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])
	pos.Line = s.nextLine
	pos.Col = s.nextCol

	return runeValue, pos, false
}

// Next returns the next rune and its position and permanently advances the
// scanner. EOF is true once the scanner has consumed the final rune
func (s *Scanner) Next() (r rune, pos source.Pos, EOF bool) {
	if s.nextByte >= len(s.File.Contents) {
		return 0, source.Pos{Line: s.nextLine, Col: s.nextCol}, true
	}

	runeValue, runeWidth := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])
	pos.Line = s.nextLine
	pos.Col = s.nextCol

	if runeValue == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}

	s.nextByte += runeWidth

	return runeValue, pos, false
}

// AtEOF reports whether the scanner has exhausted the document
func (s *Scanner) AtEOF() bool {
	return s.nextByte >= len(s.File.Contents)
}

// Pos returns the scanner's current position, useful for tagging an EOF
// token with a sensible location once the document is exhausted
func (s *Scanner) Pos() source.Pos {
	return source.Pos{Line: s.nextLine, Col: s.nextCol}
}
