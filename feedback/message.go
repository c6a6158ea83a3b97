package feedback

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/sagarpatel/slanguage/source"
)

const (
	errorColors = iota
	helperColors
	noColors
)

// Message is the interface every diagnostic emitted by the pipeline must
// satisfy. The compiler treats a non-nil Message as fatal: the stage that
// produced it stops, and the diagnostic is rendered and the process exits
// with a non-zero status
type Message interface {
	Make(withColor bool) string
}

// Selection represents a region of the source code file along with a
// description of why the region is being highlighted
type Selection struct {
	Description string
	Span        source.Span
}

// Classification constants group every diagnostic into one of the four
// fatal error families described by the compiler's error handling design
const (
	IOError         string = "I/O error"
	InvalidLiteral  string = "invalid literal"
	ParseLogicError string = "parse logic error"
	CodegenError    string = "codegen error"
)

// Error is the sole diagnostic type in the pipeline; there is no separate
// Warning type because the pipeline never recovers from a fault and emits
// at most one diagnostic per compilation
type Error struct {
	Classification string
	File           *source.File
	What           Selection
	Why            []Selection
}

// Make renders an Error as a multi-line string with an optional ANSI color
// scheme, pointing at the offending source region
func (e Error) Make(withColor bool) string {
	color.NoColor = !withColor
	return makeMessage(e.Classification, e.File, e.What, e.Why)
}

// makeMessage renders a diagnostic of the form:
//
// error: <classification>
//   --> <filename>:<line>:<col>
//    |
//  1 | <offending line of source code>
//    |  ^^^^^^^^^ <description>
func makeMessage(classification string, file *source.File, what Selection, why []Selection) string {
	redBold := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	var lines []string
	var placeValues int

	maxLineNum := getMaxLineNum(append([]Selection{what}, why...)...)
	placeValues = utf8.RuneCountInString(fmt.Sprintf("%d", maxLineNum))

	lines = append(lines, redBold(fmt.Sprintf("error: %s", classification)))

	if file != nil {
		lines = append(lines, fmt.Sprintf(" %s%s %s:%d:%d",
			mulStr(" ", placeValues),
			blue("-->"),
			file.Filename,
			what.Span.Start.Line,
			what.Span.Start.Col))

		lines = append(lines, blue(fmt.Sprintf(" %s |", mulStr(" ", placeValues))))

		for i, sel := range why {
			if i > 0 && why[i-1].Span.End.Line < sel.Span.Start.Line {
				lines = append(lines, blue("..."))
			}

			lines = append(lines, sourceCodeSelection(file, sel, helperColors, placeValues)...)
		}

		lines = append(lines, sourceCodeSelection(file, what, errorColors, placeValues)...)
	} else {
		lines = append(lines, what.Description)
	}

	return strings.Join(lines, "\n")
}

func sourceCodeSelection(file *source.File, sel Selection, colorScheme int, placeValues int) (lines []string) {
	red := color.New(color.FgRed).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	if sel.Span.Start.Line-1 >= len(file.Lines) || sel.Span.End.Line > len(file.Lines) {
		return lines
	}

	sourceLines := file.Lines[sel.Span.Start.Line-1 : sel.Span.End.Line]

	numMargFmt := fmt.Sprintf("%%%dd", placeValues)
	emptyMargFmt := mulStr(" ", placeValues)

	for i, srcLine := range sourceLines {
		lineNum := sel.Span.Start.Line + i
		lineNumFmt := fmt.Sprintf(numMargFmt, lineNum)

		srcLine = strings.Replace(srcLine, "\n", " ", -1)

		var focusStart, focusEnd int

		if lineNum == sel.Span.Start.Line {
			focusStart = sel.Span.Start.Col
		} else {
			focusStart = 1
		}

		if lineNum == sel.Span.End.Line {
			focusEnd = sel.Span.End.Col + 1
		} else {
			focusEnd = utf8.RuneCountInString(srcLine)
		}

		prefix, focus, suffix := highlightSourceLine(srcLine, focusStart, focusEnd)

		if colorScheme == errorColors {
			focus = red(focus)
		} else if colorScheme == helperColors {
			focus = blue(focus)
		}

		lines = append(lines, fmt.Sprintf(" %s %s %s%s%s", blue(lineNumFmt), blue("|"), prefix, focus, suffix))
	}

	if sel.Description == "" {
		return lines
	}

	var underlineChar string
	var desc string

	if colorScheme == errorColors {
		underlineChar = red("^")
		desc = red(sel.Description)
	} else {
		underlineChar = blue("-")
		desc = blue(sel.Description)
	}

	leftPad := mulStr(" ", sel.Span.Start.Col-1)
	underline := mulStr(underlineChar, int(math.Max(float64((sel.Span.End.Col+1)-sel.Span.Start.Col), 1)))
	lines = append(lines, fmt.Sprintf(" %s %s %s%s %s", emptyMargFmt, blue("|"), leftPad, underline, desc))

	return lines
}

func getMaxLineNum(selections ...Selection) (max int) {
	max = 1

	for _, sel := range selections {
		if sel.Span.End.Line > max {
			max = sel.Span.End.Line
		}
	}

	return max
}

func highlightSourceLine(line string, start, end int) (prefix, focus, suffix string) {
	nextByte := 0

	for i := 1; i < end; i++ {
		runeValue, runeWidth := utf8.DecodeRuneInString(line[nextByte:])
		nextByte += runeWidth

		if i < start {
			prefix += string(runeValue)
		} else {
			focus += string(runeValue)
		}
	}

	if nextByte <= len(line) {
		suffix = line[nextByte:]
	}

	return prefix, focus, suffix
}

func mulStr(s string, n int) (out string) {
	for ; n > 0; n-- {
		out += s
	}

	return out
}
