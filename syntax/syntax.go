package syntax

import (
	"fmt"
	"sort"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

// Span is a half-open byte range into a Source.
type Span struct {
	Start int
	End   int
}

// Location is a Span resolved to line and column positions, for diagnostics.
type Location struct {
	From Position
	To   Position
}

// Source owns the text of one compilation run. Every Span produced while
// compiling indexes into it.
type Source struct {
	Filename string
	text     string
	lines    []int
}

func NewSource(filename, text string) *Source {
	s := &Source{Filename: filename, text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

func (s *Source) String() string {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

// Text returns the source text covered by span. Out of range spans are clamped.
func (s *Source) Text(span Span) string {
	start, end := s.clamp(span.Start), s.clamp(span.End)
	if end < start {
		return ""
	}
	return s.text[start:end]
}

func (s *Source) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.text) {
		return len(s.text)
	}
	return offset
}

func (s *Source) Position(offset int) Position {
	offset = s.clamp(offset)
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return Position{
		Line:     line + 1,
		Column:   offset - s.lines[line] + 1,
		Filename: s.Filename,
	}
}

func (s *Source) Locate(span Span) Location {
	return Location{From: s.Position(span.Start), To: s.Position(span.End)}
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	if o.Start < s.Start {
		s.Start = o.Start
	}
	if o.End > s.End {
		s.End = o.End
	}
	return s
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%d:%d", l.From, l.To.Line, l.To.Column)
}

type NodeKind int

const (
	ILLEGAL NodeKind = iota

	PROGRAM
	ASSIGNMENT
	IDENTIFIER
	NUMBER
	FUNCTION_CALL
	FUNCTION_ARGUMENTS
	FUNCTION_DEFINITION
	IDENT_LIST
	BLOCK
	EXPRESSION
	EOI
)

func (k NodeKind) String() string {
	data := map[NodeKind]string{
		ILLEGAL:             "ILLEGAL",
		PROGRAM:             "program",
		ASSIGNMENT:          "assignment",
		IDENTIFIER:          "identifier",
		NUMBER:              "number",
		FUNCTION_CALL:       "function_call",
		FUNCTION_ARGUMENTS:  "function_arguments",
		FUNCTION_DEFINITION: "function_definition",
		IDENT_LIST:          "ident_list",
		BLOCK:               "block",
		EXPRESSION:          "expression",
		EOI:                 "EOI",
	}
	if name, ok := data[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}
