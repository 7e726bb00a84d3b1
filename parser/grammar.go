package parser

import (
	"github.com/alecthomas/participle/lexer"
	"github.com/alecthomas/participle/lexer/stateful"
)

// tokens lexes "->" as one token so that "- >" is not an arrow. Lowercase rules
// are dropped from the token stream.
var tokens = lexer.Must(stateful.NewSimple([]stateful.Rule{
	{Name: "comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[(),;={}]`},
}))

type program struct {
	Pos         lexer.Position
	Assignments []*assignment `@@*`
}

type assignment struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Name  *identifier `@@ "="`
	Value *expression `@@ ";"?`
}

type identifier struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type number struct {
	Pos    lexer.Position
	Digits string `@Int`
}

// The order of the alternatives matters: a call must be tried before a bare
// identifier.
type expression struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Definition *functionDefinition `  @@`
	Block      *block              `| @@`
	Call       *functionCall       `| @@`
	Number     *number             `| @@`
	Identifier *identifier         `| @@`
}

type functionCall struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Callee    *identifier   `@@ "("`
	Arguments []*expression `( @@ ( "," @@ )* )? ")"`
}

type functionDefinition struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Parameters []*identifier `"(" ( @@ ( "," @@ )* )? ")" "->"`
	Body       *expression   `@@`
}

type block struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Assignments []*assignment `"{" @@*`
	Result      *expression   `@@ "}"`
}
