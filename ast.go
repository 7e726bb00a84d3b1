package main

import "github.com/pontaoski/tempo/syntax"

//go:generate sh -c "cd tool && go run . ../ast.adt ../ast_gen.go main"

type Program struct {
	Assignments []Assignment
	Span        syntax.Span
}

type Assignment struct {
	Identifier Identifier
	Expression Expression
	Span       syntax.Span
}

type Identifier struct {
	Name string
	Span syntax.Span
}

type Number struct {
	Value int64
	Span  syntax.Span
}

type FunctionCall struct {
	Function  Identifier
	Arguments []Expression
	Span      syntax.Span
}

type FunctionDefinition struct {
	Parameters []Identifier
	Body       Expression
	Span       syntax.Span
}

type Block struct {
	Assignments []Assignment
	Expression  Expression
	Span        syntax.Span
}

func spanOf(e Expression) syntax.Span {
	switch expr := e.(type) {
	case NumberLiteral:
		return expr.Span
	case IdentifierRef:
		return expr.Span
	case FunctionCall:
		return expr.Span
	case FunctionDefinition:
		return expr.Span
	case Block:
		return expr.Span
	}
	return syntax.Span{}
}

func kindOf(e Expression) string {
	switch e.(type) {
	case NumberLiteral:
		return "number"
	case IdentifierRef:
		return "identifier"
	case FunctionCall:
		return "function call"
	case FunctionDefinition:
		return "function definition"
	case Block:
		return "block"
	}
	return "unknown expression"
}
