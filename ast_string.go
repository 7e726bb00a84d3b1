package main

import (
	"fmt"
	"strings"
)

func expressionsToString(es []Expression) string {
	var parts []string
	for _, e := range es {
		parts = append(parts, fmt.Sprint(e))
	}
	return strings.Join(parts, ", ")
}

func (n NumberLiteral) String() string {
	return fmt.Sprint(n.Value)
}

func (i IdentifierRef) String() string {
	return i.Name
}

func (f FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", f.Function.Name, expressionsToString(f.Arguments))
}

func (f FunctionDefinition) String() string {
	var params []string
	for _, p := range f.Parameters {
		params = append(params, p.Name)
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Body)
}

func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, a := range b.Assignments {
		sb.WriteString(a.String())
		sb.WriteString("; ")
	}
	fmt.Fprintf(&sb, "%s }", b.Expression)
	return sb.String()
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Identifier.Name, a.Expression)
}
