package main

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/parser"
	"github.com/pontaoski/tempo/syntax"
)

func node(kind syntax.NodeKind, start, end int, children ...*parser.Node) *parser.Node {
	return &parser.Node{Kind: kind, Span: syntax.Span{Start: start, End: end}, Children: children}
}

func TestBuildEntryProgram(t *testing.T) {
	src, program := mustBuild(t, "main = (x) -> add(x, 1)")

	be.Equal(t, len(program.Assignments), 1)
	a := program.Assignments[0]
	be.Equal(t, a.Identifier.Name, "main")
	be.Equal(t, src.Text(a.Span), "main = (x) -> add(x, 1)")

	def, ok := a.Expression.(FunctionDefinition)
	be.True(t, ok)
	be.Equal(t, len(def.Parameters), 1)
	be.Equal(t, def.Parameters[0].Name, "x")

	call, ok := def.Body.(FunctionCall)
	be.True(t, ok)
	be.Equal(t, call.Function.Name, "add")
	be.Equal(t, src.Text(call.Function.Span), "add")
	be.Equal(t, len(call.Arguments), 2)

	ref, ok := call.Arguments[0].(IdentifierRef)
	be.True(t, ok)
	be.Equal(t, ref.Name, "x")

	lit, ok := call.Arguments[1].(NumberLiteral)
	be.True(t, ok)
	be.Equal(t, lit.Value, int64(1))
}

func TestBuildPreservesOrder(t *testing.T) {
	_, program := mustBuild(t, "a = 1\nb = { c = 2; d = 3; f(c, d, 4) }\nmain = (x) -> x")

	var names []string
	for _, a := range program.Assignments {
		names = append(names, a.Identifier.Name)
	}
	be.Equal(t, names, []string{"a", "b", "main"})

	block, ok := program.Assignments[1].Expression.(Block)
	be.True(t, ok)
	be.Equal(t, block.Assignments[0].Identifier.Name, "c")
	be.Equal(t, block.Assignments[1].Identifier.Name, "d")
	be.Equal(t, block.Expression.(FunctionCall).String(), "f(c, d, 4)")
}

func TestBuildDefinitionWithoutParameters(t *testing.T) {
	_, program := mustBuild(t, "f = () -> 1")

	def := program.Assignments[0].Expression.(FunctionDefinition)
	be.Equal(t, len(def.Parameters), 0)
	be.Equal(t, def.Body.(NumberLiteral).Value, int64(1))
}

func TestBuildNumberOverflow(t *testing.T) {
	src := syntax.NewSource("test.tm", "main = (x) -> add(x, 9223372036854775808)")
	root, err := parser.Parse(src)
	be.Err(t, err, nil)

	_, err = buildProgram(src, root)

	var invalid errors.InvalidNumber
	be.True(t, goerrors.As(err, &invalid))
	be.Equal(t, invalid.Text, "9223372036854775808")
	be.Equal(t, invalid.Reason, "out of range for a 64-bit integer")
	be.True(t, strings.Contains(err.Error(), `assignment "main"`))
	be.True(t, strings.Contains(err.Error(), `argument 2 of "add"`))
}

func TestBuildNumberNotDecimal(t *testing.T) {
	src := syntax.NewSource("test.tm", "12ab")
	_, err := builder{src: src}.buildNumber(node(syntax.NUMBER, 0, 4))

	var invalid errors.InvalidNumber
	be.True(t, goerrors.As(err, &invalid))
	be.Equal(t, invalid.Reason, "not a decimal integer")
}

func TestBuildValidatesKind(t *testing.T) {
	src := syntax.NewSource("test.tm", "42")
	_, err := builder{src: src}.buildIdentifier(node(syntax.NUMBER, 0, 2))

	var wrong errors.ExpectedKindGotKind
	be.True(t, goerrors.As(err, &wrong))
	be.Equal(t, wrong.Expected, syntax.IDENTIFIER)
	be.Equal(t, wrong.Got, syntax.NUMBER)
	be.Equal(t, wrong.Text, "42")
	be.Equal(t, err.Error(), `expected identifier, got number for "42". test.tm:1:1-1:3`)
}

func TestBuildEmptyExpression(t *testing.T) {
	src := syntax.NewSource("test.tm", "")
	_, err := builder{src: src}.buildExpression(node(syntax.EXPRESSION, 0, 0))

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Parent, syntax.EXPRESSION)
}

func TestBuildExpressionWithUnexpectedChild(t *testing.T) {
	src := syntax.NewSource("test.tm", "a = 1")
	expr := node(syntax.EXPRESSION, 0, 5,
		node(syntax.ASSIGNMENT, 0, 5),
	)
	_, err := builder{src: src}.buildExpression(expr)

	var wrong errors.ExpectedOneOfKindGotKind
	be.True(t, goerrors.As(err, &wrong))
	be.Equal(t, wrong.Got, syntax.ASSIGNMENT)
	be.Equal(t, len(wrong.Expected), 5)
}

func TestBuildFunctionCallNeedsArguments(t *testing.T) {
	src := syntax.NewSource("test.tm", "add")
	call := node(syntax.FUNCTION_CALL, 0, 3,
		node(syntax.IDENTIFIER, 0, 3),
	)
	_, err := builder{src: src}.buildFunctionCall(call)

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Expected, "function_call arguments")
}

func TestBuildFunctionCallArgumentsContainer(t *testing.T) {
	src := syntax.NewSource("test.tm", "add 1")
	call := node(syntax.FUNCTION_CALL, 0, 5,
		node(syntax.IDENTIFIER, 0, 3),
		node(syntax.EXPRESSION, 4, 5, node(syntax.NUMBER, 4, 5)),
	)
	_, err := builder{src: src}.buildFunctionCall(call)

	var wrong errors.ExpectedKindGotKind
	be.True(t, goerrors.As(err, &wrong))
	be.Equal(t, wrong.Expected, syntax.FUNCTION_ARGUMENTS)
}

func TestBuildFunctionDefinitionNeedsBody(t *testing.T) {
	src := syntax.NewSource("test.tm", "(x) ->")
	def := node(syntax.FUNCTION_DEFINITION, 0, 6,
		node(syntax.IDENT_LIST, 1, 2, node(syntax.IDENTIFIER, 1, 2)),
	)
	_, err := builder{src: src}.buildFunctionDefinition(def)

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Expected, "function_definition body expression")
}

func TestBuildBlockRejectsTrailingNodes(t *testing.T) {
	src := syntax.NewSource("test.tm", "{ 1 2 }")
	block := node(syntax.BLOCK, 0, 7,
		node(syntax.EXPRESSION, 2, 3, node(syntax.NUMBER, 2, 3)),
		node(syntax.EXPRESSION, 4, 5, node(syntax.NUMBER, 4, 5)),
	)
	_, err := builder{src: src}.buildBlock(block)

	var unexpected errors.UnexpectedNode
	be.True(t, goerrors.As(err, &unexpected))
	be.Equal(t, unexpected.Parent, syntax.BLOCK)
	be.Equal(t, unexpected.Text, "2")
}

func TestBuildBlockNeedsExpression(t *testing.T) {
	src := syntax.NewSource("test.tm", "{ a = 1 }")
	block := node(syntax.BLOCK, 0, 9,
		node(syntax.ASSIGNMENT, 2, 7,
			node(syntax.IDENTIFIER, 2, 3),
			node(syntax.EXPRESSION, 6, 7, node(syntax.NUMBER, 6, 7)),
		),
	)
	_, err := builder{src: src}.buildBlock(block)

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Parent, syntax.BLOCK)
}

func TestBuildAssignmentNeedsExpression(t *testing.T) {
	src := syntax.NewSource("test.tm", "a =")
	assignment := node(syntax.ASSIGNMENT, 0, 3, node(syntax.IDENTIFIER, 0, 1))
	_, err := builder{src: src}.buildAssignment(assignment)

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Expected, "assignment expression")
}

func TestBuildProgramRejectsOtherNodes(t *testing.T) {
	src := syntax.NewSource("test.tm", "42")
	root := node(syntax.PROGRAM, 0, 2,
		node(syntax.EXPRESSION, 0, 2, node(syntax.NUMBER, 0, 2)),
		node(syntax.EOI, 2, 2),
	)
	program, err := buildProgram(src, root)

	var unexpected errors.UnexpectedNode
	be.True(t, goerrors.As(err, &unexpected))
	be.Equal(t, unexpected.Parent, syntax.PROGRAM)
	be.True(t, program == nil)
}

func TestBuildProgramNeedsEOI(t *testing.T) {
	src := syntax.NewSource("test.tm", "")
	_, err := buildProgram(src, node(syntax.PROGRAM, 0, 0))

	var missing errors.MissingChild
	be.True(t, goerrors.As(err, &missing))
	be.Equal(t, missing.Expected, "EOI")
}

func TestBuildProgramRejectsNodesAfterEOI(t *testing.T) {
	src := syntax.NewSource("test.tm", "a = 1")
	root := node(syntax.PROGRAM, 0, 5,
		node(syntax.EOI, 0, 0),
		node(syntax.ASSIGNMENT, 0, 5,
			node(syntax.IDENTIFIER, 0, 1),
			node(syntax.EXPRESSION, 4, 5, node(syntax.NUMBER, 4, 5)),
		),
	)
	_, err := buildProgram(src, root)

	var unexpected errors.UnexpectedNode
	be.True(t, goerrors.As(err, &unexpected))
	be.Equal(t, unexpected.Got, syntax.ASSIGNMENT)
}
