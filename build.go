package main

import (
	"fmt"
	"strconv"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/parser"
	"github.com/pontaoski/tempo/syntax"
)

// builder converts a tagged parse tree into the AST. Every method checks the
// node kind before looking at its children.
type builder struct {
	src *syntax.Source
}

// children walks a node's children in order.
type children struct {
	parent *parser.Node
	idx    int
}

func (c *children) peek() *parser.Node {
	if c.idx >= len(c.parent.Children) {
		return nil
	}
	return c.parent.Children[c.idx]
}

func (c *children) next() *parser.Node {
	n := c.peek()
	if n != nil {
		c.idx++
	}
	return n
}

func (b builder) expectKind(n *parser.Node, kind syntax.NodeKind) error {
	if n.Kind != kind {
		return errors.ExpectedKindGotKind{
			Expected: kind,
			Got:      n.Kind,
			Text:     n.Text(b.src),
			Location: b.src.Locate(n.Span),
		}
	}
	return nil
}

func (b builder) nextOrErr(c *children, expected string) (*parser.Node, error) {
	n := c.next()
	if n == nil {
		return nil, errors.MissingChild{
			Parent:   c.parent.Kind,
			Expected: expected,
			Location: b.src.Locate(c.parent.Span),
		}
	}
	return n, nil
}

func (b builder) unexpected(parent, n *parser.Node) error {
	return errors.UnexpectedNode{
		Parent:   parent.Kind,
		Got:      n.Kind,
		Text:     n.Text(b.src),
		Location: b.src.Locate(n.Span),
	}
}

func (b builder) buildIdentifier(n *parser.Node) (Identifier, error) {
	if err := b.expectKind(n, syntax.IDENTIFIER); err != nil {
		return Identifier{}, err
	}
	return Identifier{Name: n.Text(b.src), Span: n.Span}, nil
}

func (b builder) buildNumber(n *parser.Node) (Number, error) {
	if err := b.expectKind(n, syntax.NUMBER); err != nil {
		return Number{}, err
	}
	text := n.Text(b.src)
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		reason := "not a decimal integer"
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			reason = "out of range for a 64-bit integer"
		}
		return Number{}, errors.InvalidNumber{
			Text:     text,
			Reason:   reason,
			Location: b.src.Locate(n.Span),
		}
	}
	return Number{Value: value, Span: n.Span}, nil
}

func (b builder) buildFunctionCall(n *parser.Node) (FunctionCall, error) {
	if err := b.expectKind(n, syntax.FUNCTION_CALL); err != nil {
		return FunctionCall{}, err
	}
	c := &children{parent: n}

	identNode, err := b.nextOrErr(c, "function_call identifier")
	if err != nil {
		return FunctionCall{}, err
	}
	function, err := b.buildIdentifier(identNode)
	if err != nil {
		return FunctionCall{}, err
	}

	argsNode, err := b.nextOrErr(c, "function_call arguments")
	if err != nil {
		return FunctionCall{}, err
	}
	if err := b.expectKind(argsNode, syntax.FUNCTION_ARGUMENTS); err != nil {
		return FunctionCall{}, err
	}
	if extra := c.next(); extra != nil {
		return FunctionCall{}, b.unexpected(n, extra)
	}

	arguments := []Expression{}
	for i, argNode := range argsNode.Children {
		arg, err := b.buildExpression(argNode)
		if err != nil {
			return FunctionCall{}, fmt.Errorf("argument %d of %q: %w", i+1, function.Name, err)
		}
		arguments = append(arguments, arg)
	}

	return FunctionCall{
		Function:  function,
		Arguments: arguments,
		Span:      n.Span,
	}, nil
}

func (b builder) buildFunctionDefinition(n *parser.Node) (FunctionDefinition, error) {
	if err := b.expectKind(n, syntax.FUNCTION_DEFINITION); err != nil {
		return FunctionDefinition{}, err
	}
	c := &children{parent: n}

	parameters := []Identifier{}
	if next := c.peek(); next != nil && next.Kind == syntax.IDENT_LIST {
		c.next()
		for _, identNode := range next.Children {
			param, err := b.buildIdentifier(identNode)
			if err != nil {
				return FunctionDefinition{}, fmt.Errorf("parameter list: %w", err)
			}
			parameters = append(parameters, param)
		}
	}

	bodyNode, err := b.nextOrErr(c, "function_definition body expression")
	if err != nil {
		return FunctionDefinition{}, err
	}
	body, err := b.buildExpression(bodyNode)
	if err != nil {
		return FunctionDefinition{}, fmt.Errorf("function body: %w", err)
	}
	if extra := c.next(); extra != nil {
		return FunctionDefinition{}, b.unexpected(n, extra)
	}

	return FunctionDefinition{
		Parameters: parameters,
		Body:       body,
		Span:       n.Span,
	}, nil
}

func (b builder) buildBlock(n *parser.Node) (Block, error) {
	if err := b.expectKind(n, syntax.BLOCK); err != nil {
		return Block{}, err
	}
	c := &children{parent: n}

	assignments := []Assignment{}
	for next := c.peek(); next != nil && next.Kind == syntax.ASSIGNMENT; next = c.peek() {
		c.next()
		assignment, err := b.buildAssignment(next)
		if err != nil {
			return Block{}, err
		}
		assignments = append(assignments, assignment)
	}

	exprNode, err := b.nextOrErr(c, "expression after assignments")
	if err != nil {
		return Block{}, err
	}
	expr, err := b.buildExpression(exprNode)
	if err != nil {
		return Block{}, fmt.Errorf("block result: %w", err)
	}

	if extra := c.next(); extra != nil {
		return Block{}, b.unexpected(n, extra)
	}

	return Block{
		Assignments: assignments,
		Expression:  expr,
		Span:        n.Span,
	}, nil
}

var expressionKinds = []syntax.NodeKind{
	syntax.NUMBER,
	syntax.IDENTIFIER,
	syntax.FUNCTION_CALL,
	syntax.FUNCTION_DEFINITION,
	syntax.BLOCK,
}

func (b builder) buildExpression(n *parser.Node) (Expression, error) {
	if err := b.expectKind(n, syntax.EXPRESSION); err != nil {
		return nil, err
	}
	c := &children{parent: n}

	inner, err := b.nextOrErr(c, "one of "+fmt.Sprint(expressionKinds))
	if err != nil {
		return nil, err
	}
	if extra := c.next(); extra != nil {
		return nil, b.unexpected(n, extra)
	}

	switch inner.Kind {
	case syntax.NUMBER:
		num, err := b.buildNumber(inner)
		if err != nil {
			return nil, err
		}
		return NumberLiteral(num), nil
	case syntax.IDENTIFIER:
		ident, err := b.buildIdentifier(inner)
		if err != nil {
			return nil, err
		}
		return IdentifierRef(ident), nil
	case syntax.FUNCTION_CALL:
		return b.buildFunctionCall(inner)
	case syntax.FUNCTION_DEFINITION:
		return b.buildFunctionDefinition(inner)
	case syntax.BLOCK:
		return b.buildBlock(inner)
	}

	return nil, errors.ExpectedOneOfKindGotKind{
		Expected: expressionKinds,
		Got:      inner.Kind,
		Text:     inner.Text(b.src),
		Location: b.src.Locate(inner.Span),
	}
}

func (b builder) buildAssignment(n *parser.Node) (Assignment, error) {
	if err := b.expectKind(n, syntax.ASSIGNMENT); err != nil {
		return Assignment{}, err
	}
	c := &children{parent: n}

	identNode, err := b.nextOrErr(c, "assignment identifier")
	if err != nil {
		return Assignment{}, err
	}
	ident, err := b.buildIdentifier(identNode)
	if err != nil {
		return Assignment{}, err
	}

	exprNode, err := b.nextOrErr(c, "assignment expression")
	if err != nil {
		return Assignment{}, fmt.Errorf("assignment %q: %w", ident.Name, err)
	}
	expr, err := b.buildExpression(exprNode)
	if err != nil {
		return Assignment{}, fmt.Errorf("assignment %q: %w", ident.Name, err)
	}
	if extra := c.next(); extra != nil {
		return Assignment{}, b.unexpected(n, extra)
	}

	return Assignment{
		Identifier: ident,
		Expression: expr,
		Span:       n.Span,
	}, nil
}

func (b builder) buildProgram(n *parser.Node) (*Program, error) {
	if err := b.expectKind(n, syntax.PROGRAM); err != nil {
		return nil, err
	}
	c := &children{parent: n}

	p := &Program{Span: n.Span}
	for {
		child, err := b.nextOrErr(c, "EOI")
		if err != nil {
			return nil, err
		}

		switch child.Kind {
		case syntax.ASSIGNMENT:
			assignment, err := b.buildAssignment(child)
			if err != nil {
				return nil, err
			}
			p.Assignments = append(p.Assignments, assignment)
		case syntax.EOI:
			if extra := c.next(); extra != nil {
				return nil, b.unexpected(n, extra)
			}
			return p, nil
		default:
			return nil, b.unexpected(n, child)
		}
	}
}

func buildProgram(src *syntax.Source, root *parser.Node) (*Program, error) {
	return builder{src: src}.buildProgram(root)
}
