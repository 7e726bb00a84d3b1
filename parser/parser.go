// Package parser turns source text into the tagged parse tree consumed by the
// AST builder. The grammar itself lives in grammar.go and is driven by
// participle; this file only converts its output into Nodes.
package parser

import (
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/syntax"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/tempo", "parser")

var grammar = participle.MustBuild(&program{}, participle.Lexer(tokens), participle.UseLookahead(2))

// Node is one tagged parse tree node.
type Node struct {
	Kind     syntax.NodeKind
	Span     syntax.Span
	Children []*Node
}

func (n *Node) Text(src *syntax.Source) string {
	return src.Text(n.Span)
}

// Parse parses the whole source. The returned program node always ends with an
// EOI child.
func Parse(src *syntax.Source) (*Node, error) {
	var ast program
	if err := grammar.ParseString(src.String(), &ast); err != nil {
		return nil, convertError(src, err)
	}

	c := converter{src: src}
	root := &Node{Kind: syntax.PROGRAM, Span: syntax.Span{Start: 0, End: src.Len()}}
	for _, a := range ast.Assignments {
		root.Children = append(root.Children, c.assignment(a))
	}
	root.Children = append(root.Children, &Node{
		Kind: syntax.EOI,
		Span: syntax.Span{Start: src.Len(), End: src.Len()},
	})

	plog.Debugf("parsed %s: %d top-level bindings", src.Filename, len(ast.Assignments))
	return root, nil
}

func convertError(src *syntax.Source, err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		return errors.ParseError{
			Message:  err.Error(),
			Location: src.Locate(syntax.Span{}),
		}
	}
	offset := perr.Token().Pos.Offset
	return errors.ParseError{
		Message:  perr.Message(),
		Location: src.Locate(syntax.Span{Start: offset, End: offset}),
	}
}

type converter struct {
	src *syntax.Source
}

// span computes the extent of a node from participle's start and end positions.
// The end position may point past trailing whitespace, so it is trimmed, and
// it never ends before the last child.
func (c converter) span(pos, end lexer.Position, children ...*Node) syntax.Span {
	s := syntax.Span{Start: pos.Offset, End: end.Offset}
	if s.End > s.Start {
		s.End = s.Start + len(strings.TrimRight(c.src.Text(s), " \t\r\n"))
	} else {
		s.End = s.Start
	}
	for _, child := range children {
		if child.Span.End > s.End {
			s.End = child.Span.End
		}
	}
	return s
}

func (c converter) assignment(a *assignment) *Node {
	name := c.identifier(a.Name)
	value := c.expression(a.Value)
	return &Node{
		Kind:     syntax.ASSIGNMENT,
		Span:     c.span(a.Pos, a.EndPos, name, value),
		Children: []*Node{name, value},
	}
}

func (c converter) identifier(i *identifier) *Node {
	return &Node{
		Kind: syntax.IDENTIFIER,
		Span: syntax.Span{Start: i.Pos.Offset, End: i.Pos.Offset + len(i.Name)},
	}
}

func (c converter) number(n *number) *Node {
	return &Node{
		Kind: syntax.NUMBER,
		Span: syntax.Span{Start: n.Pos.Offset, End: n.Pos.Offset + len(n.Digits)},
	}
}

func (c converter) expression(e *expression) *Node {
	var inner *Node
	switch {
	case e.Definition != nil:
		inner = c.functionDefinition(e.Definition)
	case e.Block != nil:
		inner = c.block(e.Block)
	case e.Call != nil:
		inner = c.functionCall(e.Call)
	case e.Number != nil:
		inner = c.number(e.Number)
	case e.Identifier != nil:
		inner = c.identifier(e.Identifier)
	default:
		return &Node{Kind: syntax.EXPRESSION, Span: c.span(e.Pos, e.EndPos)}
	}
	return &Node{
		Kind:     syntax.EXPRESSION,
		Span:     inner.Span,
		Children: []*Node{inner},
	}
}

func (c converter) functionCall(f *functionCall) *Node {
	callee := c.identifier(f.Callee)
	args := &Node{Kind: syntax.FUNCTION_ARGUMENTS}
	for _, arg := range f.Arguments {
		args.Children = append(args.Children, c.expression(arg))
	}
	span := c.span(f.Pos, f.EndPos, callee)
	args.Span = syntax.Span{Start: callee.Span.End, End: span.End}
	for _, arg := range args.Children {
		args.Span = args.Span.Cover(arg.Span)
	}
	span = span.Cover(args.Span)

	return &Node{
		Kind:     syntax.FUNCTION_CALL,
		Span:     span,
		Children: []*Node{callee, args},
	}
}

func (c converter) functionDefinition(f *functionDefinition) *Node {
	n := &Node{Kind: syntax.FUNCTION_DEFINITION}
	if len(f.Parameters) > 0 {
		params := &Node{Kind: syntax.IDENT_LIST}
		for _, p := range f.Parameters {
			params.Children = append(params.Children, c.identifier(p))
		}
		params.Span = params.Children[0].Span.Cover(params.Children[len(params.Children)-1].Span)
		n.Children = append(n.Children, params)
	}
	body := c.expression(f.Body)
	n.Children = append(n.Children, body)
	n.Span = c.span(f.Pos, f.EndPos, body)
	return n
}

func (c converter) block(b *block) *Node {
	n := &Node{Kind: syntax.BLOCK}
	for _, a := range b.Assignments {
		n.Children = append(n.Children, c.assignment(a))
	}
	n.Children = append(n.Children, c.expression(b.Result))
	n.Span = c.span(b.Pos, b.EndPos, n.Children...)
	return n
}
