package syntax

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestLocate(t *testing.T) {
	src := NewSource("prog.tm", "a = 1\nmain = (x) ->\n  x\n")

	be.Equal(t, src.Position(0), Position{Line: 1, Column: 1, Filename: "prog.tm"})
	be.Equal(t, src.Position(6), Position{Line: 2, Column: 1, Filename: "prog.tm"})
	be.Equal(t, src.Position(22), Position{Line: 3, Column: 3, Filename: "prog.tm"})

	loc := src.Locate(Span{Start: 6, End: 10})
	be.Equal(t, loc.String(), "prog.tm:2:1-2:5")
}

func TestText(t *testing.T) {
	src := NewSource("", "main = add(x, 1)")

	be.Equal(t, src.Text(Span{Start: 7, End: 10}), "add")
	be.Equal(t, src.Text(Span{Start: 13, End: 99}), " 1)")
	be.Equal(t, src.Text(Span{Start: 5, End: 2}), "")
}

func TestCover(t *testing.T) {
	be.Equal(t, Span{Start: 3, End: 5}.Cover(Span{Start: 1, End: 4}), Span{Start: 1, End: 5})
	be.Equal(t, Span{Start: 3, End: 5}.Cover(Span{Start: 4, End: 9}), Span{Start: 3, End: 9})
}

func TestNodeKindString(t *testing.T) {
	be.Equal(t, FUNCTION_CALL.String(), "function_call")
	be.Equal(t, EOI.String(), "EOI")
	be.Equal(t, NodeKind(99).String(), "NodeKind(99)")
}

func TestPositionWithoutFilename(t *testing.T) {
	be.Equal(t, Position{Line: 1, Column: 2}.String(), "<unknown>:1:2")
}
