package main

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/syntax"
)

// ctx is the state of one lowering run. names is a stack of scopes searched
// innermost first; today only the entry function's scope, holding its
// parameter, is ever pushed.
type ctx struct {
	src      *syntax.Source
	module   *objectModule
	builtins map[string]builtin
	names    []map[string]value.Value
}

func newCtx(src *syntax.Source, module *objectModule) *ctx {
	return &ctx{
		src:      src,
		module:   module,
		builtins: builtinTable(),
	}
}

func (c *ctx) pushScope() {
	c.names = append(c.names, make(map[string]value.Value))
}

func (c *ctx) popScope() {
	c.names = c.names[:len(c.names)-1]
}

func (c *ctx) top() map[string]value.Value {
	return c.names[len(c.names)-1]
}

func (c *ctx) lookup(id Identifier) (value.Value, bool) {
	for i := len(c.names) - 1; i >= 0; i-- {
		val, ok := c.names[i][id.Name]
		if ok {
			return val, true
		}
	}
	return nil, false
}

func (c *ctx) locate(e Expression) syntax.Location {
	return c.src.Locate(spanOf(e))
}

func lowerExpression(c *ctx, e Expression, b *ir.Block) (value.Value, error) {
	switch expr := e.(type) {
	case NumberLiteral:
		return constant.NewInt(types.I64, expr.Value), nil
	case IdentifierRef:
		v, ok := c.lookup(Identifier(expr))
		if !ok {
			return nil, errors.UndefinedIdentifier{
				Name:     expr.Name,
				Location: c.src.Locate(expr.Span),
			}
		}
		return v, nil
	case FunctionCall:
		return lowerCall(c, expr, b)
	case Block:
		if len(expr.Assignments) > 0 {
			return nil, errors.Unsupported{
				What:     "local bindings not yet supported",
				Location: c.src.Locate(expr.Assignments[0].Span),
			}
		}
		return lowerExpression(c, expr.Expression, b)
	case FunctionDefinition:
		return nil, errors.Unsupported{
			What:     "nested function definitions unsupported",
			Location: c.locate(expr),
		}
	}

	panic("unhandled expression variant " + kindOf(e))
}

func lowerCall(c *ctx, call FunctionCall, b *ir.Block) (value.Value, error) {
	bi, ok := c.builtins[call.Function.Name]
	if !ok {
		return nil, errors.UnsupportedCallee{
			Name:     call.Function.Name,
			Location: c.src.Locate(call.Function.Span),
		}
	}

	if len(call.Arguments) != bi.Arity {
		return nil, errors.WrongArgumentCount{
			Name:     bi.Name,
			Expected: bi.Arity,
			Got:      len(call.Arguments),
			Location: c.src.Locate(call.Span),
		}
	}

	args := make([]value.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		v, err := lowerExpression(c, arg, b)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return bi.Lower(c, b, bi, args)
}

// lowerEntry builds the exported function for the resolved entry binding.
func lowerEntry(c *ctx, e entry, symbol string) (*ir.Func, error) {
	fn, err := c.module.declareExport(symbol, e.Parameter.Name)
	if err != nil {
		return nil, err
	}

	bloc := fn.NewBlock("")

	c.pushScope()
	defer c.popScope()
	c.top()[e.Parameter.Name] = fn.Params[0]

	plog.Debugf("lowering %s = %s", entryName, e.Binding.Expression)
	retValue, err := lowerExpression(c, e.Body, bloc)
	if err != nil {
		return nil, err
	}

	bloc.NewRet(retValue)
	return fn, nil
}
