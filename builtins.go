package main

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerStrategy emits the IR for one call of a builtin whose arguments have
// already been lowered.
type lowerStrategy func(c *ctx, b *ir.Block, bi builtin, args []value.Value) (value.Value, error)

type builtin struct {
	Name      string
	Arity     int
	Signature *types.FuncType
	Lower     lowerStrategy
}

func builtinTable() (ret map[string]builtin) {
	ret = make(map[string]builtin)

	funcs := []func() builtin{
		addAdd,
	}
	for _, fn := range funcs {
		bi := fn()
		ret[bi.Name] = bi
	}

	return
}

// importedCall declares the builtin as an external function, once per module,
// and calls it.
func importedCall(c *ctx, b *ir.Block, bi builtin, args []value.Value) (value.Value, error) {
	fn, err := c.module.declareImport(bi.Name, bi.Signature)
	if err != nil {
		return nil, err
	}

	call := b.NewCall(fn, args...)
	call.CallingConv = c.module.target.CallingConv
	return call, nil
}

func addAdd() builtin {
	return builtin{
		Name:      "add",
		Arity:     2,
		Signature: types.NewFunc(types.I64, types.I64, types.I64),
		Lower:     importedCall,
	}
}
