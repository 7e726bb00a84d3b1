package main

import (
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/tempo/parser"
	"github.com/pontaoski/tempo/syntax"
	"github.com/pontaoski/tempo/target"
)

// defaultSymbol is the name the C harness calls.
const defaultSymbol = "tempo_entry"

type settings struct {
	symbol string
	target target.Description
	clang  string
}

// compileModule runs every stage up to a finished IR module. Nothing is reused
// between calls.
func compileModule(src *syntax.Source, s settings) (*objectModule, *Program, error) {
	root, err := parser.Parse(src)
	if err != nil {
		return nil, nil, tracerr.Wrap(err)
	}

	program, err := buildProgram(src, root)
	if err != nil {
		return nil, nil, tracerr.Wrap(err)
	}
	plog.Debugf("built %d top-level bindings", len(program.Assignments))

	e, err := resolveEntry(src, program)
	if err != nil {
		return nil, program, tracerr.Wrap(err)
	}

	module := newObjectModule(s.target)
	c := newCtx(src, module)
	if _, err := lowerEntry(c, e, s.symbol); err != nil {
		return nil, program, tracerr.Wrap(err)
	}

	return module, program, nil
}

// compileObject compiles src to relocatable object bytes.
func compileObject(src *syntax.Source, s settings) ([]byte, error) {
	module, _, err := compileModule(src, s)
	if err != nil {
		return nil, err
	}

	obj, err := module.serialize(s.clang)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	plog.Debugf("emitted %d bytes for %s", len(obj), s.target.Triple)
	return obj, nil
}
