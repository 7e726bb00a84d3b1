package main

import (
	"bytes"
	goerrors "errors"
	"os/exec"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/target"
)

// sourceFilename is recorded in every module instead of the input path so that
// identical programs produce identical objects.
const sourceFilename = "tempo"

var errEmptyObject = goerrors.New("backend produced an empty object")

type declaration struct {
	fn       *ir.Func
	exported bool
}

func describeLinkage(exported bool) string {
	if exported {
		return "export"
	}
	return "import"
}

// objectModule is an llir module bound to one target, plus the table of every
// symbol declared in it.
type objectModule struct {
	*ir.Module
	target target.Description
	decls  map[string]declaration
}

func newObjectModule(t target.Description) *objectModule {
	m := ir.NewModule()
	m.SourceFilename = sourceFilename
	m.TargetTriple = t.Triple
	plog.Debugf("target %s: %d-bit pointers, calling convention %s, PIC %t", t.Triple, t.PointerWidth, t.CallingConv, t.PIC)

	return &objectModule{
		Module: m,
		target: t,
		decls:  map[string]declaration{},
	}
}

// entrySignature is the native signature of the compiled entry point.
func entrySignature() *types.FuncType {
	return types.NewFunc(types.I64, types.I64)
}

// declare adds a function to the module. Only an import may be declared twice,
// and only with the same signature.
func (o *objectModule) declare(name string, sig *types.FuncType, exported bool, params []*ir.Param) (*ir.Func, error) {
	if existing, ok := o.decls[name]; ok {
		if !existing.exported && !exported && existing.fn.Sig.Equal(sig) {
			return existing.fn, nil
		}
		return nil, errors.ConflictingDeclaration{
			Name:     name,
			Existing: describeLinkage(existing.exported) + " " + existing.fn.Sig.String(),
			Wanted:   describeLinkage(exported) + " " + sig.String(),
		}
	}

	fn := o.NewFunc(name, sig.RetType, params...)
	if exported {
		fn.Linkage = enum.LinkageExternal
	}
	fn.CallingConv = o.target.CallingConv
	o.decls[name] = declaration{fn: fn, exported: exported}

	plog.Debugf("declared %s %s %s", describeLinkage(exported), name, sig)
	return fn, nil
}

// declareExport declares the one function the object defines. The caller adds
// its body.
func (o *objectModule) declareExport(name, paramName string) (*ir.Func, error) {
	sig := entrySignature()
	return o.declare(name, sig, true, []*ir.Param{ir.NewParam(paramName, sig.Params[0])})
}

// declareImport declares a function left for the linker to resolve. Declaring
// the same import twice returns the first declaration.
func (o *objectModule) declareImport(name string, sig *types.FuncType) (*ir.Func, error) {
	var params []*ir.Param
	for _, p := range sig.Params {
		params = append(params, ir.NewParam("", p))
	}
	return o.declare(name, sig, false, params)
}

func (o *objectModule) clangArgs() []string {
	args := []string{"-c", "-x", "ir", "-target", o.target.Triple}
	if o.target.PIC {
		args = append(args, "-fPIC")
	}
	return append(args, "-o", "-", "-")
}

// serialize hands the module to clang and returns the relocatable object it
// produces. Nothing touches the filesystem.
func (o *objectModule) serialize(clang string) ([]byte, error) {
	args := o.clangArgs()
	cmd := exec.Command(clang, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(o.String())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	plog.Debugf("running %s %s", clang, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, errors.BackendError{
			Command: clang,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	if stdout.Len() == 0 {
		return nil, errors.BackendError{
			Command: clang,
			Stderr:  stderr.String(),
			Err:     errEmptyObject,
		}
	}
	return stdout.Bytes(), nil
}
