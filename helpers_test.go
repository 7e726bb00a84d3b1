package main

import (
	"os/exec"
	"testing"

	"github.com/nalgeon/be"

	"github.com/pontaoski/tempo/parser"
	"github.com/pontaoski/tempo/syntax"
	"github.com/pontaoski/tempo/target"
)

const testTriple = "x86_64-unknown-linux-gnu"

func testSettings(t *testing.T) settings {
	t.Helper()
	d, err := target.Lookup(testTriple)
	be.Err(t, err, nil)
	return settings{symbol: defaultSymbol, target: d, clang: "clang"}
}

func nativeSettings(t *testing.T) settings {
	t.Helper()
	d, err := target.Native()
	if err != nil {
		t.Skip(err)
	}
	return settings{symbol: defaultSymbol, target: d, clang: requireClang(t)}
}

func requireClang(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("clang")
	if err != nil {
		t.Skip("clang not found")
	}
	return path
}

func mustBuild(t *testing.T, text string) (*syntax.Source, *Program) {
	t.Helper()
	src := syntax.NewSource("test.tm", text)
	root, err := parser.Parse(src)
	be.Err(t, err, nil)
	program, err := buildProgram(src, root)
	be.Err(t, err, nil)
	return src, program
}
