// Package reader loads a compiled program linked as a shared library and calls
// its entry point in-process.
package reader

/*
#include <stdint.h>

typedef int64_t (*tempo_entry_fn)(int64_t);

static int64_t tempo_call_entry(void *fn, int64_t arg) {
	return ((tempo_entry_fn)fn)(arg);
}
*/
import "C"

import (
	"unsafe"

	"github.com/coreos/pkg/dlopen"
)

type Entry struct {
	handle *dlopen.LibHandle
	sym    unsafe.Pointer
}

// Open loads the library at path and looks up symbol in it.
func Open(path, symbol string) (*Entry, error) {
	handle, err := dlopen.GetHandle([]string{path})
	if err != nil {
		return nil, err
	}

	sym, err := handle.GetSymbolPointer(symbol)
	if err != nil {
		handle.Close()
		return nil, err
	}

	return &Entry{handle: handle, sym: sym}, nil
}

func (e *Entry) Call(arg int64) int64 {
	return int64(C.tempo_call_entry(e.sym, C.int64_t(arg)))
}

func (e *Entry) Close() error {
	return e.handle.Close()
}
