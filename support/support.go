// Package support carries the C sources linked next to compiled programs.
package support

import (
	_ "embed"
	"io/ioutil"
	"path/filepath"
)

// Runtime implements every builtin the compiler imports.
//
//go:embed csrc/runtime.c
var Runtime []byte

// Harness is a main function that parses one integer argument, passes it to
// the entry point and prints the result.
//
//go:embed csrc/harness.c
var Harness []byte

// Files writes the runtime, and the harness when withHarness is set, into dir
// and returns their paths.
func Files(dir string, withHarness bool) ([]string, error) {
	sources := []struct {
		name string
		data []byte
	}{
		{"runtime.c", Runtime},
	}
	if withHarness {
		sources = append(sources, struct {
			name string
			data []byte
		}{"harness.c", Harness})
	}

	var paths []string
	for _, s := range sources {
		path := filepath.Join(dir, s.name)
		if err := ioutil.WriteFile(path, s.data, 0644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
