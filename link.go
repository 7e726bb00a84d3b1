package main

import (
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/support"
)

// link writes obj to a scratch directory and links it with the C support
// sources into out. A shared library leaves out the harness.
func link(s settings, obj []byte, out string, shared bool) error {
	dir, err := ioutil.TempDir("", "tempo")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	objPath := filepath.Join(dir, "program.o")
	if err := ioutil.WriteFile(objPath, obj, 0644); err != nil {
		return err
	}

	sources, err := support.Files(dir, !shared)
	if err != nil {
		return err
	}

	cmd := exec.Command(s.clang, "-target", s.target.Triple, "-o", out)
	if shared {
		cmd.Args = append(cmd.Args, "-shared", "-fPIC")
	} else {
		cmd.Args = append(cmd.Args, "-DTEMPO_ENTRY="+s.symbol)
	}
	cmd.Args = append(cmd.Args, objPath)
	cmd.Args = append(cmd.Args, sources...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	plog.Infof("linking %s", out)
	plog.Debugf("running %s", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return errors.BackendError{
			Command: s.clang,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	return nil
}
