package main

import (
	"os"

	"github.com/coreos/pkg/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/tempo", "tempo")

func setupLogging(verbose bool) {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, verbose))
	if verbose {
		capnslog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		capnslog.SetGlobalLogLevel(capnslog.NOTICE)
	}
}
