package main

import (
	"os"

	"github.com/idilsaglam/tasks/internal/cli"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
