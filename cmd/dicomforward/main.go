package main

import (
	"os"

	"github.com/go-radx/dicomforward/cmd/dicomforward/internal/cli"
)

// version, commit, and date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Run(version, commit, date); err != nil {
		os.Exit(1)
	}
}
