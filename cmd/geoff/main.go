package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SimonPurdie/geoff/internal/cli"
	"github.com/SimonPurdie/geoff/internal/logging"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	logging.ConfigureColor(os.Stdout)

	root := cli.NewRootCommand(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	os.Exit(cli.Execute(context.Background(), root, os.Args[1:]))
}
