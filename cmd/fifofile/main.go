// File: cmd/fifofile/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Command fifofile reads from, writes to, creates and checks named pipes.
package main

import (
	"os"

	"github.com/maruel/subcommands"

	"github.com/momentics/hioload-fifo/cmd/fifofile/internal/cmd"
)

func getApplication() *subcommands.DefaultApplication {
	return &subcommands.DefaultApplication{
		Name:  "fifofile",
		Title: "A tool for reading and writing named pipes that outlive their writers.",
		Commands: []*subcommands.Command{
			subcommands.CmdHelp,

			cmd.Read,
			cmd.Write,
			cmd.Mkfifo,
			cmd.Check,
		},
	}
}

func main() {
	os.Exit(subcommands.Run(getApplication(), nil))
}
