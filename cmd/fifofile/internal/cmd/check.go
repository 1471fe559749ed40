// File: cmd/fifofile/internal/cmd/check.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/momentics/hioload-fifo/fifo"
)

// Check subcommand: exit 0 when PATH is a FIFO.
var Check = &subcommands.Command{
	UsageLine: "check PATH",
	ShortDesc: "Report whether PATH is a FIFO.",
	LongDesc:  "Report whether PATH is a FIFO. Exits 0 for a FIFO, 1 otherwise.",
	CommandRun: func() subcommands.CommandRun {
		return &checkRun{}
	},
}

type checkRun struct {
	subcommands.CommandRunBase
}

func (c *checkRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) != 1 {
		fmt.Fprintf(a.GetErr(), "expected exactly one PATH\n")
		return 1
	}
	if !fifo.IsFifo(args[0]) {
		fmt.Fprintf(a.GetOut(), "%s is not a fifo\n", args[0])
		return 1
	}
	fmt.Fprintf(a.GetOut(), "%s is a fifo\n", args[0])
	return 0
}
