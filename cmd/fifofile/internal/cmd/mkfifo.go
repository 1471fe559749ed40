// File: cmd/fifofile/internal/cmd/mkfifo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/momentics/hioload-fifo/fifo"
)

// Mkfifo subcommand: create a FIFO node.
var Mkfifo = &subcommands.Command{
	UsageLine: "mkfifo [flags] PATH",
	ShortDesc: "Create a FIFO.",
	LongDesc: `Create a FIFO.

An existing PATH is left untouched unless -exclusive is set, in which case
the command fails.`,
	CommandRun: func() subcommands.CommandRun {
		c := &mkfifoRun{}
		c.Flags.StringVar(&c.mode, "mode", fifo.DefaultMode, "Octal permission mode.")
		c.Flags.BoolVar(&c.exclusive, "exclusive", false, "Fail if PATH already exists.")
		return c
	},
}

type mkfifoRun struct {
	subcommands.CommandRunBase

	mode      string
	exclusive bool
}

func (c *mkfifoRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.innerRun(a, args, env); err != nil {
		fmt.Fprintf(a.GetErr(), "%s\n", err)
		return 1
	}
	return 0
}

func (c *mkfifoRun) innerRun(a subcommands.Application, args []string, env subcommands.Env) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one PATH")
	}
	created, err := fifo.CreateNode(args[0], c.mode, c.exclusive)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(a.GetOut(), "created %s\n", args[0])
	} else {
		fmt.Fprintf(a.GetOut(), "%s already exists\n", args[0])
	}
	return nil
}
