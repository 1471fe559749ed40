// File: cmd/fifofile/internal/cmd/write.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/maruel/subcommands"

	"github.com/momentics/hioload-fifo/fifo"
)

// Write subcommand: write lines to a FIFO.
var Write = &subcommands.Command{
	UsageLine: "write [flags] PATH LINE...",
	ShortDesc: "Write lines to a FIFO.",
	LongDesc: `Write lines to a FIFO.

Each LINE is written through its own write handle with a trailing newline.
The command waits for a reader to attach, up to -timeout seconds.`,
	CommandRun: func() subcommands.CommandRun {
		c := &writeRun{}
		c.Flags.Float64Var(&c.timeout, "timeout", 0, "Seconds to wait for a reader (0 = forever).")
		c.Flags.BoolVar(&c.noFlush, "no-flush", false, "Do not flush explicitly before closing.")
		return c
	},
}

type writeRun struct {
	subcommands.CommandRunBase

	timeout float64
	noFlush bool
}

func (c *writeRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.innerRun(a, args, env); err != nil {
		fmt.Fprintf(a.GetErr(), "%s\n", err)
		return 1
	}
	return 0
}

func (c *writeRun) innerRun(a subcommands.Application, args []string, env subcommands.Env) error {
	if len(args) < 2 {
		return fmt.Errorf("expected PATH and at least one LINE")
	}
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.timeout*float64(time.Second)))
		defer cancel()
	}
	path := args[0]
	for _, line := range args[1:] {
		if err := fifo.WriteLine(ctx, path, line, !c.noFlush); err != nil {
			return err
		}
	}
	return nil
}
