// File: cmd/fifofile/internal/cmd/read.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maruel/subcommands"

	"github.com/momentics/hioload-fifo/facade"
	"github.com/momentics/hioload-fifo/reader"
)

// Read subcommand: stream a FIFO to stdout until interrupted.
var Read = &subcommands.Command{
	UsageLine: "read [flags] PATH",
	ShortDesc: "Stream lines or chunks from a FIFO to stdout.",
	LongDesc: `Stream lines or chunks from a FIFO to stdout.

The FIFO is reopened whenever its writer disconnects, so any number of
writers may come and go. SIGINT or SIGTERM stops reading within one
polling timeout.`,
	CommandRun: func() subcommands.CommandRun {
		c := &readRun{}
		c.registerCommonFlags()
		c.Flags.BoolVar(&c.keepNewline, "keep-newline", false, "Keep the trailing newline of each line.")
		c.Flags.IntVar(&c.chunk, "chunk", 0, "Emit fixed-size chunks of this many bytes instead of lines.")
		c.Flags.IntVar(&c.count, "count", 0, "Stop after this many items (0 = unlimited).")
		return c
	},
}

type readRun struct {
	commonRun

	keepNewline bool
	chunk       int
	count       int
}

func (c *readRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.innerRun(a, args, env); err != nil {
		fmt.Fprintf(a.GetErr(), "%s\n", err)
		return 1
	}
	return 0
}

func (c *readRun) innerRun(a subcommands.Application, args []string, env subcommands.Env) error {
	cfg, err := c.config(args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	f, err := facade.New(cfg, facade.WithLogger(logger))
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigs)
		close(done)
	}()
	go func() {
		for {
			select {
			case sig := <-sigs:
				logger.WithField("signal", sig.String()).Info("[fifofile] stopping")
				f.StopReading()
			case <-done:
				return
			}
		}
	}()

	var seq *reader.Sequence
	if c.chunk > 0 {
		seq, err = f.Read(c.chunk)
	} else {
		seq, err = f.ReadLines(!c.keepNewline)
	}
	if err != nil {
		return err
	}
	defer seq.Close()

	logger.WithField("path", cfg.Path).Info("[fifofile] reading")
	out := a.GetOut()
	n := 0
	for seq.Next() {
		if c.chunk > 0 || c.keepNewline {
			fmt.Fprint(out, seq.Text())
		} else {
			fmt.Fprintln(out, seq.Text())
		}
		n++
		if c.count > 0 && n >= c.count {
			break
		}
	}
	return seq.Err()
}
