// Package serveapp is ligysis-serve, the HTTP front end of the engines.
package serveapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"

	"ligysis/internal/clibase"
	"ligysis/internal/cmdutil"
	"ligysis/internal/runutil"
	"ligysis/internal/servecli"
	"ligysis/internal/server"
	"ligysis/internal/store"
	"ligysis/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return runContext(parent, argv, stdout, stderr, nil)
}

// runContext serves on ln when given, otherwise on --addr.
func runContext(parent context.Context, argv []string, stdout, stderr io.Writer, ln net.Listener) int {
	outw := bufio.NewWriter(stdout)

	fs := servecli.NewFlagSet("ligysis-serve")
	fs.SetOutput(io.Discard)

	opts, err := servecli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			servecli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitUsage)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ligysis-serve version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	cmdutil.Warnings(stderr, opts.Quiet, "", runutil.ThresholdWarnings(opts.Config))

	var st server.Store
	if opts.PGDSN != "" {
		pg, err := store.Open(parent, opts.PGDSN)
		if err != nil {
			return cmdutil.Fail(stderr, err)
		}
		defer pg.Close()
		if err := pg.Migrate(parent); err != nil {
			return cmdutil.Fail(stderr, err)
		}
		st = pg
	}

	srv := server.New(opts.Config, opts.Server, st)
	if ln != nil {
		err = srv.Serve(parent, ln)
	} else {
		err = srv.ListenAndServe(parent)
	}
	// a signal is the normal way to stop the service
	if errors.Is(err, context.Canceled) {
		return cmdutil.ExitOK
	}
	return cmdutil.Fail(stderr, err)
}
