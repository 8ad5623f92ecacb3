// Package app is the ligysis batch runner: every segment of one or more
// manifests through binding-site clustering, conservation and missense
// enrichment.
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ligysis/internal/appcore"
	"ligysis/internal/cli"
	"ligysis/internal/clibase"
	"ligysis/internal/cmdutil"
	"ligysis/internal/input"
	"ligysis/internal/store"
	"ligysis/internal/version"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("ligysis")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "ligysis version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	var entries []input.Entry
	seen := make(map[string]string)
	for _, m := range opts.Manifests {
		list, err := input.LoadManifest(m)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return cmdutil.ExitUsage
		}
		for _, e := range list {
			if prev, dup := seen[e.Segment]; dup {
				_, _ = fmt.Fprintf(stderr, "segment %s listed in both %s and %s\n", e.Segment, prev, m)
				return cmdutil.ExitUsage
			}
			seen[e.Segment] = m
		}
		entries = append(entries, list...)
	}

	core := appcore.Options{
		Config:           opts.Config,
		Threads:          opts.Threads,
		Strict:           opts.Strict,
		Quiet:            opts.Quiet,
		NoResultExitCode: opts.NoResultExitCode,
	}
	if opts.PGDSN != "" {
		st, err := store.Open(parent, opts.PGDSN)
		if err != nil {
			return cmdutil.Fail(stderr, err)
		}
		defer st.Close()
		if err := st.Migrate(parent); err != nil {
			return cmdutil.Fail(stderr, err)
		}
		run, err := st.NewRun(parent, store.RunFor(opts.Config))
		if err != nil {
			return cmdutil.Fail(stderr, err)
		}
		if !opts.Quiet {
			_, _ = fmt.Fprintf(stderr, "run %s\n", run.ID)
		}
		core.Store, core.RunID = st, run.ID
	}

	writer := appcore.NewSegmentWriterFactory(opts.Output, opts.Sort, opts.Header)
	return appcore.Run(parent, stdout, stderr, core, entries, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
