// Package consvarapp is ligysis-consvar: conservation and missense enrichment
// of one alignment, optionally merged with binding-site membership.
package consvarapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ligysis/internal/clibase"
	"ligysis/internal/cmdutil"
	"ligysis/internal/consvarcli"
	"ligysis/internal/input"
	"ligysis/internal/output"
	"ligysis/internal/runutil"
	"ligysis/internal/segment"
	"ligysis/internal/version"
	"ligysis/internal/writers"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := consvarcli.NewFlagSet("ligysis-consvar")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = consvarcli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	opts, err := consvarcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			consvarcli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "ligysis-consvar version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	cmdutil.Warnings(stderr, opts.Quiet, "", runutil.ThresholdWarnings(opts.Config))

	name := opts.Segment
	if name == "" {
		name = input.SegmentName(opts.Alignment)
	}
	in, err := segment.Load(input.Entry{
		Segment:      name,
		Fingerprints: opts.Fingerprints,
		Alignment:    opts.Alignment,
		Reference:    opts.Reference,
		Variants:     opts.Variants,
		RefStart:     opts.RefStart,
	})
	if err != nil {
		return cmdutil.Fail(stderr, err)
	}
	if err := parent.Err(); err != nil {
		return cmdutil.Fail(stderr, err)
	}
	res, err := segment.Run(in, segment.Options{
		Config:  opts.Config,
		Workers: runutil.EffectiveThreads(opts.Threads, 0),
		Strict:  opts.Strict,
	})
	if err != nil {
		return cmdutil.Fail(stderr, err)
	}
	cmdutil.Warnings(stderr, opts.Quiet, name, res.Warnings)

	rows := output.ToAPIRows(name, res.Rows)
	if opts.Sort {
		output.SortRows(rows)
	}
	if err := writers.WriteResidues(opts.Output, outw, rows, opts.Header); err != nil && !writers.IsBrokenPipe(err) {
		return cmdutil.Flush(outw, stderr, cmdutil.Fail(stderr, err))
	}
	code := cmdutil.ExitOK
	if len(rows) == 0 {
		code = opts.NoResultExitCode
	}
	return cmdutil.Flush(outw, stderr, code)
}
