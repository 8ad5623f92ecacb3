// Package sitesapp is ligysis-sites: ligand fingerprints in, binding sites out.
package sitesapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"ligysis-core/fingerprint"
	"ligysis-core/sites"
	"ligysis/internal/clibase"
	"ligysis/internal/cmdutil"
	"ligysis/internal/input"
	"ligysis/internal/output"
	"ligysis/internal/runutil"
	"ligysis/internal/sitescli"
	"ligysis/internal/version"
	"ligysis/internal/writers"
	"ligysis/pkg/api"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := sitescli.NewFlagSet("ligysis-sites")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = sitescli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	opts, err := sitescli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			sitescli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "ligysis-sites version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	cmdutil.Warnings(stderr, opts.Quiet, "", runutil.ThresholdWarnings(opts.Config))
	cfg := opts.Config.Sites()

	var (
		list  []api.SitesV1
		total int
	)
	for _, path := range opts.Fingerprints {
		if err := parent.Err(); err != nil {
			return cmdutil.Fail(stderr, err)
		}
		name := opts.Segment
		if name == "" {
			name = input.SegmentName(path)
		}
		fps, err := input.LoadFingerprints(path)
		if err != nil {
			return cmdutil.Fail(stderr, err)
		}
		kept, dropped := fingerprint.Filter(fps)
		var warns []string
		for _, id := range dropped {
			warns = append(warns, fmt.Sprintf("ligand %s has no contact residues; dropped", id))
		}
		var res sites.Result
		if len(kept) > 0 {
			if res, err = sites.Cluster(kept, cfg); err != nil {
				return cmdutil.Fail(stderr, fmt.Errorf("%s: %w", name, err))
			}
		}
		cmdutil.Warnings(stderr, opts.Quiet, name, warns)
		cmdutil.Statusf(stderr, opts.Quiet, name, "ok", "%d ligands, %d sites", len(kept), len(res.Sites))
		list = append(list, output.ToAPISites(name, res, cfg, warns))
		total += len(res.Sites)
	}

	if opts.Sort {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Segment < list[j].Segment })
	}

	var werr error
	if opts.Membership && opts.Output == output.FormatText {
		werr = output.WriteMembershipText(outw, list, opts.Header)
	} else {
		werr = writers.WriteSites(opts.Output, outw, list, opts.Header)
	}
	if werr != nil && !writers.IsBrokenPipe(werr) {
		return cmdutil.Flush(outw, stderr, cmdutil.Fail(stderr, werr))
	}
	code := cmdutil.ExitOK
	if total == 0 {
		code = opts.NoResultExitCode
	}
	return cmdutil.Flush(outw, stderr, code)
}
