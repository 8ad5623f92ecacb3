package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"ligysis/internal/clibase"
	"ligysis/internal/cliutil"
)

// Options is the ligysis command line: one or more manifests of segments.
type Options struct {
	clibase.Common

	// Manifests lists every manifest file: --manifest values, then positionals.
	Manifests []string
	// PGDSN enables persistence of every finished segment.
	PGDSN string
}

// NewFlagSet returns the ligysis flag set with its usage text installed.
func NewFlagSet(name string) *flag.FlagSet {
	fs := clibase.NewFlagSet(name)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] manifest.tsv [more.tsv ...]\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -m, --manifest file         Segment manifest (repeatable; globs allowed as positionals)")
		_, _ = fmt.Fprintln(out, "  Manifest columns: segment  fingerprints  alignment  reference  [variants|-]  [ref_start]")

		_, _ = fmt.Fprintln(out, "\nStorage:")
		_, _ = fmt.Fprintf(out, "      --pg-dsn string         PostgreSQL DSN; store every finished segment [%s]\n", def("pg-dsn"))
	})
	return fs
}

// Parse reads the process arguments.
func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("ligysis"), argv) }

// PrintExamples prints a quickstart for ligysis.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "ligysis", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Binding sites, conservation and missense enrichment for every segment of a manifest.")
		_, _ = fmt.Fprintln(w, "\nManifest (tab separated, paths relative to the manifest):")
		_, _ = fmt.Fprintln(w, "  P00533_1  P00533_1.fp.tsv  P00533_1.fa.gz  sp|P00533|EGFR_HUMAN/24-1210  P00533_1.var.tsv")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  ligysis \\")
		_, _ = fmt.Fprintln(w, "    --cut-height 0.5 --linkage average \\")
		_, _ = fmt.Fprintln(w, "    --output jsonl \\")
		_, _ = fmt.Fprintln(w, "    segments.tsv")
	})
}

// ParseArgs registers every flag on fs and parses argv.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	var manifests stringSlice
	fs.Var(&manifests, "manifest", "segment manifest file (repeatable)")
	fs.Var(&manifests, "m", "alias of --manifest")
	fs.StringVar(&o.PGDSN, "pg-dsn", "", "PostgreSQL DSN for persistence")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	if err := clibase.AfterParse(fs, &c, noHeader, posArgs); err != nil {
		return o, err
	}
	o.Manifests = append([]string(nil), manifests...)
	o.Manifests = append(o.Manifests, c.Inputs...)
	if len(o.Manifests) == 0 {
		return o, errors.New("at least one manifest is required")
	}
	for _, m := range o.Manifests {
		if m == "-" {
			return o, errors.New("manifests are read from files; stdin is not supported")
		}
	}

	o.Common = c
	return o, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
