package sitescli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"ligysis/internal/clibase"
	"ligysis/internal/cliutil"
)

type Options struct {
	clibase.Common

	// Fingerprints lists one fingerprint file per segment.
	Fingerprints []string
	// Segment names a single input; otherwise names come from file names.
	Segment    string
	Membership bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := clibase.NewFlagSet(name)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] fingerprints.tsv [more.tsv ...]\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -f, --fingerprints file      Ligand fingerprints: ligand_id <TAB> residues (repeatable or '-')")
		_, _ = fmt.Fprintf(out, "      --segment string        Segment name for a single input [%s]\n", def("segment"))

		_, _ = fmt.Fprintln(out, "\nSites:")
		_, _ = fmt.Fprintf(out, "      --membership            Text output lists residue→site membership [%s]\n", def("membership"))
	})
	return fs
}

func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("ligysis-sites"), argv) }

// PrintExamples prints a quickstart for ligysis-sites.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "ligysis-sites", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Cluster ligands into binding sites by shared contact residues.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  ligysis-sites \\")
		_, _ = fmt.Fprintln(w, "    --linkage average --cut-height 0.5 \\")
		_, _ = fmt.Fprintln(w, "    --membership \\")
		_, _ = fmt.Fprintln(w, "    P00533_1.fp.tsv")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	var fps stringSlice
	fs.Var(&fps, "fingerprints", "fingerprint file (repeatable or '-')")
	fs.Var(&fps, "f", "alias of --fingerprints")
	fs.StringVar(&o.Segment, "segment", "", "segment name for a single input")
	fs.BoolVar(&o.Membership, "membership", false, "text output lists residue membership [false]")

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
	o.Fingerprints = append(append([]string(nil), fps...), c.Inputs...)
	if len(o.Fingerprints) == 0 {
		return o, errors.New("at least one fingerprint file is required")
	}
	if o.Segment != "" && len(o.Fingerprints) > 1 {
		return o, errors.New("--segment names a single input")
	}
	stdin := 0
	for _, f := range o.Fingerprints {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return o, errors.New("stdin ('-') may be given once")
	}

	o.Common = c
	return o, nil
}
