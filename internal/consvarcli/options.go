package consvarcli

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

	Alignment    string
	Reference    string
	Variants     string
	Fingerprints string // optional; adds binding-site membership
	RefStart     int
	Segment      string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := clibase.NewFlagSet(name)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --reference ID [--variants var.tsv] alignment.fa\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -a, --alignment file        Aligned FASTA (.gz ok, '-' for stdin) [*]")
		_, _ = fmt.Fprintln(out, "  -r, --reference string      Reference sequence id in the alignment [required]")
		_, _ = fmt.Fprintln(out, "      --variants file         Variants: source_id <TAB> alignment_column <TAB> consequence")
		_, _ = fmt.Fprintln(out, "  -f, --fingerprints file     Ligand fingerprints; adds binding-site membership")
		_, _ = fmt.Fprintf(out, "      --ref-start int         Residue number of the first reference residue (0=from id) [%s]\n", def("ref-start"))
		_, _ = fmt.Fprintf(out, "      --segment string        Segment name (default: alignment file name) [%s]\n", def("segment"))
	})
	return fs
}

func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("ligysis-consvar"), argv) }

// PrintExamples prints a quickstart for ligysis-consvar.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "ligysis-consvar", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Shenkin conservation and missense enrichment per alignment column.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  ligysis-consvar \\")
		_, _ = fmt.Fprintln(w, "    --reference 'sp|P00533|EGFR_HUMAN/24-1210' \\")
		_, _ = fmt.Fprintln(w, "    --variants P00533_1.var.tsv \\")
		_, _ = fmt.Fprintln(w, "    --cons-low 25 --cons-high 75 --mes 1.0 \\")
		_, _ = fmt.Fprintln(w, "    P00533_1.fa.gz")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	fs.StringVar(&o.Alignment, "alignment", "", "aligned FASTA")
	fs.StringVar(&o.Alignment, "a", "", "alias of --alignment")
	fs.StringVar(&o.Reference, "reference", "", "reference sequence id [required]")
	fs.StringVar(&o.Reference, "r", "", "alias of --reference")
	fs.StringVar(&o.Variants, "variants", "", "variant table")
	fs.StringVar(&o.Fingerprints, "fingerprints", "", "ligand fingerprints")
	fs.StringVar(&o.Fingerprints, "f", "", "alias of --fingerprints")
	fs.IntVar(&o.RefStart, "ref-start", 0, "residue number of the first reference residue (0=from id) [0]")
	fs.StringVar(&o.Segment, "segment", "", "segment name")

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
	switch {
	case o.Alignment != "" && len(c.Inputs) > 0:
		return o, errors.New("--alignment conflicts with a positional alignment")
	case o.Alignment == "" && len(c.Inputs) == 1:
		o.Alignment = c.Inputs[0]
	case o.Alignment == "" && len(c.Inputs) > 1:
		return o, errors.New("one alignment per run")
	case o.Alignment == "":
		return o, errors.New("an alignment is required")
	}
	if o.Reference == "" {
		return o, errors.New("--reference is required")
	}
	if o.RefStart < 0 {
		return o, errors.New("--ref-start must be ≥ 0")
	}
	n := 0
	for _, p := range []string{o.Alignment, o.Variants, o.Fingerprints} {
		if p == "-" {
			n++
		}
	}
	if n > 1 {
		return o, errors.New("stdin ('-') may feed only one input")
	}

	o.Common = c
	return o, nil
}
