// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"ligysis/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, inputs, etc.). Shared
// blocks are printed only for the flags fs actually registers.
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – ligand binding-site clustering and conservation/variation analysis\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nThresholds:")
		fmt.Fprintln(out, "  -c, --config file           INI config ([thresholds] cons_t_l cons_t_h MES_t lig_clust_dist, [other] lig_clust_method)")
		fmt.Fprintf(out, "  -l, --linkage string        Linkage: single | complete | average | weighted | ward [%s]\n", def("linkage"))
		fmt.Fprintf(out, "      --cut-height float      Dendrogram cut height in [0,1] [%s]\n", def("cut-height"))
		fmt.Fprintf(out, "      --cons-low float        Conserved at divergence score <= value [%s]\n", def("cons-low"))
		fmt.Fprintf(out, "      --cons-high float       Unconserved at divergence score >= value [%s]\n", def("cons-high"))
		fmt.Fprintf(out, "      --mes float             Missense enrichment (odds ratio) cutoff [%s]\n", def("mes"))
		fmt.Fprintf(out, "      --strict                Reject residues outside the reference numbering [%s]\n", def("strict"))
		fmt.Fprintln(out, "  Flags override --config, which overrides the defaults.")

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))

		if fs.Lookup("output") != nil {
			fmt.Fprintln(out, "\nOutput:")
			fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl [%s]\n", def("output"))
			fmt.Fprintf(out, "      --sort                  Sort outputs deterministically [%s]\n", def("sort"))
			fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
			fmt.Fprintf(out, "      --no-result-exit-code int  Exit code when nothing is reported [%s]\n", def("no-result-exit-code"))
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		if fs.Lookup("examples") != nil {
			fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		}
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
