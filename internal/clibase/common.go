// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"ligysis-core/cluster"
	"ligysis/internal/cliutil"
	"ligysis/internal/config"
	"ligysis/internal/output"
)

// Common holds CLI fields shared by the ligysis tools.
type Common struct {
	// Thresholds
	ConfigFile string
	Linkage    string
	CutHeight  float64
	ConsLow    float64
	ConsHigh   float64
	MES        float64
	Strict     bool

	// Performance
	Threads int

	// Output
	Output           string // text|json|jsonl
	Sort             bool
	Header           bool
	NoResultExitCode int

	// Misc
	Quiet   bool
	Version bool

	// Inputs holds expanded positionals.
	Inputs []string
	// Config is the resolved configuration: defaults < --config < flags.
	Config config.Config
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// RegisterThresholds wires the analysis flags onto fs.
func RegisterThresholds(fs *flag.FlagSet, c *Common) {
	d := config.Default()
	fs.StringVar(&c.ConfigFile, "config", "", "INI config file ([thresholds] / [other])")
	fs.StringVar(&c.ConfigFile, "c", "", "alias of --config")
	fs.StringVar(&c.Linkage, "linkage", d.Linkage.String(), "linkage: single | complete | average | weighted | ward")
	fs.StringVar(&c.Linkage, "l", d.Linkage.String(), "alias of --linkage")
	fs.Float64Var(&c.CutHeight, "cut-height", d.CutHeight, "dendrogram cut height in [0,1]")
	fs.Float64Var(&c.ConsLow, "cons-low", d.ConsLow, "conserved when divergence score <= this")
	fs.Float64Var(&c.ConsHigh, "cons-high", d.ConsHigh, "unconserved when divergence score >= this")
	fs.Float64Var(&c.MES, "mes", d.MES, "missense enrichment score (odds ratio) cutoff")
	fs.BoolVar(&c.Strict, "strict", false, "reject binding-site residues outside the reference numbering [false]")
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Register wires every shared flag onto fs and returns a pointer to the
// “no-header” bool that AfterParse folds into Common.Header.
func Register(fs *flag.FlagSet, c *Common) *bool {
	RegisterThresholds(fs, c)

	fs.StringVar(&c.Output, "output", output.FormatText, "output: text | json | jsonl [text]")
	fs.StringVar(&c.Output, "o", output.FormatText, "alias of --output")
	fs.BoolVar(&c.Sort, "sort", false, "sort outputs deterministically [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.IntVar(&c.NoResultExitCode, "no-result-exit-code", 1, "exit code when nothing is reported [1]")

	return &noHeader
}

// AfterParse finalizes header, expands positionals and resolves the
// configuration, then runs shared validation.
func AfterParse(fs *flag.FlagSet, c *Common, noHeader *bool, posArgs []string) error {
	if noHeader != nil {
		c.Header = !*noHeader
	}
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.Inputs = append(c.Inputs, exp...)
	}
	cfg, err := Resolve(fs, c)
	if err != nil {
		return err
	}
	c.Config = cfg
	return Validate(c)
}

// Resolve layers the config file and explicit flags over the defaults.
func Resolve(fs *flag.FlagSet, c *Common) (config.Config, error) {
	cfg := config.Default()
	if c.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(c.ConfigFile); err != nil {
			return config.Config{}, err
		}
	}
	set := cliutil.Explicit(fs)
	if cliutil.AnySet(set, "linkage", "l") {
		l, err := cluster.ParseLinkage(c.Linkage)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Linkage = l
	}
	if set["cut-height"] {
		cfg.CutHeight = c.CutHeight
	}
	if set["cons-low"] {
		cfg.ConsLow = c.ConsLow
	}
	if set["cons-high"] {
		cfg.ConsHigh = c.ConsHigh
	}
	if set["mes"] {
		cfg.MES = c.MES
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	switch c.Output {
	case "", output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.NoResultExitCode < 0 || c.NoResultExitCode > 255 {
		return errors.New("--no-result-exit-code must be between 0 and 255")
	}
	return nil
}
