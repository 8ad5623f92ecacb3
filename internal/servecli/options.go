package servecli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"ligysis/internal/clibase"
	"ligysis/internal/cliutil"
	"ligysis/internal/server"
)

type Options struct {
	clibase.Common

	Server server.Options
	PGDSN  string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := clibase.NewFlagSet(name)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options]\n", name)

		_, _ = fmt.Fprintln(out, "\nService:")
		_, _ = fmt.Fprintf(out, "      --addr string           Listen address [%s]\n", def("addr"))
		_, _ = fmt.Fprintf(out, "      --max-conns int         Concurrent connections (0=unlimited) [%s]\n", def("max-conns"))
		_, _ = fmt.Fprintf(out, "      --rate float            Requests per second on /v1 (0=unlimited) [%s]\n", def("rate"))
		_, _ = fmt.Fprintf(out, "      --burst int             Rate limiter burst [%s]\n", def("burst"))
		_, _ = fmt.Fprintf(out, "      --rate-wait duration    How long a request may queue for the limiter [%s]\n", def("rate-wait"))
		_, _ = fmt.Fprintf(out, "      --max-body int          Request body limit in bytes [%s]\n", def("max-body"))
		_, _ = fmt.Fprintln(out, "      --cors-origin string    Allowed CORS origin (repeatable)")
		_, _ = fmt.Fprintf(out, "      --pg-dsn string         PostgreSQL DSN; store /v1/segments results [%s]\n", def("pg-dsn"))
	})
	return fs
}

func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("ligysis-serve"), argv) }

// PrintExamples prints a quickstart for ligysis-serve.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "ligysis-serve", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "HTTP service: POST /v1/sites, /v1/conservation, /v1/segments; GET /health.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  ligysis-serve --addr :8001 --rate 5 --burst 10 \\")
		_, _ = fmt.Fprintln(w, "    --pg-dsn 'postgres://ligysis@localhost/ligysis?sslmode=disable'")
		_, _ = fmt.Fprintln(w, "\n  curl -s localhost:8001/v1/sites -d '{\"fingerprints\":[{\"id\":\"L1\",\"residues\":[10,11]}]}'")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	var c clibase.Common
	clibase.RegisterThresholds(fs, &c)

	d := server.DefaultOptions()
	o.Server = d
	fs.StringVar(&o.Server.Addr, "addr", d.Addr, "listen address")
	fs.IntVar(&o.Server.MaxConns, "max-conns", d.MaxConns, "concurrent connections (0=unlimited)")
	fs.Float64Var(&o.Server.RatePerSec, "rate", d.RatePerSec, "requests per second (0=unlimited)")
	fs.IntVar(&o.Server.Burst, "burst", d.Burst, "rate limiter burst")
	fs.DurationVar(&o.Server.RateWait, "rate-wait", d.RateWait, "limiter queueing time")
	fs.Int64Var(&o.Server.MaxBody, "max-body", d.MaxBody, "request body limit in bytes")
	var origins stringSlice
	fs.Var(&origins, "cors-origin", "allowed CORS origin (repeatable)")
	fs.StringVar(&o.PGDSN, "pg-dsn", "", "PostgreSQL DSN")

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
	if len(posArgs) > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(posArgs, " "))
	}

	if err := clibase.AfterParse(fs, &c, nil, nil); err != nil {
		return o, err
	}
	if len(origins) > 0 {
		o.Server.AllowedOrigins = origins
	}
	switch {
	case o.Server.MaxConns < 0:
		return o, errors.New("--max-conns must be ≥ 0")
	case o.Server.RatePerSec < 0:
		return o, errors.New("--rate must be ≥ 0")
	case o.Server.RatePerSec > 0 && o.Server.Burst < 1:
		return o, errors.New("--burst must be ≥ 1 when --rate is set")
	case o.Server.MaxBody <= 0:
		return o, errors.New("--max-body must be > 0")
	case o.Server.RateWait < 0:
		return o, errors.New("--rate-wait must be ≥ 0")
	}
	o.Server.Workers = c.Threads
	o.Server.Strict = c.Strict

	o.Common = c
	return o, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
