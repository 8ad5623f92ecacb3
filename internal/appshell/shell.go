// Package appshell runs a tool's RunContext as a process.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the signature of every tool's RunContext.
type RunFunc func(context.Context, []string, io.Writer, io.Writer) int

type mode struct {
	helpWhenEmpty bool // no arguments prints help
	cancelIs130   bool // a signal turns exit 0 into 130
}

// Main runs a batch tool. No arguments prints help; an interrupted run that
// still reports success exits 130.
func Main(run RunFunc) { os.Exit(start(run, mode{helpWhenEmpty: true, cancelIs130: true})) }

// MainService runs a long-lived tool. It starts without arguments and a
// signal is its normal way to stop.
func MainService(run RunFunc) { os.Exit(start(run, mode{})) }

func start(run RunFunc, m mode) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	argv := os.Args[1:]
	if len(argv) == 0 && m.helpWhenEmpty {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, os.Stdout, os.Stderr)
	if m.cancelIs130 && ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
