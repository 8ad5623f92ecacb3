package clibase

import (
	"errors"
	"fmt"
	"io"

	"ligysis/internal/version"
)

// ErrPrintedAndExitOK is returned by ParseArgs when --examples was given.
// The app prints the examples and exits 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// PrintExamples prints a quickstart block for tool: a title line, body, and
// a pointer to --help.
func PrintExamples(out io.Writer, tool string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s %s: quickstart\n\n", tool, version.Version)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintf(out, "\nRun %s --help for every flag.\n", tool)
}
