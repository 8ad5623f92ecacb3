package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"ligysis-core/errs"
	"ligysis/internal/writers"
)

// Exit codes shared by every tool.
const (
	ExitOK       = 0
	ExitNoResult = 1
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// ExitCode maps an error to the tool exit code: input errors are usage
// errors, cancellation is 130, broken pipes are success.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, errs.ErrInput):
		return ExitUsage
	}
	return ExitRuntime
}

// Fail prints err and returns its exit code.
func Fail(stderr io.Writer, err error) int {
	code := ExitCode(err)
	if code != ExitOK && code != ExitCanceled {
		_, _ = fmt.Fprintln(stderr, err)
	}
	return code
}

// Flush flushes w and returns code, or the flush failure code. A broken pipe
// on flush keeps code.
func Flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}
