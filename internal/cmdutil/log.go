package cmdutil

import (
	"fmt"
	"io"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Warnings prints every message through Warnf, prefixed with scope when set.
func Warnings(dst io.Writer, quiet bool, scope string, msgs []string) {
	for _, m := range msgs {
		if scope != "" {
			Warnf(dst, quiet, "%s: %s", scope, m)
		} else {
			Warnf(dst, quiet, "%s", m)
		}
	}
}

// Statusf prints a per-segment status line: segment<TAB>status[<TAB>message].
func Statusf(dst io.Writer, quiet bool, segment, status, format string, a ...any) {
	if quiet {
		return
	}
	if format == "" {
		_, _ = fmt.Fprintf(dst, "%s\t%s\n", segment, status)
		return
	}
	_, _ = fmt.Fprintf(dst, "%s\t%s\t%s\n", segment, status, fmt.Sprintf(format, a...))
}
