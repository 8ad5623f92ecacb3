package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the consumer of our output went
// away, as when ligysis is piped into head.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{syscall.EPIPE, io.ErrClosedPipe, os.ErrClosed} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
