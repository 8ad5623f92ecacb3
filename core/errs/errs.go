// Package errs holds the error taxonomy shared by the core engines.
//
// Only structurally invalid input is an error. Degenerate inputs (a single
// fingerprint, an all-gap column) and undefined statistics (zero occupancy)
// are handled in-band and never surface here.
package errs

import (
	"errors"
	"fmt"
)

// ErrInput marks input that violates an engine invariant. Processing of the
// affected segment stops; other segments are unaffected.
var ErrInput = errors.New("invalid input")

// Inputf returns an error wrapping ErrInput with a formatted message.
func Inputf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, a...))
}
