package output

import (
	"io"

	"ligysis/internal/jsonutil"
)

// WriteJSON writes v as one pretty-indented JSON document.
func WriteJSON(w io.Writer, v any) error {
	return jsonutil.EncodePretty(w, v)
}
