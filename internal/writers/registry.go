package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"ligysis/internal/output"
	"ligysis/pkg/api"
)

// Registries map an output format to the function that writes a whole,
// already collected result set. Header is ignored by JSON formats.
var (
	SitesWriters   = map[string]func(w io.Writer, list []api.SitesV1, header bool) error{}
	ResidueWriters = map[string]func(w io.Writer, rows []api.ResidueRowV1, header bool) error{}
)

// RegisterSites registers (last wins) a binding-site writer.
func RegisterSites(format string, fn func(io.Writer, []api.SitesV1, bool) error) {
	SitesWriters[format] = fn
}

// RegisterResidues registers (last wins) a residue-table writer.
func RegisterResidues(format string, fn func(io.Writer, []api.ResidueRowV1, bool) error) {
	ResidueWriters[format] = fn
}

// WriteSites dispatches on format.
func WriteSites(format string, w io.Writer, list []api.SitesV1, header bool) error {
	fn, ok := SitesWriters[format]
	if !ok {
		return fmt.Errorf("unknown sites format %q (no writer registered)", format)
	}
	return fn(w, list, header)
}

// WriteResidues dispatches on format.
func WriteResidues(format string, w io.Writer, rows []api.ResidueRowV1, header bool) error {
	fn, ok := ResidueWriters[format]
	if !ok {
		return fmt.Errorf("unknown residue format %q (no writer registered)", format)
	}
	return fn(w, rows, header)
}

// Formats lists the formats registered for residue tables.
func Formats() []string {
	out := make([]string, 0, len(ResidueWriters))
	for f := range ResidueWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func init() {
	RegisterSites(output.FormatText, output.WriteSitesText)
	RegisterSites(output.FormatJSON, func(w io.Writer, list []api.SitesV1, _ bool) error {
		return output.WriteJSON(w, list)
	})
	RegisterSites(output.FormatJSONL, func(w io.Writer, list []api.SitesV1, _ bool) error {
		return encodeLines(w, list)
	})

	RegisterResidues(output.FormatText, output.WriteResidueText)
	RegisterResidues(output.FormatJSON, func(w io.Writer, rows []api.ResidueRowV1, _ bool) error {
		return output.WriteJSON(w, rows)
	})
	RegisterResidues(output.FormatJSONL, func(w io.Writer, rows []api.ResidueRowV1, _ bool) error {
		return encodeLines(w, rows)
	})
}

func encodeLines[T any](w io.Writer, list []T) error {
	enc := json.NewEncoder(w)
	for _, v := range list {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
