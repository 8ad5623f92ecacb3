package input

import (
	"strconv"

	"ligysis-core/enrichment"
)

// LoadVariants reads "source_id<TAB>alignment_column<TAB>consequence" lines.
// A first line whose column field is not a number is taken as a header.
func LoadVariants(path string) ([]enrichment.Variant, error) {
	var out []enrichment.Variant
	first := true
	err := eachLine(path, func(ln int, f []string) error {
		header := first
		first = false
		if len(f) < 3 {
			return lineErr(path, ln, "want 3 fields, got %d", len(f))
		}
		col, err := strconv.Atoi(f[1])
		if err != nil {
			if header {
				return nil
			}
			return lineErr(path, ln, "bad alignment column %q", f[1])
		}
		if col < 1 {
			return lineErr(path, ln, "alignment column %d out of range", col)
		}
		out = append(out, enrichment.Variant{SequenceID: f[0], Column: col, Consequence: f[2]})
		return nil
	})
	return out, err
}
