package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const alignmentFASTA = `>sp|P1|A_HUMAN/10-13
ACDE
>sp|P2|B_HUMAN
ACDF
>C_MOUSE
AWKF
>D_RAT
A-KG
`

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// fixture writes n copies of a four-column segment and returns the manifest.
// Segment i>0 has no variant file.
func fixture(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "fp.tsv", "# ligand\tresidues\nL1\t10,11\nL2\t10,11,12\nL3\t13\n")
	write(t, dir, "aln.fa", alignmentFASTA)
	write(t, dir, "var.tsv", "source_id\talignment_column\tconsequence\nsp|P2|B_HUMAN\t4\tmissense_variant\nC_MOUSE\t1\tmissense_variant\n")
	var b strings.Builder
	for i := 0; i < n; i++ {
		variants := "-"
		if i == 0 {
			variants = "var.tsv"
		}
		fmt.Fprintf(&b, "S%02d\tfp.tsv\taln.fa\tsp|P1|A_HUMAN/10-13\t%s\n", i, variants)
	}
	return write(t, dir, "segments.tsv", b.String())
}
