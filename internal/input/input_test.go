package input

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ligysis-core/errs"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestLoadFingerprints(t *testing.T) {
	dir := t.TempDir()
	fn := write(t, dir, "fp.tsv", "# ligand\tresidues\nL1\t3,1,2,2\n\nL2\t5 4\nL3\t\n")
	fps, err := LoadFingerprints(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fps) != 3 {
		t.Fatalf("want 3 fingerprints, got %d", len(fps))
	}
	if !reflect.DeepEqual(fps[0].Residues, []int{1, 2, 3}) {
		t.Fatalf("L1 residues %v", fps[0].Residues)
	}
	if !reflect.DeepEqual(fps[1].Residues, []int{4, 5}) {
		t.Fatalf("L2 residues %v", fps[1].Residues)
	}
	if fps[2].ID != "L3" || fps[2].Len() != 0 {
		t.Fatalf("L3 should be kept empty, got %+v", fps[2])
	}
}

func TestLoadFingerprintsBadResidue(t *testing.T) {
	fn := write(t, t.TempDir(), "fp.tsv", "L1\t1,x\n")
	_, err := LoadFingerprints(fn)
	if !errors.Is(err, errs.ErrInput) || !strings.Contains(err.Error(), ":1 ") {
		t.Fatalf("want line-numbered ErrInput, got %v", err)
	}
}

func TestReadFingerprints(t *testing.T) {
	fps, err := ReadFingerprints(strings.NewReader("A 1,2\nB 2,3\n"), "inline")
	if err != nil || len(fps) != 2 {
		t.Fatalf("read: %v %+v", err, fps)
	}
}

func TestLoadVariantsHeader(t *testing.T) {
	fn := write(t, t.TempDir(), "v.tsv",
		"source_id\talignment_column\tconsequence\nsp|P1|A_HUMAN\t4\tmissense_variant\nsp|P1|A_HUMAN\t7\tsynonymous_variant\n")
	vs, err := LoadVariants(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(vs) != 2 || vs[0].Column != 4 || vs[1].Consequence != "synonymous_variant" {
		t.Fatalf("variants %+v", vs)
	}
}

func TestLoadVariantsBadColumn(t *testing.T) {
	fn := write(t, t.TempDir(), "v.tsv", "a\t1\tmissense_variant\nb\tq\tmissense_variant\n")
	if _, err := LoadVariants(fn); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("want ErrInput, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	fn := write(t, dir, "m.tsv", "s1\tfp.tsv\taln.fa\tP1_HUMAN\tvars.tsv\t24\ns2\t/abs/fp.tsv\taln2.fa\tQ_HUMAN\t-\n")
	es, err := LoadManifest(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []Entry{
		{Segment: "s1", Fingerprints: filepath.Join(dir, "fp.tsv"), Alignment: filepath.Join(dir, "aln.fa"), Reference: "P1_HUMAN", Variants: filepath.Join(dir, "vars.tsv"), RefStart: 24},
		{Segment: "s2", Fingerprints: "/abs/fp.tsv", Alignment: filepath.Join(dir, "aln2.fa"), Reference: "Q_HUMAN"},
	}
	if !reflect.DeepEqual(es, want) {
		t.Fatalf("manifest:\n got %+v\nwant %+v", es, want)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"short.tsv": "s1\tfp.tsv\n",
		"dup.tsv":   "s1\ta\tb\tc\ns1\ta\tb\tc\n",
		"start.tsv": "s1\ta\tb\tc\t-\tzero\n",
		"empty.tsv": "# nothing\n",
	} {
		if _, err := LoadManifest(write(t, dir, name, data)); !errors.Is(err, errs.ErrInput) {
			t.Errorf("%s: want ErrInput, got %v", name, err)
		}
	}
}

func TestSegmentName(t *testing.T) {
	for in, want := range map[string]string{
		"-":                  "stdin",
		"/data/P00533_1.tsv": "P00533_1",
		"P00533_1.fp.tsv.gz": "P00533_1.fp",
		"dir/segment":        "segment",
		"/x/.hidden":         ".hidden",
	} {
		if got := SegmentName(in); got != want {
			t.Errorf("SegmentName(%q) = %q, want %q", in, got, want)
		}
	}
}
