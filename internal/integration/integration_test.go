package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"ligysis/internal/app"
	"ligysis/internal/consvarapp"
	"ligysis/internal/output"
	"ligysis/internal/sitesapp"
	"ligysis/pkg/api"
)

func TestEndToEnd(t *testing.T) {
	manifest := fixture(t, 1)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{manifest}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 || lines[0] != output.TSVHeaderResidues {
		t.Fatalf("want header plus 4 residues:\n%s", out.String())
	}
	first := strings.Split(lines[1], "\t")
	if first[0] != "S00" || first[2] != "10" || first[3] != "0" || first[17] != "CMD" {
		t.Fatalf("first row %q", lines[1])
	}
	last := strings.Split(lines[4], "\t")
	if last[2] != "13" || last[3] != "1" || last[17] != "CME" || last[18] != "green" {
		t.Fatalf("last row %q", lines[4])
	}
	if !strings.Contains(errBuf.String(), "S00\tok\t2 sites, 4 residues") {
		t.Fatalf("status line missing: %q", errBuf.String())
	}
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	manifest := fixture(t, 6)

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"--threads", fmt.Sprint(threads),
			"--output", "json",
			"-q",
			manifest,
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
	var segs []api.SegmentV1
	if err := json.Unmarshal([]byte(serial), &segs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(segs) != 6 || segs[0].Status != "ok" || segs[1].Status != "no-variants" {
		t.Fatalf("segments: %d, first %q, second %q", len(segs), segs[0].Status, segs[1].Status)
	}
}

func TestBadManifestExit2(t *testing.T) {
	dir := t.TempDir()
	bad := write(t, dir, "bad.tsv", "S1\tfp.tsv\n")
	var errB bytes.Buffer
	if code := app.Run([]string{bad}, &bytes.Buffer{}, &errB); code != 2 {
		t.Fatalf("want exit 2, got %d (%s)", code, errB.String())
	}
}

func TestMissingReferenceExit2(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "fp.tsv", "L1\t1\n")
	write(t, dir, "aln.fa", alignmentFASTA)
	m := write(t, dir, "m.tsv", "S1\tfp.tsv\taln.fa\tnot_there\n")
	var out, errB bytes.Buffer
	if code := app.Run([]string{"-o", "jsonl", m}, &out, &errB); code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
	var s api.SegmentV1
	if err := json.Unmarshal(out.Bytes(), &s); err != nil || s.Status != "error" {
		t.Fatalf("error segment not written: %v %q", err, out.String())
	}
}

func TestSitesTool(t *testing.T) {
	dir := t.TempDir()
	fp := write(t, dir, "P1_1.tsv", "L1\t10,11\nL2\t10,11,12\nL3\t13\nL4\t\n")
	var out, errB bytes.Buffer
	code := sitesapp.Run([]string{fp}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
	want := output.TSVHeaderSites + "\nP1_1\t0\t2\tL1,L2\t10,11,12\nP1_1\t1\t1\tL3\t13\n"
	if out.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out.String(), want)
	}
	if !strings.Contains(errB.String(), "ligand L4 has no contact residues") {
		t.Fatalf("stderr %q", errB.String())
	}

	out.Reset()
	if code := sitesapp.Run([]string{"--membership", "--no-header", fp}, &out, &errB); code != 0 {
		t.Fatalf("membership exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "P1_1\t10\t0\n") {
		t.Fatalf("membership:\n%s", out.String())
	}
}

func TestConsVarTool(t *testing.T) {
	dir := filepath.Dir(fixture(t, 1))
	var out, errB bytes.Buffer
	code := consvarapp.Run([]string{
		"--reference", "sp|P1|A_HUMAN/10-13",
		"--variants", filepath.Join(dir, "var.tsv"),
		"--output", "json",
		filepath.Join(dir, "aln.fa"),
	}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
	var rows []api.ResidueRowV1
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 4 || rows[0].Segment != "aln" || rows[0].Enrichment == nil || rows[0].Enrichment.Class != "CMD" {
		t.Fatalf("rows %+v", rows)
	}
	if len(rows[0].Sites) != 0 {
		t.Fatalf("no fingerprints given, got sites %v", rows[0].Sites)
	}
}

func TestHelpExamplesVersion(t *testing.T) {
	tools := map[string]func([]string, io.Writer, io.Writer) int{
		"ligysis":         app.Run,
		"ligysis-sites":   sitesapp.Run,
		"ligysis-consvar": consvarapp.Run,
	}
	for name, run := range tools {
		var out bytes.Buffer
		if code := run([]string{"--examples"}, &out, io.Discard); code != 0 || !strings.HasPrefix(out.String(), name+" ") {
			t.Fatalf("%s --examples: exit %d\n%s", name, code, out.String())
		}
		out.Reset()
		if code := run(nil, &out, io.Discard); code != 0 || !strings.Contains(out.String(), "Usage:") {
			t.Fatalf("%s without args: exit %d\n%s", name, code, out.String())
		}
		out.Reset()
		if code := run([]string{"--version"}, &out, io.Discard); code != 0 || out.String() != name+" version dev\n" {
			t.Fatalf("%s --version: %q", name, out.String())
		}
		if code := run([]string{"--bogus"}, io.Discard, io.Discard); code != 2 {
			t.Fatalf("%s --bogus: want exit 2, got %d", name, code)
		}
	}
}
