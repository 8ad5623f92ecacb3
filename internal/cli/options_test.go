package cli

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"ligysis-core/cluster"
	"ligysis/internal/clibase"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestManifestFlagAndPositional(t *testing.T) {
	o := mustParse(t, "--manifest", "a.tsv", "-m", "b.tsv", "c.tsv")
	if len(o.Manifests) != 3 || o.Manifests[0] != "a.tsv" || o.Manifests[2] != "c.tsv" {
		t.Fatalf("manifests %v", o.Manifests)
	}
	if !o.Header || o.Output != "text" {
		t.Fatalf("defaults not applied: %+v", o.Common)
	}
}

func TestFlagsAfterPositionals(t *testing.T) {
	o := mustParse(t, "segs.tsv", "--cut-height", "0.3", "-l", "complete", "--no-header")
	if o.Config.CutHeight != 0.3 || o.Config.Linkage != cluster.Complete || o.Header {
		t.Fatalf("bad parse: %+v", o.Config)
	}
}

func TestConfigFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	ini := filepath.Join(dir, "ligysis.ini")
	if err := os.WriteFile(ini, []byte("[thresholds]\nMES_t = 2.0\ncons_t_l = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o := mustParse(t, "--config", ini, "--cons-low", "20", "segs.tsv")
	if o.Config.MES != 2.0 || o.Config.ConsLow != 20 {
		t.Fatalf("precedence: %+v", o.Config)
	}
}

func TestManifestGlob(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.tsv", "b.tsv"} {
		_ = os.WriteFile(filepath.Join(dir, n), []byte("x\n"), 0o644)
	}
	o := mustParse(t, filepath.Join(dir, "*.tsv"))
	if len(o.Manifests) != 2 {
		t.Fatalf("want 2 manifests, got %v", o.Manifests)
	}
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"-"},
		{"--linkage", "centroid", "a.tsv"},
		{"--cut-height", "1.5", "a.tsv"},
		{"--cons-low", "80", "--cons-high", "20", "a.tsv"},
		{"--output", "fasta", "a.tsv"},
		{"--threads", "-1", "a.tsv"},
	}
	for _, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestHelpExamplesVersion(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, clibase.ErrPrintedAndExitOK) {
		t.Fatalf("want ErrPrintedAndExitOK, got %v", err)
	}
	if o, err := ParseArgs(newFS(), []string{"--version"}); err != nil || !o.Version {
		t.Fatalf("version: %v %+v", err, o)
	}
}
