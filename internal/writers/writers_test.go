package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"ligysis/internal/output"
	"ligysis/pkg/api"
)

func seg(id string, residues ...int) api.SegmentV1 {
	s := api.SegmentV1{Segment: id, Status: "ok"}
	for _, r := range residues {
		s.Residues = append(s.Residues, api.ResidueRowV1{Segment: id, Column: r, Residue: r, Sites: []int{}})
	}
	return s
}

func run(t *testing.T, format string, sort bool, segs ...api.SegmentV1) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartSegmentWriter(&buf, format, sort, true, 1)
	for _, s := range segs {
		in <- s
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("%s writer: %v", format, err)
	}
	return buf.String()
}

func TestSegmentWriterText(t *testing.T) {
	got := run(t, output.FormatText, false, seg("b", 2, 1), seg("a", 5))
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 4 || lines[0] != output.TSVHeaderResidues || !strings.HasPrefix(lines[1], "b\t2\t2") {
		t.Fatalf("text:\n%s", got)
	}
	sorted := run(t, output.FormatText, true, seg("b", 2, 1), seg("a", 5))
	lines = strings.Split(strings.TrimSpace(sorted), "\n")
	if !strings.HasPrefix(lines[1], "a\t5") || !strings.HasPrefix(lines[2], "b\t1") {
		t.Fatalf("sorted text:\n%s", sorted)
	}
}

func TestSegmentWriterJSON(t *testing.T) {
	got := run(t, output.FormatJSON, true, seg("b", 1), seg("a", 1))
	var list []api.SegmentV1
	if err := json.Unmarshal([]byte(got), &list); err != nil {
		t.Fatalf("json: %v\n%s", err, got)
	}
	if len(list) != 2 || list[0].Segment != "a" {
		t.Fatalf("json order %+v", list)
	}
}

func TestSegmentWriterJSONL(t *testing.T) {
	got := run(t, output.FormatJSONL, false, seg("b", 1), seg("a", 1))
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"segment":"b"`) {
		t.Fatalf("jsonl:\n%s", got)
	}
}

func TestSegmentWriterUnknownFormat(t *testing.T) {
	in, done := StartSegmentWriter(io.Discard, "xml", false, false, 1)
	in <- seg("a", 1)
	close(in)
	if err := <-done; err == nil {
		t.Fatalf("want error for unknown format")
	}
}

func TestRegistry(t *testing.T) {
	for _, f := range []string{output.FormatText, output.FormatJSON, output.FormatJSONL} {
		if _, ok := SitesWriters[f]; !ok {
			t.Errorf("no sites writer for %s", f)
		}
		if _, ok := ResidueWriters[f]; !ok {
			t.Errorf("no residue writer for %s", f)
		}
	}
	if err := WriteResidues("xml", io.Discard, nil, false); err == nil {
		t.Fatalf("want error for unknown format")
	}
	var buf bytes.Buffer
	if err := WriteSites(output.FormatJSONL, &buf, []api.SitesV1{{Segment: "a"}, {Segment: "b"}}, false); err != nil {
		t.Fatalf("jsonl sites: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("want 2 lines, got %d", n)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatalf("broken pipe not recognised")
	}
	if IsBrokenPipe(errors.New("other")) || IsBrokenPipe(nil) {
		t.Fatalf("false positive")
	}
}
