package appcore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"ligysis-core/conservation"
	"ligysis-core/errs"
	"ligysis/internal/config"
	"ligysis/internal/input"
	"ligysis/internal/segment"
	"ligysis/pkg/api"
)

func fakeRun(e input.Entry, _ segment.Options) (segment.Result, error) {
	switch e.Segment {
	case "bad":
		return segment.Result{}, errs.Inputf("reference missing")
	case "empty":
		return segment.Result{ID: e.Segment, Status: segment.StatusNoSites}, nil
	}
	return segment.Result{
		ID:     e.Segment,
		Status: segment.StatusOK,
		Rows: []segment.ResidueRow{
			{Column: 1, Residue: 10, Conservation: conservation.Record{Column: 1, Shenkin: 6}},
		},
		Warnings: []string{"note"},
	}, nil
}

type memStore struct{ saved []string }

func (m *memStore) SaveSegment(ctx context.Context, runID uuid.UUID, r segment.Result) error {
	m.saved = append(m.saved, r.ID)
	return nil
}

func entries(ids ...string) []input.Entry {
	out := make([]input.Entry, len(ids))
	for i, id := range ids {
		out[i] = input.Entry{Segment: id}
	}
	return out
}

func baseOptions() Options {
	return Options{Config: config.Default(), Threads: 2, NoResultExitCode: 1, Run: fakeRun}
}

func TestRunStreamsInManifestOrder(t *testing.T) {
	var out, errb bytes.Buffer
	st := &memStore{}
	o := baseOptions()
	o.Store = st
	o.RunID = uuid.New()
	code := Run(context.Background(), &out, &errb, o, entries("a", "b", "c"), NewSegmentWriterFactory("jsonl", false, true))
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errb.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 jsonl lines, got %d", len(lines))
	}
	for i, want := range []string{"a", "b", "c"} {
		var s api.SegmentV1
		if err := json.Unmarshal([]byte(lines[i]), &s); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if s.Segment != want || len(s.Residues) != 1 {
			t.Fatalf("line %d: %+v", i, s)
		}
	}
	if strings.Join(st.saved, ",") != "a,b,c" {
		t.Fatalf("stored %v", st.saved)
	}
	if !strings.Contains(errb.String(), "a\tok\t0 sites, 1 residues") || !strings.Contains(errb.String(), "WARN: b: note") {
		t.Fatalf("stderr %q", errb.String())
	}
}

func TestRunFailedSegmentSetsExitCode(t *testing.T) {
	var out, errb bytes.Buffer
	st := &memStore{}
	o := baseOptions()
	o.Store = st
	code := Run(context.Background(), &out, &errb, o, entries("a", "bad"), NewSegmentWriterFactory("json", false, true))
	if code != 2 {
		t.Fatalf("want exit 2 for an input error, got %d", code)
	}
	var segs []api.SegmentV1
	if err := json.Unmarshal(out.Bytes(), &segs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(segs) != 2 || segs[1].Segment != "bad" || segs[1].Status != "error" || segs[1].Error == "" {
		t.Fatalf("segments %+v", segs)
	}
	if len(st.saved) != 1 {
		t.Fatalf("failed segment must not be stored: %v", st.saved)
	}
	if !strings.Contains(errb.String(), "bad\terror\t") {
		t.Fatalf("stderr %q", errb.String())
	}
}

func TestRunNoRows(t *testing.T) {
	var out, errb bytes.Buffer
	o := baseOptions()
	o.NoResultExitCode = 7
	o.Quiet = true
	code := Run(context.Background(), &out, &errb, o, entries("empty"), NewSegmentWriterFactory("text", false, true))
	if code != 7 {
		t.Fatalf("want no-result exit code 7, got %d", code)
	}
	if errb.Len() != 0 {
		t.Fatalf("quiet run wrote %q", errb.String())
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run(ctx, &out, &errb, baseOptions(), entries("a", "b"), NewSegmentWriterFactory("text", false, true))
	if code != 130 {
		t.Fatalf("want 130, got %d", code)
	}
}

type failingStore struct{}

func (failingStore) SaveSegment(context.Context, uuid.UUID, segment.Result) error {
	return errors.New("connection refused")
}

func TestRunStoreFailureStops(t *testing.T) {
	var out, errb bytes.Buffer
	o := baseOptions()
	o.Store = failingStore{}
	code := Run(context.Background(), &out, &errb, o, entries("a", "b"), NewSegmentWriterFactory("text", false, true))
	if code != 3 || !strings.Contains(errb.String(), "store a: connection refused") {
		t.Fatalf("exit %d stderr %q", code, errb.String())
	}
}
