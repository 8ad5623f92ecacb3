package store

import (
	"context"
	"math"
	"os"
	"reflect"
	"testing"

	"ligysis-core/alignment"
	"ligysis-core/enrichment"
	"ligysis-core/fingerprint"
	"ligysis/internal/config"
	"ligysis/internal/segment"
)

func TestNullable(t *testing.T) {
	if nullable(math.NaN()).Valid || nullable(math.Inf(1)).Valid {
		t.Fatalf("undefined values must be NULL")
	}
	if v := nullable(0.25); !v.Valid || v.Float64 != 0.25 {
		t.Fatalf("got %+v", v)
	}
	if got := ints64([]int{1, 2}); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("ints64 %v", got)
	}
}

// TestSaveSegmentPostgres needs a scratch database, e.g.
// LIGYSIS_TEST_PG_DSN="postgres://postgres@localhost/ligysis_test?sslmode=disable".
func TestSaveSegmentPostgres(t *testing.T) {
	dsn := os.Getenv("LIGYSIS_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("LIGYSIS_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Default()
	run, err := s.NewRun(ctx, Run{Linkage: cfg.Linkage.String(), CutHeight: cfg.CutHeight, ConsLow: cfg.ConsLow, ConsHigh: cfg.ConsHigh, MES: cfg.MES})
	if err != nil {
		t.Fatalf("new run: %v", err)
	}

	in := segment.Input{
		ID: "P1_1",
		Fingerprints: []fingerprint.Fingerprint{
			fingerprint.New("L1", []int{1, 2}),
			fingerprint.New("L2", []int{3}),
		},
		Alignment: alignment.Alignment{Seqs: []alignment.Sequence{
			{ID: "A_HUMAN", Species: "HUMAN", Residues: []byte("ACD")},
			{ID: "B_HUMAN", Species: "HUMAN", Residues: []byte("ACE")},
		}},
		Reference: "A_HUMAN",
		Variants:  []enrichment.Variant{{SequenceID: "B_HUMAN", Column: 3, Consequence: "missense_variant"}},
	}
	res, err := segment.Run(in, segment.Options{Config: cfg, Workers: 1})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.SaveSegment(ctx, run.ID, res); err != nil {
			t.Fatalf("save #%d: %v", i, err)
		}
	}
	n, err := s.SiteCount(ctx, run.ID, "P1_1")
	if err != nil || n != 2 {
		t.Fatalf("site count: %d %v", n, err)
	}
}

func TestRunFor(t *testing.T) {
	r := RunFor(config.Default())
	if r.Linkage != "average" || r.CutHeight != 0.5 || r.ConsLow != 25 || r.ConsHigh != 75 || r.MES != 1 {
		t.Fatalf("run %+v", r)
	}
}
