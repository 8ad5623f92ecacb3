package conservation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"ligysis-core/alignment"
	"ligysis-core/errs"
)

func aln(rows ...string) alignment.Alignment {
	var a alignment.Alignment
	for i, r := range rows {
		a.Seqs = append(a.Seqs, alignment.Sequence{ID: string(rune('a' + i)), Residues: []byte(r)})
	}
	return a
}

func TestAlphabetIndex(t *testing.T) {
	if Size != 21 || GapIndex != 20 {
		t.Fatalf("alphabet size %d gap %d", Size, GapIndex)
	}
	for i := 0; i < len(Symbols); i++ {
		if got, ok := Index(Symbols[i]); !ok || got != i {
			t.Fatalf("Index(%c)=%d,%v", Symbols[i], got, ok)
		}
	}
	if i, ok := Index('w'); !ok || Symbols[i] != 'W' {
		t.Fatalf("lower-case lookup failed")
	}
	for _, b := range []byte("XBZJUO*.") {
		if _, ok := Index(b); ok {
			t.Fatalf("%c must be unrecognised", b)
		}
	}
}

func TestInvariantColumnScoresSix(t *testing.T) {
	r := Column(1, []byte("LLLLLL"))
	if r.Entropy != 0 || r.Shenkin != 6.0 {
		t.Fatalf("invariant column: S=%v shenkin=%v", r.Entropy, r.Shenkin)
	}
	if r.Occ != 6 || r.Gaps != 0 || r.OccPct != 100 || r.GapsPct != 0 {
		t.Fatalf("stats: %+v", r)
	}
}

func TestAllGapColumnIsDegenerate(t *testing.T) {
	f := Frequencies([]byte("----"))
	if !f.Degenerate || f.Values[GapIndex] != 1 {
		t.Fatalf("freqs: %+v", f)
	}
	r := Column(3, []byte("----"))
	if r.Shenkin != 6.0 || r.Occ != 0 || r.Gaps != 4 || r.OccPct != 0 || r.GapsPct != 100 {
		t.Fatalf("all-gap record: %+v", r)
	}
}

func TestUnrecognisedExcludedFromDenominator(t *testing.T) {
	f := Frequencies([]byte("AAXx"))
	if f.Values[0] != 1 {
		t.Fatalf("A frequency should be 1 when X is excluded, got %v", f.Values[0])
	}
	if f.NonStandard['X'] != 2 {
		t.Fatalf("non-standard tally: %v", f.NonStandard)
	}
	g := Frequencies([]byte("AC-X"))
	for _, i := range []int{0, 4, GapIndex} {
		if math.Abs(g.Values[i]-1.0/3.0) > 1e-15 {
			t.Fatalf("symbol %c: %v", Symbols[i], g.Values[i])
		}
	}
	if all := Frequencies([]byte("XX")); !all.Degenerate {
		t.Fatalf("column of only unrecognised symbols must be degenerate")
	}
}

func TestShenkinMonotoneInEntropy(t *testing.T) {
	cols := []string{"AAAA", "AAAC", "AACC", "ACDE", "ACDEFGHIKLMNPQRSTVWY"}
	prevS, prevSh := -1.0, 0.0
	for _, c := range cols {
		r := Column(1, []byte(c))
		if r.Entropy < prevS || r.Shenkin < prevSh {
			t.Fatalf("%s: entropy %v shenkin %v not monotone", c, r.Entropy, r.Shenkin)
		}
		prevS, prevSh = r.Entropy, r.Shenkin
	}
	if prevSh != 120 {
		t.Fatalf("uniform over 20 residues should score 120, got %v", prevSh)
	}
	if r := Column(1, []byte("AACC")); r.Shenkin != 12 {
		t.Fatalf("two symbols at 1/2: want 12, got %v", r.Shenkin)
	}
}

func TestScoreNormalisesOverScoredColumns(t *testing.T) {
	a := aln(
		"AAC-",
		"ACC-",
		"ADC-",
		"AEC-",
	)
	p, err := Score(a, []int{1, 2, 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Records) != 3 || p.Records[0].Column != 1 || p.Records[2].Column != 4 {
		t.Fatalf("records: %+v", p.Records)
	}
	c1, c2 := p.Records[0], p.Records[1]
	if c1.Shenkin != 6 || c2.Shenkin != 24 {
		t.Fatalf("shenkin: %v %v", c1.Shenkin, c2.Shenkin)
	}
	if c1.RelNorm != 0 || c2.RelNorm != 100 {
		t.Fatalf("relative: %v %v", c1.RelNorm, c2.RelNorm)
	}
	if c1.AbsNorm != 0 || c2.AbsNorm != 15.79 {
		t.Fatalf("absolute: %v %v", c1.AbsNorm, c2.AbsNorm)
	}
	if len(p.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", p.Warnings)
	}
}

func TestScoreFlatProfileRelNormNaN(t *testing.T) {
	p, err := Score(aln("AA", "AA"), []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range p.Records {
		if !math.IsNaN(r.RelNorm) || r.AbsNorm != 0 {
			t.Fatalf("flat profile: %+v", r)
		}
	}
}

func TestScoreWarnsOnNonStandard(t *testing.T) {
	p, err := Score(aln("AX", "AB"), []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Warnings) != 1 || !strings.Contains(p.Warnings[0], "column 2") || !strings.Contains(p.Warnings[0], "B=1, X=1") {
		t.Fatalf("warnings: %v", p.Warnings)
	}
}

func TestScoreInputErrors(t *testing.T) {
	if _, err := Score(aln("AC", "A"), []int{1}); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("ragged: %v", err)
	}
	if _, err := Score(aln("AC", "AD"), []int{3}); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("out of range: %v", err)
	}
	if _, err := Score(aln("AC", "AD"), []int{0}); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("zero column: %v", err)
	}
	if _, err := Score(aln("AC"), nil); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("no columns: %v", err)
	}
}

func TestScoreWorkersDeterministic(t *testing.T) {
	rows := []string{
		"ACDEFGHIKLMNPQRSTVWY-ACD",
		"ACDEFGHIKLMNPQRSTVWY-ACE",
		"ACDEFGHIKLMNPQRSTVWA-CCF",
		"TCDEFGHIKLMNPQRSTVWY--DG",
	}
	a := aln(rows...)
	serial, err := ScoreWorkers(a, AllColumns(a), 1)
	if err != nil {
		t.Fatal(err)
	}
	par, err := ScoreWorkers(a, AllColumns(a), 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial.Records {
		s, p := serial.Records[i], par.Records[i]
		if s.Column != p.Column || s.Shenkin != p.Shenkin || s.AbsNorm != p.AbsNorm || s.Occ != p.Occ {
			t.Fatalf("record %d differs: %+v vs %+v", i, s, p)
		}
	}
}
