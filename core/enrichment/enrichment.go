// Package enrichment measures depletion or enrichment of human missense
// variants per alignment column with a 2x2 odds ratio, and combines it with
// column conservation into a five-way label.
package enrichment

import (
	"math"
	"strings"

	"ligysis-core/alignment"
	"ligysis-core/errs"
	"ligysis-core/internal/parmap"
	"ligysis-core/numeric"
)

// MissenseConsequence is the consequence term counted as missense.
const MissenseConsequence = "missense_variant"

// Variant is one variant row mapped onto an alignment column.
type Variant struct {
	SequenceID  string
	Column      int
	Consequence string
}

// IsMissense accepts "missense_variant" and the short form "missense".
func IsMissense(consequence string) bool {
	c := strings.ToLower(strings.TrimSpace(consequence))
	return c == MissenseConsequence || c == "missense"
}

// FilterMissense keeps missense variants on human sequences in scored columns.
func FilterMissense(vs []Variant, scored []int) []Variant {
	in := make(map[int]bool, len(scored))
	for _, c := range scored {
		in[c] = true
	}
	var out []Variant
	for _, v := range vs {
		if !IsMissense(v.Consequence) || !in[v.Column] {
			continue
		}
		if alignment.SpeciesFromID(v.SequenceID) != alignment.HumanTag {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Carriers returns the set of sequence ids carrying at least one variant.
func Carriers(vs []Variant) map[string]bool {
	out := make(map[string]bool)
	for _, v := range vs {
		out[v.SequenceID] = true
	}
	return out
}

// CountByColumn counts variants per scored column; every scored column is
// present, zero when no variant maps to it.
func CountByColumn(vs []Variant, scored []int) map[int]int {
	out := make(map[int]int, len(scored))
	for _, c := range scored {
		out[c] = 0
	}
	for _, v := range vs {
		if _, ok := out[v.Column]; ok {
			out[v.Column]++
		}
	}
	return out
}

// Stat is the odds-ratio statistic of one column. Undefined values are NaN.
type Stat struct {
	OddsRatio float64
	PValue    float64
	SE        float64 // 95% log-odds half-width, 1.96·sqrt(Σ 1/cell)
	Corrected bool    // +0.5 applied to every cell
}

// OddsRatio builds [[iVars, restVars], [iOcc, restOcc]] for one column and
// computes its statistic. Zero occupancy is unobserved and yields NaN; zero
// variants applies a +0.5 correction to all four cells. The exact test runs
// on whole counts, so corrected half cells are floored for the p-value.
// Values are rounded to two decimals.
func OddsRatio(iVars, iOcc, totVars, totOcc int) (Stat, error) {
	if iVars < 0 || iOcc < 0 || iVars > totVars || iOcc > totOcc {
		return Stat{}, errs.Inputf("impossible table: column %d/%d of totals %d/%d", iVars, iOcc, totVars, totOcc)
	}
	if iOcc == 0 {
		nan := math.NaN()
		return Stat{OddsRatio: nan, PValue: nan, SE: nan}, nil
	}
	cells := [4]float64{float64(iVars), float64(totVars - iVars), float64(iOcc), float64(totOcc - iOcc)}
	st := Stat{Corrected: iVars == 0}
	if st.Corrected {
		for i := range cells {
			cells[i] += 0.5
		}
	}
	_, p := FisherExact(int(cells[0]), int(cells[1]), int(cells[2]), int(cells[3]))
	inv := 0.0
	for _, v := range cells {
		inv += 1 / v
	}
	st.OddsRatio = numeric.Round2(sampleOddsRatio(cells[0], cells[1], cells[2], cells[3]))
	st.PValue = numeric.Round2(p)
	st.SE = numeric.Round2(1.96 * math.Sqrt(inv))
	return st, nil
}

// ColumnInput is what the enrichment engine needs to know about a column.
type ColumnInput struct {
	Column   int
	Occ      int     // non-gap count in the variant-carrying human sub-alignment
	Variants int     // human missense variants mapped to the column
	Score    float64 // absolute-normalised conservation of the full alignment
}

// ColumnStat is the immutable per-column output.
type ColumnStat struct {
	Column   int
	Variants int
	Occ      int
	Stat
	Class Class
}

// Compute scores every column independently against totals pooled over all
// inputs. Output order follows inputs for any worker count.
func Compute(inputs []ColumnInput, th Thresholds, workers int) ([]ColumnStat, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	totVars, totOcc := 0, 0
	for _, in := range inputs {
		if in.Occ < 0 || in.Variants < 0 {
			return nil, errs.Inputf("column %d has negative counts", in.Column)
		}
		totVars += in.Variants
		totOcc += in.Occ
	}
	out := parmap.Map(inputs, workers, func(in ColumnInput) ColumnStat {
		// Counts are non-negative and the totals are their sums, so every
		// table is possible and OddsRatio cannot fail here.
		st, _ := OddsRatio(in.Variants, in.Occ, totVars, totOcc)
		return ColumnStat{
			Column:   in.Column,
			Variants: in.Variants,
			Occ:      in.Occ,
			Stat:     st,
			Class:    Classify(in.Score, st.OddsRatio, th),
		}
	})
	return out, nil
}
