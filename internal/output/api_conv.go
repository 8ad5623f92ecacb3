package output

import (
	"math"
	"sort"

	"ligysis-core/cluster"
	"ligysis-core/conservation"
	"ligysis-core/enrichment"
	"ligysis-core/sites"
	"ligysis/internal/segment"
	"ligysis/pkg/api"
)

// num maps undefined values to nil so they encode as JSON null.
func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ToAPISites converts a clustering result to the v1 schema.
func ToAPISites(seg string, r sites.Result, cfg cluster.Config, warnings []string) api.SitesV1 {
	v := api.SitesV1{
		Segment:     seg,
		Linkage:     cfg.Linkage.String(),
		CutHeight:   cfg.CutHeight,
		Assignments: make([]api.LigandAssignmentV1, 0, len(r.Assignment.IDs)),
		Sites:       make([]api.BindingSiteV1, 0, len(r.Sites)),
		Membership:  make([]api.ResidueMembershipV1, 0, len(r.Membership)),
		Warnings:    warnings,
	}
	for i, id := range r.Assignment.IDs {
		v.Assignments = append(v.Assignments, api.LigandAssignmentV1{Ligand: id, SiteID: r.Assignment.Clusters[i]})
	}
	for _, s := range r.Sites {
		v.Sites = append(v.Sites, api.BindingSiteV1{
			Segment:  seg,
			SiteID:   s.ID,
			Ligands:  append([]string(nil), s.Ligands...),
			Residues: append([]int(nil), s.Residues...),
		})
	}
	for _, res := range sites.SortedResidues(r.Membership) {
		v.Membership = append(v.Membership, api.ResidueMembershipV1{
			Segment: seg,
			Residue: res,
			Sites:   append([]int(nil), r.Membership[res]...),
		})
	}
	if r.Assignment.Tree != nil {
		for _, m := range r.Assignment.Tree.Merges {
			v.Merges = append(v.Merges, api.MergeV1{A: m.A, B: m.B, Height: m.Height, Size: m.Size})
		}
	}
	return v
}

// ToAPIConservation converts one conservation record.
func ToAPIConservation(r conservation.Record) api.ConservationV1 {
	v := api.ConservationV1{
		Column:  r.Column,
		Shenkin: num(r.Shenkin),
		RelNorm: num(r.RelNorm),
		AbsNorm: num(r.AbsNorm),
		Occ:     r.Occ,
		Gaps:    r.Gaps,
		OccPct:  num(r.OccPct),
		GapsPct: num(r.GapsPct),
	}
	if len(r.NonStandard) > 0 {
		v.NonStandard = make(map[string]int, len(r.NonStandard))
		for b, n := range r.NonStandard {
			v.NonStandard[string(rune(b))] = n
		}
	}
	return v
}

// ToAPIColumnStat converts one enrichment statistic.
func ToAPIColumnStat(s enrichment.ColumnStat) api.ColumnStatV1 {
	return api.ColumnStatV1{
		Column:    s.Column,
		Variants:  s.Variants,
		Occ:       s.Occ,
		OddsRatio: num(s.OddsRatio),
		PValue:    num(s.PValue),
		SE:        num(s.SE),
		Corrected: s.Corrected,
		Class:     string(s.Class),
		Color:     s.Class.Color(),
	}
}

// ToAPIRow converts one merged residue row.
func ToAPIRow(seg string, r segment.ResidueRow) api.ResidueRowV1 {
	v := api.ResidueRowV1{
		Segment:      seg,
		Column:       r.Column,
		Residue:      r.Residue,
		Conservation: ToAPIConservation(r.Conservation),
		Sites:        append([]int{}, r.Sites...),
	}
	if r.Human != nil {
		h := ToAPIConservation(*r.Human)
		v.Human = &h
	}
	if r.Enrichment != nil {
		e := ToAPIColumnStat(*r.Enrichment)
		v.Enrichment = &e
	}
	return v
}

// ToAPIRows converts every row of a segment.
func ToAPIRows(seg string, rows []segment.ResidueRow) []api.ResidueRowV1 {
	out := make([]api.ResidueRowV1, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAPIRow(seg, r))
	}
	return out
}

// ToAPISegment converts a segment outcome. A failed segment carries only its
// status and error.
func ToAPISegment(r segment.Result, cfg cluster.Config, err error) api.SegmentV1 {
	v := api.SegmentV1{Segment: r.ID, Status: string(r.Status)}
	if err != nil {
		v.Status = string(segment.StatusError)
		v.Error = err.Error()
		return v
	}
	s := ToAPISites(r.ID, r.Sites, cfg, nil)
	v.Sites = &s
	v.Residues = ToAPIRows(r.ID, r.Rows)
	v.Warnings = append([]string(nil), r.Warnings...)
	return v
}

// SortRows orders rows by segment then residue.
func SortRows(rows []api.ResidueRowV1) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Segment != rows[j].Segment {
			return rows[i].Segment < rows[j].Segment
		}
		if rows[i].Residue != rows[j].Residue {
			return rows[i].Residue < rows[j].Residue
		}
		return rows[i].Column < rows[j].Column
	})
}

// SortSegments orders segments by id.
func SortSegments(list []api.SegmentV1) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Segment < list[j].Segment })
}
