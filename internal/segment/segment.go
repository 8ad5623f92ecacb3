// Package segment runs the full analysis of one protein segment: binding
// sites from ligand fingerprints, conservation of the segment alignment and
// missense enrichment of its human variant carriers, merged per residue.
package segment

import (
	"fmt"
	"sort"

	"ligysis-core/alignment"
	"ligysis-core/conservation"
	"ligysis-core/enrichment"
	"ligysis-core/errs"
	"ligysis-core/fingerprint"
	"ligysis-core/sites"
	"ligysis/internal/config"
)

// Status summarises how far a segment got.
type Status string

const (
	StatusOK         Status = "ok"
	StatusNoSites    Status = "no-sites"    // every fingerprint was empty
	StatusNoVariants Status = "no-variants" // enrichment skipped
	StatusNoMissense Status = "no-missense" // no human missense variant in a scored column
	StatusNoHuman    Status = "no-human"    // no variant carrier in the alignment
	StatusError      Status = "error"
)

// Input is everything one segment needs, already loaded.
type Input struct {
	ID           string
	Fingerprints []fingerprint.Fingerprint
	Alignment    alignment.Alignment
	Reference    string // id of the reference sequence in Alignment
	RefStart     int    // residue number of the first reference residue; 0 = from id or 1
	Variants     []enrichment.Variant
}

// Options configures Run.
type Options struct {
	Config  config.Config
	Workers int
	// Strict rejects binding-site residues outside the reference numbering
	// instead of reporting them as warnings.
	Strict bool
}

// ResidueRow is the merged per-column record of a segment.
type ResidueRow struct {
	Column       int
	Residue      int // reference residue number
	Conservation conservation.Record
	Human        *conservation.Record   // nil without variant carriers
	Enrichment   *enrichment.ColumnStat // nil without variants
	Sites        []int                  // binding sites containing the residue
}

// Result is the immutable output of one segment.
type Result struct {
	ID           string
	Status       Status
	Sites        sites.Result
	Conservation conservation.Profile
	Human        *conservation.Profile
	Enrichment   []enrichment.ColumnStat
	Rows         []ResidueRow
	Warnings     []string
}

// Run analyses one segment. Structural input problems return an error
// wrapping errs.ErrInput; soft problems land in Result.Warnings.
func Run(in Input, opt Options) (Result, error) {
	if err := opt.Config.Validate(); err != nil {
		return Result{}, err
	}
	res := Result{ID: in.ID, Status: StatusOK}
	warn := func(format string, a ...any) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, a...))
	}

	// Binding sites.
	fps, dropped := fingerprint.Filter(in.Fingerprints)
	for _, id := range dropped {
		warn("ligand %s has no contact residues; dropped", id)
	}
	if len(fps) == 0 {
		res.Status = StatusNoSites
		if len(dropped) > 0 {
			warn("no ligand fingerprints with contacts")
		}
	} else {
		sr, err := sites.Cluster(fps, opt.Config.Sites())
		if err != nil {
			return Result{}, err
		}
		res.Sites = sr
	}

	// Conservation over the reference-occupied columns.
	if err := in.Alignment.Validate(); err != nil {
		return Result{}, err
	}
	ref, ok := in.Alignment.Find(in.Reference)
	if !ok {
		return Result{}, errs.Inputf("reference %q not in alignment", in.Reference)
	}
	scored := alignment.OccupiedColumns(ref)
	prof, err := conservation.ScoreWorkers(in.Alignment, scored, opt.Workers)
	if err != nil {
		return Result{}, err
	}
	res.Conservation = prof
	res.Warnings = append(res.Warnings, prof.Warnings...)

	// Numbering frame.
	start := in.RefStart
	if start <= 0 {
		start = 1
		if s, ok := alignment.StartFromID(ref.ID); ok {
			start = s
		}
	}
	colToRes := alignment.ResidueMap(ref, start)
	resToCol := make(map[int]int, len(colToRes))
	for c, r := range colToRes {
		resToCol[r] = c
	}
	var unmapped []int
	for _, r := range sites.SortedResidues(res.Sites.Membership) {
		if _, ok := resToCol[r]; !ok {
			unmapped = append(unmapped, r)
		}
	}
	if len(unmapped) > 0 {
		if opt.Strict {
			return Result{}, errs.Inputf("binding-site residues %v outside reference numbering %d..%d", unmapped, start, start+len(colToRes)-1)
		}
		warn("binding-site residues %v outside reference numbering %d..%d", unmapped, start, start+len(colToRes)-1)
	}

	// Missense enrichment.
	var human map[int]conservation.Record
	var stats map[int]enrichment.ColumnStat
	if len(in.Variants) == 0 {
		if res.Status == StatusOK {
			res.Status = StatusNoVariants
		}
		warn("no variants; enrichment skipped")
	} else {
		hp, st, skip, w, err := enrich(in, scored, prof, opt)
		if err != nil {
			return Result{}, err
		}
		res.Warnings = append(res.Warnings, w...)
		if skip != "" && res.Status == StatusOK {
			res.Status = skip
		}
		res.Human = hp
		res.Enrichment = st
		if hp != nil {
			human = hp.ByColumn()
		}
		stats = make(map[int]enrichment.ColumnStat, len(st))
		for _, s := range st {
			stats[s.Column] = s
		}
	}

	res.Rows = make([]ResidueRow, 0, len(scored))
	for _, rec := range prof.Records {
		row := ResidueRow{
			Column:       rec.Column,
			Residue:      colToRes[rec.Column],
			Conservation: rec,
			Sites:        res.Sites.Membership[colToRes[rec.Column]],
		}
		if h, ok := human[rec.Column]; ok {
			row.Human = &h
		}
		if s, ok := stats[rec.Column]; ok {
			row.Enrichment = &s
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// enrich scores the human variant carriers and computes per-column odds
// ratios against the full-alignment conservation. A non-empty status means
// nothing usable was left to enrich; no statistics are returned then.
func enrich(in Input, scored []int, prof conservation.Profile, opt Options) (*conservation.Profile, []enrichment.ColumnStat, Status, []string, error) {
	var warns []string
	n := in.Alignment.Len()
	for _, v := range in.Variants {
		if v.Column < 1 || v.Column > n {
			return nil, nil, "", nil, errs.Inputf("variant on %s at column %d outside alignment columns 1..%d", v.SequenceID, v.Column, n)
		}
	}
	missense := enrichment.FilterMissense(in.Variants, scored)
	if len(missense) == 0 {
		warns = append(warns, "no human missense variants in scored columns; enrichment skipped")
		return nil, nil, StatusNoMissense, warns, nil
	}
	carriers := enrichment.Carriers(missense)
	sub := in.Alignment.Subset(carriers)
	if missing := len(carriers) - len(sub.Seqs); missing > 0 {
		var ids []string
		for id := range carriers {
			if _, ok := sub.Find(id); !ok {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		warns = append(warns, fmt.Sprintf("%d variant sequences not in alignment: %v", missing, ids))
	}
	if len(sub.Seqs) == 0 {
		warns = append(warns, "no variant sequences in alignment; enrichment skipped")
		return nil, nil, StatusNoHuman, warns, nil
	}

	hp, err := conservation.ScoreWorkers(sub, scored, opt.Workers)
	if err != nil {
		return nil, nil, "", nil, err
	}
	occ := make(map[int]int, len(scored))
	for _, r := range hp.Records {
		occ[r.Column] = r.Occ
	}

	counts := enrichment.CountByColumn(missense, scored)
	inputs := make([]enrichment.ColumnInput, len(prof.Records))
	for i, r := range prof.Records {
		inputs[i] = enrichment.ColumnInput{
			Column:   r.Column,
			Occ:      occ[r.Column],
			Variants: counts[r.Column],
			Score:    r.AbsNorm,
		}
	}
	stats, err := enrichment.Compute(inputs, opt.Config.Thresholds(), opt.Workers)
	if err != nil {
		return nil, nil, "", nil, err
	}
	return &hp, stats, "", warns, nil
}
