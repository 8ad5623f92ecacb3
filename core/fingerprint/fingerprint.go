// Package fingerprint models a ligand observation reduced to the set of
// protein residue positions it contacts.
package fingerprint

import (
	"sort"

	"ligysis-core/errs"
)

// Fingerprint is one ligand observation. Residues are positions in a single
// shared numbering frame, sorted ascending and free of duplicates.
type Fingerprint struct {
	ID       string
	Residues []int
}

// New builds a Fingerprint, sorting and de-duplicating residues.
func New(id string, residues []int) Fingerprint {
	rs := append([]int(nil), residues...)
	sort.Ints(rs)
	out := rs[:0]
	for i, r := range rs {
		if i > 0 && r == rs[i-1] {
			continue
		}
		out = append(out, r)
	}
	return Fingerprint{ID: id, Residues: out}
}

// Len is the number of distinct residues contacted.
func (f Fingerprint) Len() int { return len(f.Residues) }

// Contains reports whether residue r is in the fingerprint.
func (f Fingerprint) Contains(r int) bool {
	i := sort.SearchInts(f.Residues, r)
	return i < len(f.Residues) && f.Residues[i] == r
}

// Filter drops fingerprints with an empty contact set. The IDs of dropped
// fingerprints are returned so callers can report them.
func Filter(list []Fingerprint) (kept []Fingerprint, dropped []string) {
	kept = make([]Fingerprint, 0, len(list))
	for _, f := range list {
		if len(f.Residues) == 0 {
			dropped = append(dropped, f.ID)
			continue
		}
		kept = append(kept, f)
	}
	return kept, dropped
}

// Validate rejects empty contact sets and duplicate IDs.
func Validate(list []Fingerprint) error {
	seen := make(map[string]struct{}, len(list))
	for i, f := range list {
		if len(f.Residues) == 0 {
			return errs.Inputf("fingerprint %d (%q) has no residues", i, f.ID)
		}
		if _, dup := seen[f.ID]; dup {
			return errs.Inputf("duplicate fingerprint id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// IDs returns fingerprint IDs in input order.
func IDs(list []Fingerprint) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}
