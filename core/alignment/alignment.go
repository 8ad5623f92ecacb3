// Package alignment holds a multiple sequence alignment and the column
// bookkeeping the conservation engines need.
package alignment

import (
	"strconv"
	"strings"

	"ligysis-core/errs"
)

// Gap is the only symbol counted as a gap.
const Gap = '-'

// HumanTag is the species tag of human sequences in UniProt entry names.
const HumanTag = "HUMAN"

// Sequence is one aligned row.
type Sequence struct {
	ID       string
	Species  string
	Residues []byte
}

// Alignment is an ordered set of equal-length aligned sequences.
type Alignment struct {
	Seqs []Sequence
}

// SpeciesFromID extracts the species tag from a UniProt-style identifier:
// "sp|P00533|EGFR_HUMAN/24-1210" yields "HUMAN". Returns "" when absent.
func SpeciesFromID(id string) string {
	s := id
	if i := strings.LastIndexByte(s, '|'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	i := strings.LastIndexByte(s, '_')
	if i < 0 || i == len(s)-1 {
		return ""
	}
	return strings.ToUpper(s[i+1:])
}

// IsHuman reports whether the sequence carries the human species tag.
func (s Sequence) IsHuman() bool { return s.Species == HumanTag }

// Len is the number of columns, 0 for an empty alignment.
func (a Alignment) Len() int {
	if len(a.Seqs) == 0 {
		return 0
	}
	return len(a.Seqs[0].Residues)
}

// Validate checks that the alignment is non-empty and rectangular.
func (a Alignment) Validate() error {
	if len(a.Seqs) == 0 {
		return errs.Inputf("alignment has no sequences")
	}
	n := len(a.Seqs[0].Residues)
	for _, s := range a.Seqs[1:] {
		if len(s.Residues) != n {
			return errs.Inputf("sequence %q has length %d, want %d", s.ID, len(s.Residues), n)
		}
	}
	return nil
}

// Column returns the symbols at 1-based column i, one per sequence.
func (a Alignment) Column(i int) []byte {
	col := make([]byte, len(a.Seqs))
	for k, s := range a.Seqs {
		col[k] = s.Residues[i-1]
	}
	return col
}

// Find returns the sequence with the given id.
func (a Alignment) Find(id string) (Sequence, bool) {
	for _, s := range a.Seqs {
		if s.ID == id {
			return s, true
		}
	}
	return Sequence{}, false
}

// Subset keeps sequences whose id is in ids, preserving alignment order.
func (a Alignment) Subset(ids map[string]bool) Alignment {
	var out Alignment
	for _, s := range a.Seqs {
		if ids[s.ID] {
			out.Seqs = append(out.Seqs, s)
		}
	}
	return out
}

// OccupiedColumns lists the 1-based columns where ref has a residue. These
// are the scored columns of the alignment.
func OccupiedColumns(ref Sequence) []int {
	var out []int
	for i, b := range ref.Residues {
		if b != Gap {
			out = append(out, i+1)
		}
	}
	return out
}

// ResidueMap maps each occupied column of ref to the reference residue
// number, counting from start at the first non-gap symbol.
func ResidueMap(ref Sequence, start int) map[int]int {
	out := make(map[int]int)
	n := start
	for i, b := range ref.Residues {
		if b == Gap {
			continue
		}
		out[i+1] = n
		n++
	}
	return out
}

// StartFromID reads the first residue number from a "/start-end" id suffix,
// as in "EGFR_HUMAN/24-1210". ok is false when the suffix is absent.
func StartFromID(id string) (start int, ok bool) {
	i := strings.LastIndexByte(id, '/')
	if i < 0 {
		return 0, false
	}
	lo, _, found := strings.Cut(id[i+1:], "-")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(lo)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
