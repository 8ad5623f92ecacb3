// Package fasta reads aligned FASTA into core alignments.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"ligysis-core/alignment"
	"ligysis-core/errs"
)

// Record is one FASTA entry. Desc is the header text after the id token.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// Scan calls fn for every record in r. Sequence lines are concatenated with
// whitespace removed; case is preserved.
func Scan(r io.Reader, fn func(Record) error) error {
	br := bufio.NewReaderSize(r, 64<<10)
	var (
		cur  Record
		have bool
		ln   int
	)
	flush := func() error {
		if !have {
			return nil
		}
		rec := cur
		rec.Seq = bytes.Clone(cur.Seq)
		return fn(rec)
	}
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			ln++
			line = bytes.TrimRight(line, "\r\n")
			switch {
			case len(line) == 0:
			case line[0] == '>':
				if ferr := flush(); ferr != nil {
					return ferr
				}
				hdr := strings.TrimSpace(string(line[1:]))
				if hdr == "" {
					return errs.Inputf("line %d: empty FASTA header", ln)
				}
				id, desc, _ := strings.Cut(hdr, " ")
				cur = Record{ID: id, Desc: strings.TrimSpace(desc), Seq: cur.Seq[:0]}
				have = true
			case line[0] == ';':
			default:
				if !have {
					return errs.Inputf("line %d: sequence data before first header", ln)
				}
				for _, b := range line {
					if b != ' ' && b != '\t' {
						cur.Seq = append(cur.Seq, b)
					}
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return flush()
}

// ReadAlignment loads every record of path as an aligned sequence. Species
// tags come from the UniProt-style id suffix (P12345_HUMAN, sp|..|X_MOUSE/1-90).
func ReadAlignment(path string) (alignment.Alignment, error) {
	rc, err := Open(path)
	if err != nil {
		return alignment.Alignment{}, err
	}
	defer rc.Close()
	return Parse(rc, path)
}

// Parse is ReadAlignment over an already open reader; name prefixes errors.
func Parse(r io.Reader, name string) (alignment.Alignment, error) {
	var aln alignment.Alignment
	err := Scan(r, func(rec Record) error {
		aln.Seqs = append(aln.Seqs, alignment.Sequence{
			ID:       rec.ID,
			Species:  alignment.SpeciesFromID(rec.ID),
			Residues: rec.Seq,
		})
		return nil
	})
	if err != nil {
		return alignment.Alignment{}, fmt.Errorf("%s: %w", name, err)
	}
	if err := aln.Validate(); err != nil {
		return alignment.Alignment{}, fmt.Errorf("%s: %w", name, err)
	}
	return aln, nil
}
