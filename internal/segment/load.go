package segment

import (
	"fmt"

	"ligysis/internal/fasta"
	"ligysis/internal/input"
)

// Load reads the files of a manifest entry into an Input. Empty
// Fingerprints or Variants paths are skipped.
func Load(e input.Entry) (Input, error) {
	in := Input{ID: e.Segment, Reference: e.Reference, RefStart: e.RefStart}
	var err error
	if e.Fingerprints != "" {
		if in.Fingerprints, err = input.LoadFingerprints(e.Fingerprints); err != nil {
			return Input{}, fmt.Errorf("fingerprints: %w", err)
		}
	}
	if in.Alignment, err = fasta.ReadAlignment(e.Alignment); err != nil {
		return Input{}, fmt.Errorf("alignment: %w", err)
	}
	if e.Variants != "" {
		if in.Variants, err = input.LoadVariants(e.Variants); err != nil {
			return Input{}, fmt.Errorf("variants: %w", err)
		}
	}
	return in, nil
}

// LoadAndRun is Load followed by Run.
func LoadAndRun(e input.Entry, opt Options) (Result, error) {
	in, err := Load(e)
	if err != nil {
		return Result{ID: e.Segment, Status: StatusError}, err
	}
	res, err := Run(in, opt)
	if err != nil {
		return Result{ID: e.Segment, Status: StatusError}, err
	}
	return res, nil
}
