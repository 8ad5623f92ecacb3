package input

import (
	"io"
	"strconv"
	"strings"

	"ligysis-core/fingerprint"
)

// LoadFingerprints reads "ligand_id<TAB>res,res,..." lines. Residues may be
// separated by commas or spaces. A ligand with an empty residue column is
// kept with no residues so the caller can report and drop it.
func LoadFingerprints(path string) ([]fingerprint.Fingerprint, error) {
	var out []fingerprint.Fingerprint
	err := eachLine(path, func(ln int, f []string) error {
		fp, err := parseFingerprint(path, ln, f)
		if err != nil {
			return err
		}
		out = append(out, fp)
		return nil
	})
	return out, err
}

// ReadFingerprints is LoadFingerprints over an open reader.
func ReadFingerprints(r io.Reader, name string) ([]fingerprint.Fingerprint, error) {
	var out []fingerprint.Fingerprint
	err := scanLines(r, name, func(ln int, f []string) error {
		fp, err := parseFingerprint(name, ln, f)
		if err != nil {
			return err
		}
		out = append(out, fp)
		return nil
	})
	return out, err
}

func parseFingerprint(path string, ln int, f []string) (fingerprint.Fingerprint, error) {
	if f[0] == "" {
		return fingerprint.Fingerprint{}, lineErr(path, ln, "missing ligand id")
	}
	var res []int
	for _, col := range f[1:] {
		for _, tok := range strings.FieldsFunc(col, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return fingerprint.Fingerprint{}, lineErr(path, ln, "bad residue %q", tok)
			}
			res = append(res, n)
		}
	}
	return fingerprint.New(f[0], res), nil
}
