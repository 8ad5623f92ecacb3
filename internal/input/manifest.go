package input

import (
	"path/filepath"
	"strconv"
)

// Entry is one segment of a manifest. Paths are resolved against the
// manifest's directory. RefStart is 0 when not given.
type Entry struct {
	Segment      string
	Fingerprints string
	Alignment    string
	Reference    string
	Variants     string
	RefStart     int
}

// LoadManifest reads "segment fingerprints alignment reference [variants]
// [ref_start]" lines. A "-" variants column means no variants.
func LoadManifest(path string) ([]Entry, error) {
	dir := filepath.Dir(path)
	resolve := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	var out []Entry
	seen := map[string]int{}
	err := eachLine(path, func(ln int, f []string) error {
		if len(f) < 4 || len(f) > 6 {
			return lineErr(path, ln, "bad field count %d", len(f))
		}
		if prev, dup := seen[f[0]]; dup {
			return lineErr(path, ln, "segment %q already defined on line %d", f[0], prev)
		}
		seen[f[0]] = ln
		e := Entry{
			Segment:      f[0],
			Fingerprints: resolve(f[1]),
			Alignment:    resolve(f[2]),
			Reference:    f[3],
		}
		if len(f) >= 5 && f[4] != "-" {
			e.Variants = resolve(f[4])
		}
		if len(f) == 6 {
			n, err := strconv.Atoi(f[5])
			if err != nil || n < 1 {
				return lineErr(path, ln, "bad ref_start %q", f[5])
			}
			e.RefStart = n
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, lineErr(path, 0, "manifest lists no segments")
	}
	return out, nil
}
