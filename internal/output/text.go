package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ligysis/pkg/api"
)

// IntsCSV joins ints with commas; empty for none.
func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

// Float formats a nullable statistic; nil prints as NaN.
func Float(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteSitesText prints one TSV line per binding site.
func WriteSitesText(w io.Writer, list []api.SitesV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeaderSites); err != nil {
			return err
		}
	}
	for _, s := range list {
		for _, b := range s.Sites {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
				s.Segment, b.SiteID, len(b.Ligands), strings.Join(b.Ligands, ","), IntsCSV(b.Residues)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMembershipText prints one TSV line per residue.
func WriteMembershipText(w io.Writer, list []api.SitesV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeaderMembership); err != nil {
			return err
		}
	}
	for _, s := range list {
		for _, m := range s.Membership {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", s.Segment, m.Residue, IntsCSV(m.Sites)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatResidueRowTSV returns one residue line (no trailing newline).
func FormatResidueRowTSV(r api.ResidueRowV1) string {
	c := r.Conservation
	humanShenkin, humanOcc := "NaN", ""
	if r.Human != nil {
		humanShenkin, humanOcc = Float(r.Human.Shenkin), strconv.Itoa(r.Human.Occ)
	}
	variants, or, p, se, class, color := "", "NaN", "NaN", "NaN", "", ""
	if e := r.Enrichment; e != nil {
		variants = strconv.Itoa(e.Variants)
		or, p, se = Float(e.OddsRatio), Float(e.PValue), Float(e.SE)
		class, color = e.Class, e.Color
	}
	return strings.Join([]string{
		r.Segment,
		strconv.Itoa(r.Column),
		strconv.Itoa(r.Residue),
		IntsCSV(r.Sites),
		Float(c.Shenkin), Float(c.RelNorm), Float(c.AbsNorm),
		strconv.Itoa(c.Occ), strconv.Itoa(c.Gaps), Float(c.OccPct), Float(c.GapsPct),
		humanShenkin, humanOcc,
		variants, or, p, se, class, color,
	}, "\t")
}

// WriteResidueText prints one TSV line per residue row.
func WriteResidueText(w io.Writer, rows []api.ResidueRowV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeaderResidues); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, FormatResidueRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamResidueText writes rows as they arrive on in.
func StreamResidueText(w io.Writer, in <-chan api.ResidueRowV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeaderResidues); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatResidueRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}
