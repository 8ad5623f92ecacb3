package cluster

import (
	"math"
	"strings"

	"ligysis-core/errs"
)

// Linkage selects the inter-cluster distance criterion.
type Linkage int

const (
	Single Linkage = iota
	Complete
	Average
	Weighted
	Ward
)

var linkageNames = [...]string{"single", "complete", "average", "weighted", "ward"}

func (l Linkage) String() string {
	if l < 0 || int(l) >= len(linkageNames) {
		return "unknown"
	}
	return linkageNames[l]
}

// Linkages lists accepted criterion names.
func Linkages() []string { return append([]string(nil), linkageNames[:]...) }

// ParseLinkage maps a criterion name (case-insensitive) to a Linkage.
// Centroid and median are refused: their trees can invert, and a height cut
// over an inverted tree has no stable meaning.
func ParseLinkage(name string) (Linkage, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range linkageNames {
		if s == n {
			return Linkage(i), nil
		}
	}
	return 0, errs.Inputf("unknown linkage %q (want one of %s)", name, strings.Join(linkageNames[:], ", "))
}

// update is the Lance–Williams recurrence: the distance from cluster k to the
// union of clusters x and y, given the pre-merge sizes.
func (l Linkage) update(dkx, dky, dxy float64, sx, sy, sk int) float64 {
	switch l {
	case Single:
		return math.Min(dkx, dky)
	case Complete:
		return math.Max(dkx, dky)
	case Average:
		fx, fy := float64(sx), float64(sy)
		return (fx*dkx + fy*dky) / (fx + fy)
	case Weighted:
		return (dkx + dky) / 2
	case Ward:
		fx, fy, fk := float64(sx), float64(sy), float64(sk)
		t := 1 / (fx + fy + fk)
		v := (fk+fx)*t*dkx*dkx + (fk+fy)*t*dky*dky - fk*t*dxy*dxy
		if v < 0 {
			v = 0
		}
		return math.Sqrt(v)
	}
	return math.NaN()
}
