package enrichment

import "math"

// relErr is the tolerance under which a table counts as being as extreme as
// the observed one in the two-sided sum.
const relErr = 1 + 1e-7

// FisherExact runs a two-sided Fisher exact test on [[a, b], [c, d]] and
// returns the sample odds ratio and p-value. The p-value sums the
// hypergeometric probabilities of every table with the observed margins that
// is no more likely than the observed table.
func FisherExact(a, b, c, d int) (oddsRatio, p float64) {
	oddsRatio = sampleOddsRatio(float64(a), float64(b), float64(c), float64(d))

	r1, r2, c1 := a+b, c+d, a+c
	n := r1 + r2
	if n == 0 || r1 == 0 || r2 == 0 || c1 == 0 || c1 == n {
		return oddsRatio, 1
	}
	lo := c1 - r2
	if lo < 0 {
		lo = 0
	}
	hi := c1
	if r1 < hi {
		hi = r1
	}
	denom := lchoose(n, c1)
	logPMF := func(x int) float64 { return lchoose(r1, x) + lchoose(r2, c1-x) - denom }

	cut := logPMF(a) + math.Log(relErr)
	for x := lo; x <= hi; x++ {
		if lp := logPMF(x); lp <= cut {
			p += math.Exp(lp)
		}
	}
	return oddsRatio, math.Min(p, 1)
}

func sampleOddsRatio(a, b, c, d float64) float64 {
	num, den := a*d, b*c
	if den == 0 {
		if num == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return num / den
}

func lchoose(n, k int) float64 {
	return lgamma(n+1) - lgamma(k+1) - lgamma(n-k+1)
}

func lgamma(x int) float64 {
	v, _ := math.Lgamma(float64(x))
	return v
}
