package battery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// mannWhitneyU runs the two-sided Mann-Whitney U rank-sum test using the
// normal approximation with tie and continuity corrections. The returned
// statistic is U for the first sample.
func mannWhitneyU(a, b []float64) (u, p float64, err error) {
	na, nb := float64(len(a)), float64(len(b))
	if len(a) < 1 || len(b) < 1 {
		return 0, 0, fmt.Errorf("mann-whitney requires non-empty samples")
	}

	ranks, ties := rankAll(a, b)
	r1 := sum(ranks[0])
	u1 := r1 - na*(na+1)/2
	u2 := na*nb - u1

	n := na + nb
	mu := na * nb / 2
	sigma2 := na * nb / 12 * (n + 1 - tieSum(ties)/(n*(n-1)))
	if sigma2 <= 0 {
		return 0, 0, fmt.Errorf("all observations tied, statistic undefined")
	}

	// Two-sided with continuity correction on the larger U.
	z := (math.Max(u1, u2) - mu - 0.5) / math.Sqrt(sigma2)
	p = clamp01(2 * distuv.UnitNormal.Survival(z))
	return u1, p, nil
}
