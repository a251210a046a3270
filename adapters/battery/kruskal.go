package battery

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// kruskalWallis runs the rank-based k-sample omnibus test with tie
// correction, approximated by the chi-squared distribution.
func kruskalWallis(samples [][]float64) (h, p float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, fmt.Errorf("kruskal-wallis requires at least 2 samples, got %d", k)
	}

	ranks, ties := rankAll(samples...)
	var n float64
	for _, sample := range samples {
		n += float64(len(sample))
	}

	var rankTerm float64
	for i, sample := range samples {
		ri := sum(ranks[i])
		rankTerm += ri * ri / float64(len(sample))
	}
	h = 12/(n*(n+1))*rankTerm - 3*(n+1)

	correction := 1 - tieSum(ties)/(n*n*n-n)
	if correction <= 0 {
		return 0, 0, fmt.Errorf("all observations tied, statistic undefined")
	}
	h /= correction

	dist := distuv.ChiSquared{K: float64(k - 1)}
	return h, clamp01(dist.Survival(h)), nil
}
