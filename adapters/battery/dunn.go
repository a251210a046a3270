package battery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// pairwiseResult is one raw post-hoc comparison before it is packaged
// into domain shapes.
type pairwiseResult struct {
	nameA     string
	nameB     string
	statistic float64
	pValue    float64
}

// dunnBonferroni runs Dunn's rank-based all-pairs post-hoc with
// Bonferroni p-value adjustment.
func dunnBonferroni(names []string, samples [][]float64) ([]pairwiseResult, error) {
	k := len(samples)
	if k < 3 {
		return nil, fmt.Errorf("dunn post-hoc requires at least 3 samples, got %d", k)
	}

	ranks, ties := rankAll(samples...)
	var n float64
	for _, sample := range samples {
		n += float64(len(sample))
	}

	meanRanks := make([]float64, k)
	for i := range samples {
		meanRanks[i] = sum(ranks[i]) / float64(len(samples[i]))
	}

	// Variance term with tie correction.
	base := n*(n+1)/12 - tieSum(ties)/(12*(n-1))
	if base <= 0 {
		return nil, fmt.Errorf("all observations tied, statistic undefined")
	}

	comparisons := float64(k * (k - 1) / 2)
	var results []pairwiseResult
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ni, nj := float64(len(samples[i])), float64(len(samples[j]))
			se := math.Sqrt(base * (1/ni + 1/nj))
			z := (meanRanks[i] - meanRanks[j]) / se
			raw := 2 * distuv.UnitNormal.Survival(math.Abs(z))
			results = append(results, pairwiseResult{
				nameA:     names[i],
				nameB:     names[j],
				statistic: z,
				pValue:    clamp01(raw * comparisons),
			})
		}
	}
	return results, nil
}
