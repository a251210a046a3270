package battery

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// levene runs Levene's test for variance homogeneity across all samples
// jointly, centered on the group medians (the Brown-Forsythe variant,
// robust against non-normality).
func levene(samples [][]float64) (w, p float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, fmt.Errorf("levene requires at least 2 samples, got %d", k)
	}

	total := 0
	absDev := make([][]float64, k)
	groupMeans := make([]float64, k)
	var grandSum float64
	for i, sample := range samples {
		if len(sample) < 2 {
			return 0, 0, fmt.Errorf("levene sample %d has fewer than 2 observations", i)
		}
		median, merr := stats.Median(sample)
		if merr != nil {
			return 0, 0, merr
		}
		absDev[i] = make([]float64, len(sample))
		for j, v := range sample {
			absDev[i][j] = math.Abs(v - median)
		}
		groupMeans[i] = sum(absDev[i]) / float64(len(sample))
		grandSum += sum(absDev[i])
		total += len(sample)
	}
	grandMean := grandSum / float64(total)

	var between, within float64
	for i := range samples {
		ni := float64(len(samples[i]))
		d := groupMeans[i] - grandMean
		between += ni * d * d
		for _, z := range absDev[i] {
			e := z - groupMeans[i]
			within += e * e
		}
	}
	if within == 0 {
		return 0, 0, fmt.Errorf("zero within-group spread, statistic undefined")
	}

	df1 := float64(k - 1)
	df2 := float64(total - k)
	w = (df2 / df1) * (between / within)
	f := distuv.F{D1: df1, D2: df2}
	return w, clamp01(f.Survival(w)), nil
}
