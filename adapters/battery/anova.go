package battery

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// oneWayANOVA runs the one-way fixed-effects omnibus F-test.
func oneWayANOVA(samples [][]float64) (f, p float64, err error) {
	fstat, _, df1, df2, err := anovaDecomposition(samples)
	if err != nil {
		return 0, 0, err
	}
	dist := distuv.F{D1: df1, D2: df2}
	return fstat, clamp01(dist.Survival(fstat)), nil
}

// anovaDecomposition computes the F statistic together with the
// within-group mean square, which Tukey's HSD reuses.
func anovaDecomposition(samples [][]float64) (f, msWithin, df1, df2 float64, err error) {
	k := len(samples)
	if k < 2 {
		return 0, 0, 0, 0, fmt.Errorf("anova requires at least 2 samples, got %d", k)
	}

	total := 0
	var grandSum float64
	means := make([]float64, k)
	for i, sample := range samples {
		if len(sample) < 2 {
			return 0, 0, 0, 0, fmt.Errorf("anova sample %d has fewer than 2 observations", i)
		}
		means[i] = sum(sample) / float64(len(sample))
		grandSum += sum(sample)
		total += len(sample)
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for i, sample := range samples {
		d := means[i] - grandMean
		ssBetween += float64(len(sample)) * d * d
		for _, v := range sample {
			e := v - means[i]
			ssWithin += e * e
		}
	}

	df1 = float64(k - 1)
	df2 = float64(total - k)
	if ssWithin == 0 {
		return 0, 0, 0, 0, fmt.Errorf("zero within-group variance, statistic undefined")
	}
	msWithin = ssWithin / df2
	f = (ssBetween / df1) / msWithin
	return f, msWithin, df1, df2, nil
}
