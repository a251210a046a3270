package battery

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// studentizedRangeCDF evaluates P(Q <= q) for the studentized range
// distribution with k groups and df error degrees of freedom:
//
//	F(q) = integral over s of f_df(s) * k * integral over z of
//	       phi(z) * (Phi(z) - Phi(z - q*s))^(k-1) dz ds
//
// where s = sigma_hat/sigma has the scaled-chi density
// f_df(s) ~ s^(df-1) * exp(-df*s^2/2). Both integrals are evaluated with
// composite Simpson quadrature, which keeps the adapter fully
// deterministic.
func studentizedRangeCDF(q float64, k int, df float64) float64 {
	if q <= 0 {
		return 0
	}

	// Normalizing constant of the scaled-chi density, in log space.
	halfDF := df / 2
	lgamma, _ := math.Lgamma(halfDF)
	logConst := halfDF*math.Log(df) - lgamma - (halfDF-1)*math.Log(2)

	const (
		sUpper = 8.0
		sSteps = 400 // even
	)
	hs := sUpper / sSteps

	var outer float64
	for i := 0; i <= sSteps; i++ {
		s := float64(i) * hs
		var density float64
		if s > 0 {
			density = math.Exp(logConst + (df-1)*math.Log(s) - df*s*s/2)
		}
		if density == 0 {
			continue
		}
		outer += simpsonWeight(i, sSteps) * density * rangeProbability(q*s, k)
	}
	return clamp01(outer * hs / 3)
}

// rangeProbability is P(range of k iid standard normals <= w).
func rangeProbability(w float64, k int) float64 {
	if w <= 0 {
		return 0
	}
	normal := distuv.UnitNormal

	const (
		zLow   = -8.0
		zHigh  = 8.0
		zSteps = 160 // even
	)
	hz := (zHigh - zLow) / zSteps

	var inner float64
	for j := 0; j <= zSteps; j++ {
		z := zLow + float64(j)*hz
		span := normal.CDF(z) - normal.CDF(z-w)
		if span <= 0 {
			continue
		}
		inner += simpsonWeight(j, zSteps) * normal.Prob(z) * math.Pow(span, float64(k-1))
	}
	return clamp01(float64(k) * inner * hz / 3)
}

func simpsonWeight(i, n int) float64 {
	switch {
	case i == 0 || i == n:
		return 1
	case i%2 == 1:
		return 4
	default:
		return 2
	}
}

// tukeyHSD runs the all-pairs Tukey-Kramer post-hoc over the fitted
// one-way layout and returns family-wise adjusted p-values per pair.
func tukeyHSD(names []string, samples [][]float64) ([]pairwiseResult, error) {
	_, msWithin, _, df2, err := anovaDecomposition(samples)
	if err != nil {
		return nil, err
	}

	k := len(samples)
	means := make([]float64, k)
	for i, sample := range samples {
		means[i] = sum(sample) / float64(len(sample))
	}

	var results []pairwiseResult
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ni, nj := float64(len(samples[i])), float64(len(samples[j]))
			se := math.Sqrt(msWithin / 2 * (1/ni + 1/nj))
			q := math.Abs(means[i]-means[j]) / se
			p := clamp01(1 - studentizedRangeCDF(q, k, df2))
			results = append(results, pairwiseResult{
				nameA:     names[i],
				nameB:     names[j],
				statistic: q,
				pValue:    p,
			})
		}
	}
	return results, nil
}
