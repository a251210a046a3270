package battery

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// shapiroWilk computes the Shapiro-Wilk W statistic and p-value using
// Royston's AS R94 approximation, valid for 3 <= n <= 5000.
func shapiroWilk(values []float64) (w, p float64, err error) {
	n := len(values)
	if n < 3 {
		return 0, 0, fmt.Errorf("shapiro-wilk requires at least 3 observations, got %d", n)
	}
	if n > 5000 {
		return 0, 0, fmt.Errorf("shapiro-wilk approximation is unreliable above 5000 observations, got %d", n)
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)

	if x[0] == x[n-1] {
		return 0, 0, fmt.Errorf("all observations are identical")
	}

	// Expected values of normal order statistics (Blom approximation).
	normal := distuv.UnitNormal
	m := make([]float64, n)
	var ssm float64
	for i := 0; i < n; i++ {
		m[i] = normal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	// Weights. Royston corrects the tail coefficients with polynomials in
	// u = 1/sqrt(n); the remainder is the normalized m vector.
	u := 1 / math.Sqrt(float64(n))
	a := make([]float64, n)
	rms := math.Sqrt(ssm)

	if n == 3 {
		a[0] = math.Sqrt(0.5)
		a[2] = -a[0]
	} else {
		an := polyval([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, 0}, u) + m[n-1]/rms
		var phi float64
		if n > 5 {
			an1 := polyval([]float64{-3.582633, 5.682633, -1.752461, -0.293762, 0.042981, 0}, u) + m[n-2]/rms
			phi = (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			a[n-1], a[n-2] = an, an1
			a[0], a[1] = -an, -an1
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		} else {
			phi = (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			a[n-1] = an
			a[0] = -an
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		}
	}

	mean := sum(x) / float64(n)
	var num, den float64
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
		den += (x[i] - mean) * (x[i] - mean)
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	p, err = shapiroWilkP(w, n)
	return w, p, err
}

// shapiroWilkP maps the W statistic to a p-value via Royston's
// normalizing transformations.
func shapiroWilkP(w float64, n int) (float64, error) {
	normal := distuv.UnitNormal
	switch {
	case n == 3:
		// Exact for n = 3.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p), nil
	case n <= 11:
		fn := float64(n)
		gamma := -2.273 + 0.459*fn
		if gamma-math.Log(1-w) <= 0 {
			return 0, nil
		}
		wt := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		return clamp01(normal.Survival((wt - mu) / sigma)), nil
	default:
		ln := math.Log(float64(n))
		wt := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		return clamp01(normal.Survival((wt - mu) / sigma)), nil
	}
}

// polyval evaluates a polynomial with coefficients ordered from the
// highest power down to the constant term.
func polyval(coeffs []float64, x float64) float64 {
	var y float64
	for _, c := range coeffs {
		y = y*x + c
	}
	return y
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
