package battery

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// twoSampleT runs the unpaired two-sample t-test, two-sided. pooled
// selects Student's flavor (common variance); otherwise Welch's flavor
// with the Welch-Satterthwaite degrees of freedom.
func twoSampleT(a, b []float64, pooled bool) (t, p float64, err error) {
	na, nb := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, fmt.Errorf("t-test requires at least 2 observations per sample")
	}

	meanA, err := stats.Mean(a)
	if err != nil {
		return 0, 0, err
	}
	meanB, err := stats.Mean(b)
	if err != nil {
		return 0, 0, err
	}
	varA, err := stats.SampleVariance(a)
	if err != nil {
		return 0, 0, err
	}
	varB, err := stats.SampleVariance(b)
	if err != nil {
		return 0, 0, err
	}

	var se, df float64
	if pooled {
		sp2 := ((na-1)*varA + (nb-1)*varB) / (na + nb - 2)
		se = math.Sqrt(sp2 * (1/na + 1/nb))
		df = na + nb - 2
	} else {
		va, vb := varA/na, varB/nb
		se = math.Sqrt(va + vb)
		df = (va + vb) * (va + vb) / (va*va/(na-1) + vb*vb/(nb-1))
	}
	if se == 0 || math.IsNaN(se) {
		return 0, 0, fmt.Errorf("zero standard error, statistic undefined")
	}

	t = (meanA - meanB) / se
	// Survival keeps the tail accurate; 1-CDF cancels to 0 for large |t|.
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = clamp01(2 * dist.Survival(math.Abs(t)))
	return t, p, nil
}
