package ports

import (
	"statengine/domain/stats"
)

// TestResult is the (statistic, p-value) pair every capability returns.
type TestResult struct {
	Statistic float64
	PValue    float64
}

// BatteryPort is the statistical capability boundary. The engine is
// agnostic to the numerics behind it; it only consumes statistics and
// p-values. Implementations must be deterministic for fixed input so the
// whole pipeline stays idempotent.
type BatteryPort interface {
	// Normality tests a single sample against the normal distribution.
	Normality(values []float64) (TestResult, error)

	// VarianceHomogeneity tests all groups jointly for a common variance.
	VarianceHomogeneity(groups []stats.Group) (TestResult, error)

	// TwoSampleT runs the unpaired two-sample t-test. pooled selects
	// Student's (pooled variance) versus Welch's (unpooled) flavor.
	TwoSampleT(a, b []float64, pooled bool) (TestResult, error)

	// RankSum runs the two-sided Mann-Whitney U rank-sum test.
	RankSum(a, b []float64) (TestResult, error)

	// OneWayANOVA runs the k-sample parametric omnibus variance-ratio test.
	OneWayANOVA(groups []stats.Group) (TestResult, error)

	// KruskalWallis runs the k-sample rank-based omnibus test.
	KruskalWallis(groups []stats.Group) (TestResult, error)

	// TukeyHSD runs the all-pairs parametric post-hoc with family-wise
	// error control.
	TukeyHSD(groups []stats.Group) (*stats.PosthocTable, error)

	// DunnBonferroni runs the all-pairs rank-based post-hoc with Bonferroni
	// adjustment.
	DunnBonferroni(groups []stats.Group) (*stats.PosthocTable, error)
}
