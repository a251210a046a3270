// Package battery implements the statistical capability port with
// deterministic gonum-backed numerics. The decision engine upstream only
// ever sees (statistic, p-value) pairs and pairwise tables; everything in
// here is replaceable without touching the selection logic.
package battery

import (
	"statengine/domain/report"
	"statengine/domain/stats"
	"statengine/ports"
)

// Battery is the production implementation of ports.BatteryPort.
type Battery struct{}

// New creates the gonum-backed test battery.
func New() *Battery {
	return &Battery{}
}

var _ ports.BatteryPort = (*Battery)(nil)

// Normality runs the Shapiro-Wilk test on one sample.
func (bt *Battery) Normality(values []float64) (ports.TestResult, error) {
	w, p, err := shapiroWilk(values)
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: w, PValue: p}, nil
}

// VarianceHomogeneity runs Levene's test across all groups jointly.
func (bt *Battery) VarianceHomogeneity(groups []stats.Group) (ports.TestResult, error) {
	w, p, err := levene(values(groups))
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: w, PValue: p}, nil
}

// TwoSampleT runs Student's (pooled) or Welch's (unpooled) t-test.
func (bt *Battery) TwoSampleT(a, b []float64, pooled bool) (ports.TestResult, error) {
	t, p, err := twoSampleT(a, b, pooled)
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: t, PValue: p}, nil
}

// RankSum runs the two-sided Mann-Whitney U test.
func (bt *Battery) RankSum(a, b []float64) (ports.TestResult, error) {
	u, p, err := mannWhitneyU(a, b)
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: u, PValue: p}, nil
}

// OneWayANOVA runs the parametric omnibus F-test.
func (bt *Battery) OneWayANOVA(groups []stats.Group) (ports.TestResult, error) {
	f, p, err := oneWayANOVA(values(groups))
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: f, PValue: p}, nil
}

// KruskalWallis runs the rank-based omnibus test.
func (bt *Battery) KruskalWallis(groups []stats.Group) (ports.TestResult, error) {
	h, p, err := kruskalWallis(values(groups))
	if err != nil {
		return ports.TestResult{}, err
	}
	return ports.TestResult{Statistic: h, PValue: p}, nil
}

// TukeyHSD runs the all-pairs family-wise-controlled parametric post-hoc.
func (bt *Battery) TukeyHSD(groups []stats.Group) (*stats.PosthocTable, error) {
	results, err := tukeyHSD(names(groups), values(groups))
	if err != nil {
		return nil, err
	}
	return toTable("Tukey's HSD", results), nil
}

// DunnBonferroni runs the all-pairs rank-based post-hoc with Bonferroni
// adjustment.
func (bt *Battery) DunnBonferroni(groups []stats.Group) (*stats.PosthocTable, error) {
	results, err := dunnBonferroni(names(groups), values(groups))
	if err != nil {
		return nil, err
	}
	return toTable("Dunn's test (Bonferroni)", results), nil
}

func names(groups []stats.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Name
	}
	return out
}

func values(groups []stats.Group) [][]float64 {
	out := make([][]float64, len(groups))
	for i, g := range groups {
		out[i] = g.Values
	}
	return out
}

func toTable(procedure string, results []pairwiseResult) *stats.PosthocTable {
	table := &stats.PosthocTable{Procedure: procedure}
	for _, r := range results {
		table.Comparisons = append(table.Comparisons, stats.PairwiseComparison{
			GroupA:      r.nameA,
			GroupB:      r.nameB,
			Statistic:   r.statistic,
			PValue:      r.pValue,
			Significant: r.pValue < stats.SignificanceLevel,
			Label:       report.SignificanceLabel(r.pValue),
		})
	}
	return table
}
