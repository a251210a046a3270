package stats

import (
	"math"

	"statengine/domain/core"
)

// SignificanceLevel is the fixed alpha used everywhere in the engine.
// It is deliberately not configurable.
const SignificanceLevel = 0.05

// Group is one named sample of observations. Callers must guarantee at
// least 3 values per group before a Group reaches the engine.
type Group struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// MinGroupSize is the entry precondition on each group's sample size.
const MinGroupSize = 3

// Validate checks the entry preconditions on a single group.
func (g Group) Validate() error {
	if g.Name == "" {
		return core.ErrEmptyGroupName
	}
	if len(g.Values) < MinGroupSize {
		return core.ErrGroupTooSmall
	}
	return nil
}

// HasVariance reports whether the group has any spread at all. A constant
// group cannot be tested and must abort the run as degenerate input.
func (g Group) HasVariance() bool {
	if len(g.Values) == 0 {
		return false
	}
	first := g.Values[0]
	for _, v := range g.Values[1:] {
		if v != first {
			return true
		}
	}
	return false
}

// ValidateGroups checks the full input contract: at least two groups,
// unique non-empty names, each group with at least MinGroupSize values.
func ValidateGroups(groups []Group) error {
	if len(groups) < 2 {
		return core.ErrInsufficientGroups
	}
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return err
		}
		if _, dup := seen[g.Name]; dup {
			return core.ErrDuplicateGroupName
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// AssumptionSummary is the outcome of the assumption checks, derived once
// per analysis run and immutable thereafter.
type AssumptionSummary struct {
	AllNormal     bool               `json:"all_normal"`
	NormalityP    map[string]float64 `json:"per_group_normality_p"`
	EqualVariance bool               `json:"equal_variance"`
	VarianceP     float64            `json:"variance_p"`
}

// MethodChoice is the tagged variant over the fixed test catalog. Exactly
// one method is selected per run.
type MethodChoice int

const (
	StudentT MethodChoice = iota
	WelchT
	MannWhitneyU
	OneWayAnovaTukey
	KruskalWallisDunn
)

// String returns the user-facing method label. Labels are part of the
// report contract.
func (m MethodChoice) String() string {
	switch m {
	case StudentT:
		return "Student's t-test"
	case WelchT:
		return "Welch's t-test"
	case MannWhitneyU:
		return "Mann-Whitney U-test"
	case OneWayAnovaTukey:
		return "One-way ANOVA + Tukey's HSD"
	case KruskalWallisDunn:
		return "Kruskal-Wallis test (Non-parametric)"
	default:
		return "unknown"
	}
}

// Parametric reports whether the method assumes normality.
func (m MethodChoice) Parametric() bool {
	return m == StudentT || m == WelchT || m == OneWayAnovaTukey
}

// PairwiseComparison is one row of a post-hoc table.
type PairwiseComparison struct {
	GroupA    string  `json:"group_a"`
	GroupB    string  `json:"group_b"`
	Statistic float64 `json:"statistic"`
	// PValue is already adjusted for multiple comparisons (family-wise for
	// Tukey, Bonferroni for Dunn).
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
	Label       string  `json:"label"`
}

// PosthocTable holds all pairwise follow-up comparisons after a significant
// omnibus result.
type PosthocTable struct {
	Procedure   string               `json:"procedure"`
	Comparisons []PairwiseComparison `json:"comparisons"`
}

// Matrix renders the table as a symmetric name-by-name grid of adjusted
// p-values, the shape the non-parametric post-hoc is conventionally shown
// in. The diagonal is 1.
func (t PosthocTable) Matrix(names []string) map[string]map[string]float64 {
	m := make(map[string]map[string]float64, len(names))
	for _, a := range names {
		m[a] = make(map[string]float64, len(names))
		for _, b := range names {
			if a == b {
				m[a][b] = 1
			} else {
				m[a][b] = math.NaN()
			}
		}
	}
	for _, c := range t.Comparisons {
		m[c.GroupA][c.GroupB] = c.PValue
		m[c.GroupB][c.GroupA] = c.PValue
	}
	return m
}

// TestOutcome is the result of running the selected method.
type TestOutcome struct {
	Method      MethodChoice  `json:"method"`
	Statistic   float64       `json:"statistic"`
	PValue      float64       `json:"p_value"`
	Significant bool          `json:"significant"`
	Posthoc     *PosthocTable `json:"posthoc,omitempty"`
}
