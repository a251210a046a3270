package app

import (
	"math"

	"statengine/domain/core"
	"statengine/domain/report"
	"statengine/domain/stats"
	"statengine/ports"
)

// AnalysisService runs the full decision pipeline: assumption checks,
// method selection, test execution and bilingual report composition. One
// call is one invocation; nothing is cached or shared between calls, so
// identical groups always produce identical output.
type AnalysisService struct {
	battery ports.BatteryPort
}

// NewAnalysisService creates the pipeline around a statistical battery.
func NewAnalysisService(battery ports.BatteryPort) *AnalysisService {
	return &AnalysisService{battery: battery}
}

// AnalysisResult is everything one invocation produces.
type AnalysisResult struct {
	ID          core.AnalysisID         `json:"id"`
	Fingerprint core.Hash               `json:"fingerprint"`
	GroupNames  []string                `json:"group_names"`
	Summary     stats.AssumptionSummary `json:"assumptions"`
	Outcome     stats.TestOutcome       `json:"outcome"`
	Reports     report.Pair             `json:"reports"`
}

// Analyze executes the pipeline over the supplied groups. Errors surface
// whole: there is never a partial result, and nothing is retried.
func (s *AnalysisService) Analyze(groups []stats.Group) (*AnalysisResult, error) {
	if err := stats.ValidateGroups(groups); err != nil {
		return nil, err
	}
	// Constant groups abort before any capability runs: the narrative
	// cannot be trusted once a test sees zero spread.
	for _, g := range groups {
		if !g.HasVariance() {
			return nil, core.NewDegenerateInputError(g.Name, "zero variance")
		}
	}

	summary, err := s.checkAssumptions(groups)
	if err != nil {
		return nil, err
	}

	method := stats.SelectMethod(len(groups), summary)

	outcome, err := s.runTest(method, groups, summary)
	if err != nil {
		return nil, err
	}

	samples := make(map[string][]float64, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		samples[g.Name] = g.Values
		names[i] = g.Name
	}

	return &AnalysisResult{
		ID:          core.NewAnalysisID(),
		Fingerprint: core.FingerprintSamples(samples),
		GroupNames:  names,
		Summary:     summary,
		Outcome:     outcome,
		Reports:     report.Compose(summary, outcome),
	}, nil
}

// checkAssumptions runs per-group normality plus one joint variance
// homogeneity test and folds them into boolean flags at alpha = 0.05.
func (s *AnalysisService) checkAssumptions(groups []stats.Group) (stats.AssumptionSummary, error) {
	summary := stats.AssumptionSummary{
		AllNormal:  true,
		NormalityP: make(map[string]float64, len(groups)),
	}

	for _, g := range groups {
		res, err := s.battery.Normality(g.Values)
		if err != nil {
			return stats.AssumptionSummary{}, core.NewComputationError("normality", err)
		}
		if !validP(res.PValue) {
			return stats.AssumptionSummary{}, core.NewDegenerateInputError(g.Name, "normality test returned a non-numeric p-value")
		}
		summary.NormalityP[g.Name] = res.PValue
		summary.AllNormal = summary.AllNormal && res.PValue > stats.SignificanceLevel
	}

	res, err := s.battery.VarianceHomogeneity(groups)
	if err != nil {
		return stats.AssumptionSummary{}, core.NewComputationError("variance homogeneity", err)
	}
	if !validP(res.PValue) {
		return stats.AssumptionSummary{}, core.NewDegenerateInputError("all", "variance test returned a non-numeric p-value")
	}
	summary.VarianceP = res.PValue
	summary.EqualVariance = res.PValue > stats.SignificanceLevel
	return summary, nil
}

// runTest dispatches to the selected test and, for a significant omnibus
// over 3+ groups, to the matching post-hoc procedure.
func (s *AnalysisService) runTest(method stats.MethodChoice, groups []stats.Group, summary stats.AssumptionSummary) (stats.TestOutcome, error) {
	var (
		res ports.TestResult
		err error
	)
	switch method {
	case stats.StudentT:
		res, err = s.battery.TwoSampleT(groups[0].Values, groups[1].Values, true)
	case stats.WelchT:
		res, err = s.battery.TwoSampleT(groups[0].Values, groups[1].Values, false)
	case stats.MannWhitneyU:
		res, err = s.battery.RankSum(groups[0].Values, groups[1].Values)
	case stats.OneWayAnovaTukey:
		res, err = s.battery.OneWayANOVA(groups)
	case stats.KruskalWallisDunn:
		res, err = s.battery.KruskalWallis(groups)
	}
	if err != nil {
		return stats.TestOutcome{}, core.NewComputationError(method.String(), err)
	}
	if !validP(res.PValue) {
		return stats.TestOutcome{}, core.NewDegenerateInputError("all", "primary test returned a non-numeric p-value")
	}

	outcome := stats.TestOutcome{
		Method:      method,
		Statistic:   res.Statistic,
		PValue:      res.PValue,
		Significant: res.PValue < stats.SignificanceLevel,
	}

	if outcome.Significant && len(groups) >= 3 {
		var table *stats.PosthocTable
		switch method {
		case stats.OneWayAnovaTukey:
			table, err = s.battery.TukeyHSD(groups)
		case stats.KruskalWallisDunn:
			table, err = s.battery.DunnBonferroni(groups)
		}
		if err != nil {
			return stats.TestOutcome{}, core.NewComputationError("post-hoc", err)
		}
		outcome.Posthoc = table
	}
	return outcome, nil
}

func validP(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0 && p <= 1
}
