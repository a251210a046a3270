package stats

import (
	"testing"
)

// TestSelectMethodTable exercises every cell of the decision table.
func TestSelectMethodTable(t *testing.T) {
	cases := []struct {
		name          string
		groupCount    int
		allNormal     bool
		equalVariance bool
		want          MethodChoice
	}{
		{"2 groups normal equal", 2, true, true, StudentT},
		{"2 groups normal unequal", 2, true, false, WelchT},
		{"2 groups non-normal equal", 2, false, true, MannWhitneyU},
		{"2 groups non-normal unequal", 2, false, false, MannWhitneyU},
		{"3 groups normal equal", 3, true, true, OneWayAnovaTukey},
		{"3 groups normal unequal", 3, true, false, KruskalWallisDunn},
		{"3 groups non-normal equal", 3, false, true, KruskalWallisDunn},
		{"3 groups non-normal unequal", 3, false, false, KruskalWallisDunn},
		{"5 groups normal equal", 5, true, true, OneWayAnovaTukey},
		{"5 groups non-normal unequal", 5, false, false, KruskalWallisDunn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := AssumptionSummary{
				AllNormal:     tc.allNormal,
				EqualVariance: tc.equalVariance,
			}
			got := SelectMethod(tc.groupCount, summary)
			if got != tc.want {
				t.Errorf("SelectMethod(%d, normal=%v, equalVar=%v) = %v, want %v",
					tc.groupCount, tc.allNormal, tc.equalVariance, got, tc.want)
			}
		})
	}
}

// TestSelectMethodIgnoresPValues verifies selection only consults flags,
// never the stored p-value details.
func TestSelectMethodIgnoresPValues(t *testing.T) {
	a := AssumptionSummary{AllNormal: true, EqualVariance: true, VarianceP: 0.9,
		NormalityP: map[string]float64{"A": 0.9, "B": 0.8}}
	b := AssumptionSummary{AllNormal: true, EqualVariance: true, VarianceP: 0.051,
		NormalityP: map[string]float64{"A": 0.06, "B": 0.07}}
	if SelectMethod(2, a) != SelectMethod(2, b) {
		t.Errorf("Selection must depend only on boolean flags")
	}
}

func TestMethodChoiceLabels(t *testing.T) {
	labels := map[MethodChoice]string{
		StudentT:          "Student's t-test",
		WelchT:            "Welch's t-test",
		MannWhitneyU:      "Mann-Whitney U-test",
		OneWayAnovaTukey:  "One-way ANOVA + Tukey's HSD",
		KruskalWallisDunn: "Kruskal-Wallis test (Non-parametric)",
	}
	for method, want := range labels {
		if method.String() != want {
			t.Errorf("MethodChoice(%d).String() = %q, want %q", method, method.String(), want)
		}
	}
}

func TestValidateGroups(t *testing.T) {
	valid := []Group{
		{Name: "A", Values: []float64{1, 2, 3}},
		{Name: "B", Values: []float64{4, 5, 6}},
	}
	if err := ValidateGroups(valid); err != nil {
		t.Fatalf("Unexpected error for valid groups: %v", err)
	}

	if err := ValidateGroups(valid[:1]); err == nil {
		t.Errorf("Expected error for a single group")
	}
	if err := ValidateGroups([]Group{
		{Name: "A", Values: []float64{1, 2, 3}},
		{Name: "A", Values: []float64{4, 5, 6}},
	}); err == nil {
		t.Errorf("Expected error for duplicate names")
	}
	if err := ValidateGroups([]Group{
		{Name: "A", Values: []float64{1, 2}},
		{Name: "B", Values: []float64{4, 5, 6}},
	}); err == nil {
		t.Errorf("Expected error for undersized group")
	}
}

func TestGroupHasVariance(t *testing.T) {
	if (Group{Name: "A", Values: []float64{5, 5, 5}}).HasVariance() {
		t.Errorf("Constant group should report no variance")
	}
	if !(Group{Name: "A", Values: []float64{5, 5, 5.1}}).HasVariance() {
		t.Errorf("Non-constant group should report variance")
	}
}
