package stats

// SelectMethod maps (group count, assumption flags) to the test that will
// actually run. It is a total decision table: it never looks at sample
// values, only at the flags, and every combination maps to exactly one
// method.
//
//	count | all normal | equal variance | method
//	  2   |    yes     |      yes       | Student's t
//	  2   |    yes     |      no        | Welch's t
//	  2   |    no      |      -         | Mann-Whitney U
//	 >=3  |    yes     |      yes       | one-way ANOVA + Tukey HSD
//	 >=3  |    yes     |      no        | Kruskal-Wallis + Dunn
//	 >=3  |    no      |      -         | Kruskal-Wallis + Dunn
//
// The >=3 normal/unequal-variance row falls back to the non-parametric
// path because the catalog carries no variance-robust parametric omnibus
// test. That fallback is intentional behavior, not an oversight.
func SelectMethod(groupCount int, summary AssumptionSummary) MethodChoice {
	if groupCount == 2 {
		if !summary.AllNormal {
			return MannWhitneyU
		}
		if summary.EqualVariance {
			return StudentT
		}
		return WelchT
	}
	if summary.AllNormal && summary.EqualVariance {
		return OneWayAnovaTukey
	}
	return KruskalWallisDunn
}
