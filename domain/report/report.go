// Package report turns one analysis outcome into two parallel narrative
// reports, Japanese and English. The two reports are generated from the
// same rationale branch and the same formatted p-value, so they can never
// disagree on the underlying facts.
package report

import (
	"fmt"

	"statengine/domain/stats"
)

// Language selects which localized report to read.
type Language string

const (
	LanguageJP Language = "JP"
	LanguageEN Language = "EN"
)

// RationaleBranch enumerates why a method was chosen. It is evaluated from
// the same assumption flags the selector used, in priority order, so
// exactly one branch fires per run.
type RationaleBranch int

const (
	// RationaleParametric: normal distribution and homogeneous variance.
	RationaleParametric RationaleBranch = iota
	// RationaleNonParametric: at least one group failed the normality check.
	RationaleNonParametric
	// RationaleWelchCorrection: normal but heteroscedastic.
	RationaleWelchCorrection
)

// SelectRationale maps assumption flags to the rationale branch.
func SelectRationale(summary stats.AssumptionSummary) RationaleBranch {
	switch {
	case summary.AllNormal && summary.EqualVariance:
		return RationaleParametric
	case !summary.AllNormal:
		return RationaleNonParametric
	default:
		return RationaleWelchCorrection
	}
}

// localized holds the JP/EN sentence pair for one rationale branch. Keeping
// both languages in one record is what guarantees the two reports always
// describe the same branch.
type localized struct {
	jp string
	en string
}

var rationaleText = map[RationaleBranch]localized{
	RationaleParametric: {
		jp: "データの分布が偏っておらず、バラツキも均一だったため、標準的なt検定/ANOVAを選択しました。",
		en: "Since the data followed a normal distribution with equal variance, a parametric test (t-test/ANOVA) was selected.",
	},
	RationaleNonParametric: {
		jp: "データに外れ値や偏りが見られたため、順位を重視するノンパラメトリック検定を選択しました。",
		en: "Due to the presence of outliers or non-normal distribution, a non-parametric test was selected for robustness.",
	},
	RationaleWelchCorrection: {
		jp: "バラツキが群間で異なっていたため、ウェルチの補正を行いました。",
		en: "Due to unequal variances, Welch's correction was applied.",
	},
}

var verdictText = map[bool]localized{
	true:  {jp: "有意差あり", en: "Significant Difference Found"},
	false: {jp: "有意差なし", en: "No Significant Difference"},
}

// Report is one localized narrative document.
type Report struct {
	Language   Language `json:"language"`
	MethodName string   `json:"method_name"`
	Rationale  string   `json:"rationale"`
	Verdict    string   `json:"verdict"`
	PDisplay   string   `json:"p_value"`
	// Text is the assembled document with the fixed section framing
	// (Method / Rationale / Results / Conclusion). Presentation layers and
	// tests rely on it verbatim.
	Text string `json:"text"`
}

// Pair bundles the two reports produced from one outcome.
type Pair struct {
	JP Report `json:"jp"`
	EN Report `json:"en"`
}

// Compose builds the JP and EN reports for one completed analysis. It is a
// pure function of its inputs; rendering and delivery are someone else's
// problem.
func Compose(summary stats.AssumptionSummary, outcome stats.TestOutcome) Pair {
	branch := SelectRationale(summary)
	rationale := rationaleText[branch]
	verdict := verdictText[outcome.Significant]
	method := outcome.Method.String()
	pDisp := FormatPValue(outcome.PValue)

	jp := Report{
		Language:   LanguageJP,
		MethodName: method,
		Rationale:  rationale.jp,
		Verdict:    verdict.jp,
		PDisplay:   pDisp,
	}
	jp.Text = fmt.Sprintf(`【解析報告書】
1. 手法: %s
2. 理由: %s
3. 結果: %s (P=%s)
`, method, rationale.jp, verdict.jp, pDisp)

	conclusion := "not rejected"
	if outcome.Significant {
		conclusion = "rejected"
	}
	en := Report{
		Language:   LanguageEN,
		MethodName: method,
		Rationale:  rationale.en,
		Verdict:    verdict.en,
		PDisplay:   pDisp,
	}
	en.Text = fmt.Sprintf(`【Statistical Analysis Report】
1. Method: %s
2. Rationale: %s
3. Results: %s (P=%s)
4. Conclusion: Based on the %s, the null hypothesis was %s.
`, method, rationale.en, verdict.en, pDisp, method, conclusion)

	return Pair{JP: jp, EN: en}
}
