package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"statengine/adapters/battery"
	"statengine/app"
	"statengine/domain/stats"
)

func analyzedFixture(t *testing.T) *app.AnalysisResult {
	t.Helper()
	svc := app.NewAnalysisService(battery.New())
	result, err := svc.Analyze([]stats.Group{
		{Name: "Control", Values: []float64{10, 12, 11, 13, 12}},
		{Name: "Treated", Values: []float64{20, 22, 21, 23, 22}},
		{Name: "HighDose", Values: []float64{30, 32, 31, 33, 32}},
	})
	require.NoError(t, err)
	return result
}

func TestWorkbookRoundTrip(t *testing.T) {
	result := analyzedFixture(t)

	var buf bytes.Buffer
	require.NoError(t, NewWorkbookWriter().Write(result, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetSummary, sheetAssumptions, sheetPosthoc}, f.GetSheetList())

	method, err := f.GetCellValue(sheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, result.Outcome.Method.String(), method)

	// Assumptions sheet: header + one row per group + the variance row.
	rows, err := f.GetRows(sheetAssumptions)
	require.NoError(t, err)
	assert.Len(t, rows, 1+len(result.GroupNames)+1)

	// Posthoc sheet: procedure row + header + all pairwise rows.
	posthocRows, err := f.GetRows(sheetPosthoc)
	require.NoError(t, err)
	assert.Len(t, posthocRows, 2+len(result.Outcome.Posthoc.Comparisons))
}

func TestWorkbookOmitsPosthocWhenAbsent(t *testing.T) {
	svc := app.NewAnalysisService(battery.New())
	result, err := svc.Analyze([]stats.Group{
		{Name: "Control", Values: []float64{10, 12, 11, 13, 12}},
		{Name: "Treated", Values: []float64{20, 22, 21, 23, 22}},
	})
	require.NoError(t, err)
	require.Nil(t, result.Outcome.Posthoc)

	var buf bytes.Buffer
	require.NoError(t, NewWorkbookWriter().Write(result, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.NotContains(t, f.GetSheetList(), sheetPosthoc)
}
