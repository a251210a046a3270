package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statengine/adapters/battery"
	"statengine/app"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Config{Service: app.NewAnalysisService(battery.New())})
	require.NoError(t, err)
	return a
}

func postJSON(t *testing.T, a *App, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, a *App, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

const twoGroupsJSON = `{"groups":[
	{"name":"Control","values":[10,12,11,13,12]},
	{"name":"Treated","values":[20,22,21,23,22]}
]}`

func TestAnalyzeAPI(t *testing.T) {
	a := newTestApp(t)
	rec := postJSON(t, a, "/api/analyze", twoGroupsJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	var result app.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Student's t-test", result.Outcome.Method.String())
	assert.True(t, result.Outcome.Significant)
	assert.Equal(t, result.Reports.JP.PDisplay, result.Reports.EN.PDisplay)
}

func TestAnalyzeAPIInsufficientGroups(t *testing.T) {
	a := newTestApp(t)
	rec := postJSON(t, a, "/api/analyze", `{"groups":[{"name":"Only","values":[1,2,3]}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "insufficient_groups", apiErr.Kind)
}

func TestAnalyzeAPIDegenerateInput(t *testing.T) {
	a := newTestApp(t)
	rec := postJSON(t, a, "/api/analyze", `{"groups":[
		{"name":"Flat","values":[7,7,7]},
		{"name":"B","values":[1,2,3]}
	]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "degenerate_input", apiErr.Kind)
}

func TestAnalyzeFormFlow(t *testing.T) {
	a := newTestApp(t)
	rec := postForm(t, a, "/analyze", url.Values{"groups": {
		"Control: 10, 12, 11, 13, 12\nTreated: 20, 22, 21, 23, 22",
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Method Selected: Student&#39;s t-test")
	assert.Contains(t, body, "【解析報告書】")
	assert.Contains(t, body, "【Statistical Analysis Report】")
}

func TestAnalyzeFormInsufficientGroupsIsInformational(t *testing.T) {
	a := newTestApp(t)
	// A single filled-in group is a normal in-progress state, so the page
	// is guidance, not an error response.
	rec := postForm(t, a, "/analyze", url.Values{"groups": {"Control: 10, 12, 11"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 2 groups")
	assert.NotContains(t, rec.Body.String(), "Analysis failed")
}

func TestDownloadReportJP(t *testing.T) {
	a := newTestApp(t)
	rec := postForm(t, a, "/download/report", url.Values{
		"groups": {"Control: 10, 12, 11, 13, 12\nTreated: 20, 22, 21, 23, 22"},
		"lang":   {"jp"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report_jp.txt")
	assert.Contains(t, rec.Body.String(), "1. 手法: Student's t-test")
}

func TestDownloadWorkbook(t *testing.T) {
	a := newTestApp(t)
	rec := postForm(t, a, "/download/workbook", url.Values{
		"groups": {"Control: 10, 12, 11, 13, 12\nTreated: 20, 22, 21, 23, 22"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}

func TestListRunsWithoutDatabase(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexRenders(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Scientific Stat Engine")
	assert.Contains(t, rec.Body.String(), "Disclaimer")
}
