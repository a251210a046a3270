package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"

	"statengine/app"
	"statengine/domain/core"
	"statengine/domain/stats"
)

// analyzeRequest is the JSON API input shape.
type analyzeRequest struct {
	Groups []stats.Group `json:"groups"`
}

// apiError is the JSON API error shape.
type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		History []historyEntry
	}{History: a.recentRuns(r)}

	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("failed to render index: %v", err)
	}
}

func (a *App) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("groups")
	groups, err := ParseGroupLines(raw)
	if err != nil {
		a.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.service.Analyze(groups)
	if err != nil {
		a.renderAnalysisError(w, err)
		return
	}
	a.persist(r, result)

	data := struct {
		Result  *app.AnalysisResult
		RawText string
		JPHTML  template.HTML
		ENHTML  template.HTML
	}{
		Result:  result,
		RawText: raw,
		JPHTML:  renderReportHTML(result.Reports.JP.Text),
		ENHTML:  renderReportHTML(result.Reports.EN.Text),
	}
	if err := a.templates.ExecuteTemplate(w, "results.html", data); err != nil {
		a.logger.Error("failed to render results: %v", err)
	}
}

func (a *App) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body", Kind: "bad_request"})
		return
	}

	result, err := a.service.Analyze(req.Groups)
	if err != nil {
		status, kind := classifyError(err)
		writeJSON(w, status, apiError{Error: err.Error(), Kind: kind})
		return
	}
	a.persist(r, result)
	writeJSON(w, http.StatusOK, result)
}

// handleDownloadReport re-runs the analysis from the submitted input and
// streams one localized report as a text file. Re-running is safe because
// the pipeline is idempotent; nothing is cached between invocations.
func (a *App) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	result, ok := a.reanalyze(w, r)
	if !ok {
		return
	}

	lang := r.FormValue("lang")
	text, filename := result.Reports.EN.Text, "report_en.txt"
	if lang == "jp" {
		text, filename = result.Reports.JP.Text, "report_jp.txt"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	fmt.Fprint(w, text)
}

func (a *App) handleDownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	result, ok := a.reanalyze(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis.xlsx"`)
	if err := a.workbook.Write(result, w); err != nil {
		a.logger.Error("failed to stream workbook: %v", err)
	}
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "run history is not configured", Kind: "not_configured"})
		return
	}
	records, err := a.runs.ListRecent(r.Context(), a.historyLimit)
	if err != nil {
		a.logger.Error("failed to list runs: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to list runs", Kind: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *App) reanalyze(w http.ResponseWriter, r *http.Request) (*app.AnalysisResult, bool) {
	groups, err := ParseGroupLines(r.FormValue("groups"))
	if err != nil {
		a.renderError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	result, err := a.service.Analyze(groups)
	if err != nil {
		a.renderAnalysisError(w, err)
		return nil, false
	}
	return result, true
}

// persist records the finished run when history is configured. A failed
// write never fails the analysis; the report already exists.
func (a *App) persist(r *http.Request, result *app.AnalysisResult) {
	if a.runs == nil {
		return
	}
	if err := a.runs.Save(r.Context(), result); err != nil {
		a.logger.Warn("failed to persist analysis run: %v", err)
	}
}

type historyEntry struct {
	Method      string
	PDisplay    string
	Significant bool
	CreatedAt   string
}

func (a *App) recentRuns(r *http.Request) []historyEntry {
	if a.runs == nil {
		return nil
	}
	records, err := a.runs.ListRecent(r.Context(), a.historyLimit)
	if err != nil {
		a.logger.Warn("failed to load run history: %v", err)
		return nil
	}
	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			Method:      rec.Method,
			PDisplay:    rec.PDisplay,
			Significant: rec.Significant,
			CreatedAt:   rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return entries
}

// renderAnalysisError maps pipeline errors to user-visible responses.
// Insufficient groups is a normal idle state and gets an informational
// page; degenerate input and computation failures are hard errors.
func (a *App) renderAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case core.IsInsufficientGroups(err):
		a.renderInfo(w, "Please input data for at least 2 groups (3 or more values each).")
	case core.IsDegenerateInput(err):
		a.renderError(w, http.StatusBadRequest, err.Error())
	default:
		a.renderError(w, http.StatusInternalServerError, err.Error())
	}
}

func (a *App) renderInfo(w http.ResponseWriter, message string) {
	if err := a.templates.ExecuteTemplate(w, "message.html", map[string]interface{}{
		"Title": "More data needed", "Message": message, "IsError": false,
	}); err != nil {
		a.logger.Error("failed to render message: %v", err)
	}
}

func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, "message.html", map[string]interface{}{
		"Title": "Analysis failed", "Message": message, "IsError": true,
	}); err != nil {
		a.logger.Error("failed to render message: %v", err)
	}
}

func renderReportHTML(text string) template.HTML {
	return template.HTML(markdown.ToHTML([]byte(text), nil, nil))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// classifyError maps the error taxonomy onto HTTP statuses for the API.
func classifyError(err error) (int, string) {
	switch {
	case core.IsInsufficientGroups(err):
		return http.StatusUnprocessableEntity, "insufficient_groups"
	case core.IsDegenerateInput(err):
		return http.StatusBadRequest, "degenerate_input"
	case core.IsComputationError(err):
		return http.StatusInternalServerError, "computation_failed"
	default:
		return http.StatusBadRequest, "bad_request"
	}
}
