// Package ui is the presentation layer: it collects raw group input,
// hands it to the analysis service, and renders or ships the resulting
// reports. All decision logic lives below it.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statengine/adapters/excel"
	"statengine/adapters/postgres"
	"statengine/app"
	"statengine/domain/report"
	"statengine/internal"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App is the web application.
type App struct {
	router       *chi.Mux
	service      *app.AnalysisService
	workbook     *excel.WorkbookWriter
	runs         *postgres.RunRepository // nil when no database is configured
	historyLimit int
	templates    *template.Template
	logger       *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Service      *app.AnalysisService
	Runs         *postgres.RunRepository
	HistoryLimit int
	Logger       *internal.Logger
}

// NewApp creates the web application.
func NewApp(cfg Config) (*App, error) {
	funcMap := template.FuncMap{
		"formatP": report.FormatPValue,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 20
	}

	a := &App{
		router:       chi.NewRouter(),
		service:      cfg.Service,
		workbook:     excel.NewWorkbookWriter(),
		runs:         cfg.Runs,
		historyLimit: historyLimit,
		templates:    templates,
		logger:       logger,
	}
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Post("/analyze", a.handleAnalyzeForm)
	a.router.Post("/download/report", a.handleDownloadReport)
	a.router.Post("/download/workbook", a.handleDownloadWorkbook)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", a.handleAnalyzeAPI)
		r.Get("/runs", a.handleListRuns)
	})
}

// Router exposes the HTTP handler for the server and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server.
func (a *App) Start(addr string) error {
	a.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
