// Command cli runs the analysis pipeline over dataset files in batch.
// Each file is one independent invocation (its own groups, its own
// reports); files are processed concurrently since invocations share no
// state.
//
// File format, one group per line:
//
//	Control: 10, 12, 11, 13, 12
//	Treated: 20, 22, 21, 23, 22
//
// For every input file the CLI writes <file>.report_jp.txt,
// <file>.report_en.txt and <file>.xlsx next to it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"statengine/adapters/battery"
	"statengine/adapters/excel"
	"statengine/app"
	"statengine/domain/core"
	"statengine/internal"
	"statengine/ui"
)

func main() {
	workers := flag.Int("workers", 4, "maximum files analyzed concurrently")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cli [-workers n] <dataset file> ...")
		os.Exit(2)
	}

	logger := internal.NewDefaultLogger()
	service := app.NewAnalysisService(battery.New())
	workbook := excel.NewWorkbookWriter()

	var g errgroup.Group
	g.SetLimit(*workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			return analyzeFile(service, workbook, logger, file)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("batch failed: %v", err)
	}
}

func analyzeFile(service *app.AnalysisService, workbook *excel.WorkbookWriter, logger *internal.Logger, file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	groups, err := ui.ParseGroupLines(string(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	result, err := service.Analyze(groups)
	if err != nil {
		if core.IsInsufficientGroups(err) {
			// Not enough filled-in groups is an expected state, not a
			// batch-stopping failure.
			logger.Info("%s: skipped, %v", file, err)
			return nil
		}
		return fmt.Errorf("%s: %w", file, err)
	}

	if err := os.WriteFile(file+".report_jp.txt", []byte(result.Reports.JP.Text), 0o644); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := os.WriteFile(file+".report_en.txt", []byte(result.Reports.EN.Text), 0o644); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	xlsx, err := os.Create(file + ".xlsx")
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	defer xlsx.Close()
	if err := workbook.Write(result, xlsx); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	logger.Info("%s: %s, p=%s", file, result.Outcome.Method, result.Reports.EN.PDisplay)
	return nil
}
