package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"recon-insights/internal/config"
	"recon-insights/internal/export"
	"recon-insights/internal/gateway"
	"recon-insights/internal/presenter"
	"recon-insights/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Command-line flags override the config file and RECON_* variables.
	inputDir := flag.String("input", cfg.Input.Dir, "Directory holding <platform>/<dateField>/*.json exports")
	outputDir := flag.String("output", cfg.Output.Dir, "Directory the CSV report is written to")
	platforms := flag.String("platform", strings.Join(cfg.Query.Platforms, ","), "Comma-separated platforms: flipkart, amazon, d2c")
	dateField := flag.String("date-field", cfg.Query.DateField, "Date field: settlement or invoice")
	startDate := flag.String("start", cfg.Query.Start, "Start date (YYYY-MM-DD)")
	endDate := flag.String("end", cfg.Query.End, "End date (YYYY-MM-DD)")
	activeTab := flag.String("tab", cfg.Query.ActiveTab, "Dashboard tab recorded in the report context")
	asJSON := flag.Bool("json", false, "Print the full dashboard as JSON instead of the summary")
	flag.Parse()

	cfg.Input.Dir = *inputDir
	cfg.Output.Dir = *outputDir
	cfg.Query.Platforms = strings.Split(*platforms, ",")
	cfg.Query.DateField = *dateField
	cfg.Query.Start = *startDate
	cfg.Query.End = *endDate
	cfg.Query.ActiveTab = *activeTab

	req, err := cfg.Request(time.Now().UTC().Truncate(time.Second))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	// Wire the file-backed source into the usecase.
	source := gateway.NewFileSource(cfg.Input.Dir)
	dashboardUseCase := usecase.NewDashboardUseCase(source)

	view, err := dashboardUseCase.BuildDashboard(context.Background(), req)
	if err != nil {
		log.Fatalf("Dashboard failed: %v", err)
	}

	path, err := gateway.NewCSVReportWriter(cfg.Output.Dir).WriteReport(req.ExportContext(), export.Rows(*view, req.ExportContext()))
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("[reconciler] report written to %s", path)

	if *asJSON {
		output, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			log.Fatalf("Failed to generate JSON output: %v", err)
		}
		fmt.Println(string(output))
		return
	}
	fmt.Println(presenter.RenderSummary(*view, cfg.Locale))
}
