// Package main provides the unified ETL command that scrapes the catalog,
// normalizes the records, and loads them into every enabled sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fashionetl/internal/config"
	"fashionetl/internal/extract"
	"fashionetl/internal/load"
	"fashionetl/internal/logger"
	"fashionetl/internal/report"
	"fashionetl/internal/transform"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	baseURL := flag.String("base-url", "", "Catalog base URL (overrides config)")
	pages := flag.Int("pages", 0, "Number of catalog pages to scrape (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	flag.Parse()

	// Local .env carries sink secrets during development.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *baseURL != "" {
		cfg.Scraper.BaseURL = *baseURL
	}

	if *pages > 0 {
		cfg.Scraper.TotalPages = *pages
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	var log *logger.Logger
	if cfg.Logging.JSON {
		log = logger.NewJSONLogger(cfg.Logging.Level, os.Stderr)
	} else {
		log = logger.NewLogger(cfg.Logging.Level)
	}

	log.Info("🚀 Starting catalog ETL pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s (%d pages)", cfg.Scraper.BaseURL, cfg.Scraper.TotalPages))
	log.Info(fmt.Sprintf("🎯 Sinks: %v", cfg.EnabledSinks()))

	ctx := context.Background()
	startTime := time.Now()

	// Phase 1: Extraction
	log.Info("Phase 1: Extraction (Scraping)...")

	extractor := extract.NewExtractor(cfg, log)

	rawTable := extractor.Extract(ctx)
	if rawTable.IsEmpty() {
		log.Error("❌ Extraction returned no records, aborting")
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Extracted %d records in %v", rawTable.Len(), time.Since(startTime)))

	// Phase 2: Transformation
	log.Info("Phase 2: Transformation (Cleaning & Filtering)...")

	transformStart := time.Now()
	pipeline := transform.NewPipeline(cfg.Transform, log)

	products := pipeline.Run(rawTable)
	if products.IsEmpty() {
		log.Error("❌ Transformation returned no valid records, aborting")
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Transformed %d valid records in %v", products.Len(), time.Since(transformStart)))

	// Phase 3: Loading
	log.Info("Phase 3: Loading (Saving to sinks)...")

	loader := load.NewLoader(log)

	result, err := loader.Load(ctx, &products, buildRequest(cfg))
	if err != nil {
		log.Error(fmt.Sprintf("❌ Load failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Pipeline Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Println("📊 Summary Report")
	fmt.Println("------------------------------------------------")
	fmt.Print(report.Render(report.Summary{
		Extracted:   rawTable.Len(),
		Transformed: products.Len(),
		Result:      result,
		Duration:    time.Since(startTime),
	}))
	fmt.Println("------------------------------------------------")

	if result.Failures() > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d destination(s) failed", result.Failures()))
		os.Exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	return config.LoadConfig(path)
}

// buildRequest maps the enabled sink configs onto one load request.
func buildRequest(cfg *config.Config) load.Request {
	var req load.Request

	if cfg.Sinks.CSV.Enabled {
		req.CSV = &load.CSVParams{
			Dir:      cfg.Sinks.CSV.Dir,
			Filename: cfg.Sinks.CSV.Filename,
		}
	}

	if cfg.Sinks.Sheets.Enabled {
		req.Sheets = &load.SheetsParams{
			CredentialsFile: cfg.Sinks.Sheets.CredentialsFile,
			SpreadsheetID:   cfg.Sinks.Sheets.SpreadsheetID,
			SheetName:       cfg.Sinks.Sheets.SheetName,
			CreateIfMissing: cfg.Sinks.Sheets.ShouldCreate(),
		}
	}

	if cfg.Sinks.Postgres.Enabled {
		req.Postgres = &load.PostgresParams{
			Conn: &load.ConnParams{
				Host:     cfg.Sinks.Postgres.Host,
				Port:     cfg.Sinks.Postgres.Port,
				Database: cfg.Sinks.Postgres.Database,
				User:     cfg.Sinks.Postgres.User,
				Password: cfg.Sinks.Postgres.Password,
				SSLMode:  cfg.Sinks.Postgres.SSLMode,
			},
			Table:    cfg.Sinks.Postgres.Table,
			Schema:   cfg.Sinks.Postgres.Schema,
			IfExists: cfg.Sinks.Postgres.IfExists,
		}
	}

	return req
}
