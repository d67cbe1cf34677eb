// Package main provides the extraction-only command that scrapes the
// catalog and writes the raw table to disk for inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fashionetl/internal/config"
	"fashionetl/internal/extract"
	"fashionetl/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	baseURL := flag.String("base-url", "", "Catalog base URL (overrides config)")
	pages := flag.Int("pages", 0, "Number of catalog pages to scrape (overrides config)")
	output := flag.String("output", "raw_products.json", "Output JSON file path")

	flag.Parse()

	cfg := config.DefaultConfig()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *baseURL != "" {
		cfg.Scraper.BaseURL = *baseURL
	}

	if *pages > 0 {
		cfg.Scraper.TotalPages = *pages
	}

	log := logger.NewLogger(cfg.Logging.Level)

	extractor := extract.NewExtractor(cfg, log)

	table := extractor.Extract(context.Background())
	if table.IsEmpty() {
		log.Error("❌ Extraction returned no records")
		os.Exit(1)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to marshal raw table: %v", err))
		os.Exit(1)
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write %s: %v", *output, err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Wrote %d raw records to %s", table.Len(), *output))
}
