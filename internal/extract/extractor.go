package extract

import (
	"context"
	"time"

	"fashionetl/internal/config"
	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Extractor walks the paginated catalog and assembles the raw table.
type Extractor struct {
	cfg     *config.Config
	scraper *Scraper
	parser  *Parser
	log     *logger.Logger
}

// NewExtractor creates an extractor from configuration.
func NewExtractor(cfg *config.Config, log *logger.Logger) *Extractor {
	return &Extractor{
		cfg:     cfg,
		scraper: NewScraperWithConfig(&cfg.Scraper.Retry, cfg.Scraper.BufferSizeKb),
		parser:  NewParser(log),
		log:     log,
	}
}

// NewExtractorWithDeps creates an extractor with injected dependencies.
func NewExtractorWithDeps(cfg *config.Config, scraper *Scraper, parser *Parser, log *logger.Logger) *Extractor {
	return &Extractor{
		cfg:     cfg,
		scraper: scraper,
		parser:  parser,
		log:     log,
	}
}

// Extract scrapes every configured page and returns the raw table.
// Pages that fail to fetch or parse are logged and skipped; the table may
// come back empty.
func (e *Extractor) Extract(ctx context.Context) models.RawTable {
	table := models.NewRawTable()

	for page := 1; page <= e.cfg.Scraper.TotalPages; page++ {
		if ctx.Err() != nil {
			e.log.Warn("extraction canceled", "pages_done", page-1)
			break
		}

		url := e.cfg.PageURL(page)
		e.log.Info("fetching page", "url", url, "page", page)

		html, err := e.scraper.Scrape(ctx, url)
		if err != nil {
			e.log.Error("failed to fetch page, skipping", "url", url, "error", err)
			continue
		}

		records, err := e.parser.ParsePage(html)
		if err != nil {
			e.log.Error("failed to parse page, skipping", "url", url, "error", err)
			continue
		}

		e.log.Info("parsed products", "page", page, "count", len(records))
		table.Rows = append(table.Rows, records...)

		if delay := e.cfg.Scraper.PageDelayMs; delay > 0 && page < e.cfg.Scraper.TotalPages {
			time.Sleep(time.Duration(delay) * time.Millisecond)
		}
	}

	e.log.Info("extraction complete", "records", table.Len())

	return table
}
