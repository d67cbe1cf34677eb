package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fashionetl/internal/config"
	"fashionetl/internal/logger"
)

func extractorConfig(baseURL string, pages int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scraper.BaseURL = baseURL
	cfg.Scraper.TotalPages = pages
	cfg.Scraper.PageDelayMs = 0
	cfg.Scraper.Retry = *fastRetryPolicy(1)

	return cfg
}

func TestExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 1
		fmt.Sscanf(r.URL.Path, "/page%d", &page)

		fmt.Fprintf(w, `<div class="collection-card">
		  <h3 class="product-title">Product page %d</h3>
		  <span class="price">$10.00</span>
		</div>`, page)
	}))
	defer server.Close()

	log := logger.NewLogger("error")
	e := NewExtractor(extractorConfig(server.URL, 3), log)

	table := e.Extract(context.Background())

	if table.Len() != 3 {
		t.Fatalf("extracted %d records, want 3", table.Len())
	}

	if got := table.Rows[1].DisplayString("title"); got != "Product page 2" {
		t.Errorf("second record title = %q, want page 2 product", got)
	}
}

func TestExtractor_Extract_SkipsFailedPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/page2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		fmt.Fprint(w, `<div class="collection-card">
		  <h3 class="product-title">Product</h3>
		  <span class="price">$10.00</span>
		</div>`)
	}))
	defer server.Close()

	log := logger.NewLogger("error")
	e := NewExtractor(extractorConfig(server.URL, 3), log)

	table := e.Extract(context.Background())

	if table.Len() != 2 {
		t.Errorf("extracted %d records, want 2 with the failed page skipped", table.Len())
	}
}

func TestExtractor_Extract_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<div class="collection-card"><h3 class="product-title">P</h3></div>`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := logger.NewLogger("error")
	e := NewExtractor(extractorConfig(server.URL, 5), log)

	if table := e.Extract(ctx); table.Len() != 0 {
		t.Errorf("extracted %d records after cancelation, want 0", table.Len())
	}
}
