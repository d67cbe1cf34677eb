package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Card selectors, most specific first. The broad fallback covers theme
// variants of the catalog markup.
const (
	cardSelector         = "div.collection-card, div.product-card, div.item-card"
	cardFallbackSelector = "div[class*='product'], div[class*='collection'], div[class*='item']"
)

// placeholder is emitted for any detail the card does not carry.
const placeholder = "N/A"

// Parser extracts raw product records from catalog page HTML.
type Parser struct {
	log *logger.Logger
	now func() time.Time
}

// NewParser creates a new page parser.
func NewParser(log *logger.Logger) *Parser {
	return &Parser{
		log: log,
		now: time.Now,
	}
}

// ParsePage extracts one record per product card found in the page.
// Cards without a title are skipped.
func (p *Parser) ParsePage(html string) ([]models.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	cards := doc.Find(cardSelector)
	if cards.Length() == 0 {
		p.log.Warn("no product cards found, trying fallback selectors")
		cards = doc.Find(cardFallbackSelector)
	}

	var records []models.RawRecord

	cards.Each(func(_ int, card *goquery.Selection) {
		record, ok := p.parseCard(card)
		if !ok {
			return
		}

		records = append(records, record)
	})

	return records, nil
}

// parseCard pulls the product attributes out of one card. All values stay
// raw display text; cleaning happens downstream.
func (p *Parser) parseCard(card *goquery.Selection) (models.RawRecord, bool) {
	title := strings.TrimSpace(card.Find("h3.product-title").First().Text())
	if title == "" {
		p.log.Warn("no title found in product card, skipping")
		return nil, false
	}

	price := strings.TrimSpace(card.Find("span.price").First().Text())
	if price == "" {
		p.log.Warn("no price found for product", "title", title)
		price = placeholder
	}

	rating := placeholder
	colors := placeholder
	size := placeholder
	gender := placeholder

	card.Find("p").Each(func(_ int, detail *goquery.Selection) {
		text := strings.TrimSpace(detail.Text())

		switch {
		case strings.Contains(text, "Rating:"):
			rating = strings.TrimSpace(strings.Replace(text, "Rating:", "", 1))
		case strings.Contains(text, "Colors"):
			colors = text
		case strings.Contains(text, "Size:"):
			size = strings.TrimSpace(strings.Replace(text, "Size:", "", 1))
		case strings.Contains(text, "Gender:"):
			gender = strings.TrimSpace(strings.Replace(text, "Gender:", "", 1))
		}
	})

	return models.RawRecord{
		models.FieldTitle:     title,
		models.FieldPrice:     price,
		models.FieldRating:    rating,
		models.FieldColors:    colors,
		models.FieldSize:      size,
		models.FieldGender:    gender,
		models.FieldTimestamp: p.now().Format(time.RFC3339),
	}, true
}
