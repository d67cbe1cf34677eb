// Package transform normalizes raw catalog records into typed products.
package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCurrencyRate converts scraped USD prices to IDR.
const DefaultCurrencyRate = 16000

// unknownColors is the sentinel the catalog renders when the color count
// could not be determined.
const unknownColors = "Unknown Colors"

// Cleaner maps raw display strings to typed field values. Every method
// returns the zero value and false for input it cannot normalize; cleaners
// never fail any other way.
type Cleaner struct {
	currencyRate  float64
	priceStrip    *regexp.Regexp
	ratingPattern *regexp.Regexp
	digitsPattern *regexp.Regexp
	sizeLabel     *regexp.Regexp
	genderLabel   *regexp.Regexp
}

// NewCleaner creates a cleaner using the given currency conversion rate.
func NewCleaner(currencyRate float64) *Cleaner {
	if currencyRate <= 0 {
		currencyRate = DefaultCurrencyRate
	}

	return &Cleaner{
		currencyRate:  currencyRate,
		priceStrip:    regexp.MustCompile(`[^\d.,]`),
		ratingPattern: regexp.MustCompile(`\d+(?:\.\d+)?`),
		digitsPattern: regexp.MustCompile(`\d+`),
		sizeLabel:     regexp.MustCompile(`(?i)^Size:\s*`),
		genderLabel:   regexp.MustCompile(`(?i)^Gender:\s*`),
	}
}

// Price normalizes a price display string to a numeric value in the target
// currency. A comma with no dot present is treated as the decimal separator;
// remaining commas are treated as thousand separators and removed.
func (c *Cleaner) Price(v any) (float64, bool) {
	s, ok := textValue(v)
	if !ok {
		return 0, false
	}

	cleaned := c.priceStrip.ReplaceAllString(s, "")
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	return value * c.currencyRate, true
}

// Rating extracts the first decimal number anywhere in the text, so prefixed
// symbols and trailing "/ 5" or "out of 5" suffixes are ignored.
func (c *Cleaner) Rating(v any) (float64, bool) {
	s, ok := textValue(v)
	if !ok {
		return 0, false
	}

	match := c.ratingPattern.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// Colors extracts the color count from text like "3 Colors".
func (c *Cleaner) Colors(v any) (int, bool) {
	s, ok := textValue(v)
	if !ok || s == unknownColors {
		return 0, false
	}

	match := c.digitsPattern.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return value, true
}

// Size strips an optional leading "Size:" label. Non-string input is absent.
func (c *Cleaner) Size(v any) (string, bool) {
	return stripLabel(v, c.sizeLabel)
}

// Gender strips an optional leading "Gender:" label. Non-string input is
// absent.
func (c *Cleaner) Gender(v any) (string, bool) {
	return stripLabel(v, c.genderLabel)
}

func stripLabel(v any, label *regexp.Regexp) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}

	cleaned := strings.TrimSpace(label.ReplaceAllString(s, ""))
	if cleaned == "" {
		return "", false
	}

	return cleaned, true
}

// textValue renders a raw value as trimmed-checkable text. Null and
// whitespace-only values are absent; non-string values are stringified.
func textValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}

	if strings.TrimSpace(s) == "" {
		return "", false
	}

	return s, true
}
