package transform

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCleaner_Price(t *testing.T) {
	c := NewCleaner(16000)

	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"dollar prefix", "$100.50", 100.50 * 16000, true},
		{"plain number", "250", 250 * 16000, true},
		{"comma as decimal separator", "100,50", 100.50 * 16000, true},
		{"thousand separator with decimal", "1,000.50", 1000.50 * 16000, true},
		{"thousands comma without dot parses as decimal", "1,234", 1.234 * 16000, true},
		{"not available", "N/A", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"null", nil, 0, false},
		{"non-numeric text", "Price Unavailable", 0, false},
		{"stringified number", 100.5, 100.5 * 16000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Price(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Price(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && !almostEqual(got, tt.want) {
				t.Errorf("Price(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleaner_Rating(t *testing.T) {
	c := NewCleaner(16000)

	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"slash five suffix", "4.8 / 5", 4.8, true},
		{"star prefix", "⭐4.5", 4.5, true},
		{"out of five suffix", "3.2 out of 5", 3.2, true},
		{"integer rating", "4", 4, true},
		{"no digits", "Not Rated", 0, false},
		{"empty", "", 0, false},
		{"null", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Rating(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Rating(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && !almostEqual(got, tt.want) {
				t.Errorf("Rating(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleaner_Colors(t *testing.T) {
	c := NewCleaner(16000)

	tests := []struct {
		name   string
		input  any
		want   int
		wantOK bool
	}{
		{"count with unit", "3 Colors", 3, true},
		{"single color", "1 Color", 1, true},
		{"unknown sentinel", "Unknown Colors", 0, false},
		{"no digits", "Colors", 0, false},
		{"empty", "", 0, false},
		{"null", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Colors(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Colors(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("Colors(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleaner_Size(t *testing.T) {
	c := NewCleaner(16000)

	tests := []struct {
		name   string
		input  any
		want   string
		wantOK bool
	}{
		{"labeled", "Size: L", "L", true},
		{"label case insensitive", "size: XL", "XL", true},
		{"unlabeled", "M", "M", true},
		{"label only", "Size: ", "", false},
		{"empty", "", "", false},
		{"null", nil, "", false},
		{"non-string input", 42, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Size(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Size(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("Size(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleaner_Gender(t *testing.T) {
	c := NewCleaner(16000)

	tests := []struct {
		name   string
		input  any
		want   string
		wantOK bool
	}{
		{"labeled", "Gender: Male", "Male", true},
		{"label case insensitive", "GENDER: Female", "Female", true},
		{"unlabeled", "Unisex", "Unisex", true},
		{"empty", "", "", false},
		{"null", nil, "", false},
		{"non-string input", 1.5, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Gender(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Gender(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("Gender(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewCleaner_DefaultRate(t *testing.T) {
	c := NewCleaner(0)

	got, ok := c.Price("$1.00")
	if !ok {
		t.Fatal("Price returned not ok")
	}

	if !almostEqual(got, DefaultCurrencyRate) {
		t.Errorf("Price with default rate = %v, want %v", got, float64(DefaultCurrencyRate))
	}
}
