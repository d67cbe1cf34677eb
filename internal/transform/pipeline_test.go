package transform

import (
	"testing"

	"fashionetl/internal/config"
	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

func testPipeline() *Pipeline {
	cfg := config.TransformConfig{
		CurrencyRate:  16000,
		DirtyPatterns: config.DefaultDirtyPatterns(),
	}

	return NewPipeline(cfg, logger.NewLogger("error"))
}

func fullRow(title, price, rating, colors, size, gender string) models.RawRecord {
	return models.RawRecord{
		models.FieldTitle:     title,
		models.FieldPrice:     price,
		models.FieldRating:    rating,
		models.FieldColors:    colors,
		models.FieldSize:      size,
		models.FieldGender:    gender,
		models.FieldTimestamp: "2026-08-25T10:00:00Z",
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	p := testPipeline()

	table := models.NewRawTable()
	table.Rows = []models.RawRecord{
		fullRow("T-shirt 2", "$100.50", "3.2 out of 5", "2 Colors", "Size: L", "Gender: Male"),
		fullRow("Unknown Product", "$50.00", "4.0 / 5", "3 Colors", "M", "Female"),
		fullRow("Broken Product", "Price Unavailable", "4.0 / 5", "3 Colors", "M", "Female"),
	}

	result := p.Run(table)

	if result.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", result.Len())
	}

	product := result.Rows[0]

	if product.Title != "T-shirt 2" {
		t.Errorf("Title = %q, want %q", product.Title, "T-shirt 2")
	}

	if !almostEqual(product.Price, 100.50*16000) {
		t.Errorf("Price = %v, want %v", product.Price, 100.50*16000)
	}

	if !almostEqual(product.Rating, 3.2) {
		t.Errorf("Rating = %v, want 3.2", product.Rating)
	}

	if product.Colors != 2 {
		t.Errorf("Colors = %d, want 2", product.Colors)
	}

	if product.Size != "L" {
		t.Errorf("Size = %q, want %q", product.Size, "L")
	}

	if product.Gender != "Male" {
		t.Errorf("Gender = %q, want %q", product.Gender, "Male")
	}

	if product.Timestamp != "2026-08-25T10:00:00Z" {
		t.Errorf("Timestamp = %q, want carried through unchanged", product.Timestamp)
	}
}

func TestPipeline_DropsIncompleteRows(t *testing.T) {
	p := testPipeline()

	table := models.NewRawTable()
	table.Rows = []models.RawRecord{
		// Survives the dirty filter but colors cannot be cleaned.
		fullRow("Product A", "$10.00", "4.0", "Unknown Colors", "L", "Male"),
		fullRow("Product B", "$10.00", "4.0", "2 Colors", "L", "Male"),
	}

	result := p.Run(table)

	if result.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", result.Len())
	}

	if result.Rows[0].Title != "Product B" {
		t.Errorf("surviving title = %q, want %q", result.Rows[0].Title, "Product B")
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	p := testPipeline()

	result := p.Run(models.NewRawTable())

	if !result.IsEmpty() {
		t.Errorf("expected empty table, got %d rows", result.Len())
	}
}

func TestPipeline_MissingRequiredColumn(t *testing.T) {
	p := testPipeline()

	table := models.RawTable{
		Columns: []string{models.FieldTitle, models.FieldPrice, models.FieldRating, models.FieldColors, models.FieldSize},
		Rows: []models.RawRecord{
			fullRow("Product", "$10.00", "4.0", "2 Colors", "L", "Male"),
		},
	}

	result := p.Run(table)

	if !result.IsEmpty() {
		t.Errorf("expected empty table when gender column is missing, got %d rows", result.Len())
	}
}

// Re-running the pipeline on its own stringified output leaves the already
// cleaned fields unchanged. Price is excluded: the currency conversion
// applies on every pass by design of the cleaning rules.
func TestPipeline_StableOnCleanInput(t *testing.T) {
	p := testPipeline()

	table := models.NewRawTable()
	table.Rows = []models.RawRecord{
		fullRow("Product", "$10.00", "4.5", "2 Colors", "L", "Male"),
	}

	first := p.Run(table)
	if first.Len() != 1 {
		t.Fatalf("first run: expected 1 product, got %d", first.Len())
	}

	refed := models.NewRawTable()
	for _, product := range first.Rows {
		cells := product.Cells()
		refed.Rows = append(refed.Rows, models.RawRecord{
			models.FieldTitle:     cells[0],
			models.FieldPrice:     cells[1],
			models.FieldRating:    cells[2],
			models.FieldColors:    cells[3],
			models.FieldSize:      cells[4],
			models.FieldGender:    cells[5],
			models.FieldTimestamp: cells[6],
		})
	}

	second := p.Run(refed)
	if second.Len() != 1 {
		t.Fatalf("second run: expected 1 product, got %d", second.Len())
	}

	got, want := second.Rows[0], first.Rows[0]

	if got.Rating != want.Rating {
		t.Errorf("Rating changed on re-run: %v != %v", got.Rating, want.Rating)
	}

	if got.Colors != want.Colors {
		t.Errorf("Colors changed on re-run: %d != %d", got.Colors, want.Colors)
	}

	if got.Size != want.Size {
		t.Errorf("Size changed on re-run: %q != %q", got.Size, want.Size)
	}

	if got.Gender != want.Gender {
		t.Errorf("Gender changed on re-run: %q != %q", got.Gender, want.Gender)
	}
}
