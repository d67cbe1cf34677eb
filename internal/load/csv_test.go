package load

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

func testTable() *models.ProductTable {
	return &models.ProductTable{
		Rows: []models.Product{
			{
				Title:     "T-shirt 2",
				Price:     1608000,
				Rating:    3.2,
				Colors:    2,
				Size:      "L",
				Gender:    "Male",
				Timestamp: "2026-08-25T10:00:00Z",
			},
			{
				Title:     "Hoodie 3",
				Price:     800000,
				Rating:    4.5,
				Colors:    3,
				Size:      "M",
				Gender:    "Unisex",
				Timestamp: "2026-08-25T10:00:01Z",
			},
		},
	}
}

func TestCSVSink_Save(t *testing.T) {
	sink := NewCSVSink(logger.NewLogger("error"))
	dir := t.TempDir()

	path, err := sink.Save(testTable(), dir, "products.csv")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if path != filepath.Join(dir, "products.csv") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "products.csv"))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(rows))
	}

	wantHeader := models.Header()
	for i, column := range wantHeader {
		if rows[0][i] != column {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], column)
		}
	}

	if rows[1][0] != "T-shirt 2" {
		t.Errorf("row 1 title = %q, want %q", rows[1][0], "T-shirt 2")
	}

	if rows[1][1] != "1608000" {
		t.Errorf("row 1 price = %q, want %q", rows[1][1], "1608000")
	}
}

func TestCSVSink_Save_Overwrites(t *testing.T) {
	sink := NewCSVSink(logger.NewLogger("error"))
	dir := t.TempDir()

	if _, err := sink.Save(testTable(), dir, "products.csv"); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	single := &models.ProductTable{Rows: testTable().Rows[:1]}

	path, err := sink.Save(single, dir, "products.csv")
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV %q: %v", string(data), err)
	}

	if len(rows) != 2 {
		t.Errorf("expected header + 1 row after overwrite, got %d lines", len(rows))
	}
}

func TestCSVSink_Save_EmptyTable(t *testing.T) {
	sink := NewCSVSink(logger.NewLogger("error"))

	_, err := sink.Save(&models.ProductTable{}, t.TempDir(), "products.csv")
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}

	var loadErr *Error
	if !errors.As(err, &loadErr) || loadErr.Sink != SinkCSV {
		t.Errorf("expected uniform load error for csv sink, got %v", err)
	}
}

func TestCSVSink_Save_NilTable(t *testing.T) {
	sink := NewCSVSink(logger.NewLogger("error"))

	if _, err := sink.Save(nil, t.TempDir(), "products.csv"); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable for nil table, got %v", err)
	}
}

func TestCSVSink_Save_UnwritableDir(t *testing.T) {
	sink := NewCSVSink(logger.NewLogger("error"))

	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := sink.Save(testTable(), missing, "products.csv")
	if err == nil {
		t.Fatal("expected error for unwritable directory")
	}

	var loadErr *Error
	if !errors.As(err, &loadErr) || loadErr.Sink != SinkCSV {
		t.Errorf("expected uniform load error for csv sink, got %v", err)
	}
}
