package load

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// CSVSink writes the product table to a comma-delimited UTF-8 file,
// header row first, overwriting any existing file.
type CSVSink struct {
	log *logger.Logger
}

// NewCSVSink creates a new file sink.
func NewCSVSink(log *logger.Logger) *CSVSink {
	return &CSVSink{log: log}
}

// Save writes the table to dir/filename and returns the written path.
func (s *CSVSink) Save(table *models.ProductTable, dir, filename string) (string, error) {
	if table.IsEmpty() {
		return "", sinkErr(SinkCSV, ErrEmptyTable)
	}

	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", sinkErrf(SinkCSV, "failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(models.Header()); err != nil {
		f.Close()
		return "", sinkErrf(SinkCSV, "failed to write header: %w", err)
	}

	for _, product := range table.Rows {
		if err := w.Write(product.Cells()); err != nil {
			f.Close()
			return "", sinkErrf(SinkCSV, "failed to write row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()
		return "", sinkErrf(SinkCSV, "failed to flush %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", sinkErrf(SinkCSV, "failed to close %s: %w", path, err)
	}

	s.log.Info("data saved to csv", "path", path, "rows", table.Len())

	return path, nil
}
