package load

import (
	"context"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// CSVParams holds the per-invocation parameters of the file sink.
type CSVParams struct {
	Dir      string
	Filename string
}

// Request names the destinations one load invocation should attempt.
// A nil params struct disables that destination.
type Request struct {
	CSV      *CSVParams
	Sheets   *SheetsParams
	Postgres *PostgresParams
}

// Result aggregates the per-destination outcome of one load invocation.
// For each attempted destination exactly one of (value, error) is set;
// destinations that were never requested leave both zero.
type Result struct {
	CSVPath       string `json:"csv_path,omitempty"`
	CSVError      string `json:"csv_error,omitempty"`
	SheetsID      string `json:"sheets_id,omitempty"`
	SheetsError   string `json:"sheets_error,omitempty"`
	PostgresOK    bool   `json:"postgres_success"`
	PostgresError string `json:"postgres_error,omitempty"`
}

// Failures returns the number of destinations that recorded an error.
func (r *Result) Failures() int {
	n := 0

	for _, msg := range []string{r.CSVError, r.SheetsError, r.PostgresError} {
		if msg != "" {
			n++
		}
	}

	return n
}

// Loader runs every enabled sink against one product table, isolating
// failures so that no destination can abort another.
type Loader struct {
	csv      *CSVSink
	sheets   *SheetsSink
	postgres *PostgresSink
	log      *logger.Logger
}

// NewLoader creates a loader with production sinks.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{
		csv:      NewCSVSink(log),
		sheets:   NewSheetsSink(log),
		postgres: NewPostgresSink(log),
		log:      log,
	}
}

// NewLoaderWithSinks creates a loader with custom sinks (useful for testing).
func NewLoaderWithSinks(csv *CSVSink, sheets *SheetsSink, postgres *PostgresSink, log *logger.Logger) *Loader {
	return &Loader{
		csv:      csv,
		sheets:   sheets,
		postgres: postgres,
		log:      log,
	}
}

// Load attempts every requested destination in fixed order (file, then
// spreadsheet, then database). Once at least one destination is requested
// the call never fails: per-sink errors land in the result slots. The only
// escaping error is ErrNoDestinations.
func (l *Loader) Load(ctx context.Context, table *models.ProductTable, req Request) (*Result, error) {
	if req.CSV == nil && req.Sheets == nil && req.Postgres == nil {
		return nil, ErrNoDestinations
	}

	result := &Result{}

	if req.CSV != nil {
		p := *req.CSV
		if p.Dir == "" {
			p.Dir = "./data"
		}

		if p.Filename == "" {
			p.Filename = "products.csv"
		}

		result.CSVError = l.runSink(SinkCSV, func() error {
			path, err := l.csv.Save(table, p.Dir, p.Filename)
			if err != nil {
				return err
			}

			result.CSVPath = path

			return nil
		})
	}

	if req.Sheets != nil {
		if req.Sheets.CredentialsFile == "" {
			l.log.Warn("sheets credentials path not provided, skipping")
			result.SheetsError = "credentials path not provided"
		} else {
			result.SheetsError = l.runSink(SinkSheets, func() error {
				id, err := l.sheets.Save(ctx, table, *req.Sheets)
				if err != nil {
					return err
				}

				result.SheetsID = id

				return nil
			})
		}
	}

	if req.Postgres != nil {
		if req.Postgres.Conn == nil {
			l.log.Warn("postgres connection parameters not provided, skipping")
			result.PostgresError = "connection parameters not provided"
		} else {
			result.PostgresError = l.runSink(SinkPostgres, func() error {
				ok, err := l.postgres.Save(table, *req.Postgres)
				if err != nil {
					return err
				}

				result.PostgresOK = ok

				return nil
			})
		}
	}

	return result, nil
}

// runSink executes one sink operation and converts a failure into the
// result-slot error string.
func (l *Loader) runSink(name string, fn func() error) string {
	if err := fn(); err != nil {
		l.log.Error("sink failed", "sink", name, "error", err)

		return err.Error()
	}

	return ""
}
