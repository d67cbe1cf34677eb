package load

import (
	"context"
	"errors"
	"os"
	"time"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Worksheet sizing margin applied when creating a new sheet.
const (
	sheetRowMargin = 10
	sheetColMargin = 5
)

// SpreadsheetClient is the surface of the remote spreadsheet service the
// sink depends on. The production implementation talks to the Google
// Sheets and Drive APIs; tests inject a fake.
type SpreadsheetClient interface {
	// OpenSpreadsheet verifies the spreadsheet exists; it returns an error
	// wrapping ErrSpreadsheetNotFound when it does not.
	OpenSpreadsheet(ctx context.Context, spreadsheetID string) error
	CreateSpreadsheet(ctx context.Context, title string) (string, error)
	SheetExists(ctx context.Context, spreadsheetID, name string) (bool, error)
	ClearSheet(ctx context.Context, spreadsheetID, name string) error
	AddSheet(ctx context.Context, spreadsheetID, name string, rows, cols int) error
	WriteRows(ctx context.Context, spreadsheetID, name string, rows [][]any) error
	ShareWithLink(ctx context.Context, spreadsheetID string) error
}

// SheetsParams holds the per-invocation parameters of the spreadsheet sink.
type SheetsParams struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
	CreateIfMissing bool
}

// SheetsSink uploads the product table to a Google Sheets worksheet and
// shares the spreadsheet with anyone holding the link.
type SheetsSink struct {
	log       *logger.Logger
	newClient func(ctx context.Context, credentialsFile string) (SpreadsheetClient, error)
	now       func() time.Time
}

// NewSheetsSink creates a sink backed by the Google APIs.
func NewSheetsSink(log *logger.Logger) *SheetsSink {
	return &SheetsSink{
		log:       log,
		newClient: newGoogleClient,
		now:       time.Now,
	}
}

// NewSheetsSinkWithClient creates a sink that reuses the given client
// instead of authenticating (useful for testing).
func NewSheetsSinkWithClient(client SpreadsheetClient, log *logger.Logger) *SheetsSink {
	return &SheetsSink{
		log: log,
		newClient: func(context.Context, string) (SpreadsheetClient, error) {
			return client, nil
		},
		now: time.Now,
	}
}

// Save uploads the table and returns the target spreadsheet id.
func (s *SheetsSink) Save(ctx context.Context, table *models.ProductTable, p SheetsParams) (string, error) {
	if table.IsEmpty() {
		return "", sinkErr(SinkSheets, ErrEmptyTable)
	}

	if _, err := os.Stat(p.CredentialsFile); err != nil {
		return "", sinkErrf(SinkSheets, "%w: %s", ErrCredentialsNotFound, p.CredentialsFile)
	}

	client, err := s.newClient(ctx, p.CredentialsFile)
	if err != nil {
		return "", sinkErrf(SinkSheets, "authentication failed: %w", err)
	}

	spreadsheetID, err := s.resolveSpreadsheet(ctx, client, p)
	if err != nil {
		return "", err
	}

	sheetName := p.SheetName
	if sheetName == "" {
		sheetName = "Products"
	}

	if err := s.resolveWorksheet(ctx, client, spreadsheetID, sheetName, table); err != nil {
		return "", err
	}

	rows := make([][]any, 0, table.Len()+1)

	header := make([]any, 0, len(models.Header()))
	for _, column := range models.Header() {
		header = append(header, column)
	}

	rows = append(rows, header)

	for _, product := range table.Rows {
		rows = append(rows, []any{
			product.Title,
			product.Price,
			product.Rating,
			product.Colors,
			product.Size,
			product.Gender,
			product.Timestamp,
		})
	}

	if err := client.WriteRows(ctx, spreadsheetID, sheetName, rows); err != nil {
		return "", sinkErrf(SinkSheets, "failed to write rows: %w", err)
	}

	if err := client.ShareWithLink(ctx, spreadsheetID); err != nil {
		return "", sinkErrf(SinkSheets, "failed to set sharing: %w", err)
	}

	s.log.Info("data uploaded to google sheets", "spreadsheet_id", spreadsheetID, "sheet", sheetName, "rows", table.Len())

	return spreadsheetID, nil
}

// resolveSpreadsheet opens the configured spreadsheet or creates a new one,
// returning the id to write into.
func (s *SheetsSink) resolveSpreadsheet(ctx context.Context, client SpreadsheetClient, p SheetsParams) (string, error) {
	if p.SpreadsheetID == "" {
		return s.createSpreadsheet(ctx, client)
	}

	err := client.OpenSpreadsheet(ctx, p.SpreadsheetID)
	if err == nil {
		s.log.Info("opened existing spreadsheet", "spreadsheet_id", p.SpreadsheetID)
		return p.SpreadsheetID, nil
	}

	if errors.Is(err, ErrSpreadsheetNotFound) {
		if !p.CreateIfMissing {
			return "", sinkErrf(SinkSheets, "%w: %s", ErrSpreadsheetNotFound, p.SpreadsheetID)
		}

		return s.createSpreadsheet(ctx, client)
	}

	return "", sinkErrf(SinkSheets, "failed to open spreadsheet %s: %w", p.SpreadsheetID, err)
}

func (s *SheetsSink) createSpreadsheet(ctx context.Context, client SpreadsheetClient) (string, error) {
	title := "Products ETL " + s.now().Format("2006-01-02")

	id, err := client.CreateSpreadsheet(ctx, title)
	if err != nil {
		return "", sinkErrf(SinkSheets, "failed to create spreadsheet: %w", err)
	}

	s.log.Info("created new spreadsheet", "spreadsheet_id", id, "title", title)

	return id, nil
}

// resolveWorksheet clears the named worksheet when it exists, or creates it
// sized to the table plus margin.
func (s *SheetsSink) resolveWorksheet(ctx context.Context, client SpreadsheetClient, spreadsheetID, name string, table *models.ProductTable) error {
	exists, err := client.SheetExists(ctx, spreadsheetID, name)
	if err != nil {
		return sinkErrf(SinkSheets, "failed to inspect worksheets: %w", err)
	}

	if exists {
		if err := client.ClearSheet(ctx, spreadsheetID, name); err != nil {
			return sinkErrf(SinkSheets, "failed to clear worksheet %s: %w", name, err)
		}

		s.log.Info("cleared existing worksheet", "sheet", name)

		return nil
	}

	rows := table.Len() + sheetRowMargin
	cols := len(models.Header()) + sheetColMargin

	if err := client.AddSheet(ctx, spreadsheetID, name, rows, cols); err != nil {
		return sinkErrf(SinkSheets, "failed to create worksheet %s: %w", name, err)
	}

	s.log.Info("created new worksheet", "sheet", name)

	return nil
}
