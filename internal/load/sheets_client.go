package load

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// googleClient implements SpreadsheetClient against the Sheets and Drive
// REST APIs using a service-account credentials file.
type googleClient struct {
	sheets *sheets.Service
	drive  *drive.Service
}

func newGoogleClient(ctx context.Context, credentialsFile string) (SpreadsheetClient, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
	}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &googleClient{sheets: sheetsSvc, drive: driveSvc}, nil
}

func (g *googleClient) OpenSpreadsheet(ctx context.Context, spreadsheetID string) error {
	_, err := g.sheets.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, spreadsheetID)
		}

		return err
	}

	return nil
}

func (g *googleClient) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	resp, err := g.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	return resp.SpreadsheetId, nil
}

func (g *googleClient) SheetExists(ctx context.Context, spreadsheetID, name string) (bool, error) {
	resp, err := g.sheets.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return false, err
	}

	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return true, nil
		}
	}

	return false, nil
}

func (g *googleClient) ClearSheet(ctx context.Context, spreadsheetID, name string) error {
	_, err := g.sheets.Spreadsheets.Values.Clear(spreadsheetID, name, &sheets.ClearValuesRequest{}).Context(ctx).Do()

	return err
}

func (g *googleClient) AddSheet(ctx context.Context, spreadsheetID, name string, rows, cols int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: name,
						GridProperties: &sheets.GridProperties{
							RowCount:    int64(rows),
							ColumnCount: int64(cols),
						},
					},
				},
			},
		},
	}

	_, err := g.sheets.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()

	return err
}

func (g *googleClient) WriteRows(ctx context.Context, spreadsheetID, name string, rows [][]any) error {
	valueRange := &sheets.ValueRange{Values: rows}

	_, err := g.sheets.Spreadsheets.Values.
		Update(spreadsheetID, name+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return err
}

func (g *googleClient) ShareWithLink(ctx context.Context, spreadsheetID string) error {
	_, err := g.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()

	return err
}
