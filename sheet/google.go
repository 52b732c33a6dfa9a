package sheet

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleStore talks to a Google spreadsheet through the Sheets API
// with a service-account credentials file.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewGoogleStore(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope, sheets.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *GoogleStore) GetAllRows(ctx context.Context, worksheet string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", worksheet, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *GoogleStore) UpdateCell(ctx context.Context, worksheet string, row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s", worksheet, CellName(row, col))
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (s *GoogleStore) AppendRow(ctx context.Context, worksheet string, values []string) error {
	raw := make([]interface{}, len(values))
	for i, v := range values {
		raw[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{raw}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, worksheet+"!A1", vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", worksheet, err)
	}
	return nil
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

// ColumnName converts a 1-based column index to A1 letters (1 -> A,
// 27 -> AA).
func ColumnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

// CellName converts 1-based store coordinates to A1 notation.
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnName(col), row)
}
