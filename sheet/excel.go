package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ExcelStore keeps the worksheets in a local xlsx workbook. It exists
// for development and fixture work where the remote spreadsheet is not
// reachable; the workbook is opened fresh on every call, mirroring the
// full-reload behavior of the remote store.
type ExcelStore struct {
	mu   sync.Mutex
	path string
}

func NewExcelStore(path string) *ExcelStore {
	return &ExcelStore{path: path}
}

func (s *ExcelStore) GetAllRows(ctx context.Context, worksheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", worksheet, err)
	}
	return rows, nil
}

func (s *ExcelStore) UpdateCell(ctx context.Context, worksheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(worksheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", worksheet, cell, err)
	}
	return f.Save()
}

func (s *ExcelStore) AppendRow(ctx context.Context, worksheet string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", worksheet, err)
	}
	target := len(rows) + 1
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, target)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(worksheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", worksheet, cell, err)
		}
	}
	return f.Save()
}
