package sheet

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used by tests and demo mode.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string][][]string)}
}

// Seed replaces a worksheet's contents, header row included.
func (s *MemoryStore) Seed(worksheet string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	s.sheets[worksheet] = cp
}

func (s *MemoryStore) GetAllRows(ctx context.Context, worksheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.sheets[worksheet]
	if !ok {
		return nil, fmt.Errorf("worksheet %q not found", worksheet)
	}
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	return cp, nil
}

func (s *MemoryStore) UpdateCell(ctx context.Context, worksheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.sheets[worksheet]
	if !ok {
		return fmt.Errorf("worksheet %q not found", worksheet)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range for %q", row, worksheet)
	}
	r := rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	rows[row-1] = r
	s.sheets[worksheet] = rows
	return nil
}

func (s *MemoryStore) AppendRow(ctx context.Context, worksheet string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.sheets[worksheet]
	if !ok {
		return fmt.Errorf("worksheet %q not found", worksheet)
	}
	s.sheets[worksheet] = append(rows, append([]string(nil), values...))
	return nil
}
