package sheet

import "context"

// RowOffset maps a zero-based in-memory record position to the store's
// 1-based coordinate system with its header row: store row = pos + 2.
const RowOffset = 2

// Store is the tabular-store port. Rows and columns are 1-based store
// coordinates; row 1 is the header row.
type Store interface {
	GetAllRows(ctx context.Context, worksheet string) ([][]string, error)
	UpdateCell(ctx context.Context, worksheet string, row, col int, value string) error
	AppendRow(ctx context.Context, worksheet string, values []string) error
}

// StoreRow converts a zero-based record position to a store row.
func StoreRow(pos int) int {
	return pos + RowOffset
}
