package sheet

import (
	"context"
	"fmt"

	"lhsyard/model"
)

// Table wraps a raw worksheet read: header row plus data rows, with
// column lookup by header name.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table from a raw GetAllRows result. An empty read
// yields an empty table with no headers.
func NewTable(raw [][]string) *Table {
	t := &Table{index: make(map[string]int)}
	if len(raw) == 0 {
		return t
	}
	t.Headers = raw[0]
	t.Rows = raw[1:]
	for i, h := range t.Headers {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Col returns the zero-based column index for a header name.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// StoreCol returns the 1-based store column index for a header name.
func (t *Table) StoreCol(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("worksheet has no %q column", name)
	}
	return i + 1, nil
}

// Cell reads a cell by data-row position and header name. Short rows
// and unknown headers read as empty, matching how the remote store
// omits trailing blank cells.
func (t *Table) Cell(pos int, name string) string {
	i, ok := t.index[name]
	if !ok || pos < 0 || pos >= len(t.Rows) {
		return ""
	}
	row := t.Rows[pos]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// BuildRow lays out named values into a row matching this table's live
// header order, so appends stay correct when the sheet's columns have
// been reordered.
func (t *Table) BuildRow(values map[string]string) []string {
	headers := t.Headers
	if len(headers) == 0 {
		headers = model.DataColumns
	}
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = values[h]
	}
	return row
}

// WriteField updates one cell of a data row, resolving the column by
// header name against this table's live header row.
func (t *Table) WriteField(ctx context.Context, store Store, worksheet string, pos int, name, value string) error {
	col, err := t.StoreCol(name)
	if err != nil {
		return err
	}
	return store.UpdateCell(ctx, worksheet, StoreRow(pos), col, value)
}

// TruckTable is the decoded data worksheet.
type TruckTable struct {
	*Table
	Records []model.TruckRecord
}

// LoadTrucks performs the full-table read and decodes every row. Each
// user interaction starts with a fresh call; there is no cache.
func LoadTrucks(ctx context.Context, store Store, worksheet string) (*TruckTable, error) {
	raw, err := store.GetAllRows(ctx, worksheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", worksheet, err)
	}
	t := NewTable(raw)
	tt := &TruckTable{Table: t, Records: make([]model.TruckRecord, len(t.Rows))}
	for pos := range t.Rows {
		tt.Records[pos] = model.TruckRecord{
			Pos:            pos,
			ETATs:          t.Cell(pos, model.ColETATs),
			OriginNode:     t.Cell(pos, model.ColOriginNode),
			VendorName:     t.Cell(pos, model.ColVendorName),
			TruckID:        t.Cell(pos, model.ColTruckID),
			DriverName:     t.Cell(pos, model.ColDriverName),
			DriverTel:      t.Cell(pos, model.ColDriverTel),
			VehicleType:    t.Cell(pos, model.ColVehicleType),
			Status:         t.Cell(pos, model.ColStatus),
			CheckInTs:      t.Cell(pos, model.ColCheckInTs),
			ReplaceTruckID: t.Cell(pos, model.ColReplaceTruckID),
			UpdateBy:       t.Cell(pos, model.ColUpdateBy),
			CheckInQueue:   t.Cell(pos, model.ColCheckInQueue),
			AssignBay:      t.Cell(pos, model.ColAssignBay),
			Destination1:   t.Cell(pos, model.ColDestination1),
			Destination2:   t.Cell(pos, model.ColDestination2),
			Exceptional:    t.Cell(pos, model.ColExceptional),
			AssignBayTs:    t.Cell(pos, model.ColAssignBayTs),
			AssignBayBy:    t.Cell(pos, model.ColAssignBayBy),
		}
	}
	return tt, nil
}

// FindByTruckID returns every record carrying the id, in sheet order.
// Ids recur across cycles (a replacement spawns a new row reusing the
// physical truck's id), so callers pick among the matches.
func (tt *TruckTable) FindByTruckID(id string) []*model.TruckRecord {
	var out []*model.TruckRecord
	for i := range tt.Records {
		if tt.Records[i].TruckID == id {
			out = append(out, &tt.Records[i])
		}
	}
	return out
}

// FindByQueue returns the record holding a queue number, or nil.
func (tt *TruckTable) FindByQueue(n int) *model.TruckRecord {
	for i := range tt.Records {
		if q, ok := tt.Records[i].QueueNumber(); ok && q == n {
			return &tt.Records[i]
		}
	}
	return nil
}

// CheckedInCount counts records with a non-empty check_in_ts. The
// queue number handed to the next arrival is this count plus one.
func (tt *TruckTable) CheckedInCount() int {
	n := 0
	for i := range tt.Records {
		if tt.Records[i].CheckedIn() {
			n++
		}
	}
	return n
}

// LoadUsers reads the user worksheet into the membership list.
func LoadUsers(ctx context.Context, store Store, worksheet string) ([]model.User, error) {
	raw, err := store.GetAllRows(ctx, worksheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", worksheet, err)
	}
	t := NewTable(raw)
	users := make([]model.User, 0, len(t.Rows))
	for pos := range t.Rows {
		id := t.Cell(pos, "user_id")
		if id == "" {
			continue
		}
		users = append(users, model.User{UserID: id})
	}
	return users, nil
}
