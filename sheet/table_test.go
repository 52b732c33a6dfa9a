package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lhsyard/model"
)

func TestTableHeaderLookup(t *testing.T) {
	tab := NewTable([][]string{
		{"truck_id", "status", "eta_ts"},
		{"T001", "", "2025-03-10 08:00:00"},
		{"T002", "late_check_in"},
	})

	i, ok := tab.Col("status")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	col, err := tab.StoreCol("eta_ts")
	require.NoError(t, err)
	assert.Equal(t, 3, col)

	_, err = tab.StoreCol("no_such_column")
	assert.Error(t, err)

	// Short rows read as empty, not out of range.
	assert.Equal(t, "", tab.Cell(1, "eta_ts"))
	assert.Equal(t, "late_check_in", tab.Cell(1, "status"))
}

func TestStoreRowOffset(t *testing.T) {
	// Zero-based record position 0 is store row 2: one header row plus
	// the store's 1-based origin.
	assert.Equal(t, 2, StoreRow(0))
	assert.Equal(t, 7, StoreRow(5))
}

func TestBuildRowFollowsLiveHeaderOrder(t *testing.T) {
	// Columns reordered relative to the canonical layout.
	tab := NewTable([][]string{{"status", "truck_id", "eta_ts"}})
	row := tab.BuildRow(map[string]string{
		"truck_id": "T099",
		"status":   "replace_check_in",
	})
	assert.Equal(t, []string{"replace_check_in", "T099", ""}, row)
}

func TestLoadTrucksDecodesRecords(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("AppData", [][]string{
		model.DataColumns,
		{"2025-03-10 08:00:00", "SSW", "PJT", "T001", "A", "080", "4W5CBM",
			"late_check_in", "2025-03-10 09:00:00", "", "1001", "1", "", "", "", "", "", ""},
	})

	tt, err := LoadTrucks(context.Background(), store, "AppData")
	require.NoError(t, err)
	require.Len(t, tt.Records, 1)

	rec := tt.Records[0]
	assert.Equal(t, 0, rec.Pos)
	assert.Equal(t, "T001", rec.TruckID)
	assert.Equal(t, "late_check_in", rec.Status)
	assert.True(t, rec.CheckedIn())

	q, ok := rec.QueueNumber()
	require.True(t, ok)
	assert.Equal(t, 1, q)
}

func TestCheckedInCount(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("AppData", [][]string{
		{"truck_id", "check_in_ts"},
		{"T001", "2025-03-10 09:00:00"},
		{"T002", ""},
		{"T003", "2025-03-10 09:30:00"},
	})
	tt, err := LoadTrucks(context.Background(), store, "AppData")
	require.NoError(t, err)
	assert.Equal(t, 2, tt.CheckedInCount())
}

func TestFindByQueueIgnoresJunkCells(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("AppData", [][]string{
		{"truck_id", "check_in_queue"},
		{"T001", "oops"},
		{"T002", "7"},
	})
	tt, err := LoadTrucks(context.Background(), store, "AppData")
	require.NoError(t, err)

	rec := tt.FindByQueue(7)
	require.NotNil(t, rec)
	assert.Equal(t, "T002", rec.TruckID)
	assert.Nil(t, tt.FindByQueue(1))
}

func TestWriteFieldTargetsResolvedColumn(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("AppData", [][]string{
		{"status", "truck_id"},
		{"", "T001"},
	})
	tt, err := LoadTrucks(context.Background(), store, "AppData")
	require.NoError(t, err)

	require.NoError(t, tt.WriteField(context.Background(), store, "AppData", 0, "status", "late_check_in"))

	rows, err := store.GetAllRows(context.Background(), "AppData")
	require.NoError(t, err)
	assert.Equal(t, "late_check_in", rows[1][0])
	assert.Equal(t, "T001", rows[1][1])
}

func TestLoadUsersSkipsBlankIDs(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("AppUser", [][]string{{"user_id"}, {"1001"}, {""}, {"1002"}})

	users, err := LoadUsers(context.Background(), store, "AppUser")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1001", users[0].UserID)
	assert.Equal(t, "1002", users[1].UserID)
}
