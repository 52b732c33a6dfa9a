package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"lhsyard/model"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)
	return loc
}

func TestDistributionNormalizesStatuses(t *testing.T) {
	records := []model.TruckRecord{
		{Status: ""},
		{Status: model.StatusLate},
		{Status: "replace_by_T099"},
	}
	assert.Equal(t, map[string]int{
		model.NormPending:  1,
		model.StatusLate:   1,
		model.NormCanceled: 1,
	}, Distribution(records))
}

func TestDistributionCollapsesAllBackReferences(t *testing.T) {
	records := []model.TruckRecord{
		{Status: "replace_by_T001"},
		{Status: "replace_by_T002"},
		{Status: model.StatusOnTime},
	}
	dist := Distribution(records)
	assert.Equal(t, 2, dist[model.NormCanceled])
	assert.Equal(t, 1, dist[model.StatusOnTime])
}

func TestHourlyComparisonOuterJoin(t *testing.T) {
	records := []model.TruckRecord{
		// Planned 08:xx, arrived 09:xx.
		{ETATs: "2025-03-10 08:15:00", CheckInTs: "2025-03-10 09:05:00"},
		// Planned 08:xx, never arrived.
		{ETATs: "2025-03-10 08:45:00"},
		// No plan on record, arrived 10:xx.
		{CheckInTs: "2025-03-10 10:59:59"},
	}
	got := HourlyComparison(records, bangkok(t))

	assert.Equal(t, []HourlyBucket{
		{Hour: "2025-03-10 08:00", Planned: 2, Actual: 0},
		{Hour: "2025-03-10 09:00", Planned: 0, Actual: 1},
		{Hour: "2025-03-10 10:00", Planned: 0, Actual: 1},
	}, got)
}

func TestHourlyComparisonSkipsMalformedTimestamps(t *testing.T) {
	records := []model.TruckRecord{
		{ETATs: "soon", CheckInTs: "2025-03-10 09:00:00"},
	}
	got := HourlyComparison(records, bangkok(t))
	require.Len(t, got, 1)
	assert.Equal(t, HourlyBucket{Hour: "2025-03-10 09:00", Planned: 0, Actual: 1}, got[0])
}

func TestWriteCSVEncodesWindows874(t *testing.T) {
	records := []model.TruckRecord{
		{TruckID: "T001", OriginNode: "SSW", Status: "replace_by_T099", Destination1: "ลาดกระบัง"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	// Decode back from Windows-874 and check content survived.
	decoded, _, err := transform.Bytes(charmap.Windows874.NewDecoder(), buf.Bytes())
	require.NoError(t, err)
	out := string(decoded)
	assert.Contains(t, out, "truck_id")
	assert.Contains(t, out, "T001")
	assert.Contains(t, out, model.NormCanceled)
	assert.Contains(t, out, "ลาดกระบัง")
}
