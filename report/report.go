package report

import (
	"sort"
	"time"

	"lhsyard/model"
)

// HourlyBucket compares planned arrivals against actual check-ins for
// one wall-clock hour.
type HourlyBucket struct {
	Hour    string `json:"hour"`
	Planned int    `json:"planned"`
	Actual  int    `json:"actual"`
}

const hourLayout = "2006-01-02 15:00"

// Distribution counts records per normalized status.
func Distribution(records []model.TruckRecord) map[string]int {
	out := make(map[string]int)
	for i := range records {
		out[model.NormalizeStatus(records[i].Status)]++
	}
	return out
}

// HourlyComparison buckets ETAs and check-ins by hour and outer-joins
// the two series; an hour present on only one side reads zero on the
// other. Cells that do not parse as timestamps are skipped.
func HourlyComparison(records []model.TruckRecord, loc *time.Location) []HourlyBucket {
	buckets := make(map[string]*HourlyBucket)
	get := func(t time.Time) *HourlyBucket {
		key := t.In(loc).Format(hourLayout)
		b, ok := buckets[key]
		if !ok {
			b = &HourlyBucket{Hour: key}
			buckets[key] = b
		}
		return b
	}

	for i := range records {
		if eta, ok := records[i].ETA(loc); ok {
			get(eta).Planned++
		}
		if ci, ok := records[i].CheckInTime(loc); ok {
			get(ci).Actual++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]HourlyBucket, len(keys))
	for i, k := range keys {
		out[i] = *buckets[k]
	}
	return out
}
