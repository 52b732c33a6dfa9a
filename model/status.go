package model

import "strings"

// Raw status values as stored in the sheet's status column. The column
// doubles as the replacement back-reference: a superseded row holds
// "replace_by_<new truck id>" instead of a plain status.
const (
	StatusPending = ""
	StatusLate    = "late_check_in"
	StatusOnTime  = "onTime_check_in"
	StatusEarly   = "early_check_in"
	StatusReplace = "replace_check_in"

	ReplacedByPrefix = "replace_by_"
)

// Normalized status categories used by the report.
const (
	NormPending  = "pending"
	NormCanceled = "canceled_replaced"
)

// SupersededBy extracts the new truck id from a replace_by_* status.
func SupersededBy(status string) (string, bool) {
	if strings.HasPrefix(status, ReplacedByPrefix) {
		return strings.TrimPrefix(status, ReplacedByPrefix), true
	}
	return "", false
}

// NormalizeStatus maps a raw status cell to its report category:
// blank becomes pending and every replace_by_* collapses to
// canceled_replaced. Anything else passes through unchanged.
func NormalizeStatus(status string) string {
	if status == StatusPending {
		return NormPending
	}
	if _, ok := SupersededBy(status); ok {
		return NormCanceled
	}
	return status
}

// CanCheckIn reports whether a record may still receive a check-in or
// act as a replacement target. Status moves forward only; any existing
// value blocks the operation.
func (r *TruckRecord) CanCheckIn() bool {
	return r.Status == StatusPending
}
