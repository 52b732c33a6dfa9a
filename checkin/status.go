package checkin

import (
	"time"

	"lhsyard/model"
)

// OnTimeWindow is how far ahead of the ETA an arrival still counts as
// on time rather than early.
const OnTimeWindow = 2 * time.Hour

// DeriveStatus classifies an arrival against its ETA:
// after the ETA it is late; within the window before it, on time;
// anything earlier is early. Arriving at the exact ETA instant is kept
// in the early branch, matching the long-standing yard behavior.
func DeriveStatus(now, eta time.Time) string {
	switch {
	case now.After(eta):
		return model.StatusLate
	case now.Before(eta) && eta.Sub(now) < OnTimeWindow:
		return model.StatusOnTime
	default:
		return model.StatusEarly
	}
}
