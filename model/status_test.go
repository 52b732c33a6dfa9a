package model

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"":                NormPending,
		"late_check_in":   "late_check_in",
		"onTime_check_in": "onTime_check_in",
		"replace_by_T099": NormCanceled,
		"replace_by_X":    NormCanceled,
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSupersededBy(t *testing.T) {
	id, ok := SupersededBy("replace_by_T099")
	if !ok || id != "T099" {
		t.Fatalf("expected T099, got %q ok=%v", id, ok)
	}
	if _, ok := SupersededBy("late_check_in"); ok {
		t.Fatalf("plain status must not parse as a back-reference")
	}
}

func TestCanCheckIn(t *testing.T) {
	r := TruckRecord{}
	if !r.CanCheckIn() {
		t.Fatalf("empty status must allow check-in")
	}
	r.Status = StatusReplace
	if r.CanCheckIn() {
		t.Fatalf("any existing status must block check-in")
	}
}

func TestTimestampParsing(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	r := TruckRecord{ETATs: "2025-03-10 08:00:00", CheckInTs: "not a time"}

	eta, ok := r.ETA(loc)
	if !ok || eta.Hour() != 8 {
		t.Fatalf("expected parsed ETA, got %v ok=%v", eta, ok)
	}
	if _, ok := r.CheckInTime(loc); ok {
		t.Fatalf("malformed timestamp must not parse")
	}

	queued := TruckRecord{CheckInQueue: "12"}
	if q, ok := queued.QueueNumber(); !ok || q != 12 {
		t.Fatalf("expected queue 12, got %d ok=%v", q, ok)
	}
	blank := TruckRecord{}
	if _, ok := blank.QueueNumber(); ok {
		t.Fatalf("blank queue cell must not parse")
	}
}
