package checkin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"lhsyard/app"
	"lhsyard/model"
	"lhsyard/sheet"
)

// pickRecord chooses among rows sharing a truck id: the first row with
// an empty status wins, so an unprocessed cycle of a reused id is
// surfaced ahead of rows that already carry a status.
func pickRecord(records []*model.TruckRecord) *model.TruckRecord {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r.CanCheckIn() {
			return r
		}
	}
	return records[0]
}

// LookupHandler returns the truck detail for the check-in tab.
func LookupHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.Sessions.Require(w, r); !ok {
			return
		}
		truckID := r.URL.Query().Get("truck_id")
		if truckID == "" {
			http.Error(w, "Truck ID is required", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("check-in lookup: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		rec := pickRecord(tt.FindByTruckID(truckID))
		if rec == nil {
			a.Log.Warnf("truck ID not found: %s", truckID)
			http.Error(w, "Truck ID not found, please check the ID and try again.", http.StatusNotFound)
			return
		}
		a.Log.Infof("truck data found: %s", truckID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}
}

type confirmPayload struct {
	TruckID string `json:"truckId"`
}

// ConfirmHandler records the check-in: derives the lateness status,
// assigns the queue number and writes the four cells. A record that
// already carries a status is refused with no writes.
func ConfirmHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.Sessions.Require(w, r)
		if !ok {
			return
		}
		var payload confirmPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.TruckID == "" {
			http.Error(w, "Truck ID is required", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("check-in: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		rec := pickRecord(tt.FindByTruckID(payload.TruckID))
		if rec == nil {
			a.Log.Warnf("failed check-in, truck ID not found: %s", payload.TruckID)
			http.Error(w, "Truck ID not found, please check the ID and try again.", http.StatusNotFound)
			return
		}
		if !rec.CanCheckIn() {
			a.Log.Warnf("check-in blocked for truck %s with existing status: '%s'", rec.TruckID, rec.Status)
			http.Error(w,
				fmt.Sprintf("Check-in blocked: Truck %s already has a status: '%s'.", rec.TruckID, rec.Status),
				http.StatusConflict)
			return
		}

		now := a.Now()
		eta, hasETA := rec.ETA(a.Loc)
		if !hasETA {
			a.Log.Warnf("check-in blocked for truck %s: unreadable ETA %q", rec.TruckID, rec.ETATs)
			http.Error(w, "This record has no readable ETA; fix the sheet first.", http.StatusConflict)
			return
		}
		status := DeriveStatus(now, eta)

		queueNo, err := a.Queue.Next(tt.CheckedInCount())
		if err != nil {
			a.Log.Errorf("queue allocation failed: %v", err)
			http.Error(w, "Could not allocate a queue number.", http.StatusInternalServerError)
			return
		}

		intentID, err := a.Intents.Begin("check_in", map[string]interface{}{
			"truckId": rec.TruckID, "queue": queueNo, "user": s.ActingUser,
		})
		if err != nil {
			a.Log.Errorf("intent log: %v", err)
			http.Error(w, "Could not record the operation.", http.StatusInternalServerError)
			return
		}

		ts := now.Format(model.TimeLayout)
		writes := []struct{ col, value string }{
			{model.ColCheckInTs, ts},
			{model.ColStatus, status},
			{model.ColUpdateBy, s.ActingUser},
			{model.ColCheckInQueue, strconv.Itoa(queueNo)},
		}
		for _, wr := range writes {
			if err := tt.WriteField(r.Context(), a.Store, cfg.DataWorksheet, rec.Pos, wr.col, wr.value); err != nil {
				a.Log.Errorf("check-in write failed for %s (%s): %v", rec.TruckID, wr.col, err)
				http.Error(w, "Writing to the truck table failed; the record may be partially updated.", http.StatusBadGateway)
				return
			}
			if err := a.Intents.Step(intentID); err != nil {
				a.Log.Errorf("intent step: %v", err)
			}
		}
		if err := a.Intents.Done(intentID); err != nil {
			a.Log.Errorf("intent done: %v", err)
		}

		a.Log.Infof("check-in time and status updated for %s: %s, '%s', queue %d", rec.TruckID, ts, status, queueNo)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("Check-in time recorded: %s, Status updated to '%s'.", ts, status),
			"status":  status,
			"queue":   queueNo,
		})
	}
}
