package assignbay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"lhsyard/app"
	"lhsyard/model"
	"lhsyard/sheet"
)

// LookupHandler finds a checked-in truck by its queue number and
// remembers the selection on the session for the confirm step.
func LookupHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.Sessions.Require(w, r)
		if !ok {
			return
		}
		queueNo, err := strconv.Atoi(r.URL.Query().Get("queue"))
		if err != nil {
			http.Error(w, "Queue number must be a whole number.", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("bay lookup: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		rec := tt.FindByQueue(queueNo)
		if rec == nil {
			a.Log.Warnf("no truck holds queue number %d", queueNo)
			http.Error(w, fmt.Sprintf("No truck holds queue number %d.", queueNo), http.StatusNotFound)
			return
		}

		a.Sessions.SetSelectedQueue(s.Token, queueNo)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}
}

type confirmPayload struct {
	Queue        int    `json:"queue"`
	AssignBay    string `json:"assignBay"`
	Destination1 string `json:"destination1"`
	Destination2 string `json:"destination2"`
	Exceptional  string `json:"exceptional"`
}

// ConfirmHandler writes the bay, destinations and remark to the record
// holding the queue number, plus the assignment timestamp and user.
// There is no status gate: reassignment is allowed, last write wins.
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
		if payload.Queue == 0 {
			http.Error(w, "Queue number is required", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("bay assignment: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		rec := tt.FindByQueue(payload.Queue)
		if rec == nil {
			a.Log.Warnf("bay assignment failed, queue number not found: %d", payload.Queue)
			http.Error(w, fmt.Sprintf("No truck holds queue number %d.", payload.Queue), http.StatusNotFound)
			return
		}

		intentID, err := a.Intents.Begin("assign_bay", map[string]interface{}{
			"truckId": rec.TruckID, "queue": payload.Queue, "bay": payload.AssignBay, "user": s.ActingUser,
		})
		if err != nil {
			a.Log.Errorf("intent log: %v", err)
			http.Error(w, "Could not record the operation.", http.StatusInternalServerError)
			return
		}

		ts := a.Timestamp()
		writes := []struct{ col, value string }{
			{model.ColAssignBay, payload.AssignBay},
			{model.ColDestination1, payload.Destination1},
			{model.ColDestination2, payload.Destination2},
			{model.ColExceptional, payload.Exceptional},
			{model.ColAssignBayTs, ts},
			{model.ColAssignBayBy, s.ActingUser},
		}
		for _, wr := range writes {
			if err := tt.WriteField(r.Context(), a.Store, cfg.DataWorksheet, rec.Pos, wr.col, wr.value); err != nil {
				a.Log.Errorf("bay assignment write failed for %s (%s): %v", rec.TruckID, wr.col, err)
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

		a.Log.Infof("bay %s assigned to truck %s (queue %d) by %s", payload.AssignBay, rec.TruckID, payload.Queue, s.ActingUser)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": fmt.Sprintf("Bay %s assigned to truck %s.", payload.AssignBay, rec.TruckID),
		})
	}
}
