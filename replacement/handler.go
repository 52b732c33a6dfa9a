package replacement

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"lhsyard/app"
	"lhsyard/model"
	"lhsyard/sheet"
)

type replacePayload struct {
	ReplaceTruckID string `json:"replaceTruckId"`
	NewTruckID     string `json:"newTruckId"`
	OriginNode     string `json:"originNode"`
	VendorName     string `json:"vendorName"`
	DriverName     string `json:"driverName"`
	DriverTel      string `json:"driverTel"`
	VehicleType    string `json:"vehicleType"`
}

func (p replacePayload) validate(valid func(string, string) string) string {
	switch {
	case p.ReplaceTruckID == "":
		return "Replacement Truck ID is required"
	case p.NewTruckID == "":
		return "New Truck ID is required"
	case p.DriverName == "":
		return "Driver Name is required"
	case p.DriverTel == "":
		return "Driver Tel is required"
	}
	if msg := valid("origin", p.OriginNode); msg != "" {
		return msg
	}
	if msg := valid("vendor", p.VendorName); msg != "" {
		return msg
	}
	return valid("vehicle", p.VehicleType)
}

// ConfirmHandler registers a replacement truck: appends a full new row
// for the new truck, then marks the superseded row with the
// replace_by_<id> back-reference. The two store writes are not atomic;
// the surrounding intent record is what makes a failure between them
// visible afterwards.
func ConfirmHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.Sessions.Require(w, r)
		if !ok {
			return
		}
		var payload replacePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		if msg := payload.validate(func(kind, v string) string {
			switch kind {
			case "origin":
				if !cfg.ValidOrigin(v) {
					return fmt.Sprintf("Unknown origin node '%s'", v)
				}
			case "vendor":
				if !cfg.ValidVendor(v) {
					return fmt.Sprintf("Unknown vendor '%s'", v)
				}
			case "vehicle":
				if !cfg.ValidVehicleType(v) {
					return fmt.Sprintf("Unknown vehicle type '%s'", v)
				}
			}
			return ""
		}); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("replacement: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		target := pickTarget(tt.FindByTruckID(payload.ReplaceTruckID))
		if target == nil {
			a.Log.Warnf("replacement target not found: %s", payload.ReplaceTruckID)
			http.Error(w, "Replacement Truck ID not found in records.", http.StatusNotFound)
			return
		}
		if !target.CanCheckIn() {
			a.Log.Warnf("replacement blocked for %s as status is already set: '%s'", target.TruckID, target.Status)
			http.Error(w,
				fmt.Sprintf("Replacement truck %s already has status: '%s'. Replacement blocked.", target.TruckID, target.Status),
				http.StatusConflict)
			return
		}

		ts := a.Timestamp()
		queueNo, err := a.Queue.Next(tt.CheckedInCount())
		if err != nil {
			a.Log.Errorf("queue allocation failed: %v", err)
			http.Error(w, "Could not allocate a queue number.", http.StatusInternalServerError)
			return
		}

		intentID, err := a.Intents.Begin("replacement", map[string]interface{}{
			"target": target.TruckID, "new": payload.NewTruckID, "queue": queueNo, "user": s.ActingUser,
		})
		if err != nil {
			a.Log.Errorf("intent log: %v", err)
			http.Error(w, "Could not record the operation.", http.StatusInternalServerError)
			return
		}

		// The new row reuses the submission time for eta_ts as well:
		// a replacement's plan time is the moment it was registered.
		newRow := tt.BuildRow(map[string]string{
			model.ColETATs:          ts,
			model.ColOriginNode:     payload.OriginNode,
			model.ColVendorName:     payload.VendorName,
			model.ColTruckID:        payload.NewTruckID,
			model.ColDriverName:     payload.DriverName,
			model.ColDriverTel:      payload.DriverTel,
			model.ColVehicleType:    payload.VehicleType,
			model.ColStatus:         model.StatusReplace,
			model.ColCheckInTs:      ts,
			model.ColReplaceTruckID: target.TruckID,
			model.ColUpdateBy:       s.ActingUser,
			model.ColCheckInQueue:   strconv.Itoa(queueNo),
		})
		if err := a.Store.AppendRow(r.Context(), cfg.DataWorksheet, newRow); err != nil {
			a.Log.Errorf("failed to log new truck for %s: %v", target.TruckID, err)
			http.Error(w, fmt.Sprintf("Failed to log new truck: %v", err), http.StatusBadGateway)
			return
		}
		if err := a.Intents.Step(intentID); err != nil {
			a.Log.Errorf("intent step: %v", err)
		}

		backRef := model.ReplacedByPrefix + payload.NewTruckID
		if err := tt.WriteField(r.Context(), a.Store, cfg.DataWorksheet, target.Pos, model.ColStatus, backRef); err != nil {
			// The append already landed; the intent stays pending so
			// the stale target status is discoverable.
			a.Log.Errorf("back-reference write failed for %s after appending %s: %v",
				target.TruckID, payload.NewTruckID, err)
			http.Error(w,
				"New truck was logged but updating the replaced truck failed; the record is partially updated.",
				http.StatusBadGateway)
			return
		}
		if err := a.Intents.Step(intentID); err != nil {
			a.Log.Errorf("intent step: %v", err)
		}
		if err := a.Intents.Done(intentID); err != nil {
			a.Log.Errorf("intent done: %v", err)
		}

		a.Log.Infof("new truck %s logged for replacement of %s, status updated to '%s', updated by %s",
			payload.NewTruckID, target.TruckID, backRef, s.ActingUser)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf(
				"New truck %s successfully logged as a replacement for %s. Status updated to '%s', updated by %s.",
				payload.NewTruckID, target.TruckID, backRef, s.ActingUser),
			"queue": queueNo,
		})
	}
}

// pickTarget mirrors the check-in preference: among rows reusing the
// id, an unprocessed one is the replacement target.
func pickTarget(records []*model.TruckRecord) *model.TruckRecord {
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
