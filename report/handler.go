package report

import (
	"encoding/json"
	"net/http"

	"lhsyard/app"
	"lhsyard/sheet"
)

// DashboardHandler serves both charts of the report tab from one fresh
// table read: the normalized status distribution and the hourly
// planned-vs-actual comparison.
func DashboardHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.Sessions.Require(w, r); !ok {
			return
		}
		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("report: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"distribution": Distribution(tt.Records),
			"hourly":       HourlyComparison(tt.Records, a.Loc),
			"total":        len(tt.Records),
		})
	}
}
