package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"lhsyard/app"
	"lhsyard/model"
	"lhsyard/sheet"
)

var csvHeader = []string{
	"truck_id", "origin_node", "vendor_name", "vehicle_type",
	"status", "eta_ts", "check_in_ts", "check_in_queue",
	"assign_bay", "destination_1", "destination_2", "update_by",
}

// WriteCSV renders the record list as CSV in Windows-874, the code
// page Thai Excel installations expect when double-clicking the file.
func WriteCSV(w io.Writer, records []model.TruckRecord) error {
	enc := transform.NewWriter(w, charmap.Windows874.NewEncoder())
	cw := csv.NewWriter(enc)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := []string{
			r.TruckID, r.OriginNode, r.VendorName, r.VehicleType,
			model.NormalizeStatus(r.Status), r.ETATs, r.CheckInTs, r.CheckInQueue,
			r.AssignBay, r.Destination1, r.Destination2, r.UpdateBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVHandler downloads the normalized record list.
func ExportCSVHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.Sessions.Require(w, r); !ok {
			return
		}
		cfg := a.Cfg()
		tt, err := sheet.LoadTrucks(r.Context(), a.Store, cfg.DataWorksheet)
		if err != nil {
			a.Log.Errorf("csv export: %v", err)
			http.Error(w, "Could not load truck records. Try again.", http.StatusBadGateway)
			return
		}

		filename := fmt.Sprintf("yard_report_%s.csv", a.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv; charset=windows-874")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if err := WriteCSV(w, tt.Records); err != nil {
			a.Log.Errorf("csv export write: %v", err)
		}
	}
}
