package model

import (
	"strconv"
	"time"
)

// TimeLayout is the timestamp format used in every sheet cell that
// holds a time. The sheet is the system of record, so dates stay
// strings until something actually needs a time.Time.
const TimeLayout = "2006-01-02 15:04:05"

// Column header names as they appear in the first row of the data
// worksheet. Reads resolve columns by these names; writes use the
// positional index resolved at read time, so reordering the live sheet
// is safe but renaming a header is not.
const (
	ColETATs          = "eta_ts"
	ColOriginNode     = "origin_node"
	ColVendorName     = "vendor_name"
	ColTruckID        = "truck_id"
	ColDriverName     = "driver_name"
	ColDriverTel      = "driver_tel"
	ColVehicleType    = "vehicle_type"
	ColStatus         = "status"
	ColCheckInTs      = "check_in_ts"
	ColReplaceTruckID = "replace_truck_id"
	ColUpdateBy       = "update_by"
	ColCheckInQueue   = "check_in_queue"
	ColAssignBay      = "assign_bay"
	ColDestination1   = "destination_1"
	ColDestination2   = "destination_2"
	ColExceptional    = "exceptional"
	ColAssignBayTs    = "assign_bay_ts"
	ColAssignBayBy    = "assign_bay_by"
)

// DataColumns is the canonical column order used when a whole new row
// is appended and the live header row cannot be read.
var DataColumns = []string{
	ColETATs, ColOriginNode, ColVendorName, ColTruckID, ColDriverName,
	ColDriverTel, ColVehicleType, ColStatus, ColCheckInTs,
	ColReplaceTruckID, ColUpdateBy, ColCheckInQueue, ColAssignBay,
	ColDestination1, ColDestination2, ColExceptional, ColAssignBayTs,
	ColAssignBayBy,
}

// User is a row of the user worksheet. Read-only membership table.
type User struct {
	UserID string `json:"userId"`
}

// TruckRecord is one row of the data worksheet. All fields are kept as
// sheet-typed strings; Pos is the zero-based position within the data
// rows (store row = Pos + offset).
type TruckRecord struct {
	Pos            int    `json:"-"`
	ETATs          string `json:"etaTs"`
	OriginNode     string `json:"originNode"`
	VendorName     string `json:"vendorName"`
	TruckID        string `json:"truckId"`
	DriverName     string `json:"driverName"`
	DriverTel      string `json:"driverTel"`
	VehicleType    string `json:"vehicleType"`
	Status         string `json:"status"`
	CheckInTs      string `json:"checkInTs"`
	ReplaceTruckID string `json:"replaceTruckId"`
	UpdateBy       string `json:"updateBy"`
	CheckInQueue   string `json:"checkInQueue"`
	AssignBay      string `json:"assignBay"`
	Destination1   string `json:"destination1"`
	Destination2   string `json:"destination2"`
	Exceptional    string `json:"exceptional"`
	AssignBayTs    string `json:"assignBayTs"`
	AssignBayBy    string `json:"assignBayBy"`
}

// CheckedIn reports whether the record already carries a check-in
// timestamp. The queue counter is derived from this, not from status.
func (r *TruckRecord) CheckedIn() bool {
	return r.CheckInTs != ""
}

// QueueNumber parses check_in_queue. ok is false for records that have
// not been assigned a queue position yet (or carry junk in the cell).
func (r *TruckRecord) QueueNumber() (int, bool) {
	n, err := strconv.Atoi(r.CheckInQueue)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ETA parses eta_ts in the given location. Records created upstream
// occasionally have a blank or malformed ETA; callers must handle ok=false.
func (r *TruckRecord) ETA(loc *time.Location) (time.Time, bool) {
	return parseCell(r.ETATs, loc)
}

// CheckInTime parses check_in_ts in the given location.
func (r *TruckRecord) CheckInTime(loc *time.Location) (time.Time, bool) {
	return parseCell(r.CheckInTs, loc)
}

func parseCell(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimeLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
