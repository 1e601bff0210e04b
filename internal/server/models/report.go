package models

// AttendanceReportRow is the external report shape for one closed session.
// It is derived on demand and never persisted. Contractor display fields
// are denormalized in so consumers need no second lookup. Durations are
// pre-rendered as "08h 00m" style strings and clock times as 12-hour
// strings, matching the downstream workforce-monitoring API.
type AttendanceReportRow struct {
	EntryID            string  `json:"entry_id"`
	ContractorID       string  `json:"contractor_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	TeamName           string  `json:"team_name,omitempty"`
	Date               string  `json:"date"`
	ClockIn            string  `json:"clock_in"`
	ClockOut           string  `json:"clock_out"`
	TimeAtWork         string  `json:"time_at_work"`
	ProductiveTime     string  `json:"productive_time"`
	IdleTime           string  `json:"idle_time"`
	ActivityPercentage float64 `json:"activity_percentage"`
}
