package models

import "time"

// Screenshot event markers.
const (
	EventClockIn  = "clock_in"
	EventClockOut = "clock_out"
)

// Screenshot records one captured screen image attached to a time entry.
// The image bytes live in blob storage under Key; the entry only carries
// this reference. Serialized into the entry's screenshots JSONB column,
// append-only in capture order.
type Screenshot struct {
	Event   string    `json:"event"`
	Key     string    `json:"key"`
	TakenAt time.Time `json:"taken_at"`
}

// SystemInfo is a snapshot of the machine a session was started from.
// Serialized into the entry's system_info JSONB column.
type SystemInfo struct {
	Hostname      string    `json:"hostname"`
	OS            string    `json:"os"`
	IPAddress     string    `json:"ip_address"`
	MACAddress    string    `json:"mac_address,omitempty"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	DiskPercent   float64   `json:"disk_percent"`
	CapturedAt    time.Time `json:"captured_at"`
}
