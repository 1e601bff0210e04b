package models

import "time"

// TimeEntry is one work session of a contractor. A nil ClockOut marks the
// session as still open; Productive and Idle are zero until it is closed.
type TimeEntry struct {
	ID           string
	ContractorID string
	ClockIn      time.Time
	ClockOut     *time.Time
	Productive   time.Duration
	Idle         time.Duration
	Screenshots  []Screenshot
	System       *SystemInfo
	CreatedAt    time.Time
}

// Open reports whether the session has not been clocked out yet.
func (e *TimeEntry) Open() bool {
	return e.ClockOut == nil
}

// Duration returns the closed session length, or zero for open sessions.
func (e *TimeEntry) Duration() time.Duration {
	if e.ClockOut == nil {
		return 0
	}
	return e.ClockOut.Sub(e.ClockIn)
}

// ActivityPct returns the productive share of the session in percent,
// clamped to [0, 100]. A zero-length session counts as fully active.
func (e *TimeEntry) ActivityPct() float64 {
	total := e.Productive + e.Idle
	if total <= 0 {
		return 100
	}
	pct := float64(e.Productive) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
