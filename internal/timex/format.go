package timex

import (
	"fmt"
	"time"
)

// Clock12 is the layout used for clock-in and clock-out strings in
// attendance reports, e.g. "09:05 AM".
const Clock12 = "03:04 PM"

// DateOnly is the layout used for report row dates.
const DateOnly = "2006-01-02"

// FormatHoursMinutes renders a duration as zero-padded hours and minutes,
// e.g. "08h 00m". Seconds are truncated, not rounded. Negative durations
// are treated as zero.
func FormatHoursMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%02dh %02dm", h, m)
}
