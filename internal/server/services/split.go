package services

import (
	"math"
	"time"
)

// SplitPolicy divides a closed session's total duration into productive
// and idle parts. Implementations must be exact: productive + idle always
// equals total. The inputs available do not measure real idleness, so the
// split is a policy label, not a measurement.
type SplitPolicy func(total time.Duration) (productive, idle time.Duration)

// FixedShareSplit attributes a fixed share of the total to productive
// time. The share is clamped to [0, 1]. Math is done in whole
// milliseconds, matching the storage resolution, and idle is derived by
// subtraction so the parts sum back to the total exactly.
func FixedShareSplit(share float64) SplitPolicy {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	return func(total time.Duration) (time.Duration, time.Duration) {
		if total <= 0 {
			return 0, 0
		}
		productiveMs := int64(math.Round(float64(total.Milliseconds()) * share))
		productive := time.Duration(productiveMs) * time.Millisecond
		if productive > total {
			productive = total
		}
		return productive, total - productive
	}
}
