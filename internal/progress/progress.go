// Package progress computes completion percentages and deadline
// status for objectives. Everything here is a pure function of its
// arguments; values are recomputed on every render and never cached.
package progress

import (
	"fmt"
	"math"

	"github.com/nhle/okr-dashboard/internal/model"
)

// HighTierThreshold is the completion percentage at or above which an
// objective is presented in the high tier.
const HighTierThreshold = 70

// Tier is the presentation tier of an objective's completion.
type Tier int

const (
	TierLow Tier = iota
	TierHigh
)

// Percent returns the completion percentage of an objective in
// [0, 100]. An objective with no key results is at 0, not undefined.
// Rounding is to nearest with ties away from zero.
func Percent(o model.Objective) int {
	if len(o.KeyResults) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(o.CompletedCount) / float64(len(o.KeyResults))))
}

// TierOf classifies a completion percentage against HighTierThreshold.
func TierOf(percent int) Tier {
	if percent >= HighTierThreshold {
		return TierHigh
	}
	return TierLow
}

// DaysLeft returns the number of calendar days from today until the
// deadline: 0 for a deadline later today, 1 for tomorrow, -1 for
// yesterday. ok is false when there is no deadline.
func DaysLeft(deadline *model.Date, today model.Date) (days int, ok bool) {
	if deadline == nil || deadline.IsZero() {
		return 0, false
	}
	return today.DaysUntil(*deadline), true
}

// DeadlineLabel renders a days-left value for display.
func DeadlineLabel(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("%d days left", days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}
