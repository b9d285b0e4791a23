// Package trend derives the 7-day average-completion series shown in
// the dashboard chart.
package trend

import (
	"math"

	"github.com/nhle/okr-dashboard/internal/model"
	"github.com/nhle/okr-dashboard/internal/progress"
)

// Days is the length of the trend window.
const Days = 7

// Weekly returns one average completion percentage per calendar day
// from today-6 through today, oldest first. An objective counts
// toward a day once its created date is on or before that day; its
// progress is always its current progress, not a historical snapshot.
// Days on which no objective existed yet are 0.
func Weekly(objectives []model.Objective, today model.Date) []int {
	values := make([]int, 0, Days)

	for i := Days - 1; i >= 0; i-- {
		day := today.AddDays(-i)

		total := 0
		count := 0
		for _, o := range objectives {
			if o.CreatedDate.After(day) {
				continue
			}
			total += progress.Percent(o)
			count++
		}

		if count == 0 {
			values = append(values, 0)
			continue
		}
		values = append(values, int(math.Round(float64(total)/float64(count))))
	}

	return values
}
