package scheduler

import (
	"sort"
	"time"

	"github.com/studyflow/scheduler-api/internal/models"
)

// lookbackDays bounds the planning range when no activity start is given.
const lookbackDays = 14

// eligibleDay is a calendar day that can still receive study hours.
type eligibleDay struct {
	Date time.Time
	Type models.DayType
	Free int
}

// availableDays filters the calendar window down to the days usable for one
// candidate end date: inside [start, endDate] (or the 14-day lookback when no
// start is set) and with residual capacity left. The result is ordered by
// date ascending.
func availableDays(start *time.Time, endDate time.Time, window []models.CalendarDay) []eligibleDay {
	from := endDate.AddDate(0, 0, -lookbackDays)
	if start != nil {
		from = *start
	}

	days := make([]eligibleDay, 0, len(window))
	for _, day := range window {
		if day.Date.Before(from) || day.Date.After(endDate) {
			continue
		}
		free := Residual(day)
		if free == 0 {
			continue
		}
		days = append(days, eligibleDay{Date: day.Date, Type: day.Type, Free: free})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
