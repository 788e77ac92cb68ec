package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/studyflow/scheduler-api/internal/models"
)

// FormatSolutions turns raw day assignments into the external plan
// representation: per-day schedule entries alongside the calendar mutations
// the caller must apply. A day is marked busy once an assignment saturates
// its full capacity. Duplicate solutions are dropped, preserving order.
func FormatSolutions(solutions []models.Solution, newEndDate time.Time) []models.PlannedSolution {
	planned := make([]models.PlannedSolution, 0, len(solutions))
	seen := make(map[string]struct{}, len(solutions))

	for _, solution := range solutions {
		key := solutionKey(solution)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		schedule := make([]models.ScheduleEntry, 0, len(solution))
		mutations := make([]models.CalendarMutation, 0, len(solution))
		for _, entry := range solution {
			schedule = append(schedule, models.ScheduleEntry{Date: entry.Date, Hours: entry.Hours})
			status := models.DayStatusFree
			if entry.Hours == Capacity(entry.Type) {
				status = models.DayStatusBusy
			}
			mutations = append(mutations, models.CalendarMutation{
				Date:   entry.Date,
				Type:   entry.Type,
				Status: status,
			})
		}
		planned = append(planned, models.PlannedSolution{
			NewEndDate: newEndDate,
			Schedule:   schedule,
			Calendar:   mutations,
		})
	}
	return planned
}

func solutionKey(solution models.Solution) string {
	var b strings.Builder
	for _, entry := range solution {
		fmt.Fprintf(&b, "%s=%d;", entry.Date.Format("2006-01-02"), entry.Hours)
	}
	return b.String()
}
