package scheduler

import "github.com/studyflow/scheduler-api/internal/models"

// Study-hour capacity per day type. Holidays carry a full study day,
// normal (lecture) days leave four hours at most.
const (
	normalDayHours  = 4
	holidayDayHours = 8
)

// Capacity returns the maximum number of assignable study hours for a day type.
func Capacity(t models.DayType) int {
	if t == models.DayTypeHoliday {
		return holidayDayHours
	}
	return normalDayHours
}

// Residual returns the hours of a day not yet committed to other
// activities, never below zero.
func Residual(day models.CalendarDay) int {
	free := Capacity(day.Type) - day.HoursBusy
	if free < 0 {
		return 0
	}
	return free
}
