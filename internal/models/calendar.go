package models

import "time"

// DayType classifies a calendar day for capacity purposes.
type DayType string

const (
	DayTypeNormal  DayType = "Normal"
	DayTypeHoliday DayType = "Festivo"
)

// DayStatus reflects whether a day ends up fully saturated after planning.
type DayStatus string

const (
	DayStatusBusy DayStatus = "Ocupado"
	DayStatusFree DayStatus = "Libre"
)

// CalendarDay is one day of the caller-supplied planning window.
type CalendarDay struct {
	Date      time.Time
	Type      DayType
	HoursBusy int
}

// Assignment places a number of study hours on a concrete day.
type Assignment struct {
	Date  time.Time
	Type  DayType
	Hours int
}

// Solution is one feasible mapping of days to assigned hours whose total
// equals the activity's estimated workload. Entries are ordered by date.
type Solution []Assignment

// TotalHours sums the assigned hours across all entries.
func (s Solution) TotalHours() int {
	total := 0
	for _, entry := range s {
		total += entry.Hours
	}
	return total
}
