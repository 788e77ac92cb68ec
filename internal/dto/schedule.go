package dto

// ActivityPayload describes the activity to plan.
type ActivityPayload struct {
	EstimatedHours  int    `json:"estimatedHours" validate:"min=0"`
	Strategy        string `json:"strategy" validate:"required"`
	StartOfActivity *Date  `json:"startOfActivity,omitempty"`
	EndOfActivity   Date   `json:"endOfActivity"`
}

// CalendarDayPayload is one day of the caller-supplied planning window.
type CalendarDayPayload struct {
	CalendarDate   Date   `json:"calendarDate"`
	DayType        string `json:"dayType" validate:"required,oneof=Normal Festivo"`
	TotalHoursBusy int    `json:"totalHoursBusy" validate:"min=0"`
}

// ScheduleActivityRequest asks the engine to place an activity's hours on
// concrete calendar days.
type ScheduleActivityRequest struct {
	Activity ActivityPayload      `json:"activity"`
	Calendar []CalendarDayPayload `json:"calendar" validate:"required,min=1,dive"`
}

// ScheduleEntryResponse is one (date, hours) row the caller should persist.
type ScheduleEntryResponse struct {
	CalendarDate  Date `json:"calendarDate"`
	AssignedHours int  `json:"assignedHours"`
}

// CalendarMutationResponse is the day-status change a solution implies.
type CalendarMutationResponse struct {
	CalendarDate Date   `json:"calendarDate"`
	DayType      string `json:"dayType"`
	Status       string `json:"status"`
}

// SolutionResponse is one feasible plan for the activity.
type SolutionResponse struct {
	NewEndDate       Date                       `json:"newEndDate"`
	Schedule         []ScheduleEntryResponse    `json:"schedule"`
	ModifiedCalendar []CalendarMutationResponse `json:"modifiedCalendar"`
}

// ScheduleActivityResponse carries the result code, the historical status
// message and up to five ranked solutions.
type ScheduleActivityResponse struct {
	Result     int                `json:"result"`
	Message    string             `json:"message"`
	ProposalID string             `json:"proposalId"`
	Solutions  []SolutionResponse `json:"solutions"`
}
