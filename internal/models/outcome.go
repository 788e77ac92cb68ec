package models

import "time"

// OutcomeStatus categorises the result of a scheduling request.
type OutcomeStatus string

const (
	OutcomeAssigned              OutcomeStatus = "ASSIGNED"
	OutcomeAssignedWithDateShift OutcomeStatus = "ASSIGNED_WITH_DATE_SHIFT"
	OutcomeInfeasible            OutcomeStatus = "INFEASIBLE"
	OutcomeInvalidStrategy       OutcomeStatus = "INVALID_STRATEGY"
)

// Result codes preserved from the historical scheduler contract.
const (
	CodeAssigned        = 200
	CodeAssignedShifted = 201
	CodeInfeasible      = 401
	CodeUnknownStrategy = 505
)

// Code maps the outcome status to its historical result code.
func (s OutcomeStatus) Code() int {
	switch s {
	case OutcomeAssigned:
		return CodeAssigned
	case OutcomeAssignedWithDateShift:
		return CodeAssignedShifted
	case OutcomeInvalidStrategy:
		return CodeUnknownStrategy
	default:
		return CodeInfeasible
	}
}

// ScheduleEntry is one persistable (date, hours) row of a plan.
type ScheduleEntry struct {
	Date  time.Time
	Hours int
}

// CalendarMutation describes how a planned day's status changes.
type CalendarMutation struct {
	Date   time.Time
	Type   DayType
	Status DayStatus
}

// PlannedSolution is one formatted solution ready for the caller to apply.
type PlannedSolution struct {
	NewEndDate time.Time
	Schedule   []ScheduleEntry
	Calendar   []CalendarMutation
}

// ScheduleOutcome is the full result of one scheduling request.
type ScheduleOutcome struct {
	Status    OutcomeStatus
	EndDate   time.Time
	Solutions []PlannedSolution
}
