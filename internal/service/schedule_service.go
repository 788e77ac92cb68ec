package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyflow/scheduler-api/internal/dto"
	"github.com/studyflow/scheduler-api/internal/models"
	"github.com/studyflow/scheduler-api/internal/scheduler"
	appErrors "github.com/studyflow/scheduler-api/pkg/errors"
	"github.com/studyflow/scheduler-api/pkg/export"
)

const (
	// nominalWindowDays is the calendar length the caller must supply when
	// the activity has no start date.
	nominalWindowDays = 21
	// extraWindowDays pads the start-to-end span to cover shifted end dates.
	extraWindowDays = 3

	msgAssigned = "Assigned activity to the scheduler successfully."
	msgShifted  = "Assigned activity to the scheduler successfully. However, the endOfActivity given had to be changed in order to schedule it properly."
)

// SchedulingService is the request/response boundary around the allocation
// engine: it validates input shape, drives the end-date exploration and maps
// outcomes to the historical result codes.
type SchedulingService struct {
	explorer  *scheduler.Explorer
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	store     *proposalStore
}

// SchedulingConfig governs proposal retention.
type SchedulingConfig struct {
	ProposalTTL time.Duration
}

// NewSchedulingService wires the scheduling boundary.
func NewSchedulingService(explorer *scheduler.Explorer, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SchedulingConfig) *SchedulingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	return &SchedulingService{
		explorer:  explorer,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		store:     newProposalStore(cfg.ProposalTTL),
	}
}

// Schedule plans the activity's hours onto calendar days and retains the
// outcome for later retrieval and export.
func (s *SchedulingService) Schedule(ctx context.Context, req dto.ScheduleActivityRequest) (*dto.ScheduleActivityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	activity, window, err := s.buildRequest(req)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	outcome, err := s.explorer.Explore(ctx, activity, window)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule search failed")
	}

	result := outcome.Status.Code()
	s.metrics.ObserveScheduling(result, len(outcome.Solutions), time.Since(started))

	switch outcome.Status {
	case models.OutcomeInvalidStrategy:
		return nil, appErrors.Clone(appErrors.ErrUnknownStrategy, fmt.Sprintf("unknown strategy %q", req.Activity.Strategy))
	case models.OutcomeInfeasible:
		return nil, appErrors.Clone(appErrors.ErrInfeasible, "Could not assign the activity to the scheduler successfully.")
	}

	message := msgAssigned
	if outcome.Status == models.OutcomeAssignedWithDateShift {
		message = msgShifted
	}

	resp := &dto.ScheduleActivityResponse{
		Result:     result,
		Message:    message,
		ProposalID: uuid.NewString(),
		Solutions:  solutionsToDTO(outcome.Solutions),
	}
	s.store.Save(storedProposal{ID: resp.ProposalID, Response: *resp, CreatedAt: time.Now()})

	s.logger.Info("activity scheduled",
		zap.Int("result", result),
		zap.Int("solutions", len(resp.Solutions)),
		zap.String("strategy", req.Activity.Strategy),
		zap.Time("newEndDate", outcome.EndDate),
	)
	return resp, nil
}

// Proposal returns a previously computed outcome if it is still retained.
func (s *SchedulingService) Proposal(id string) (*dto.ScheduleActivityResponse, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposal id is required")
	}
	proposal, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	resp := proposal.Response
	return &resp, nil
}

// ExportProposal renders one solution of a stored proposal as CSV or PDF.
func (s *SchedulingService) ExportProposal(id, format string, solution int) ([]byte, string, error) {
	proposal, err := s.Proposal(id)
	if err != nil {
		return nil, "", err
	}
	if solution < 0 || solution >= len(proposal.Solutions) {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("solution index out of range: proposal has %d solutions", len(proposal.Solutions)))
	}

	table := solutionTable(proposal.Solutions[solution])
	switch format {
	case "csv", "":
		payload, err := export.NewCSVExporter().Render(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := export.NewPDFExporter().Render(table, "Study plan "+id)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
}

// buildRequest validates the cross-field contract and converts the wire
// payload into domain values.
func (s *SchedulingService) buildRequest(req dto.ScheduleActivityRequest) (models.Activity, []models.CalendarDay, error) {
	activityReq := req.Activity
	if activityReq.EndOfActivity.IsZero() {
		return models.Activity{}, nil, appErrors.Clone(appErrors.ErrValidation, "endOfActivity is required")
	}
	// A zero-hour activity admits only the empty assignment, which the
	// search rejects; surface it as a validation error instead.
	if activityReq.EstimatedHours == 0 {
		return models.Activity{}, nil, appErrors.Clone(appErrors.ErrValidation, "estimatedHours must be greater than zero")
	}

	activity := models.Activity{
		EstimatedHours: activityReq.EstimatedHours,
		Strategy:       models.Strategy(activityReq.Strategy),
		EndOfActivity:  activityReq.EndOfActivity.Time,
	}
	if activityReq.StartOfActivity != nil && !activityReq.StartOfActivity.IsZero() {
		start := activityReq.StartOfActivity.Time
		if start.After(activity.EndOfActivity) {
			return models.Activity{}, nil, appErrors.Clone(appErrors.ErrValidation, "startOfActivity must not be after endOfActivity")
		}
		activity.StartOfActivity = &start
	}

	if err := validateWindowLength(activity, len(req.Calendar)); err != nil {
		return models.Activity{}, nil, err
	}

	window := make([]models.CalendarDay, 0, len(req.Calendar))
	for _, day := range req.Calendar {
		if day.CalendarDate.IsZero() {
			return models.Activity{}, nil, appErrors.Clone(appErrors.ErrValidation, "calendarDate is required for every calendar day")
		}
		dayType := models.DayType(day.DayType)
		if day.TotalHoursBusy > scheduler.Capacity(dayType) {
			return models.Activity{}, nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("totalHoursBusy exceeds the %s-day capacity on %s", day.DayType, day.CalendarDate.Format("2006-01-02")))
		}
		window = append(window, models.CalendarDay{
			Date:      day.CalendarDate.Time,
			Type:      dayType,
			HoursBusy: day.TotalHoursBusy,
		})
	}
	return activity, window, nil
}

func validateWindowLength(activity models.Activity, supplied int) error {
	expected := nominalWindowDays
	if activity.StartOfActivity != nil {
		span := int(activity.EndOfActivity.Sub(*activity.StartOfActivity).Hours()/24) + 1
		expected = span + extraWindowDays
	}
	if supplied < expected {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("call expected %d days on the calendar list, it was given %d", expected, supplied))
	}
	return nil
}

func solutionsToDTO(solutions []models.PlannedSolution) []dto.SolutionResponse {
	out := make([]dto.SolutionResponse, 0, len(solutions))
	for _, sol := range solutions {
		schedule := make([]dto.ScheduleEntryResponse, 0, len(sol.Schedule))
		for _, entry := range sol.Schedule {
			schedule = append(schedule, dto.ScheduleEntryResponse{
				CalendarDate:  dto.NewDate(entry.Date),
				AssignedHours: entry.Hours,
			})
		}
		mutations := make([]dto.CalendarMutationResponse, 0, len(sol.Calendar))
		for _, mutation := range sol.Calendar {
			mutations = append(mutations, dto.CalendarMutationResponse{
				CalendarDate: dto.NewDate(mutation.Date),
				DayType:      string(mutation.Type),
				Status:       string(mutation.Status),
			})
		}
		out = append(out, dto.SolutionResponse{
			NewEndDate:       dto.NewDate(sol.NewEndDate),
			Schedule:         schedule,
			ModifiedCalendar: mutations,
		})
	}
	return out
}

func solutionTable(solution dto.SolutionResponse) export.Table {
	rows := make([][]string, 0, len(solution.Schedule))
	for i, entry := range solution.Schedule {
		status := ""
		dayType := ""
		if i < len(solution.ModifiedCalendar) {
			status = solution.ModifiedCalendar[i].Status
			dayType = solution.ModifiedCalendar[i].DayType
		}
		rows = append(rows, []string{
			entry.CalendarDate.Format("2006-01-02"),
			fmt.Sprintf("%d", entry.AssignedHours),
			dayType,
			status,
		})
	}
	return export.Table{
		Headers: []string{"calendarDate", "assignedHours", "dayType", "status"},
		Rows:    rows,
	}
}

// proposalStore retains computed outcomes in memory for a bounded time so
// they can be re-fetched and exported without recomputation.
type storedProposal struct {
	ID        string
	Response  dto.ScheduleActivityResponse
	CreatedAt time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]storedProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]storedProposal),
	}
}

func (s *proposalStore) Save(proposal storedProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ID] = proposal
}

func (s *proposalStore) Get(id string) (storedProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return storedProposal{}, false
	}
	if time.Since(proposal.CreatedAt) > s.ttl {
		s.Delete(id)
		return storedProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
