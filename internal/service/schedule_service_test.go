package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyflow/scheduler-api/internal/dto"
	"github.com/studyflow/scheduler-api/internal/scheduler"
	appErrors "github.com/studyflow/scheduler-api/pkg/errors"
)

func testService() *SchedulingService {
	explorer := scheduler.NewExplorer(scheduler.Config{}, nil)
	return NewSchedulingService(explorer, nil, zap.NewNop(), nil, SchedulingConfig{})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// calendarPayload builds a window of normal days starting at from, with
// per-index busy-hour overrides.
func calendarPayload(from time.Time, days int, busy map[int]int, holidays map[int]bool) []dto.CalendarDayPayload {
	out := make([]dto.CalendarDayPayload, 0, days)
	for i := 0; i < days; i++ {
		dayType := "Normal"
		if holidays[i] {
			dayType = "Festivo"
		}
		out = append(out, dto.CalendarDayPayload{
			CalendarDate:   dto.NewDate(from.AddDate(0, 0, i)),
			DayType:        dayType,
			TotalHoursBusy: busy[i],
		})
	}
	return out
}

func saturated(days int) map[int]int {
	busy := make(map[int]int, days)
	for i := 0; i < days; i++ {
		busy[i] = 4
	}
	return busy
}

func TestScheduleAssignsWithNominalEndDate(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	busy := saturated(21)
	busy[19] = 0
	busy[20] = 0
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 6, Strategy: "Completa", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, busy, nil),
	}

	resp, err := svc.Schedule(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Result)
	assert.Equal(t, msgAssigned, resp.Message)
	assert.NotEmpty(t, resp.ProposalID)
	require.NotEmpty(t, resp.Solutions)
	for _, sol := range resp.Solutions {
		assert.True(t, sol.NewEndDate.Equal(end))
		total := 0
		for _, entry := range sol.Schedule {
			total += entry.AssignedHours
		}
		assert.Equal(t, 6, total)
	}
}

func TestScheduleShiftsEndDateWhenNeeded(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	// Window covers end-17 .. end+3; only two 4h days fit before the
	// deadline, a free holiday shows up at end+1.
	busy := saturated(21)
	busy[14] = 0 // end-3
	busy[15] = 0 // end-2
	busy[18] = 0 // end+1
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 10, Strategy: "Completa", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -17), 21, busy, map[int]bool{18: true}),
	}

	resp, err := svc.Schedule(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 201, resp.Result)
	assert.Equal(t, msgShifted, resp.Message)
	require.NotEmpty(t, resp.Solutions)
	assert.True(t, resp.Solutions[0].NewEndDate.Equal(end.AddDate(0, 0, 1)))
}

func TestScheduleInfeasibleMapsToHistoricalCode(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 6, Strategy: "Agresiva", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, saturated(21), nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
	assert.Equal(t, appErrors.ErrInfeasible.Code, appErrors.FromError(err).Code)
}

func TestScheduleUnknownStrategy(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 6, Strategy: "Rapida", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, nil, nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 505, appErrors.FromError(err).Status)
}

func TestScheduleRejectsZeroEstimatedHours(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 0, Strategy: "Calmada", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, nil, nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestScheduleRejectsShortWindow(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 6, Strategy: "Calmada", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -19), 20, nil, nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestScheduleWindowLengthWithStartDate(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	start := dto.NewDate(date(2025, 5, 19))
	// Span of 3 days plus the 3-day shift margin: 6 days expected.
	activity := dto.ActivityPayload{EstimatedHours: 4, Strategy: "Completa", StartOfActivity: &start, EndOfActivity: dto.NewDate(end)}

	_, err := svc.Schedule(context.Background(), dto.ScheduleActivityRequest{
		Activity: activity,
		Calendar: calendarPayload(date(2025, 5, 19), 5, nil, nil),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)

	resp, err := svc.Schedule(context.Background(), dto.ScheduleActivityRequest{
		Activity: activity,
		Calendar: calendarPayload(date(2025, 5, 19), 6, nil, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Result)
}

func TestScheduleRejectsStartAfterEnd(t *testing.T) {
	svc := testService()
	start := dto.NewDate(date(2025, 5, 22))
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 4, Strategy: "Completa", StartOfActivity: &start, EndOfActivity: dto.NewDate(date(2025, 5, 21))},
		Calendar: calendarPayload(date(2025, 5, 1), 21, nil, nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestScheduleRejectsOverCommittedDay(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	busy := map[int]int{0: 5}
	req := dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 4, Strategy: "Completa", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, busy, nil),
	}

	_, err := svc.Schedule(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestProposalRoundTripAndExport(t *testing.T) {
	svc := testService()
	end := date(2025, 5, 21)
	busy := saturated(21)
	busy[19] = 0
	busy[20] = 0
	resp, err := svc.Schedule(context.Background(), dto.ScheduleActivityRequest{
		Activity: dto.ActivityPayload{EstimatedHours: 6, Strategy: "Completa", EndOfActivity: dto.NewDate(end)},
		Calendar: calendarPayload(end.AddDate(0, 0, -20), 21, busy, nil),
	})
	require.NoError(t, err)

	fetched, err := svc.Proposal(resp.ProposalID)
	require.NoError(t, err)
	assert.Equal(t, resp.Result, fetched.Result)
	assert.Len(t, fetched.Solutions, len(resp.Solutions))

	csvPayload, contentType, err := svc.ExportProposal(resp.ProposalID, "csv", 0)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(csvPayload), "calendarDate")

	pdfPayload, contentType, err := svc.ExportProposal(resp.ProposalID, "pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, pdfPayload)

	_, _, err = svc.ExportProposal(resp.ProposalID, "xml", 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)

	_, _, err = svc.ExportProposal(resp.ProposalID, "csv", 99)
	require.Error(t, err)
}

func TestProposalNotFound(t *testing.T) {
	svc := testService()

	_, err := svc.Proposal("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestProposalExpires(t *testing.T) {
	svc := testService()
	svc.store = newProposalStore(time.Nanosecond)
	svc.store.Save(storedProposal{ID: "p1", CreatedAt: time.Now().Add(-time.Minute)})

	_, err := svc.Proposal("p1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}
