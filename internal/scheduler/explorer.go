package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studyflow/scheduler-api/internal/models"
)

// marginDays bounds how far past the nominal deadline a candidate end date
// may move. The historical implementations disagreed between three and four
// days; three matches the candidate offsets and is the value used here.
const marginDays = 3

var errUnknownStrategy = errors.New("unknown scheduling strategy")

// Config tunes the end-date exploration.
type Config struct {
	// SearchTimeout caps wall time spent searching per request.
	SearchTimeout time.Duration
	// MaxSolutions caps solutions collected per candidate end date.
	MaxSolutions int
	// Concurrent searches all candidate end dates in parallel, still
	// honouring candidate priority when picking the winner.
	Concurrent bool
}

// Explorer walks candidate end dates around the nominal deadline until one
// admits a feasible hour assignment.
type Explorer struct {
	cfg    Config
	logger *zap.Logger
}

// NewExplorer builds an explorer with defaults filled in.
func NewExplorer(cfg Config, logger *zap.Logger) *Explorer {
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 2 * time.Second
	}
	if cfg.MaxSolutions <= 0 {
		cfg.MaxSolutions = maxSolutionsDefault
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{cfg: cfg, logger: logger}
}

// candidateEndDates lists end dates in priority order: the nominal deadline
// first, then the three days after it, then the three days before. When a
// start date is present, candidates are clipped to [start, end+marginDays].
func candidateEndDates(activity models.Activity) []time.Time {
	end := activity.EndOfActivity
	candidates := []time.Time{end}
	for i := 1; i <= marginDays; i++ {
		candidates = append(candidates, end.AddDate(0, 0, i))
	}
	for i := 1; i <= marginDays; i++ {
		candidates = append(candidates, end.AddDate(0, 0, -i))
	}

	if activity.StartOfActivity == nil {
		return candidates
	}
	upper := end.AddDate(0, 0, marginDays)
	kept := candidates[:0]
	for _, c := range candidates {
		if c.Before(*activity.StartOfActivity) || c.After(upper) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// Explore drives the margin search and reports the outcome. Strategy
// recognition is checked up front so an unknown strategy never reaches the
// search.
func (e *Explorer) Explore(ctx context.Context, activity models.Activity, window []models.CalendarDay) (models.ScheduleOutcome, error) {
	if _, ok := models.ParseStrategy(string(activity.Strategy)); !ok {
		return models.ScheduleOutcome{Status: models.OutcomeInvalidStrategy}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.SearchTimeout)
	defer cancel()

	candidates := candidateEndDates(activity)

	var (
		chosen    time.Time
		solutions []models.Solution
	)
	if e.cfg.Concurrent && len(candidates) > 1 {
		chosen, solutions = e.exploreConcurrent(ctx, activity, window, candidates)
	} else {
		chosen, solutions = e.exploreSequential(ctx, activity, window, candidates)
	}

	if len(solutions) == 0 {
		return models.ScheduleOutcome{Status: models.OutcomeInfeasible}, nil
	}

	status := models.OutcomeAssigned
	if !chosen.Equal(activity.EndOfActivity) {
		status = models.OutcomeAssignedWithDateShift
	}
	return models.ScheduleOutcome{
		Status:    status,
		EndDate:   chosen,
		Solutions: FormatSolutions(solutions, chosen),
	}, nil
}

func (e *Explorer) exploreSequential(ctx context.Context, activity models.Activity, window []models.CalendarDay, candidates []time.Time) (time.Time, []models.Solution) {
	for _, candidate := range candidates {
		days := availableDays(activity.StartOfActivity, candidate, window)
		solutions, err := collectSolutions(ctx, activity.Strategy, days, activity.EstimatedHours, e.cfg.MaxSolutions)
		if err != nil {
			// Timed out or cancelled: this candidate counts as infeasible,
			// and the shared deadline ends the remaining ones quickly.
			e.logger.Warn("candidate search aborted",
				zap.Time("candidate", candidate), zap.Error(err))
			continue
		}
		if len(solutions) > 0 {
			return candidate, solutions
		}
	}
	return time.Time{}, nil
}

// exploreConcurrent searches every candidate in parallel and picks the
// highest-priority success: candidate i wins only once all candidates before
// it have finished without a solution. Once a winner is settled the rest are
// cancelled.
func (e *Explorer) exploreConcurrent(ctx context.Context, activity models.Activity, window []models.CalendarDay, candidates []time.Time) (time.Time, []models.Solution) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		done      bool
		solutions []models.Solution
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]result, len(candidates))
		winner  = -1
	)

	settle := func() {
		// Called with mu held. The winner is the first candidate with
		// solutions such that every earlier candidate finished empty.
		for i := range results {
			if !results[i].done {
				return
			}
			if len(results[i].solutions) > 0 {
				winner = i
				cancel()
				return
			}
		}
	}

	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate time.Time) {
			defer wg.Done()
			days := availableDays(activity.StartOfActivity, candidate, window)
			solutions, err := collectSolutions(ctx, activity.Strategy, days, activity.EstimatedHours, e.cfg.MaxSolutions)
			if err != nil {
				solutions = nil
			}
			mu.Lock()
			results[i] = result{done: true, solutions: solutions}
			if winner < 0 {
				settle()
			}
			mu.Unlock()
		}(i, candidate)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if winner < 0 {
		settle()
	}
	if winner < 0 {
		return time.Time{}, nil
	}
	return candidates[winner], results[winner].solutions
}
