package scheduler

import (
	"context"

	"github.com/studyflow/scheduler-api/internal/models"
)

// maxSolutionsDefault caps how many feasible assignments one candidate end
// date may yield.
const maxSolutionsDefault = 5

// allocationSearch assigns an integer number of hours to each eligible day,
// bounded by the day's residual capacity, so that the total equals the
// activity's estimated hours. Solutions are produced lazily by a bounded
// depth-first walk; the caller stops the walk once it has enough.
type allocationSearch struct {
	days   []eligibleDay
	target int
	order  searchOrder
}

// enumerate yields feasible assignments until yield returns false, the space
// is exhausted, or ctx is cancelled. The all-zero assignment is never
// yielded: each solution places hours on at least one day.
func (a *allocationSearch) enumerate(ctx context.Context, yield func(models.Solution) bool) error {
	if a.target <= 0 || len(a.days) == 0 {
		return nil
	}

	// suffixFree[i] is the residual capacity left from day i onward; used to
	// prune branches that can no longer reach the target.
	suffixFree := make([]int, len(a.days)+1)
	for i := len(a.days) - 1; i >= 0; i-- {
		suffixFree[i] = suffixFree[i+1] + a.days[i].Free
	}
	if suffixFree[0] < a.target {
		return nil
	}

	assigned := make([]int, len(a.days))
	var walk func(idx, remaining int) (bool, error)
	walk = func(idx, remaining int) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if remaining == 0 {
			// Later days are forced to zero; the partial vector is a solution.
			return yield(a.solution(assigned[:idx])), nil
		}
		if idx == len(a.days) || remaining > suffixFree[idx] {
			return true, nil
		}
		limit := a.days[idx].Free
		if limit > remaining {
			limit = remaining
		}
		for _, v := range a.order.values(limit) {
			assigned[idx] = v
			keep, err := walk(idx+1, remaining-v)
			if err != nil || !keep {
				return keep, err
			}
		}
		return true, nil
	}

	_, err := walk(0, a.target)
	return err
}

// solution projects the assigned vector onto its positive entries.
func (a *allocationSearch) solution(assigned []int) models.Solution {
	sol := make(models.Solution, 0, len(assigned))
	for i, hours := range assigned {
		if hours == 0 {
			continue
		}
		sol = append(sol, models.Assignment{
			Date:  a.days[i].Date,
			Type:  a.days[i].Type,
			Hours: hours,
		})
	}
	return sol
}

// collectSolutions gathers up to max solutions for one candidate end date,
// ranking aggressive results strongest first. A cancelled or expired context
// makes the candidate count as infeasible.
func collectSolutions(ctx context.Context, strategy models.Strategy, days []eligibleDay, target, max int) ([]models.Solution, error) {
	order, ok := orderFor(strategy)
	if !ok {
		return nil, errUnknownStrategy
	}
	if max <= 0 {
		max = maxSolutionsDefault
	}

	search := &allocationSearch{days: days, target: target, order: order}
	solutions := make([]models.Solution, 0, max)
	err := search.enumerate(ctx, func(sol models.Solution) bool {
		solutions = append(solutions, sol)
		return len(solutions) < max
	})
	if err != nil {
		return nil, err
	}

	if strategy == models.StrategyAggressive {
		rankFrontLoaded(solutions)
	}
	return solutions, nil
}
