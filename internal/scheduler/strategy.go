package scheduler

import (
	"sort"

	"github.com/studyflow/scheduler-api/internal/models"
)

// searchOrder decides, per day, the order in which candidate hour values are
// tried. Days themselves are always visited earliest first.
type searchOrder interface {
	// values enumerates the hour values to try for a day whose bound is limit.
	values(limit int) []int
}

// frontLoaded tries the maximum value first so the earliest days soak up as
// many hours as possible.
type frontLoaded struct{}

func (frontLoaded) values(limit int) []int {
	vals := make([]int, 0, limit+1)
	for v := limit; v >= 0; v-- {
		vals = append(vals, v)
	}
	return vals
}

// spreadOut tries the minimum value first, pushing load toward later days
// and keeping per-day assignments small.
type spreadOut struct{}

func (spreadOut) values(limit int) []int {
	vals := make([]int, 0, limit+1)
	for v := 0; v <= limit; v++ {
		vals = append(vals, v)
	}
	return vals
}

// anyFeasible has no preference: values are tried in plain domain order.
type anyFeasible struct{}

func (anyFeasible) values(limit int) []int {
	return spreadOut{}.values(limit)
}

// orderFor resolves the search order for a strategy.
func orderFor(s models.Strategy) (searchOrder, bool) {
	switch s {
	case models.StrategyAggressive:
		return frontLoaded{}, true
	case models.StrategyCalm:
		return spreadOut{}, true
	case models.StrategyComplete:
		return anyFeasible{}, true
	}
	return nil, false
}

// rankFrontLoaded orders aggressive solutions strongest first: by descending
// hours inside the first three chronological entries, then by the earliest
// starting date.
func rankFrontLoaded(solutions []models.Solution) {
	sort.SliceStable(solutions, func(i, j int) bool {
		hi, hj := leadingHours(solutions[i]), leadingHours(solutions[j])
		if hi != hj {
			return hi > hj
		}
		return solutions[i][0].Date.Before(solutions[j][0].Date)
	})
}

func leadingHours(s models.Solution) int {
	total := 0
	for i, entry := range s {
		if i == 3 {
			break
		}
		total += entry.Hours
	}
	return total
}
