package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/scheduler-api/internal/models"
)

func eligible(from time.Time, free ...int) []eligibleDay {
	days := make([]eligibleDay, 0, len(free))
	for i, f := range free {
		dayType := models.DayTypeNormal
		if f > 4 {
			dayType = models.DayTypeHoliday
		}
		days = append(days, eligibleDay{Date: from.AddDate(0, 0, i), Type: dayType, Free: f})
	}
	return days
}

func TestSolutionsSumExactlyToTarget(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4, 8)

	for _, strategy := range []models.Strategy{models.StrategyAggressive, models.StrategyCalm, models.StrategyComplete} {
		solutions, err := collectSolutions(context.Background(), strategy, days, 9, 5)
		require.NoError(t, err)
		require.NotEmpty(t, solutions, "strategy %s", strategy)
		for _, sol := range solutions {
			assert.Equal(t, 9, sol.TotalHours())
			for _, entry := range sol {
				assert.Positive(t, entry.Hours)
				assert.LessOrEqual(t, entry.Hours, Capacity(entry.Type))
			}
		}
	}
}

func TestAggressiveFrontLoadsEarliestDays(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4)

	solutions, err := collectSolutions(context.Background(), models.StrategyAggressive, days, 6, 5)
	require.NoError(t, err)
	require.NotEmpty(t, solutions)

	first := solutions[0]
	require.Len(t, first, 2)
	assert.Equal(t, 4, first[0].Hours, "earliest day should take its full capacity")
	assert.Equal(t, 2, first[1].Hours)
}

func TestAggressiveRankingPrefersDenseLeadingDays(t *testing.T) {
	days := eligible(date(2025, 5, 1), 2, 2, 2, 2, 2)

	solutions, err := collectSolutions(context.Background(), models.StrategyAggressive, days, 4, 5)
	require.NoError(t, err)
	require.NotEmpty(t, solutions)

	best := leadingHours(solutions[0])
	for _, sol := range solutions[1:] {
		assert.LessOrEqual(t, leadingHours(sol), best)
	}
	assert.Equal(t, 4, best)
}

func TestCalmSpreadsTowardLaterDays(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4)

	solutions, err := collectSolutions(context.Background(), models.StrategyCalm, days, 6, 5)
	require.NoError(t, err)
	require.NotEmpty(t, solutions)

	first := solutions[0]
	require.Len(t, first, 2)
	assert.Equal(t, 2, first[0].Hours, "earliest day should take the minimum feasible hours")
	assert.Equal(t, 4, first[1].Hours)
}

func TestSolutionCountCappedAtFive(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4, 4, 4)

	solutions, err := collectSolutions(context.Background(), models.StrategyComplete, days, 8, 5)
	require.NoError(t, err)
	assert.Len(t, solutions, 5)
}

func TestZeroTargetYieldsNoSolutions(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4)

	solutions, err := collectSolutions(context.Background(), models.StrategyComplete, days, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, solutions)
}

func TestTargetBeyondTotalCapacityYieldsNoSolutions(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4, 4)

	solutions, err := collectSolutions(context.Background(), models.StrategyComplete, days, 9, 5)
	require.NoError(t, err)
	assert.Empty(t, solutions)
}

func TestSearchStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	days := eligible(date(2025, 5, 1), 4, 4, 4, 4)

	solutions, err := collectSolutions(ctx, models.StrategyComplete, days, 8, 5)
	require.Error(t, err)
	assert.Nil(t, solutions)
}

func TestCollectRejectsUnknownStrategy(t *testing.T) {
	days := eligible(date(2025, 5, 1), 4)

	_, err := collectSolutions(context.Background(), models.Strategy("Rapida"), days, 2, 5)
	assert.ErrorIs(t, err, errUnknownStrategy)
}
