package models

import "time"

// Strategy selects the day-preference policy used when assigning hours.
// The values mirror the strings accepted on the wire.
type Strategy string

const (
	// StrategyAggressive front-loads hours onto the earliest days in range.
	StrategyAggressive Strategy = "Agresiva"
	// StrategyCalm spreads hours toward later days with minimal per-day load.
	StrategyCalm Strategy = "Calmada"
	// StrategyComplete accepts any feasible assignment without a preference order.
	StrategyComplete Strategy = "Completa"
)

// ParseStrategy maps a wire strategy string to its variant.
func ParseStrategy(raw string) (Strategy, bool) {
	switch Strategy(raw) {
	case StrategyAggressive, StrategyCalm, StrategyComplete:
		return Strategy(raw), true
	}
	return "", false
}

// Activity describes a graded academic activity to be planned.
type Activity struct {
	EstimatedHours  int
	Strategy        Strategy
	StartOfActivity *time.Time
	EndOfActivity   time.Time
}
