package calculation

import (
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// IRMAAWarningDistance is the threshold for warning status (within $10K of threshold)
	IRMAAWarningDistance = 10000
)

// CalculateIRMAARiskStatus places an income against the schedule's IRMAA tiers.
// It returns the risk status, the number of tiers crossed and the distance to
// the next tier (zero when every tier has been crossed).
func CalculateIRMAARiskStatus(income decimal.Decimal, schedule domain.TaxSchedule) (domain.IRMAARisk, int, decimal.Decimal) {
	if len(schedule.IRMAAThresholds) == 0 {
		return domain.IRMAARiskSafe, 0, decimal.Zero
	}

	// income equal to a threshold is already in that tier
	tiers := 0
	for _, threshold := range schedule.IRMAAThresholds {
		if income.GreaterThanOrEqual(threshold) {
			tiers++
		}
	}

	next, ok := schedule.NextIRMAAThreshold(income)
	distance := decimal.Zero
	if ok {
		distance = next.Sub(income)
	}

	if tiers > 0 {
		return domain.IRMAARiskBreach, tiers, distance
	}
	if distance.LessThanOrEqual(decimal.NewFromInt(IRMAAWarningDistance)) {
		return domain.IRMAARiskWarning, 0, distance
	}
	return domain.IRMAARiskSafe, 0, distance
}

// getTierName returns a human-readable tier name
func getTierName(tier int) string {
	switch tier {
	case 0:
		return "None"
	case 1:
		return "Tier1"
	case 2:
		return "Tier2"
	case 3:
		return "Tier3"
	case 4:
		return "Tier4"
	case 5:
		return "Tier5"
	default:
		return "Unknown"
	}
}
