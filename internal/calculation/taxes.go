package calculation

import (
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Senior deduction phases out at 6 cents per dollar of wages plus capital
//    gains above the schedule's phase-out start.
//
// 2. Social Security: up to 50% of benefits taxable above threshold 1 and up
//    to 85% above threshold 2. The second tier adds the lesser of half the
//    benefits and a statutory cap ($6,000 joint, $4,500 otherwise).
//
// 3. Long-term capital gains are stacked on top of ordinary taxable income.
//
// 4. NIIT is modeled as 3.8% of wages plus capital gains above the threshold.
//    Real NIIT uses net investment income and MAGI; this is a simplification.

var (
	hundred              = decimal.NewFromInt(100)
	seniorPhaseoutRate   = decimal.NewFromFloat(0.06)
	niitRate             = decimal.NewFromFloat(0.038)
	ssTier1Rate          = decimal.NewFromFloat(0.5)
	ssTier2Rate          = decimal.NewFromFloat(0.85)
	ssAdditionalCapJoint = decimal.NewFromInt(6000)
	ssAdditionalCap      = decimal.NewFromInt(4500)
)

// Evaluate computes the tax breakdown for a scenario under a schedule.
// It is pure: no I/O, no shared state, safe for concurrent use.
// Negative amounts are treated as zero.
func Evaluate(schedule domain.TaxSchedule, scenario domain.Scenario) domain.TaxBreakdown {
	s := scenario.Clamped()
	grossNonSS := s.Wages.Add(s.CapitalGains)

	seniorUsed := seniorDeductionUsed(schedule, grossNonSS, s.IsSenior)
	deduction := schedule.StandardDeduction.Add(seniorUsed)

	taxableSS := taxableSocialSecurity(schedule, s)

	ordinaryTaxable := floorZero(s.Wages.Add(taxableSS).Sub(deduction))
	ordinaryTax, ordinaryRate := bracketTax(schedule.OrdinaryBrackets, decimal.Zero, ordinaryTaxable)

	combinedTaxable := floorZero(s.Wages.Add(taxableSS).Add(s.CapitalGains).Sub(deduction))
	gainsPortion := floorZero(combinedTaxable.Sub(ordinaryTaxable))
	gainsTax, gainsRate := bracketTax(schedule.CapitalGainsBrackets, ordinaryTaxable, gainsPortion)

	niit := floorZero(grossNonSS.Sub(schedule.NIITThreshold)).Mul(niitRate)

	return domain.TaxBreakdown{
		OrdinaryTax:           ordinaryTax,
		CapitalGainsTax:       gainsTax,
		NIIT:                  niit,
		TaxableSocialSecurity: taxableSS,
		TopOrdinaryRate:       ordinaryRate,
		TopCapitalGainsRate:   gainsRate,
		SeniorDeductionUsed:   seniorUsed,
	}
}

// seniorDeductionUsed applies the 6% phase-out to the senior deduction
func seniorDeductionUsed(schedule domain.TaxSchedule, income decimal.Decimal, senior bool) decimal.Decimal {
	if !senior {
		return decimal.Zero
	}
	excess := floorZero(income.Sub(schedule.SeniorPhaseoutStart))
	return floorZero(schedule.SeniorDeduction.Sub(excess.Mul(seniorPhaseoutRate)))
}

// taxableSocialSecurity returns the portion of benefits included in income
func taxableSocialSecurity(schedule domain.TaxSchedule, s domain.Scenario) decimal.Decimal {
	ss := s.SocialSecurity
	provisional := s.Wages.Add(s.CapitalGains).Add(ss.Mul(ssTier1Rate))
	t1 := schedule.SocialSecurityThresholds.Threshold1
	t2 := schedule.SocialSecurityThresholds.Threshold2

	switch {
	case provisional.GreaterThan(t2):
		additionalCap := ssAdditionalCap
		if s.FilingStatus == domain.MarriedFilingJointly {
			additionalCap = ssAdditionalCapJoint
		}
		tier2 := provisional.Sub(t2).Mul(ssTier2Rate).Add(decimal.Min(additionalCap, ss.Mul(ssTier1Rate)))
		return decimal.Min(ss.Mul(ssTier2Rate), tier2)
	case provisional.GreaterThan(t1):
		return decimal.Min(ss.Mul(ssTier1Rate), provisional.Sub(t1).Mul(ssTier1Rate))
	default:
		return decimal.Zero
	}
}

// bracketTax taxes the interval [base, base+amount] against a bracket table.
// The returned rate is that of the highest bracket whose lower bound is below
// base+amount, or zero when nothing is stacked above zero.
func bracketTax(brackets []domain.TaxBracket, base, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	top := base.Add(amount)
	tax := decimal.Zero
	rate := decimal.Zero

	for _, bracket := range brackets {
		overlap := floorZero(decimal.Min(top, bracket.Max).Sub(decimal.Max(base, bracket.Min)))
		if overlap.IsPositive() {
			tax = tax.Add(overlap.Mul(bracket.Rate).Div(hundred))
		}
		if top.GreaterThan(bracket.Min) {
			rate = bracket.Rate
		}
	}

	return tax, rate
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
