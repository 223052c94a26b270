package calculation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/taxgraph/internal/config"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule(t *testing.T, status domain.FilingStatus) domain.TaxSchedule {
	t.Helper()
	table, err := config.Default2026()
	require.NoError(t, err)
	schedule, err := table.Lookup(status)
	require.NoError(t, err)
	return schedule
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, label ...string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "%s: expected %s, got %s", strings.Join(label, " "), want, actual)
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestEvaluate_KnownScenarios(t *testing.T) {
	tests := []struct {
		name                string
		scenario            domain.Scenario
		ordinaryTax         string
		capitalGainsTax     string
		niit                string
		taxableSS           string
		topOrdinaryRate     string
		topCapitalGainsRate string
		seniorUsed          string
	}{
		{
			name:                "MFJ wages equal to standard deduction owe nothing",
			scenario:            domain.Scenario{Wages: d(32200), FilingStatus: domain.MarriedFilingJointly},
			ordinaryTax:         "0",
			capitalGainsTax:     "0",
			niit:                "0",
			taxableSS:           "0",
			topOrdinaryRate:     "0",
			topCapitalGainsRate: "0",
			seniorUsed:          "0",
		},
		{
			// 12400*0.10 + 38000*0.12 + 33500*0.22
			name:                "Single 100k wages lands in the 22% bracket",
			scenario:            domain.Scenario{Wages: d(100000), FilingStatus: domain.Single},
			ordinaryTax:         "13170",
			capitalGainsTax:     "0",
			niit:                "0",
			taxableSS:           "0",
			topOrdinaryRate:     "22",
			topCapitalGainsRate: "15",
			seniorUsed:          "0",
		},
		{
			// ordinary 43900 -> 1240 + 31500*0.12; gains [43900, 63900] -> 14450*0.15
			name:                "Single gains straddle the 0% and 15% LTCG brackets",
			scenario:            domain.Scenario{Wages: d(60000), CapitalGains: d(20000), FilingStatus: domain.Single},
			ordinaryTax:         "5020",
			capitalGainsTax:     "2167.5",
			niit:                "0",
			taxableSS:           "0",
			topOrdinaryRate:     "12",
			topCapitalGainsRate: "15",
			seniorUsed:          "0",
		},
		{
			// gains taxable 983900: 496050*0.15 + 438400*0.20; NIIT 800000*0.038
			name:                "Large gains reach the 20% LTCG bracket",
			scenario:            domain.Scenario{CapitalGains: d(1000000), FilingStatus: domain.Single},
			ordinaryTax:         "0",
			capitalGainsTax:     "162087.5",
			niit:                "30400",
			taxableSS:           "0",
			topOrdinaryRate:     "0",
			topCapitalGainsRate: "20",
			seniorUsed:          "0",
		},
		{
			name:                "Senior at the phase-out start keeps the full deduction",
			scenario:            domain.Scenario{Wages: d(75000), FilingStatus: domain.Single, IsSenior: true},
			ordinaryTax:         "6240",
			capitalGainsTax:     "0",
			niit:                "0",
			taxableSS:           "0",
			topOrdinaryRate:     "22",
			topCapitalGainsRate: "15",
			seniorUsed:          "6500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(testSchedule(t, tt.scenario.FilingStatus), tt.scenario)

			assertDecimal(t, tt.ordinaryTax, result.OrdinaryTax, "ordinary tax")
			assertDecimal(t, tt.capitalGainsTax, result.CapitalGainsTax, "capital gains tax")
			assertDecimal(t, tt.niit, result.NIIT, "niit")
			assertDecimal(t, tt.taxableSS, result.TaxableSocialSecurity, "taxable ss")
			assertDecimal(t, tt.topOrdinaryRate, result.TopOrdinaryRate, "top ordinary rate")
			assertDecimal(t, tt.topCapitalGainsRate, result.TopCapitalGainsRate, "top capital gains rate")
			assertDecimal(t, tt.seniorUsed, result.SeniorDeductionUsed, "senior deduction used")
		})
	}
}

func TestSeniorDeductionPhaseout(t *testing.T) {
	schedule := testSchedule(t, domain.Single)

	tests := []struct {
		name     string
		income   decimal.Decimal
		senior   bool
		expected string
	}{
		{"not senior", d(50000), false, "0"},
		{"below start", d(50000), true, "6500"},
		{"exactly at start", d(75000), true, "6500"},
		{"5000 over start loses 300", d(80000), true, "6200"},
		{"fully phased out", d(200000), true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, seniorDeductionUsed(schedule, tt.income, tt.senior))
		})
	}
}

func TestSeniorPhaseoutCountsCapitalGains(t *testing.T) {
	schedule := testSchedule(t, domain.Single)
	result := Evaluate(schedule, domain.Scenario{
		Wages:        d(70000),
		CapitalGains: d(10000),
		FilingStatus: domain.Single,
		IsSenior:     true,
	})
	assertDecimal(t, "6200", result.SeniorDeductionUsed)
}

func TestTaxableSocialSecurity(t *testing.T) {
	tests := []struct {
		name     string
		scenario domain.Scenario
		expected string
	}{
		{
			name:     "provisional income below first threshold",
			scenario: domain.Scenario{Wages: d(10000), SocialSecurity: d(20000), FilingStatus: domain.Single},
			expected: "0",
		},
		{
			// prov 30000: min(10000, 5000*0.5)
			name:     "first tier single",
			scenario: domain.Scenario{Wages: d(20000), SocialSecurity: d(20000), FilingStatus: domain.Single},
			expected: "2500",
		},
		{
			// prov 50000: min(17000, 16000*0.85 + 4500)
			name:     "second tier single capped at 85%",
			scenario: domain.Scenario{Wages: d(40000), SocialSecurity: d(20000), FilingStatus: domain.Single},
			expected: "17000",
		},
		{
			// prov 55000: min(25500, 11000*0.85 + 6000)
			name:     "second tier joint uses the 6000 cap",
			scenario: domain.Scenario{Wages: d(40000), SocialSecurity: d(30000), FilingStatus: domain.MarriedFilingJointly},
			expected: "15350",
		},
		{
			// prov 35000: min(8500, 1000*0.85 + min(4500, 2000))
			name:     "second tier single with small benefit",
			scenario: domain.Scenario{Wages: d(33000), SocialSecurity: d(4000), FilingStatus: domain.Single},
			expected: "2850",
		},
		{
			name:     "provisional income exactly at first threshold",
			scenario: domain.Scenario{Wages: d(15000), SocialSecurity: d(20000), FilingStatus: domain.Single},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := testSchedule(t, tt.scenario.FilingStatus)
			assertDecimal(t, tt.expected, taxableSocialSecurity(schedule, tt.scenario))
		})
	}
}

func TestBracketTax(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Min: d(0), Max: d(10000), Rate: d(10)},
		{Min: d(10000), Max: d(50000), Rate: d(20)},
		{Min: d(50000), Max: d(9000000000), Rate: d(30)},
	}

	tests := []struct {
		name   string
		base   decimal.Decimal
		amount decimal.Decimal
		tax    string
		rate   string
	}{
		{"zero income enters no bracket", d(0), d(0), "0", "0"},
		{"inside first bracket", d(0), d(5000), "500", "10"},
		{"exactly at first edge", d(0), d(10000), "1000", "10"},
		{"just past first edge", d(0), d(10001), "1000.2", "20"},
		{"spans all brackets", d(0), d(60000), "12000", "30"},
		{"stacked on a base", d(8000), d(4000), "600", "20"},
		{"stacked with zero amount reports base bracket", d(20000), d(0), "0", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, rate := bracketTax(brackets, tt.base, tt.amount)
			assertDecimal(t, tt.tax, tax, "tax")
			assertDecimal(t, tt.rate, rate, "rate")
		})
	}
}

func TestEvaluate_Properties(t *testing.T) {
	for _, status := range domain.FilingStatuses {
		schedule := testSchedule(t, status)
		for _, senior := range []bool{false, true} {
			for _, ss := range []int64{0, 18000, 45000} {
				for _, gains := range []int64{0, 25000, 400000} {
					var prev domain.TaxBreakdown
					for wages := int64(0); wages <= 900000; wages += 7500 {
						s := domain.Scenario{
							Wages:          d(wages),
							CapitalGains:   d(gains),
							SocialSecurity: d(ss),
							FilingStatus:   status,
							IsSenior:       senior,
						}
						result := Evaluate(schedule, s)

						assert.False(t, result.OrdinaryTax.IsNegative(), "ordinary tax negative for %+v", s)
						assert.False(t, result.CapitalGainsTax.IsNegative(), "capital gains tax negative for %+v", s)
						assert.False(t, result.NIIT.IsNegative(), "niit negative for %+v", s)
						assert.False(t, result.TaxableSocialSecurity.IsNegative(), "taxable ss negative for %+v", s)
						assert.False(t, result.SeniorDeductionUsed.IsNegative(), "senior deduction negative for %+v", s)
						assert.True(t, result.TaxableSocialSecurity.LessThanOrEqual(d(ss).Mul(ssTier2Rate)),
							"taxable ss %s exceeds 85%% of %d", result.TaxableSocialSecurity, ss)

						if wages > 0 {
							assert.True(t, result.OrdinaryTax.GreaterThanOrEqual(prev.OrdinaryTax),
								"ordinary tax decreased at wages %d: %s < %s", wages, result.OrdinaryTax, prev.OrdinaryTax)
							assert.True(t, result.TaxableSocialSecurity.GreaterThanOrEqual(prev.TaxableSocialSecurity),
								"taxable ss decreased at wages %d", wages)
						}
						prev = result
					}
				}
			}
		}
	}
}

func TestEvaluate_BracketEdgeContinuity(t *testing.T) {
	epsilon := decimal.NewFromFloat(0.01)
	// the largest rate is 37%, so a one-cent step can move tax by at most 0.0037
	maxJump := decimal.NewFromFloat(0.0037)

	for _, status := range domain.FilingStatuses {
		schedule := testSchedule(t, status)
		for _, brackets := range [][]domain.TaxBracket{schedule.OrdinaryBrackets, schedule.CapitalGainsBrackets} {
			for _, b := range brackets[1:] {
				below, _ := bracketTax(brackets, decimal.Zero, b.Min.Sub(epsilon))
				at, _ := bracketTax(brackets, decimal.Zero, b.Min)
				above, _ := bracketTax(brackets, decimal.Zero, b.Min.Add(epsilon))

				assert.True(t, at.Sub(below).Abs().LessThanOrEqual(maxJump), "%s jump below edge %s", status, b.Min)
				assert.True(t, above.Sub(at).Abs().LessThanOrEqual(maxJump), "%s jump above edge %s", status, b.Min)
			}
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	schedule := testSchedule(t, domain.MarriedFilingJointly)
	s := domain.Scenario{
		Wages:          d(180000),
		CapitalGains:   d(60000),
		SocialSecurity: d(40000),
		FilingStatus:   domain.MarriedFilingJointly,
		IsSenior:       true,
	}

	first := Evaluate(schedule, s)
	second := Evaluate(schedule, s)

	decimalEqual := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("Evaluate not idempotent (-first +second):\n%s", diff)
	}
}

func TestEvaluate_NegativeInputsClampToZero(t *testing.T) {
	schedule := testSchedule(t, domain.Single)
	negative := Evaluate(schedule, domain.Scenario{
		Wages:          d(-5000),
		CapitalGains:   d(-100),
		SocialSecurity: d(-20),
		FilingStatus:   domain.Single,
	})
	zero := Evaluate(schedule, domain.Scenario{FilingStatus: domain.Single})
	assert.True(t, negative.Equal(zero))
}

func TestEvaluate_NIITUsesWagesAndGains(t *testing.T) {
	schedule := testSchedule(t, domain.MarriedFilingJointly)

	wagesOnly := Evaluate(schedule, domain.Scenario{Wages: d(260000), FilingStatus: domain.MarriedFilingJointly})
	assertDecimal(t, "380", wagesOnly.NIIT)

	atThreshold := Evaluate(schedule, domain.Scenario{Wages: d(200000), CapitalGains: d(50000), FilingStatus: domain.MarriedFilingJointly})
	assertDecimal(t, "0", atThreshold.NIIT)
}
