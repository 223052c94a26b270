package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgraph/internal/config"
	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestEngine(t *testing.T) *CalculationEngine {
	t.Helper()
	table, err := config.Default2026()
	require.NoError(t, err)
	return NewCalculationEngine(table)
}

func TestLinspace(t *testing.T) {
	values := Linspace(decimal.Zero, d(100), 5)
	require.Len(t, values, 5)
	for i, want := range []string{"0", "25", "50", "75", "100"} {
		assertDecimal(t, want, values[i])
	}

	assert.Nil(t, Linspace(decimal.Zero, d(100), 0))
	assert.Len(t, Linspace(d(7), d(100), 1), 1)
}

func TestDefaultMaxIncome(t *testing.T) {
	small := domain.Scenario{Wages: d(20000), FilingStatus: domain.Single}
	assertDecimal(t, "150000", DefaultMaxIncome(small))

	large := domain.Scenario{Wages: d(32200), CapitalGains: d(20000), SocialSecurity: d(40000), FilingStatus: domain.MarriedFilingJointly}
	assertDecimal(t, "184400", DefaultMaxIncome(large))
}

func TestSweep_MatchesSerialEvaluation(t *testing.T) {
	engine := newTestEngine(t)
	scenario := domain.Scenario{
		Wages:          d(60000),
		CapitalGains:   d(20000),
		SocialSecurity: d(30000),
		FilingStatus:   domain.Single,
		IsSenior:       true,
	}

	result, err := engine.Sweep(context.Background(), SweepRequest{
		Scenario:  scenario,
		MaxIncome: d(100000),
		Points:    11,
		Workers:   3,
	})
	require.NoError(t, err)
	require.Len(t, result.Points, 11)

	schedule := testSchedule(t, domain.Single)
	for i, p := range result.Points {
		assertDecimal(t, decimal.NewFromInt(int64(i*10000)).String(), p.Income, "income")
		breakdown, marginal := MarginalAt(schedule, scenario.WithWages(p.Income), d(1))
		assert.True(t, breakdown.Equal(p.Breakdown), "breakdown at %s", p.Income)
		assert.Equal(t, marginal.Total.String(), p.Marginal.Total.String(), "total marginal at %s", p.Income)
	}

	assertDecimal(t, "1", result.Delta)
	assert.True(t, result.Summary.Scenario.Wages.Equal(d(60000)))
}

func TestSweep_Defaults(t *testing.T) {
	engine := newTestEngine(t)
	result, err := engine.Sweep(context.Background(), SweepRequest{
		Scenario: domain.Scenario{Wages: d(32200), FilingStatus: domain.MarriedFilingJointly},
	})
	require.NoError(t, err)

	assert.Len(t, result.Points, DefaultSweepPoints)
	assertDecimal(t, "150000", result.MaxIncome)
	assert.NotEmpty(t, result.Segments)
	assert.True(t, result.Points[len(result.Points)-1].Income.Equal(result.MaxIncome))
}

func TestSweep_NextIRMAAOnlyInsideRange(t *testing.T) {
	engine := newTestEngine(t)
	scenario := domain.Scenario{Wages: d(100000), FilingStatus: domain.Single}

	inside, err := engine.Sweep(context.Background(), SweepRequest{Scenario: scenario, MaxIncome: d(200000), Points: 5})
	require.NoError(t, err)
	require.NotNil(t, inside.NextIRMAA)
	assertDecimal(t, "109000", *inside.NextIRMAA)

	outside, err := engine.Sweep(context.Background(), SweepRequest{Scenario: scenario, MaxIncome: d(105000), Points: 5})
	require.NoError(t, err)
	assert.Nil(t, outside.NextIRMAA)
}

func TestSweep_Cancelled(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Sweep(ctx, SweepRequest{
		Scenario: domain.Scenario{Wages: d(50000), FilingStatus: domain.Single},
		Points:   50,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSweep_InvalidRequests(t *testing.T) {
	engine := newTestEngine(t)
	valid := domain.Scenario{Wages: d(50000), FilingStatus: domain.Single}

	tests := []struct {
		name string
		req  SweepRequest
		is   error
	}{
		{"single point", SweepRequest{Scenario: valid, Points: 1}, nil},
		{"negative delta", SweepRequest{Scenario: valid, Delta: d(-1)}, nil},
		{"negative range", SweepRequest{Scenario: valid, MaxIncome: d(-10)}, nil},
		{"unknown status", SweepRequest{Scenario: domain.Scenario{Wages: d(1)}}, domain.ErrUnknownFilingStatus},
		{"negative wages", SweepRequest{Scenario: domain.Scenario{Wages: d(-1), FilingStatus: domain.Single}}, domain.ErrNegativeIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Sweep(context.Background(), tt.req)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestRateSegments(t *testing.T) {
	points := make([]domain.SweepPoint, 11)
	for i := range points {
		rate := decimal.NewFromFloat(0.10)
		if i >= 5 {
			rate = decimal.NewFromFloat(0.22)
		}
		points[i] = domain.SweepPoint{
			Income:   d(int64(i * 10)),
			Marginal: domain.MarginalRates{Total: rate},
		}
	}

	segments := RateSegments(points, d(100))
	require.Len(t, segments, 2)

	assertDecimal(t, "0", segments[0].StartIncome)
	assertDecimal(t, "50", segments[0].EndIncome)
	assertDecimal(t, "20", segments[0].MidIncome)
	assertDecimal(t, "10", segments[0].Rate)

	assertDecimal(t, "50", segments[1].StartIncome)
	assertDecimal(t, "100", segments[1].EndIncome)
	assertDecimal(t, "22", segments[1].Rate)
}

func TestRateSegments_DropsNarrowRuns(t *testing.T) {
	points := make([]domain.SweepPoint, 101)
	for i := range points {
		rate := decimal.NewFromFloat(0.12)
		if i == 50 || i == 51 {
			rate = decimal.NewFromFloat(0.40)
		}
		points[i] = domain.SweepPoint{Income: d(int64(i)), Marginal: domain.MarginalRates{Total: rate}}
	}

	segments := RateSegments(points, d(100))
	for _, s := range segments {
		assertDecimal(t, "12", s.Rate)
	}
	assert.Len(t, segments, 2)
	assert.Nil(t, RateSegments(points[:1], d(100)))
}
