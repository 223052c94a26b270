package calculation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSweepPoints is the number of sampled income levels in a sweep
	DefaultSweepPoints = 800
	// MinSweepMaxIncome is the smallest upper bound of the default sweep range
	MinSweepMaxIncome = 150000
	// SegmentTolerance is the change in total marginal rate (percentage points) that starts a new segment
	SegmentTolerance = 0.1
	// SegmentMinWidthFraction is the fraction of the range a segment must span to be labelled
	SegmentMinWidthFraction = 0.05
)

// SweepRequest describes a marginal-rate sweep over wages
type SweepRequest struct {
	Scenario  domain.Scenario
	MaxIncome decimal.Decimal // zero selects max(2*total income, 150000)
	Points    int             // zero selects DefaultSweepPoints
	Delta     decimal.Decimal // zero selects 1
	Workers   int             // zero selects runtime.NumCPU()
	ShowIRMAA bool
}

func (r SweepRequest) withDefaults() SweepRequest {
	if r.MaxIncome.IsZero() {
		r.MaxIncome = DefaultMaxIncome(r.Scenario)
	}
	if r.Points == 0 {
		r.Points = DefaultSweepPoints
	}
	if r.Delta.IsZero() {
		r.Delta = decimal.NewFromInt(1)
	}
	if r.Workers <= 0 {
		r.Workers = runtime.NumCPU()
	}
	return r
}

// DefaultMaxIncome returns the default sweep upper bound for a scenario
func DefaultMaxIncome(s domain.Scenario) decimal.Decimal {
	return decimal.Max(s.Clamped().TotalIncome().Mul(decimal.NewFromInt(2)), decimal.NewFromInt(MinSweepMaxIncome))
}

// Sweep samples wages evenly across [0, MaxIncome] and decomposes the marginal
// rate at each sample. Samples are evaluated concurrently; each worker writes
// only its own slot of the result.
func (ce *CalculationEngine) Sweep(ctx context.Context, req SweepRequest) (*domain.SweepResult, error) {
	req = req.withDefaults()
	if err := req.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if req.Points < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", req.Points)
	}
	if !req.MaxIncome.IsPositive() {
		return nil, fmt.Errorf("sweep max income must be positive, got %s", req.MaxIncome)
	}
	if !req.Delta.IsPositive() {
		return nil, fmt.Errorf("sweep delta must be positive, got %s", req.Delta)
	}

	schedule, err := ce.Schedule(req.Scenario.FilingStatus)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ce.Logger.Infof("sweeping %d points to %s with %d workers", req.Points, req.MaxIncome.StringFixed(0), req.Workers)

	incomes := Linspace(decimal.Zero, req.MaxIncome, req.Points)
	points := make([]domain.SweepPoint, len(incomes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Workers)
	for i, income := range incomes {
		i, income := i, income
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			breakdown, marginal := MarginalAt(schedule, req.Scenario.WithWages(income), req.Delta)
			points[i] = domain.SweepPoint{Income: income, Breakdown: breakdown, Marginal: marginal}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ce.Logger.Warnf("sweep aborted: %v", err)
		return nil, fmt.Errorf("sweep aborted: %w", err)
	}

	result := &domain.SweepResult{
		Scenario:      req.Scenario,
		Summary:       *buildSummary(schedule, req.Scenario, Evaluate(schedule, req.Scenario)),
		MaxIncome:     req.MaxIncome,
		Delta:         req.Delta,
		Points:        points,
		Segments:      RateSegments(points, req.MaxIncome),
		ShowIRMAALine: req.ShowIRMAA,
	}
	if next, ok := schedule.NextIRMAAThreshold(req.Scenario.Wages); ok && next.LessThanOrEqual(req.MaxIncome) {
		result.NextIRMAA = &next
	}

	ce.Logger.Debugf("sweep finished in %s, %d segments", time.Since(start), len(result.Segments))
	return result, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive
func Linspace(start, stop decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []decimal.Decimal{start}
	}
	step := stop.Sub(start).Div(decimal.NewFromInt(int64(n - 1)))
	return lo.Times(n, func(i int) decimal.Decimal {
		if i == n-1 {
			return stop
		}
		return start.Add(step.Mul(decimal.NewFromInt(int64(i))))
	})
}

// TotalRatePercents returns the total marginal rate of each point in percent
func TotalRatePercents(points []domain.SweepPoint) []decimal.Decimal {
	return lo.Map(points, func(p domain.SweepPoint, _ int) decimal.Decimal {
		return p.Marginal.Total.Mul(hundred)
	})
}

// RateSegments splits a sweep into runs of constant total marginal rate. A new
// run starts where the rate moves by more than SegmentTolerance points; runs
// narrower than SegmentMinWidthFraction of maxIncome are dropped.
func RateSegments(points []domain.SweepPoint, maxIncome decimal.Decimal) []domain.RateSegment {
	if len(points) < 2 {
		return nil
	}
	rates := TotalRatePercents(points)
	tolerance := decimal.NewFromFloat(SegmentTolerance)

	steps := []int{0}
	for i := 1; i < len(rates); i++ {
		if rates[i].Sub(rates[i-1]).Abs().GreaterThan(tolerance) {
			steps = append(steps, i)
		}
	}
	steps = append(steps, len(rates)-1)

	minWidth := maxIncome.Mul(decimal.NewFromFloat(SegmentMinWidthFraction))
	var segments []domain.RateSegment
	for i := 0; i < len(steps)-1; i++ {
		start, end := steps[i], steps[i+1]
		mid := (start + end) / 2
		if !points[end].Income.Sub(points[start].Income).GreaterThan(minWidth) {
			continue
		}
		segments = append(segments, domain.RateSegment{
			StartIncome: points[start].Income,
			EndIncome:   points[end].Income,
			MidIncome:   points[mid].Income,
			Rate:        rates[mid],
		})
	}
	return segments
}
