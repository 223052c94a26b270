package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScenario_Validate(t *testing.T) {
	valid := Scenario{Wages: dec(50000), CapitalGains: dec(1000), SocialSecurity: dec(2000), FilingStatus: Single}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		scenario Scenario
		err      error
	}{
		{"missing status", Scenario{Wages: dec(1)}, ErrUnknownFilingStatus},
		{"negative wages", Scenario{Wages: dec(-1), FilingStatus: Single}, ErrNegativeIncome},
		{"negative gains", Scenario{CapitalGains: dec(-1), FilingStatus: Single}, ErrNegativeIncome},
		{"negative social security", Scenario{SocialSecurity: dec(-1), FilingStatus: MarriedFilingJointly}, ErrNegativeIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.scenario.Validate(), tt.err)
		})
	}
}

func TestScenario_Clamped(t *testing.T) {
	s := Scenario{Wages: dec(-10), CapitalGains: dec(5), SocialSecurity: dec(-3), FilingStatus: Single}
	c := s.Clamped()

	assert.True(t, c.Wages.IsZero())
	assert.True(t, c.CapitalGains.Equal(dec(5)))
	assert.True(t, c.SocialSecurity.IsZero())
	assert.True(t, s.Wages.Equal(dec(-10)), "original is not modified")
	assert.True(t, c.TotalIncome().Equal(dec(5)))
}

func TestScenario_WithWages(t *testing.T) {
	s := Scenario{Wages: dec(10), SocialSecurity: dec(7), FilingStatus: Single}
	w := s.WithWages(dec(99))
	assert.True(t, w.Wages.Equal(dec(99)))
	assert.True(t, w.SocialSecurity.Equal(dec(7)))
	assert.True(t, s.Wages.Equal(dec(10)))
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(dec(25), dec(200)).Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, Percent(dec(25), decimal.Zero).IsZero())
	assert.True(t, Percent(dec(25), dec(-5)).IsZero())
}

func TestTaxBreakdown_TotalTax(t *testing.T) {
	b := TaxBreakdown{OrdinaryTax: dec(100), CapitalGainsTax: dec(20), NIIT: dec(3)}
	assert.True(t, b.TotalTax().Equal(dec(123)))
	assert.True(t, b.Equal(b))
	assert.False(t, b.Equal(TaxBreakdown{}))
}

func TestMarginalRates_Components(t *testing.T) {
	mr := MarginalRates{Ordinary: dec(1), CapitalGains: dec(2), SocialSecurity: dec(3), SeniorPhaseout: dec(4), NIIT: dec(5)}
	components := mr.Components()
	assert.Len(t, components, len(ComponentNames))
	for i, c := range components {
		assert.True(t, c.Equal(dec(int64(i+1))))
	}
}
