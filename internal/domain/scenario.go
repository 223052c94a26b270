package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeIncome is returned when a scenario carries a negative income amount
var ErrNegativeIncome = errors.New("income amounts cannot be negative")

// Scenario is the financial situation evaluated by the tax engine
type Scenario struct {
	Name           string          `yaml:"name,omitempty" json:"name,omitempty"`
	Wages          decimal.Decimal `yaml:"wages" json:"wages"`
	CapitalGains   decimal.Decimal `yaml:"capital_gains" json:"capital_gains"`
	SocialSecurity decimal.Decimal `yaml:"social_security" json:"social_security"`
	FilingStatus   FilingStatus    `yaml:"filing_status" json:"filing_status"`
	IsSenior       bool            `yaml:"is_senior" json:"is_senior"`
}

// Validate rejects unsupported filing statuses and negative income
func (s Scenario) Validate() error {
	if !s.FilingStatus.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownFilingStatus, int(s.FilingStatus))
	}
	if s.Wages.IsNegative() {
		return fmt.Errorf("%w: wages %s", ErrNegativeIncome, s.Wages)
	}
	if s.CapitalGains.IsNegative() {
		return fmt.Errorf("%w: capital gains %s", ErrNegativeIncome, s.CapitalGains)
	}
	if s.SocialSecurity.IsNegative() {
		return fmt.Errorf("%w: social security %s", ErrNegativeIncome, s.SocialSecurity)
	}
	return nil
}

// Clamped returns a copy with negative amounts floored at zero
func (s Scenario) Clamped() Scenario {
	s.Wages = decimal.Max(s.Wages, decimal.Zero)
	s.CapitalGains = decimal.Max(s.CapitalGains, decimal.Zero)
	s.SocialSecurity = decimal.Max(s.SocialSecurity, decimal.Zero)
	return s
}

// TotalIncome returns wages plus capital gains plus Social Security
func (s Scenario) TotalIncome() decimal.Decimal {
	return s.Wages.Add(s.CapitalGains).Add(s.SocialSecurity)
}

// WithWages returns a copy of the scenario with different wages
func (s Scenario) WithWages(wages decimal.Decimal) Scenario {
	s.Wages = wages
	return s
}
