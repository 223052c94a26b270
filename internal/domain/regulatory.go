package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownFilingStatus is returned when a filing-status key is not one of the modeled statuses
	ErrUnknownFilingStatus = errors.New("unknown filing status")
	// ErrInvalidSchedule is returned when a tax schedule violates its bracket or amount invariants
	ErrInvalidSchedule = errors.New("invalid tax schedule")
)

// FilingStatus identifies the tax filing status a schedule applies to
type FilingStatus int

const (
	// Single is the single filer status
	Single FilingStatus = iota + 1
	// MarriedFilingJointly is the joint return status
	MarriedFilingJointly
)

// FilingStatuses lists the supported statuses in display order
var FilingStatuses = []FilingStatus{MarriedFilingJointly, Single}

// String returns the human readable name of the status
func (fs FilingStatus) String() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedFilingJointly:
		return "Married Filing Jointly"
	default:
		return fmt.Sprintf("FilingStatus(%d)", int(fs))
	}
}

// Key returns the configuration key used in YAML files and CLI flags
func (fs FilingStatus) Key() string {
	switch fs {
	case Single:
		return "single"
	case MarriedFilingJointly:
		return "married_filing_jointly"
	default:
		return ""
	}
}

// IsValid reports whether the status is one of the modeled statuses
func (fs FilingStatus) IsValid() bool {
	return fs == Single || fs == MarriedFilingJointly
}

// ParseFilingStatus converts a configuration key or display name into a FilingStatus
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return Single, nil
	case "married_filing_jointly", "married filing jointly", "mfj", "joint":
		return MarriedFilingJointly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilingStatus, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (fs FilingStatus) MarshalText() ([]byte, error) {
	if !fs.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFilingStatus, int(fs))
	}
	return []byte(fs.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so statuses can key YAML maps
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

// TaxBracket is one marginal bracket. Rate is a percentage (22 means 22%).
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxThreshold contains the two Social Security provisional-income thresholds
type TaxThreshold struct {
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`
}

// TaxSchedule holds every constant needed to evaluate one filing status
type TaxSchedule struct {
	StandardDeduction        decimal.Decimal   `yaml:"standard_deduction" json:"standard_deduction"`
	SeniorDeduction          decimal.Decimal   `yaml:"senior_deduction" json:"senior_deduction"`
	OrdinaryBrackets         []TaxBracket      `yaml:"ordinary_brackets" json:"ordinary_brackets"`
	CapitalGainsBrackets     []TaxBracket      `yaml:"capital_gains_brackets" json:"capital_gains_brackets"`
	SocialSecurityThresholds TaxThreshold      `yaml:"social_security_thresholds" json:"social_security_thresholds"`
	SeniorPhaseoutStart      decimal.Decimal   `yaml:"senior_phaseout_start" json:"senior_phaseout_start"`
	NIITThreshold            decimal.Decimal   `yaml:"niit_threshold" json:"niit_threshold"`
	IRMAAThresholds          []decimal.Decimal `yaml:"irmaa_thresholds" json:"irmaa_thresholds"`
}

// Validate checks the bracket and amount invariants of the schedule
func (ts TaxSchedule) Validate() error {
	amounts := map[string]decimal.Decimal{
		"standard_deduction":    ts.StandardDeduction,
		"senior_deduction":      ts.SeniorDeduction,
		"senior_phaseout_start": ts.SeniorPhaseoutStart,
		"niit_threshold":        ts.NIITThreshold,
		"threshold_1":           ts.SocialSecurityThresholds.Threshold1,
		"threshold_2":           ts.SocialSecurityThresholds.Threshold2,
	}
	names := make([]string, 0, len(amounts))
	for name := range amounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if amounts[name].IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidSchedule, name)
		}
	}

	if ts.SocialSecurityThresholds.Threshold1.GreaterThan(ts.SocialSecurityThresholds.Threshold2) {
		return fmt.Errorf("%w: social security threshold_1 exceeds threshold_2", ErrInvalidSchedule)
	}
	if err := validateBrackets(ts.OrdinaryBrackets); err != nil {
		return fmt.Errorf("ordinary brackets: %w", err)
	}
	if err := validateBrackets(ts.CapitalGainsBrackets); err != nil {
		return fmt.Errorf("capital gains brackets: %w", err)
	}

	for i, t := range ts.IRMAAThresholds {
		if t.IsNegative() {
			return fmt.Errorf("%w: irmaa threshold %d cannot be negative", ErrInvalidSchedule, i)
		}
		if i > 0 && !t.GreaterThan(ts.IRMAAThresholds[i-1]) {
			return fmt.Errorf("%w: irmaa thresholds must be ascending", ErrInvalidSchedule)
		}
	}
	return nil
}

// validateBrackets enforces a contiguous, strictly increasing cover of [0, max)
func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: at least one bracket is required", ErrInvalidSchedule)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0, got %s", ErrInvalidSchedule, brackets[0].Min)
	}
	for i, b := range brackets {
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket %d max %s must exceed min %s", ErrInvalidSchedule, i, b.Max, b.Min)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: bracket %d rate %s must be between 0 and 100", ErrInvalidSchedule, i, b.Rate)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("%w: bracket %d min %s does not meet previous max %s", ErrInvalidSchedule, i, b.Min, brackets[i-1].Max)
		}
	}
	return nil
}

// NextIRMAAThreshold returns the smallest IRMAA tier strictly above income
func (ts TaxSchedule) NextIRMAAThreshold(income decimal.Decimal) (decimal.Decimal, bool) {
	for _, t := range ts.IRMAAThresholds {
		if t.GreaterThan(income) {
			return t, true
		}
	}
	return decimal.Zero, false
}

// ScheduleTable is an immutable lookup of schedules keyed by filing status
type ScheduleTable struct {
	year      int
	schedules map[FilingStatus]TaxSchedule
}

// NewScheduleTable validates the given schedules and freezes them into a table
func NewScheduleTable(year int, schedules map[FilingStatus]TaxSchedule) (*ScheduleTable, error) {
	if len(schedules) == 0 {
		return nil, fmt.Errorf("%w: no filing statuses defined", ErrInvalidSchedule)
	}
	frozen := make(map[FilingStatus]TaxSchedule, len(schedules))
	for status, schedule := range schedules {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownFilingStatus, int(status))
		}
		if err := schedule.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", status, err)
		}
		frozen[status] = schedule.clone()
	}
	return &ScheduleTable{year: year, schedules: frozen}, nil
}

// Year returns the tax year the table models
func (t *ScheduleTable) Year() int {
	return t.year
}

// Lookup returns the schedule for a filing status. Unsupported keys fail; no default is substituted.
func (t *ScheduleTable) Lookup(status FilingStatus) (TaxSchedule, error) {
	schedule, ok := t.schedules[status]
	if !ok {
		return TaxSchedule{}, fmt.Errorf("%w: %s", ErrUnknownFilingStatus, status)
	}
	return schedule.clone(), nil
}

// Statuses returns the filing statuses present in the table, in display order
func (t *ScheduleTable) Statuses() []FilingStatus {
	var out []FilingStatus
	for _, fs := range FilingStatuses {
		if _, ok := t.schedules[fs]; ok {
			out = append(out, fs)
		}
	}
	return out
}

func (ts TaxSchedule) clone() TaxSchedule {
	out := ts
	out.OrdinaryBrackets = append([]TaxBracket(nil), ts.OrdinaryBrackets...)
	out.CapitalGainsBrackets = append([]TaxBracket(nil), ts.CapitalGainsBrackets...)
	out.IRMAAThresholds = append([]decimal.Decimal(nil), ts.IRMAAThresholds...)
	return out
}
