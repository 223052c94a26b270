package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/taxgraph/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed schedules/2026.yaml
var default2026 []byte

// ScheduleMetadata contains information about the schedule data
type ScheduleMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// ScheduleFile is the on-disk shape of a schedule table
type ScheduleFile struct {
	Metadata  ScheduleMetadata                           `yaml:"metadata" json:"metadata"`
	Schedules map[domain.FilingStatus]domain.TaxSchedule `yaml:"schedules" json:"schedules"`
}

// ScenarioFile is the on-disk shape of a batch of scenarios
type ScenarioFile struct {
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// ScheduleParser handles parsing of schedule and scenario files
type ScheduleParser struct{}

// NewScheduleParser creates a new schedule parser
func NewScheduleParser() *ScheduleParser {
	return &ScheduleParser{}
}

// LoadFromFile loads a schedule table from a YAML file
func (sp *ScheduleParser) LoadFromFile(filename string) (*domain.ScheduleTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	table, err := sp.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return table, nil
}

// LoadFromBytes parses and validates a schedule table
func (sp *ScheduleParser) LoadFromBytes(data []byte) (*domain.ScheduleTable, error) {
	var file ScheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := sp.ValidateScheduleFile(&file); err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}

	return domain.NewScheduleTable(file.Metadata.DataYear, file.Schedules)
}

// ValidateScheduleFile checks that every modeled filing status is present
func (sp *ScheduleParser) ValidateScheduleFile(file *ScheduleFile) error {
	if file.Metadata.DataYear <= 0 {
		return fmt.Errorf("metadata.data_year is required")
	}
	for _, status := range domain.FilingStatuses {
		if _, ok := file.Schedules[status]; !ok {
			return fmt.Errorf("schedule for %s is missing", status)
		}
	}
	return nil
}

// LoadScenarios loads a batch of scenarios and validates each one
func (sp *ScheduleParser) LoadScenarios(filename string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	for i, scenario := range file.Scenarios {
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
	}
	return file.Scenarios, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *domain.ScheduleTable
	defaultErr   error
)

// Default2026 returns the built-in 2026 schedule table. It is parsed once per process.
func Default2026() (*domain.ScheduleTable, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = NewScheduleParser().LoadFromBytes(default2026)
	})
	return defaultTable, defaultErr
}

// LoadTable returns the schedule table from filename, or the built-in table when filename is empty
func LoadTable(filename string) (*domain.ScheduleTable, error) {
	if filename == "" {
		return Default2026()
	}
	return NewScheduleParser().LoadFromFile(filename)
}
