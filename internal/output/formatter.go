package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/taxgraph/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter can render: one or more scenario
// summaries and, for the sweep command, the marginal-rate sweep.
type Report struct {
	Year      int                 `json:"year"`
	Summaries []domain.Summary    `json:"summaries"`
	Sweep     *domain.SweepResult `json:"sweep,omitempty"`
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var registry = map[string]Formatter{}

// format aliases accepted on the command line
var aliases = map[string]string{
	"text":  "console",
	"table": "console",
}

func register(f Formatter) {
	registry[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(CSVSummarizer{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the formatter registered under name (or an alias), nil if none
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted
func AvailableFormatAliases() []string {
	out := make([]string, 0, len(aliases))
	for alias := range aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// WriteFormatted renders the report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("taxgraph_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a percent value
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a marginal-rate fraction as a percent with one decimal
func FormatRate(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
