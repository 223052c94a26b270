package output

import (
	"encoding/json"
)

// JSONFormatter renders the full report as JSON
type JSONFormatter struct {
	Compact bool // If true, skip indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Compact {
		return json.Marshal(report)
	}
	return json.MarshalIndent(report, "", "  ")
}
