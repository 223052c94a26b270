package tui

import (
	"github.com/rgehrsitz/taxgraph/internal/domain"
)

// Message types for the Bubble Tea update cycle

// RecalculateMsg asks the model to re-run the summary and sweep
type RecalculateMsg struct{}

// SweepCompleteMsg carries the result of a recalculation. Seq identifies the
// request so results that were overtaken by a newer change can be dropped.
type SweepCompleteMsg struct {
	Seq     int
	Summary *domain.Summary
	Sweep   *domain.SweepResult
	Err     error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// QuitMsg signals the application should exit
type QuitMsg struct{}
