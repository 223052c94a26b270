package tui

import "github.com/rgehrsitz/taxgraph/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted
	ColorDanger  = tuistyles.ColorDanger
	ColorWarning = tuistyles.ColorWarning
	ColorSuccess = tuistyles.ColorSuccess

	AppStyle          = tuistyles.AppStyle
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	StatusKeyStyle    = tuistyles.StatusKeyStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	ToggleOnStyle     = tuistyles.ToggleOnStyle
	ToggleOffStyle    = tuistyles.ToggleOffStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
)
