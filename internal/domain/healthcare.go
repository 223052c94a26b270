package domain

import (
	"github.com/shopspring/decimal"
)

// IRMAARisk classifies how close income sits to the Medicare premium surcharge cliffs.
// IRMAA is informational only and never enters the tax computation.
type IRMAARisk string

const (
	IRMAARiskSafe    IRMAARisk = "Safe"
	IRMAARiskWarning IRMAARisk = "Warning"
	IRMAARiskBreach  IRMAARisk = "Breach"
)

// IRMAAStatus is the IRMAA position of a scenario's wages
type IRMAAStatus struct {
	Risk           IRMAARisk       `json:"risk"`
	Tier           string          `json:"tier"`
	DistanceToNext decimal.Decimal `json:"distance_to_next"`
}
