package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Federal income tax only; no state or local taxes",
	"Schedule amounts are the published 2026 figures, not inflation projected",
	"Capital gains are long-term and stack on top of ordinary taxable income",
	"NIIT is applied to wages plus capital gains above the threshold",
	"The senior deduction phases out at 6% of wages above the phase-out start",
	"IRMAA tiers are compared against wages and are informational only",
	"Marginal rates use a forward difference over the sweep delta",
}
