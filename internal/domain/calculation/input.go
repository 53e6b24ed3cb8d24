package calculation

import (
	"github.com/shopspring/decimal"
)

// Input carries the already-computed scalar inputs for one pricing
// calculation. Inputs are constructed once via NewInput and never mutated.
type Input struct {
	// Headcount is the number of people the order serves
	Headcount uint `json:"headcount"`

	// FoodCostCents is the order's food cost in cents
	FoodCostCents int64 `json:"food_cost_cents"`

	// TotalMileage is the delivery distance in miles, derived upstream
	TotalMileage decimal.Decimal `json:"total_mileage"`

	// NumberOfDrives is the number of drives/stops the order is split across,
	// always at least 1
	NumberOfDrives uint `json:"number_of_drives"`

	// RequiresBridge is set when the route crosses a toll bridge
	RequiresBridge bool `json:"requires_bridge"`

	// BridgeTollCents is the toll amount in cents when RequiresBridge is set
	BridgeTollCents int64 `json:"bridge_toll_cents"`

	// TipsCents is the direct customer tip to the driver in cents
	TipsCents int64 `json:"tips_cents"`

	// BonusQualified is set when the drive qualifies for the flat bonus
	BonusQualified bool `json:"bonus_qualified"`
}

// NewInput normalizes untrusted order values. Malformed input is clamped
// rather than rejected: pricing must always produce a number for downstream
// billing.
func NewInput(in Input) Input {
	if in.FoodCostCents < 0 {
		in.FoodCostCents = 0
	}
	if in.TotalMileage.IsNegative() {
		in.TotalMileage = decimal.Zero
	}
	if in.NumberOfDrives < 1 {
		in.NumberOfDrives = 1
	}
	if in.BridgeTollCents < 0 {
		in.BridgeTollCents = 0
	}
	// Tips may arrive negative from untrusted input and must not error
	if in.TipsCents < 0 {
		in.TipsCents = 0
	}
	return in
}
