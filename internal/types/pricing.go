package types

import (
	ierr "github.com/readysethq/ratecard/internal/errors"
)

// RuleType is the side of the calculation a pricing rule contributes to
// ex CUSTOMER_CHARGE, DRIVER_PAYMENT
type RuleType string

// RuleName identifies the itemized line a rule contributes to. All rules
// with the same name collapse into a single line in the result.
type RuleName string

// FormulaKind is the amount formula variant of a pricing rule
// ex FLAT, THRESHOLD_ABOVE, PERCENTAGE
type FormulaKind string

// ThresholdType qualifies how ThresholdValue is applied for THRESHOLD_ABOVE
// formulas
type ThresholdType string

const (
	RULE_TYPE_CUSTOMER_CHARGE RuleType = "CUSTOMER_CHARGE"
	RULE_TYPE_DRIVER_PAYMENT  RuleType = "DRIVER_PAYMENT"

	// RULE_NAME_TIERED_BASE_FEE resolves its amount from the classified tier:
	// customer base fee for CUSTOMER_CHARGE rules, driver base pay for
	// DRIVER_PAYMENT rules
	RULE_NAME_TIERED_BASE_FEE RuleName = "TIERED_BASE_FEE"

	// RULE_NAME_LONG_DISTANCE is the customer per-mile surcharge above the
	// mileage threshold
	RULE_NAME_LONG_DISTANCE RuleName = "LONG_DISTANCE"

	// RULE_NAME_MILEAGE is the driver per-mile reimbursement over the full
	// trip mileage
	RULE_NAME_MILEAGE RuleName = "MILEAGE"

	// RULE_NAME_BRIDGE_TOLL is a flat toll amount for clients configured with
	// a fixed toll instead of the pass-through policy amount
	RULE_NAME_BRIDGE_TOLL RuleName = "BRIDGE_TOLL"

	// RULE_NAME_TIPS passes the order's direct tip through to the driver
	RULE_NAME_TIPS RuleName = "TIPS"

	// RULE_NAME_BONUS is the flat driver bonus when the order qualifies
	RULE_NAME_BONUS RuleName = "BONUS"

	// RULE_NAME_PERCENTAGE_FEE prices the order as a percentage of food cost
	// when the classified tier is the open-ended top tier
	RULE_NAME_PERCENTAGE_FEE RuleName = "PERCENTAGE_FEE"

	FORMULA_FLAT            FormulaKind = "FLAT"
	FORMULA_THRESHOLD_ABOVE FormulaKind = "THRESHOLD_ABOVE"
	FORMULA_PERCENTAGE      FormulaKind = "PERCENTAGE"

	THRESHOLD_TYPE_ABOVE ThresholdType = "ABOVE"
	THRESHOLD_TYPE_BELOW ThresholdType = "BELOW"
	THRESHOLD_TYPE_NONE  ThresholdType = "NONE"
)

func (t RuleType) Validate() error {
	switch t {
	case RULE_TYPE_CUSTOMER_CHARGE, RULE_TYPE_DRIVER_PAYMENT:
		return nil
	default:
		return ierr.NewError("invalid rule type").
			WithHintf("rule type %s is not supported", t).
			Mark(ierr.ErrInvalidConfiguration)
	}
}

func (n RuleName) Validate() error {
	switch n {
	case RULE_NAME_TIERED_BASE_FEE, RULE_NAME_LONG_DISTANCE, RULE_NAME_MILEAGE,
		RULE_NAME_BRIDGE_TOLL, RULE_NAME_TIPS, RULE_NAME_BONUS, RULE_NAME_PERCENTAGE_FEE:
		return nil
	default:
		return ierr.NewError("invalid rule name").
			WithHintf("rule name %s is not supported", n).
			Mark(ierr.ErrInvalidConfiguration)
	}
}

func (k FormulaKind) Validate() error {
	switch k {
	case FORMULA_FLAT, FORMULA_THRESHOLD_ABOVE, FORMULA_PERCENTAGE:
		return nil
	default:
		return ierr.NewError("invalid formula kind").
			WithHintf("formula kind %s is not supported", k).
			Mark(ierr.ErrInvalidConfiguration)
	}
}
