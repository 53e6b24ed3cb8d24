package rule

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/readysethq/ratecard/internal/errors"
	"github.com/readysethq/ratecard/internal/types"
)

// Formula is the amount formula variant attached to a pricing rule
type Formula struct {
	// Kind selects the formula variant ex FLAT, THRESHOLD_ABOVE, PERCENTAGE
	Kind types.FormulaKind `json:"kind"`

	// BaseAmountCents is the flat contribution for FLAT formulas
	BaseAmountCents int64 `json:"base_amount_cents"`

	// PerUnitAmountCents is the per-mile amount for THRESHOLD_ABOVE formulas
	PerUnitAmountCents int64 `json:"per_unit_amount_cents"`

	// ThresholdValue is the mileage threshold; units at or below it
	// contribute nothing
	ThresholdValue decimal.Decimal `json:"threshold_value"`

	// ThresholdType qualifies ThresholdValue ex ABOVE, NONE
	ThresholdType types.ThresholdType `json:"threshold_type"`

	// PercentageRate is the food cost fraction for PERCENTAGE formulas
	// ex 0.10 for 10%
	PercentageRate decimal.Decimal `json:"percentage_rate"`
}

// PricingRule is one declarative pricing rule from client configuration
type PricingRule struct {
	// ID ulid identifier for the rule
	ID string `json:"id"`

	// RuleType is the side of the calculation the rule contributes to
	RuleType types.RuleType `json:"rule_type"`

	// RuleName is the itemized line the rule contributes to
	RuleName types.RuleName `json:"rule_name"`

	// Formula is the amount formula
	Formula Formula `json:"formula"`

	// Priority orders evaluation, higher first
	Priority int `json:"priority"`
}

// formulaKindFor pins each rule name to its formula variant so a
// misconfigured rule fails at load instead of silently contributing nothing.
var formulaKindFor = map[types.RuleName]types.FormulaKind{
	types.RULE_NAME_TIERED_BASE_FEE: types.FORMULA_FLAT,
	types.RULE_NAME_BRIDGE_TOLL:     types.FORMULA_FLAT,
	types.RULE_NAME_TIPS:            types.FORMULA_FLAT,
	types.RULE_NAME_BONUS:           types.FORMULA_FLAT,
	types.RULE_NAME_LONG_DISTANCE:   types.FORMULA_THRESHOLD_ABOVE,
	types.RULE_NAME_MILEAGE:         types.FORMULA_THRESHOLD_ABOVE,
	types.RULE_NAME_PERCENTAGE_FEE:  types.FORMULA_PERCENTAGE,
}

func (r PricingRule) Validate() error {
	if err := r.RuleType.Validate(); err != nil {
		return err
	}
	if err := r.RuleName.Validate(); err != nil {
		return err
	}
	if err := r.Formula.Kind.Validate(); err != nil {
		return err
	}

	if want := formulaKindFor[r.RuleName]; r.Formula.Kind != want {
		return ierr.NewError("formula kind does not match rule name").
			WithReportableDetails(map[string]any{
				"rule_name": r.RuleName,
				"kind":      r.Formula.Kind,
				"expected":  want,
			}).
			Mark(ierr.ErrInvalidConfiguration)
	}

	if r.Formula.BaseAmountCents < 0 || r.Formula.PerUnitAmountCents < 0 {
		return ierr.NewError("negative rule amount").
			WithReportableDetails(map[string]any{"rule_name": r.RuleName}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if r.Formula.Kind == types.FORMULA_THRESHOLD_ABOVE && r.Formula.ThresholdValue.IsNegative() {
		return ierr.NewError("negative rule threshold").
			WithReportableDetails(map[string]any{"rule_name": r.RuleName}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if r.Formula.Kind == types.FORMULA_PERCENTAGE && !r.Formula.PercentageRate.IsPositive() {
		return ierr.NewError("percentage rate must be positive").
			WithReportableDetails(map[string]any{"rule_name": r.RuleName}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return nil
}

// Set is an immutable, validated collection of pricing rules for one client.
// Rules are held sorted by descending priority per rule type.
type Set struct {
	rules []PricingRule
}

// NewSet validates the configured rules and returns an immutable set
func NewSet(rules []PricingRule) (*Set, error) {
	copied := make([]PricingRule, len(rules))
	copy(copied, rules)

	for i := range copied {
		if copied[i].ID == "" {
			copied[i].ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE)
		}
		if err := copied[i].Validate(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Priority > copied[j].Priority
	})

	return &Set{rules: copied}, nil
}

// ForType returns the rules of the given type in evaluation order
func (s *Set) ForType(ruleType types.RuleType) []PricingRule {
	return lo.Filter(s.rules, func(r PricingRule, _ int) bool {
		return r.RuleType == ruleType
	})
}

// HasRule reports whether the set contains a rule with the given type and name
func (s *Set) HasRule(ruleType types.RuleType, name types.RuleName) bool {
	return lo.ContainsBy(s.rules, func(r PricingRule) bool {
		return r.RuleType == ruleType && r.RuleName == name
	})
}
