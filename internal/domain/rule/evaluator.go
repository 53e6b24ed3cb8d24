package rule

import (
	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/domain/calculation"
	"github.com/readysethq/ratecard/internal/domain/tier"
	"github.com/readysethq/ratecard/internal/types"
)

// Lines maps a rule name to the summed contribution of every applicable rule
// with that name, in main currency units rounded to cents.
type Lines map[types.RuleName]decimal.Decimal

// Get returns the line amount, zero when the line is absent
func (l Lines) Get(name types.RuleName) decimal.Decimal {
	if amount, ok := l[name]; ok {
		return amount
	}
	return decimal.Zero
}

// Total sums all lines
func (l Lines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range l {
		total = total.Add(amount)
	}
	return total
}

// Evaluate applies the rules of the given type against the classified tier
// and the raw input. Rules evaluate independently in descending priority
// order and contributions with the same rule name are summed, never
// short-circuited. Pure function over immutable inputs.
func (s *Set) Evaluate(ruleType types.RuleType, input calculation.Input, cls tier.Classification, percentageTier bool) Lines {
	lines := Lines{}

	for _, r := range s.ForType(ruleType) {
		amount := evaluateRule(r, input, cls, percentageTier)
		if amount.IsZero() {
			continue
		}
		lines[r.RuleName] = lines.Get(r.RuleName).Add(amount)
	}

	return lines
}

// evaluateRule resolves one rule's contribution. The switch is exhaustive
// over RuleName so a new rule kind cannot silently no-op: Validate rejects
// names this switch does not handle.
func evaluateRule(r PricingRule, input calculation.Input, cls tier.Classification, percentageTier bool) decimal.Decimal {
	switch r.RuleName {
	case types.RULE_NAME_TIERED_BASE_FEE:
		if r.RuleType == types.RULE_TYPE_DRIVER_PAYMENT {
			return types.DecimalFromCents(cls.Tier.DriverBasePayCents)
		}
		// Percentage pricing replaces the customer base fee on the top tier
		if percentageTier {
			return decimal.Zero
		}
		return types.DecimalFromCents(cls.Tier.CustomerBaseFeeCents)

	case types.RULE_NAME_PERCENTAGE_FEE:
		if !percentageTier {
			return decimal.Zero
		}
		foodCost := types.DecimalFromCents(input.FoodCostCents)
		return types.RoundToCents(r.Formula.PercentageRate.Mul(foodCost))

	case types.RULE_NAME_LONG_DISTANCE, types.RULE_NAME_MILEAGE:
		return thresholdAbove(r.Formula, input.TotalMileage)

	case types.RULE_NAME_BRIDGE_TOLL:
		if !input.RequiresBridge {
			return decimal.Zero
		}
		return types.DecimalFromCents(r.Formula.BaseAmountCents)

	case types.RULE_NAME_TIPS:
		return types.DecimalFromCents(input.TipsCents)

	case types.RULE_NAME_BONUS:
		if !input.BonusQualified {
			return decimal.Zero
		}
		return types.DecimalFromCents(r.Formula.BaseAmountCents)

	default:
		return decimal.Zero
	}
}

// thresholdAbove charges per unit above the threshold only. At exactly the
// threshold the contribution is zero: 10.0 miles against a 10 mile threshold
// costs nothing extra.
func thresholdAbove(f Formula, mileage decimal.Decimal) decimal.Decimal {
	threshold := f.ThresholdValue
	if f.ThresholdType == types.THRESHOLD_TYPE_NONE {
		threshold = decimal.Zero
	}

	billable := mileage.Sub(threshold)
	if !billable.IsPositive() {
		return decimal.Zero
	}

	perUnit := types.DecimalFromCents(f.PerUnitAmountCents)
	return types.RoundToCents(perUnit.Mul(billable))
}
