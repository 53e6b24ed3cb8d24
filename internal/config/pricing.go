package config

import (
	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/domain/policy"
	"github.com/readysethq/ratecard/internal/domain/rule"
	"github.com/readysethq/ratecard/internal/domain/tier"
	"github.com/readysethq/ratecard/internal/types"
)

// Evaluation priorities for the rules the loader materializes from policy
// knobs. Explicit rules in the config file may choose their own.
const (
	priorityBaseFee = 100
	priorityMileage = 50
	priorityToll    = 40
	priorityTips    = 30
	priorityBonus   = 20
)

// BuildRegistry materializes the raw pricing configuration into validated,
// immutable domain objects and publishes them in a registry. Any gap,
// overlap, or malformed rule fails here, before the engine ever runs.
func (c *Configuration) BuildRegistry() (*policy.Registry, error) {
	configs := make([]*policy.ClientConfiguration, 0, len(c.Pricing.Clients))
	for _, client := range c.Pricing.Clients {
		cfg, err := buildClient(client)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return policy.NewRegistry(configs)
}

func buildClient(client ClientConfig) (*policy.ClientConfiguration, error) {
	table, err := tier.NewTable(buildTiers(client.Tiers))
	if err != nil {
		return nil, err
	}

	pol := buildPolicy(client)

	rules := buildStandardRules(pol)
	for _, rc := range client.Rules {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RuleType(rc.RuleType),
			RuleName: types.RuleName(rc.RuleName),
			Formula: rule.Formula{
				Kind:               types.FormulaKind(rc.Kind),
				BaseAmountCents:    rc.BaseAmountCents,
				PerUnitAmountCents: rc.PerUnitAmountCents,
				ThresholdValue:     decimal.NewFromFloat(rc.ThresholdMiles),
				ThresholdType:      thresholdTypeFor(rc.ThresholdMiles),
				PercentageRate:     decimal.NewFromFloat(rc.PercentageRate),
			},
			Priority: rc.Priority,
		})
	}

	set, err := rule.NewSet(rules)
	if err != nil {
		return nil, err
	}

	return &policy.ClientConfiguration{
		Policy: pol,
		Tiers:  table,
		Rules:  set,
	}, nil
}

func buildTiers(tiers []TierConfig) []tier.Tier {
	out := make([]tier.Tier, len(tiers))
	for i, t := range tiers {
		out[i] = tier.Tier{
			MinHeadcount:                     t.MinHeadcount,
			MaxHeadcount:                     t.MaxHeadcount,
			MinFoodCostCents:                 t.MinFoodCostCents,
			MaxFoodCostCents:                 t.MaxFoodCostCents,
			CustomerBaseFeeCents:             t.CustomerBaseFeeCents,
			CustomerBaseFeeWithinRadiusCents: t.CustomerBaseFeeWithinRadiusCents,
			DriverBasePayCents:               t.DriverBasePayCents,
		}
	}
	return out
}

func buildPolicy(client ClientConfig) policy.ClientPricingPolicy {
	p := client.Policy

	threshold := decimal.NewFromFloat(p.MileageThresholdMiles)
	if threshold.IsZero() {
		threshold = decimal.NewFromInt(policy.DefaultMileageThresholdMiles)
	}

	return policy.ClientPricingPolicy{
		ClientID:                        client.ID,
		MinimumCustomerFeeCents:         p.MinimumCustomerFeeCents,
		MileageThresholdMiles:           threshold,
		CustomerMileageRateCentsPerMile: p.CustomerMileageRateCentsPerMile,
		DriverMileageRateCentsPerMile:   p.DriverMileageRateCentsPerMile,
		DriverMinimumMileagePayCents:    p.DriverMinimumMileagePayCents,
		IncludeBridgeTollInCustomerFee:  p.IncludeBridgeTollInCustomerFee,
		PercentageTierThreshold: policy.PercentageTierThreshold{
			Headcount:     p.PercentageTierHeadcount,
			FoodCostCents: p.PercentageTierFoodCostCents,
		},
		PercentageRate:                       decimal.NewFromFloat(p.PercentageRate),
		DailyDriveDiscountCentsPerExtraDrive: p.DailyDriveDiscountCentsPerExtraDrive,
		BonusFlatCents:                       p.BonusFlatCents,
		BonusSuppressedByDirectTip:           p.BonusSuppressedByDirectTip,
	}
}

// buildStandardRules derives the standard rule set from the policy knobs so
// clients only configure explicit rules for non-standard lines.
func buildStandardRules(pol policy.ClientPricingPolicy) []rule.PricingRule {
	rules := []rule.PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: priorityBaseFee,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: priorityBaseFee,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIPS,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: priorityTips,
		},
	}

	if pol.CustomerMileageRateCentsPerMile > 0 {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_LONG_DISTANCE,
			Formula: rule.Formula{
				Kind:               types.FORMULA_THRESHOLD_ABOVE,
				PerUnitAmountCents: pol.CustomerMileageRateCentsPerMile,
				ThresholdValue:     pol.MileageThresholdMiles,
				ThresholdType:      types.THRESHOLD_TYPE_ABOVE,
			},
			Priority: priorityMileage,
		})
	}

	if pol.DriverMileageRateCentsPerMile > 0 {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_MILEAGE,
			Formula: rule.Formula{
				Kind:               types.FORMULA_THRESHOLD_ABOVE,
				PerUnitAmountCents: pol.DriverMileageRateCentsPerMile,
				ThresholdType:      types.THRESHOLD_TYPE_NONE,
			},
			Priority: priorityMileage,
		})
	}

	if pol.BonusFlatCents > 0 {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_BONUS,
			Formula: rule.Formula{
				Kind:            types.FORMULA_FLAT,
				BaseAmountCents: pol.BonusFlatCents,
			},
			Priority: priorityBonus,
		})
	}

	if pol.PercentageRate.IsPositive() {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_PERCENTAGE_FEE,
			Formula: rule.Formula{
				Kind:           types.FORMULA_PERCENTAGE,
				PercentageRate: pol.PercentageRate,
			},
			Priority: priorityBaseFee,
		})
	}

	return rules
}

func thresholdTypeFor(miles float64) types.ThresholdType {
	if miles > 0 {
		return types.THRESHOLD_TYPE_ABOVE
	}
	return types.THRESHOLD_TYPE_NONE
}
