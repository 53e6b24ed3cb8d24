package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/domain/policy"
	"github.com/readysethq/ratecard/internal/domain/rule"
	"github.com/readysethq/ratecard/internal/domain/tier"
	"github.com/readysethq/ratecard/internal/types"
)

const (
	ClientCaterValley     = "cater-valley"
	ClientReadySetDefault = "ready-set-standard"
)

func uintPtr(v uint) *uint    { return &v }
func int64Ptr(v int64) *int64 { return &v }

// FixtureTiers returns the five-band tier table shared by the test clients.
// Bands: 0-24 / 25-49 / 50-74 / 75-99 / 100+ headcount, with food cost bands
// at $300 steps and an open-ended top tier from $1,200.
func FixtureTiers(customerFeesCents [5]int64, driverPayCents [5]int64) []tier.Tier {
	return []tier.Tier{
		{
			MinHeadcount: 0, MaxHeadcount: uintPtr(24),
			MinFoodCostCents: 0, MaxFoodCostCents: int64Ptr(29999),
			CustomerBaseFeeCents:             customerFeesCents[0],
			CustomerBaseFeeWithinRadiusCents: customerFeesCents[0],
			DriverBasePayCents:               driverPayCents[0],
		},
		{
			MinHeadcount: 25, MaxHeadcount: uintPtr(49),
			MinFoodCostCents: 30000, MaxFoodCostCents: int64Ptr(59999),
			CustomerBaseFeeCents:             customerFeesCents[1],
			CustomerBaseFeeWithinRadiusCents: customerFeesCents[1],
			DriverBasePayCents:               driverPayCents[1],
		},
		{
			MinHeadcount: 50, MaxHeadcount: uintPtr(74),
			MinFoodCostCents: 60000, MaxFoodCostCents: int64Ptr(89999),
			CustomerBaseFeeCents:             customerFeesCents[2],
			CustomerBaseFeeWithinRadiusCents: customerFeesCents[2],
			DriverBasePayCents:               driverPayCents[2],
		},
		{
			MinHeadcount: 75, MaxHeadcount: uintPtr(99),
			MinFoodCostCents: 90000, MaxFoodCostCents: int64Ptr(119999),
			CustomerBaseFeeCents:             customerFeesCents[3],
			CustomerBaseFeeWithinRadiusCents: customerFeesCents[3],
			DriverBasePayCents:               driverPayCents[3],
		},
		{
			MinHeadcount: 100, MinFoodCostCents: 120000,
			CustomerBaseFeeCents:             customerFeesCents[4],
			CustomerBaseFeeWithinRadiusCents: customerFeesCents[4],
			DriverBasePayCents:               driverPayCents[4],
		},
	}
}

// CaterValleyConfiguration returns a fresh cater-valley client configuration:
// percentage pricing on the top tier, bridge toll absorbed (not billed to the
// customer), plain driver mileage rate with no floor, direct tips suppress
// base pay and bonus.
func CaterValleyConfiguration() *policy.ClientConfiguration {
	table, err := tier.NewTable(FixtureTiers(
		[5]int64{4250, 9000, 12000, 15000, 0},
		[5]int64{3500, 4000, 5000, 6000, 7000},
	))
	if err != nil {
		panic(err)
	}

	pol := policy.ClientPricingPolicy{
		ClientID:                        ClientCaterValley,
		MinimumCustomerFeeCents:         4250,
		MileageThresholdMiles:           decimal.NewFromInt(10),
		CustomerMileageRateCentsPerMile: 300,
		DriverMileageRateCentsPerMile:   35,
		DriverMinimumMileagePayCents:    0,
		IncludeBridgeTollInCustomerFee:  false,
		PercentageTierThreshold: policy.PercentageTierThreshold{
			Headcount:     100,
			FoodCostCents: 120000,
		},
		PercentageRate:                       decimal.NewFromFloat(0.10),
		DailyDriveDiscountCentsPerExtraDrive: 1000,
		BonusFlatCents:                       1000,
		BonusSuppressedByDirectTip:           true,
	}

	set, err := rule.NewSet(standardRules(pol))
	if err != nil {
		panic(err)
	}

	return &policy.ClientConfiguration{Policy: pol, Tiers: table, Rules: set}
}

// ReadySetStandardConfiguration returns a fresh ready-set-standard client
// configuration: tiered base fee on every tier (no percentage pricing),
// bridge toll billed to the customer, driver mileage floored at $15.
func ReadySetStandardConfiguration() *policy.ClientConfiguration {
	table, err := tier.NewTable(FixtureTiers(
		[5]int64{6500, 9500, 13000, 16000, 20000},
		[5]int64{3500, 4200, 5200, 6200, 7200},
	))
	if err != nil {
		panic(err)
	}

	pol := policy.ClientPricingPolicy{
		ClientID:                             ClientReadySetDefault,
		MinimumCustomerFeeCents:              7000,
		MileageThresholdMiles:                decimal.NewFromInt(10),
		CustomerMileageRateCentsPerMile:      300,
		DriverMileageRateCentsPerMile:        70,
		DriverMinimumMileagePayCents:         1500,
		IncludeBridgeTollInCustomerFee:       true,
		DailyDriveDiscountCentsPerExtraDrive: 1000,
		BonusFlatCents:                       1500,
		BonusSuppressedByDirectTip:           true,
	}

	set, err := rule.NewSet(standardRules(pol))
	if err != nil {
		panic(err)
	}

	return &policy.ClientConfiguration{Policy: pol, Tiers: table, Rules: set}
}

// standardRules mirrors the loader's materialization so fixtures behave like
// configurations read from the config file.
func standardRules(pol policy.ClientPricingPolicy) []rule.PricingRule {
	rules := []rule.PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_LONG_DISTANCE,
			Formula: rule.Formula{
				Kind:               types.FORMULA_THRESHOLD_ABOVE,
				PerUnitAmountCents: pol.CustomerMileageRateCentsPerMile,
				ThresholdValue:     pol.MileageThresholdMiles,
				ThresholdType:      types.THRESHOLD_TYPE_ABOVE,
			},
			Priority: 50,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_MILEAGE,
			Formula: rule.Formula{
				Kind:               types.FORMULA_THRESHOLD_ABOVE,
				PerUnitAmountCents: pol.DriverMileageRateCentsPerMile,
				ThresholdType:      types.THRESHOLD_TYPE_NONE,
			},
			Priority: 50,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIPS,
			Formula:  rule.Formula{Kind: types.FORMULA_FLAT},
			Priority: 30,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_BONUS,
			Formula: rule.Formula{
				Kind:            types.FORMULA_FLAT,
				BaseAmountCents: pol.BonusFlatCents,
			},
			Priority: 20,
		},
	}

	if pol.PercentageRate.IsPositive() {
		rules = append(rules, rule.PricingRule{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_PERCENTAGE_FEE,
			Formula: rule.Formula{
				Kind:           types.FORMULA_PERCENTAGE,
				PercentageRate: pol.PercentageRate,
			},
			Priority: 100,
		})
	}

	return rules
}
