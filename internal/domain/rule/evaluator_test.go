package rule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/readysethq/ratecard/internal/domain/calculation"
	"github.com/readysethq/ratecard/internal/domain/tier"
	ierr "github.com/readysethq/ratecard/internal/errors"
	"github.com/readysethq/ratecard/internal/types"
)

func uintPtr(v uint) *uint    { return &v }
func int64Ptr(v int64) *int64 { return &v }

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	require.True(t, want.Equal(actual), "expected %s, got %s", expected, actual)
}

func evalTable(t *testing.T) *tier.Table {
	t.Helper()
	table, err := tier.NewTable([]tier.Tier{
		{
			MinHeadcount: 0, MaxHeadcount: uintPtr(24),
			MinFoodCostCents: 0, MaxFoodCostCents: int64Ptr(29999),
			CustomerBaseFeeCents: 4250, DriverBasePayCents: 3500,
		},
		{
			MinHeadcount: 25, MinFoodCostCents: 30000,
			CustomerBaseFeeCents: 9000, DriverBasePayCents: 4000,
		},
	})
	require.NoError(t, err)
	return table
}

func longDistanceRule(perUnitCents int64, thresholdMiles int64) PricingRule {
	return PricingRule{
		RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
		RuleName: types.RULE_NAME_LONG_DISTANCE,
		Formula: Formula{
			Kind:               types.FORMULA_THRESHOLD_ABOVE,
			PerUnitAmountCents: perUnitCents,
			ThresholdValue:     decimal.NewFromInt(thresholdMiles),
			ThresholdType:      types.THRESHOLD_TYPE_ABOVE,
		},
		Priority: 50,
	}
}

func TestEvaluateTieredBaseFee(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
	})
	require.NoError(t, err)

	input := calculation.NewInput(calculation.Input{Headcount: 20, FoodCostCents: 25000})
	cls := table.Classify(input.Headcount, input.FoodCostCents)

	customer := set.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, false)
	requireDecimal(t, "42.50", customer.Get(types.RULE_NAME_TIERED_BASE_FEE))

	driver := set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT, input, cls, false)
	requireDecimal(t, "35.00", driver.Get(types.RULE_NAME_TIERED_BASE_FEE))
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{longDistanceRule(300, 10)})
	require.NoError(t, err)

	cases := []struct {
		mileage string
		want    string
	}{
		// at exactly the threshold there is no surcharge
		{"8", "0"},
		{"10", "0"},
		{"10.5", "1.50"},
		{"12", "6.00"},
	}

	for _, tc := range cases {
		input := calculation.NewInput(calculation.Input{
			Headcount:     20,
			FoodCostCents: 25000,
			TotalMileage:  decimal.RequireFromString(tc.mileage),
		})
		cls := table.Classify(input.Headcount, input.FoodCostCents)
		lines := set.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, false)
		requireDecimal(t, tc.want, lines.Get(types.RULE_NAME_LONG_DISTANCE))
	}
}

func TestEvaluateSameLineContributionsSum(t *testing.T) {
	table := evalTable(t)
	// two long distance rules with different priorities both contribute
	set, err := NewSet([]PricingRule{
		longDistanceRule(300, 10),
		longDistanceRule(100, 15),
	})
	require.NoError(t, err)

	input := calculation.NewInput(calculation.Input{
		Headcount:     20,
		FoodCostCents: 25000,
		TotalMileage:  decimal.NewFromInt(20),
	})
	cls := table.Classify(input.Headcount, input.FoodCostCents)
	lines := set.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, false)

	// (20-10)*3.00 + (20-15)*1.00
	requireDecimal(t, "35.00", lines.Get(types.RULE_NAME_LONG_DISTANCE))
}

func TestEvaluatePercentageFee(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_PERCENTAGE_FEE,
			Formula: Formula{
				Kind:           types.FORMULA_PERCENTAGE,
				PercentageRate: decimal.NewFromFloat(0.10),
			},
			Priority: 100,
		},
	})
	require.NoError(t, err)

	input := calculation.NewInput(calculation.Input{Headcount: 150, FoodCostCents: 200000})
	cls := table.Classify(input.Headcount, input.FoodCostCents)

	// on the percentage tier the base fee is replaced by the percentage fee
	lines := set.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, true)
	requireDecimal(t, "200.00", lines.Get(types.RULE_NAME_PERCENTAGE_FEE))
	requireDecimal(t, "0", lines.Get(types.RULE_NAME_TIERED_BASE_FEE))

	// off the percentage tier the percentage rule contributes nothing
	lines = set.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, false)
	requireDecimal(t, "0", lines.Get(types.RULE_NAME_PERCENTAGE_FEE))
	requireDecimal(t, "90.00", lines.Get(types.RULE_NAME_TIERED_BASE_FEE))
}

func TestEvaluateTipsPassThrough(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_TIPS,
			Formula:  Formula{Kind: types.FORMULA_FLAT},
			Priority: 30,
		},
	})
	require.NoError(t, err)

	input := calculation.NewInput(calculation.Input{Headcount: 20, TipsCents: 1234})
	cls := table.Classify(input.Headcount, input.FoodCostCents)
	lines := set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT, input, cls, false)
	requireDecimal(t, "12.34", lines.Get(types.RULE_NAME_TIPS))
}

func TestEvaluateBonusRequiresQualification(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_BONUS,
			Formula:  Formula{Kind: types.FORMULA_FLAT, BaseAmountCents: 1000},
			Priority: 20,
		},
	})
	require.NoError(t, err)

	cls := table.Classify(20, 25000)

	lines := set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT,
		calculation.NewInput(calculation.Input{Headcount: 20, BonusQualified: true}), cls, false)
	requireDecimal(t, "10.00", lines.Get(types.RULE_NAME_BONUS))

	lines = set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT,
		calculation.NewInput(calculation.Input{Headcount: 20}), cls, false)
	requireDecimal(t, "0", lines.Get(types.RULE_NAME_BONUS))
}

func TestEvaluateBridgeTollRequiresBridge(t *testing.T) {
	table := evalTable(t)
	set, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_BRIDGE_TOLL,
			Formula:  Formula{Kind: types.FORMULA_FLAT, BaseAmountCents: 700},
			Priority: 40,
		},
	})
	require.NoError(t, err)

	cls := table.Classify(20, 25000)

	lines := set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT,
		calculation.NewInput(calculation.Input{Headcount: 20, RequiresBridge: true}), cls, false)
	requireDecimal(t, "7.00", lines.Get(types.RULE_NAME_BRIDGE_TOLL))

	lines = set.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT,
		calculation.NewInput(calculation.Input{Headcount: 20}), cls, false)
	requireDecimal(t, "0", lines.Get(types.RULE_NAME_BRIDGE_TOLL))
}

func TestNewSetRejectsMismatchedFormula(t *testing.T) {
	_, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_LONG_DISTANCE,
			Formula:  Formula{Kind: types.FORMULA_FLAT, BaseAmountCents: 100},
		},
	})
	require.Error(t, err)
	require.True(t, ierr.IsInvalidConfiguration(err))
}

func TestNewSetRejectsUnknownRuleName(t *testing.T) {
	_, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RuleName("SURGE"),
			Formula:  Formula{Kind: types.FORMULA_FLAT},
		},
	})
	require.Error(t, err)
	require.True(t, ierr.IsInvalidConfiguration(err))
}

func TestNewSetRejectsNegativeAmounts(t *testing.T) {
	_, err := NewSet([]PricingRule{
		{
			RuleType: types.RULE_TYPE_DRIVER_PAYMENT,
			RuleName: types.RULE_NAME_BONUS,
			Formula:  Formula{Kind: types.FORMULA_FLAT, BaseAmountCents: -100},
		},
	})
	require.Error(t, err)
	require.True(t, ierr.IsInvalidConfiguration(err))
}

func TestForTypeOrdersByDescendingPriority(t *testing.T) {
	set, err := NewSet([]PricingRule{
		longDistanceRule(100, 15),
		{
			RuleType: types.RULE_TYPE_CUSTOMER_CHARGE,
			RuleName: types.RULE_NAME_TIERED_BASE_FEE,
			Formula:  Formula{Kind: types.FORMULA_FLAT},
			Priority: 100,
		},
	})
	require.NoError(t, err)

	rules := set.ForType(types.RULE_TYPE_CUSTOMER_CHARGE)
	require.Len(t, rules, 2)
	require.Equal(t, types.RULE_NAME_TIERED_BASE_FEE, rules[0].RuleName)
	require.Equal(t, types.RULE_NAME_LONG_DISTANCE, rules[1].RuleName)
}
