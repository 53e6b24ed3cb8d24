package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	ierr "github.com/readysethq/ratecard/internal/errors"
)

func uintPtr(v uint) *uint    { return &v }
func int64Ptr(v int64) *int64 { return &v }

func rawClient() ClientConfig {
	return ClientConfig{
		ID: "cater-valley",
		Policy: PolicyConfig{
			MinimumCustomerFeeCents:         4250,
			MileageThresholdMiles:           10,
			CustomerMileageRateCentsPerMile: 300,
			DriverMileageRateCentsPerMile:   35,
			PercentageTierHeadcount:         25,
			PercentageTierFoodCostCents:     30000,
			PercentageRate:                  0.10,
			BonusFlatCents:                  1000,
			BonusSuppressedByDirectTip:      true,
		},
		Tiers: []TierConfig{
			{
				MinHeadcount: 0, MaxHeadcount: uintPtr(24),
				MinFoodCostCents: 0, MaxFoodCostCents: int64Ptr(29999),
				CustomerBaseFeeCents: 4250, DriverBasePayCents: 3500,
			},
			{
				MinHeadcount: 25, MinFoodCostCents: 30000,
				CustomerBaseFeeCents: 0, DriverBasePayCents: 4000,
			},
		},
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg := &Configuration{
		Pricing: PricingConfig{Clients: []ClientConfig{rawClient()}},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	client, err := registry.Resolve("cater-valley")
	require.NoError(t, err)
	require.Equal(t, 2, client.Tiers.Len())
	require.True(t, client.Policy.BonusSuppressedByDirectTip)
	require.True(t, client.Policy.PercentageRate.IsPositive())
}

func TestBuildRegistryDefaultsMileageThreshold(t *testing.T) {
	client := rawClient()
	client.Policy.MileageThresholdMiles = 0
	client.Policy.PercentageRate = 0
	cfg := &Configuration{
		Pricing: PricingConfig{Clients: []ClientConfig{client}},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	resolved, err := registry.Resolve("cater-valley")
	require.NoError(t, err)
	require.Equal(t, "10", resolved.Policy.MileageThresholdMiles.String())
}

func TestBuildRegistryRejectsTierGap(t *testing.T) {
	client := rawClient()
	client.Tiers[1].MinHeadcount = 30
	cfg := &Configuration{
		Pricing: PricingConfig{Clients: []ClientConfig{client}},
	}

	_, err := cfg.BuildRegistry()
	require.Error(t, err)
	require.True(t, ierr.IsInvalidConfiguration(err))
}

func TestBuildRegistryRejectsBadExplicitRule(t *testing.T) {
	client := rawClient()
	client.Rules = []RuleConfig{
		{
			RuleType: "CUSTOMER_CHARGE",
			RuleName: "LONG_DISTANCE",
			Kind:     "FLAT", // wrong kind for this rule name
			Priority: 10,
		},
	}
	cfg := &Configuration{
		Pricing: PricingConfig{Clients: []ClientConfig{client}},
	}

	_, err := cfg.BuildRegistry()
	require.Error(t, err)
	require.True(t, ierr.IsInvalidConfiguration(err))
}

func TestBuildRegistryFromYAML(t *testing.T) {
	raw := `
logging:
  level: debug
pricing:
  clients:
    - id: cater-valley
      policy:
        minimum_customer_fee_cents: 4250
        mileage_threshold_miles: 10
        customer_mileage_rate_cents_per_mile: 300
        driver_mileage_rate_cents_per_mile: 35
        bonus_flat_cents: 1000
        bonus_suppressed_by_direct_tip: true
      tiers:
        - min_headcount: 0
          max_headcount: 24
          min_food_cost_cents: 0
          max_food_cost_cents: 29999
          customer_base_fee_cents: 4250
          driver_base_pay_cents: 3500
        - min_headcount: 25
          min_food_cost_cents: 30000
          customer_base_fee_cents: 9000
          driver_base_pay_cents: 4000
`

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(raw)))

	var cfg Configuration
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, cfg.Validate())

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	client, err := registry.Resolve("cater-valley")
	require.NoError(t, err)
	require.Equal(t, 2, client.Tiers.Len())
	require.Equal(t, int64(4250), client.Policy.MinimumCustomerFeeCents)
	require.NotNil(t, client.Tiers.At(0).MaxHeadcount)
	require.Nil(t, client.Tiers.Top().MaxHeadcount)
}

func TestBuildRegistryExplicitFlatToll(t *testing.T) {
	client := rawClient()
	client.Rules = []RuleConfig{
		{
			RuleType:        "DRIVER_PAYMENT",
			RuleName:        "BRIDGE_TOLL",
			Kind:            "FLAT",
			BaseAmountCents: 700,
			Priority:        40,
		},
	}
	cfg := &Configuration{
		Pricing: PricingConfig{Clients: []ClientConfig{client}},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	resolved, err := registry.Resolve("cater-valley")
	require.NoError(t, err)
	require.True(t, resolved.Rules.HasRule("DRIVER_PAYMENT", "BRIDGE_TOLL"))
}
