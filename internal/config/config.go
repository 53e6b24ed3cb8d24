package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/readysethq/ratecard/internal/types"
)

type Configuration struct {
	Logging LoggingConfig `validate:"required"`
	Pricing PricingConfig `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// PricingConfig is the raw per-client pricing configuration as it appears in
// the config file. The loader materializes it into validated domain objects
// via BuildRegistry.
type PricingConfig struct {
	Clients []ClientConfig `mapstructure:"clients" validate:"required,min=1,dive"`
}

type ClientConfig struct {
	// ID is the client/vendor identifier ex cater-valley, ready-set-standard
	ID     string       `mapstructure:"id" validate:"required"`
	Policy PolicyConfig `mapstructure:"policy"`
	Tiers  []TierConfig `mapstructure:"tiers" validate:"required,min=1,dive"`
	Rules  []RuleConfig `mapstructure:"rules" validate:"dive"`
}

type PolicyConfig struct {
	MinimumCustomerFeeCents              int64   `mapstructure:"minimum_customer_fee_cents" validate:"min=0"`
	MileageThresholdMiles                float64 `mapstructure:"mileage_threshold_miles" validate:"min=0"`
	CustomerMileageRateCentsPerMile      int64   `mapstructure:"customer_mileage_rate_cents_per_mile" validate:"min=0"`
	DriverMileageRateCentsPerMile        int64   `mapstructure:"driver_mileage_rate_cents_per_mile" validate:"min=0"`
	DriverMinimumMileagePayCents         int64   `mapstructure:"driver_minimum_mileage_pay_cents" validate:"min=0"`
	IncludeBridgeTollInCustomerFee       bool    `mapstructure:"include_bridge_toll_in_customer_fee"`
	PercentageTierHeadcount              uint    `mapstructure:"percentage_tier_headcount"`
	PercentageTierFoodCostCents          int64   `mapstructure:"percentage_tier_food_cost_cents" validate:"min=0"`
	PercentageRate                       float64 `mapstructure:"percentage_rate" validate:"min=0,max=1"`
	DailyDriveDiscountCentsPerExtraDrive int64   `mapstructure:"daily_drive_discount_cents_per_extra_drive" validate:"min=0"`
	BonusFlatCents                       int64   `mapstructure:"bonus_flat_cents" validate:"min=0"`
	BonusSuppressedByDirectTip           bool    `mapstructure:"bonus_suppressed_by_direct_tip"`
}

type TierConfig struct {
	MinHeadcount                     uint   `mapstructure:"min_headcount"`
	MaxHeadcount                     *uint  `mapstructure:"max_headcount"`
	MinFoodCostCents                 int64  `mapstructure:"min_food_cost_cents" validate:"min=0"`
	MaxFoodCostCents                 *int64 `mapstructure:"max_food_cost_cents"`
	CustomerBaseFeeCents             int64  `mapstructure:"customer_base_fee_cents" validate:"min=0"`
	CustomerBaseFeeWithinRadiusCents int64  `mapstructure:"customer_base_fee_within_radius_cents" validate:"min=0"`
	DriverBasePayCents               int64  `mapstructure:"driver_base_pay_cents" validate:"min=0"`
}

type RuleConfig struct {
	RuleType           string  `mapstructure:"rule_type" validate:"required"`
	RuleName           string  `mapstructure:"rule_name" validate:"required"`
	Kind               string  `mapstructure:"kind" validate:"required"`
	BaseAmountCents    int64   `mapstructure:"base_amount_cents" validate:"min=0"`
	PerUnitAmountCents int64   `mapstructure:"per_unit_amount_cents" validate:"min=0"`
	ThresholdMiles     float64 `mapstructure:"threshold_miles" validate:"min=0"`
	PercentageRate     float64 `mapstructure:"percentage_rate" validate:"min=0,max=1"`
	Priority           int     `mapstructure:"priority"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ratecard")

	v.SetEnvPrefix("RATECARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: types.LogLevelInfo},
	}
}
