package policy

import (
	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/domain/rule"
	"github.com/readysethq/ratecard/internal/domain/tier"
	ierr "github.com/readysethq/ratecard/internal/errors"
	"github.com/readysethq/ratecard/internal/types"
)

// DefaultMileageThresholdMiles is the customer long-distance threshold used
// when a client does not configure one.
const DefaultMileageThresholdMiles = 10

// PercentageTierThreshold is the headcount/food-cost cutoff above which an
// order prices as a percentage of food cost. It must match the lower bounds
// of the client's open-ended top tier.
type PercentageTierThreshold struct {
	Headcount     uint  `json:"headcount"`
	FoodCostCents int64 `json:"food_cost_cents"`
}

// ClientPricingPolicy carries the per-client engine behavior that cannot be
// expressed as declarative rules. One immutable instance per client; never
// mutated during a calculation.
type ClientPricingPolicy struct {
	// ID ulid identifier for the policy
	ID string `json:"id"`

	// ClientID is the client/vendor identifier ex cater-valley
	ClientID string `json:"client_id"`

	// MinimumCustomerFeeCents floors the customer total
	MinimumCustomerFeeCents int64 `json:"minimum_customer_fee_cents"`

	// MileageThresholdMiles is the customer long-distance threshold in miles
	MileageThresholdMiles decimal.Decimal `json:"mileage_threshold_miles"`

	// CustomerMileageRateCentsPerMile is charged per mile above the threshold
	CustomerMileageRateCentsPerMile int64 `json:"customer_mileage_rate_cents_per_mile"`

	// DriverMileageRateCentsPerMile is paid per mile over the full trip
	DriverMileageRateCentsPerMile int64 `json:"driver_mileage_rate_cents_per_mile"`

	// DriverMinimumMileagePayCents floors the driver mileage pay when
	// positive; zero means the plain rate applies with no floor
	DriverMinimumMileagePayCents int64 `json:"driver_minimum_mileage_pay_cents"`

	// IncludeBridgeTollInCustomerFee bills the toll to the customer in
	// addition to reimbursing the driver; cater-valley absorbs the toll
	IncludeBridgeTollInCustomerFee bool `json:"include_bridge_toll_in_customer_fee"`

	// PercentageTierThreshold is the cutoff for percentage pricing
	PercentageTierThreshold PercentageTierThreshold `json:"percentage_tier_threshold"`

	// PercentageRate is the food cost fraction charged on the top tier
	// ex 0.10 for 10%; zero disables percentage pricing
	PercentageRate decimal.Decimal `json:"percentage_rate"`

	// DailyDriveDiscountCentsPerExtraDrive is subtracted from the customer
	// total per drive beyond the first
	DailyDriveDiscountCentsPerExtraDrive int64 `json:"daily_drive_discount_cents_per_extra_drive"`

	// BonusFlatCents is the driver bonus when the drive qualifies
	BonusFlatCents int64 `json:"bonus_flat_cents"`

	// BonusSuppressedByDirectTip replaces base pay and bonus with the direct
	// tip when the customer tips the driver
	BonusSuppressedByDirectTip bool `json:"bonus_suppressed_by_direct_tip"`
}

func (p ClientPricingPolicy) Validate() error {
	if p.ClientID == "" {
		return ierr.NewError("policy client id is empty").
			Mark(ierr.ErrInvalidConfiguration)
	}
	if p.MinimumCustomerFeeCents < 0 || p.CustomerMileageRateCentsPerMile < 0 ||
		p.DriverMileageRateCentsPerMile < 0 || p.DriverMinimumMileagePayCents < 0 ||
		p.DailyDriveDiscountCentsPerExtraDrive < 0 || p.BonusFlatCents < 0 {
		return ierr.NewError("negative policy amount").
			WithReportableDetails(map[string]any{"client_id": p.ClientID}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if p.MileageThresholdMiles.IsNegative() {
		return ierr.NewError("negative mileage threshold").
			WithReportableDetails(map[string]any{"client_id": p.ClientID}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if p.PercentageRate.IsNegative() {
		return ierr.NewError("negative percentage rate").
			WithReportableDetails(map[string]any{"client_id": p.ClientID}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	return nil
}

// ClientConfiguration is the full immutable pricing configuration for one
// client: policy knobs, tier table, and rule set.
type ClientConfiguration struct {
	Policy ClientPricingPolicy
	Tiers  *tier.Table
	Rules  *rule.Set
}

func (c *ClientConfiguration) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	if c.Tiers == nil || c.Tiers.Len() == 0 {
		return ierr.NewError("client has no tier table").
			WithReportableDetails(map[string]any{"client_id": c.Policy.ClientID}).
			Mark(ierr.ErrInvalidConfiguration)
	}
	if c.Rules == nil {
		return ierr.NewError("client has no rule set").
			WithReportableDetails(map[string]any{"client_id": c.Policy.ClientID}).
			Mark(ierr.ErrInvalidConfiguration)
	}

	// Percentage pricing must agree with the top tier bounds so the
	// classifier and the policy threshold select the same orders
	if c.Policy.PercentageRate.IsPositive() {
		top := c.Tiers.Top()
		if c.Policy.PercentageTierThreshold.Headcount != top.MinHeadcount ||
			c.Policy.PercentageTierThreshold.FoodCostCents != top.MinFoodCostCents {
			return ierr.NewError("percentage tier threshold does not match top tier bounds").
				WithReportableDetails(map[string]any{
					"client_id":           c.Policy.ClientID,
					"threshold_headcount": c.Policy.PercentageTierThreshold.Headcount,
					"top_min_headcount":   top.MinHeadcount,
				}).
				Mark(ierr.ErrInvalidConfiguration)
		}
		if !c.Rules.HasRule(types.RULE_TYPE_CUSTOMER_CHARGE, types.RULE_NAME_PERCENTAGE_FEE) {
			return ierr.NewError("percentage rate configured without a percentage fee rule").
				WithReportableDetails(map[string]any{"client_id": c.Policy.ClientID}).
				Mark(ierr.ErrInvalidConfiguration)
		}
	}
	return nil
}

// PercentagePricing reports whether the classified tier prices as a
// percentage of food cost for this client.
func (c *ClientConfiguration) PercentagePricing(cls tier.Classification) bool {
	return c.Policy.PercentageRate.IsPositive() && c.Tiers.IsTop(cls.Index)
}
