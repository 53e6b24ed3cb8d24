package tier

import (
	ierr "github.com/readysethq/ratecard/internal/errors"
	"github.com/readysethq/ratecard/internal/types"
)

// Tier is a headcount/food-cost band with the base amounts attached to it.
// Max bounds are nil for the open-ended top tier.
type Tier struct {
	// ID ulid identifier for the tier
	ID string `json:"id"`

	// MinHeadcount is the inclusive lower headcount bound
	MinHeadcount uint `json:"min_headcount"`

	// MaxHeadcount is the inclusive upper headcount bound, nil when open-ended
	MaxHeadcount *uint `json:"max_headcount"`

	// MinFoodCostCents is the inclusive lower food cost bound in cents
	MinFoodCostCents int64 `json:"min_food_cost_cents"`

	// MaxFoodCostCents is the inclusive upper food cost bound in cents, nil when open-ended
	MaxFoodCostCents *int64 `json:"max_food_cost_cents"`

	// CustomerBaseFeeCents is the customer delivery fee for orders in this band
	CustomerBaseFeeCents int64 `json:"customer_base_fee_cents"`

	// CustomerBaseFeeWithinRadiusCents is the reduced fee for deliveries inside
	// the client's short radius
	CustomerBaseFeeWithinRadiusCents int64 `json:"customer_base_fee_within_radius_cents"`

	// DriverBasePayCents is the driver base pay per drop for this band
	DriverBasePayCents int64 `json:"driver_base_pay_cents"`
}

// Table is an ordered, validated list of tiers. Tables are built once from
// client configuration and are immutable afterwards, so they are safe to
// share across concurrent calculations.
type Table struct {
	tiers []Tier
}

// NewTable validates the configured bands and returns an immutable table.
// Bands must start at zero, be contiguous and non-overlapping per dimension,
// and only the last tier may be (and must be) open-ended.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, ierr.NewError("tier table is empty").
			WithHint("At least one tier must be configured").
			Mark(ierr.ErrInvalidConfiguration)
	}

	copied := make([]Tier, len(tiers))
	copy(copied, tiers)

	for i := range copied {
		if copied[i].ID == "" {
			copied[i].ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIER)
		}
		if copied[i].CustomerBaseFeeCents < 0 || copied[i].DriverBasePayCents < 0 ||
			copied[i].CustomerBaseFeeWithinRadiusCents < 0 {
			return nil, ierr.NewError("negative tier amount").
				WithReportableDetails(map[string]any{"tier_index": i}).
				Mark(ierr.ErrInvalidConfiguration)
		}
	}

	if copied[0].MinHeadcount != 0 || copied[0].MinFoodCostCents != 0 {
		return nil, ierr.NewError("first tier must start at zero").
			WithHint("Zero headcount and zero food cost must resolve to the first tier").
			Mark(ierr.ErrInvalidConfiguration)
	}

	last := len(copied) - 1
	for i, t := range copied {
		if i == last {
			if t.MaxHeadcount != nil || t.MaxFoodCostCents != nil {
				return nil, ierr.NewError("top tier must be open-ended").
					WithReportableDetails(map[string]any{"tier_index": i}).
					Mark(ierr.ErrInvalidConfiguration)
			}
			continue
		}
		if t.MaxHeadcount == nil || t.MaxFoodCostCents == nil {
			return nil, ierr.NewError("only the top tier may be open-ended").
				WithReportableDetails(map[string]any{"tier_index": i}).
				Mark(ierr.ErrInvalidConfiguration)
		}
		if *t.MaxHeadcount < t.MinHeadcount || *t.MaxFoodCostCents < t.MinFoodCostCents {
			return nil, ierr.NewError("tier band is inverted").
				WithReportableDetails(map[string]any{"tier_index": i}).
				Mark(ierr.ErrInvalidConfiguration)
		}

		next := copied[i+1]
		if next.MinHeadcount != *t.MaxHeadcount+1 {
			return nil, ierr.NewError("headcount bands must be contiguous").
				WithReportableDetails(map[string]any{
					"tier_index":     i,
					"max_headcount":  *t.MaxHeadcount,
					"next_headcount": next.MinHeadcount,
				}).
				Mark(ierr.ErrInvalidConfiguration)
		}
		if next.MinFoodCostCents != *t.MaxFoodCostCents+1 {
			return nil, ierr.NewError("food cost bands must be contiguous").
				WithReportableDetails(map[string]any{
					"tier_index":     i,
					"max_food_cost":  *t.MaxFoodCostCents,
					"next_food_cost": next.MinFoodCostCents,
				}).
				Mark(ierr.ErrInvalidConfiguration)
		}
	}

	return &Table{tiers: copied}, nil
}

// Len returns the number of configured tiers
func (t *Table) Len() int {
	return len(t.tiers)
}

// At returns the tier at the given index
func (t *Table) At(index int) Tier {
	return t.tiers[index]
}

// Top returns the open-ended top tier
func (t *Table) Top() Tier {
	return t.tiers[len(t.tiers)-1]
}

// IsTop reports whether index is the open-ended top tier
func (t *Table) IsTop(index int) bool {
	return index == len(t.tiers)-1
}
