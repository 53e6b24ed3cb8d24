package dto

import (
	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/domain/calculation"
	"github.com/readysethq/ratecard/internal/validator"
)

// QuoteRequest carries the order scalars the order-workflow layer derives
// from order records and the upstream GPS mileage computation.
type QuoteRequest struct {
	ClientID        string          `json:"client_id" validate:"required"`
	Headcount       uint            `json:"headcount"`
	FoodCostCents   int64           `json:"food_cost_cents" validate:"min=0"`
	TotalMileage    decimal.Decimal `json:"total_mileage"`
	NumberOfDrives  uint            `json:"number_of_drives"`
	RequiresBridge  bool            `json:"requires_bridge"`
	BridgeTollCents int64           `json:"bridge_toll_cents" validate:"min=0"`
	TipsCents       int64           `json:"tips_cents"`
	BonusQualified  bool            `json:"bonus_qualified"`
}

func (r *QuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToInput converts the request into a normalized calculation input
func (r *QuoteRequest) ToInput() calculation.Input {
	return calculation.NewInput(calculation.Input{
		Headcount:       r.Headcount,
		FoodCostCents:   r.FoodCostCents,
		TotalMileage:    r.TotalMileage,
		NumberOfDrives:  r.NumberOfDrives,
		RequiresBridge:  r.RequiresBridge,
		BridgeTollCents: r.BridgeTollCents,
		TipsCents:       r.TipsCents,
		BonusQualified:  r.BonusQualified,
	})
}

// DeliveryCostResponse is the customer-facing aggregate view
type DeliveryCostResponse struct {
	// DeliveryCost is the base delivery fee before mileage and adjustments
	DeliveryCost decimal.Decimal `json:"delivery_cost"`

	// TotalMileagePay is the long-distance surcharge billed to the customer
	TotalMileagePay decimal.Decimal `json:"total_mileage_pay"`

	// DailyDriveDiscount is the multi-drive reduction applied to the total
	DailyDriveDiscount decimal.Decimal `json:"daily_drive_discount"`

	// DeliveryFee is the final amount billed to the customer
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

// DriverPayResponse is the driver compensation view
type DriverPayResponse struct {
	TotalMileagePay       decimal.Decimal `json:"total_mileage_pay"`
	MileageRate           decimal.Decimal `json:"mileage_rate"`
	DriverTotalBasePay    decimal.Decimal `json:"driver_total_base_pay"`
	DriverBonusPay        decimal.Decimal `json:"driver_bonus_pay"`
	BonusQualified        bool            `json:"bonus_qualified"`
	BonusQualifiedPercent decimal.Decimal `json:"bonus_qualified_percent"`
	DirectTip             decimal.Decimal `json:"direct_tip"`
	BridgeToll            decimal.Decimal `json:"bridge_toll"`
	TotalDriverPay        decimal.Decimal `json:"total_driver_pay"`
}

// QuoteResponse is the rule-based itemized view combining both sides
type QuoteResponse struct {
	CustomerCharges calculation.CustomerCharges `json:"customer_charges"`
	DriverPayments  calculation.DriverPayments  `json:"driver_payments"`
	Profit          decimal.Decimal             `json:"profit"`
}

// NewQuoteResponse builds the response from a calculation result
func NewQuoteResponse(result *calculation.Result) *QuoteResponse {
	return &QuoteResponse{
		CustomerCharges: result.CustomerCharges,
		DriverPayments:  result.DriverPayments,
		Profit:          result.Profit,
	}
}
