package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/api/dto"
	"github.com/readysethq/ratecard/internal/domain/calculation"
	"github.com/readysethq/ratecard/internal/domain/policy"
	"github.com/readysethq/ratecard/internal/domain/rule"
	"github.com/readysethq/ratecard/internal/logger"
	"github.com/readysethq/ratecard/internal/types"
)

// PricingService is the calculation engine. Every method is a pure, bounded,
// synchronous computation over the immutable configuration snapshot resolved
// for the client: same input and configuration always produce the same
// output, and any number of calculations may run concurrently.
type PricingService interface {
	// Calculate returns the rule-based itemized view for both sides plus
	// profit (customer total minus driver total)
	Calculate(ctx context.Context, clientID string, input calculation.Input) (*calculation.Result, error)

	// CalculateDeliveryCost returns the customer-facing aggregate view
	CalculateDeliveryCost(ctx context.Context, clientID string, input calculation.Input) (*dto.DeliveryCostResponse, error)

	// CalculateDriverPay returns the driver compensation view
	CalculateDriverPay(ctx context.Context, clientID string, input calculation.Input) (*dto.DriverPayResponse, error)
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

func (s *pricingService) Calculate(ctx context.Context, clientID string, input calculation.Input) (*calculation.Result, error) {
	cfg, err := s.Registry.Resolve(clientID)
	if err != nil {
		return nil, err
	}

	input = calculation.NewInput(input)
	customer := calculateCustomerCharges(cfg, input, s.Logger)
	driver := calculateDriverPayments(cfg, input, s.Logger)

	return &calculation.Result{
		CustomerCharges: customer,
		DriverPayments:  driver,
		Profit:          customer.Total.Sub(driver.Total),
	}, nil
}

func (s *pricingService) CalculateDeliveryCost(ctx context.Context, clientID string, input calculation.Input) (*dto.DeliveryCostResponse, error) {
	cfg, err := s.Registry.Resolve(clientID)
	if err != nil {
		return nil, err
	}

	input = calculation.NewInput(input)
	charges := calculateCustomerCharges(cfg, input, s.Logger)

	return &dto.DeliveryCostResponse{
		DeliveryCost:       charges.BaseFee,
		TotalMileagePay:    charges.LongDistanceCharge,
		DailyDriveDiscount: charges.DailyDriveDiscount,
		DeliveryFee:        charges.Total,
	}, nil
}

func (s *pricingService) CalculateDriverPay(ctx context.Context, clientID string, input calculation.Input) (*dto.DriverPayResponse, error) {
	cfg, err := s.Registry.Resolve(clientID)
	if err != nil {
		return nil, err
	}

	input = calculation.NewInput(input)
	payments := calculateDriverPayments(cfg, input, s.Logger)

	bonusPaid := payments.Bonus.IsPositive()
	bonusQualifiedPercent := decimal.Zero
	if bonusPaid {
		bonusQualifiedPercent = decimal.NewFromInt(100)
	}

	return &dto.DriverPayResponse{
		TotalMileagePay:       payments.MileagePay,
		MileageRate:           types.DecimalFromCents(cfg.Policy.DriverMileageRateCentsPerMile),
		DriverTotalBasePay:    payments.BasePay,
		DriverBonusPay:        payments.Bonus,
		BonusQualified:        input.BonusQualified && bonusPaid,
		BonusQualifiedPercent: bonusQualifiedPercent,
		DirectTip:             payments.Tips,
		BridgeToll:            payments.BridgeToll,
		TotalDriverPay:        payments.Total,
	}, nil
}

// calculateCustomerCharges evaluates the customer rule lines and applies the
// policy adjustments in their fixed order: minimum fee floor, bridge toll
// inclusion, multi-drive discount.
func calculateCustomerCharges(cfg *policy.ClientConfiguration, input calculation.Input, log *logger.Logger) calculation.CustomerCharges {
	cls := cfg.Tiers.Classify(input.Headcount, input.FoodCostCents)
	percentage := cfg.PercentagePricing(cls)
	lines := cfg.Rules.Evaluate(types.RULE_TYPE_CUSTOMER_CHARGE, input, cls, percentage)

	baseFee := lines.Get(types.RULE_NAME_TIERED_BASE_FEE).
		Add(lines.Get(types.RULE_NAME_PERCENTAGE_FEE))
	longDistance := lines.Get(types.RULE_NAME_LONG_DISTANCE)

	total := baseFee.Add(longDistance)

	// 1. minimum fee floor
	total = types.MaxDecimal(total, types.DecimalFromCents(cfg.Policy.MinimumCustomerFeeCents))

	// 2. bridge toll, billed to the customer only for clients that pass it on
	bridgeToll := decimal.Zero
	if input.RequiresBridge && cfg.Policy.IncludeBridgeTollInCustomerFee {
		bridgeToll = bridgeTollAmount(cfg, input, types.RULE_TYPE_CUSTOMER_CHARGE, lines)
		total = total.Add(bridgeToll)
	}

	// 5. multi-drive discount, customer side only
	discount := decimal.Zero
	if input.NumberOfDrives > 1 {
		extraDrives := decimal.NewFromInt(int64(input.NumberOfDrives - 1))
		discount = types.DecimalFromCents(cfg.Policy.DailyDriveDiscountCentsPerExtraDrive).Mul(extraDrives)
		total = total.Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}
	}

	if log != nil {
		log.Debugw("customer charges calculated",
			"client_id", cfg.Policy.ClientID,
			"tier_index", cls.Index,
			"percentage_pricing", percentage,
			"base_fee", baseFee.String(),
			"long_distance", longDistance.String(),
			"total", total.String(),
		)
	}

	return calculation.CustomerCharges{
		BaseFee:            baseFee,
		LongDistanceCharge: longDistance,
		BridgeToll:         bridgeToll,
		DailyDriveDiscount: discount,
		Total:              types.RoundToCents(total),
	}
}

// calculateDriverPayments evaluates the driver rule lines and applies the
// policy adjustments: bridge toll reimbursement, tip/bonus exclusivity, and
// the driver mileage minimum.
func calculateDriverPayments(cfg *policy.ClientConfiguration, input calculation.Input, log *logger.Logger) calculation.DriverPayments {
	cls := cfg.Tiers.Classify(input.Headcount, input.FoodCostCents)
	percentage := cfg.PercentagePricing(cls)
	lines := cfg.Rules.Evaluate(types.RULE_TYPE_DRIVER_PAYMENT, input, cls, percentage)

	basePay := lines.Get(types.RULE_NAME_TIERED_BASE_FEE)
	tips := driverTips(cfg, input, lines)
	bonus := driverBonus(cfg, input, lines)

	// 2. bridge toll is always reimbursed to the driver
	bridgeToll := decimal.Zero
	if input.RequiresBridge {
		bridgeToll = bridgeTollAmount(cfg, input, types.RULE_TYPE_DRIVER_PAYMENT, lines)
	}

	// 3. a direct tip replaces the base pay and bonus structure entirely
	if tips.IsPositive() && cfg.Policy.BonusSuppressedByDirectTip {
		basePay = decimal.Zero
		bonus = decimal.Zero
	}

	// 4. mileage pay, floored only for clients configured with a minimum
	mileagePay := driverMileagePay(cfg, input, lines)

	total := basePay.Add(mileagePay).Add(bridgeToll).Add(tips)

	if log != nil {
		log.Debugw("driver payments calculated",
			"client_id", cfg.Policy.ClientID,
			"tier_index", cls.Index,
			"base_pay", basePay.String(),
			"mileage_pay", mileagePay.String(),
			"tips", tips.String(),
			"bonus", bonus.String(),
			"total", total.String(),
		)
	}

	return calculation.DriverPayments{
		BasePay:    basePay,
		MileagePay: mileagePay,
		BridgeToll: bridgeToll,
		Tips:       tips,
		// tracked separately, never added into the driver total
		Bonus: bonus,
		Total: types.RoundToCents(total),
	}
}

// bridgeTollAmount prefers a configured flat toll rule over the order's
// pass-through toll amount.
func bridgeTollAmount(cfg *policy.ClientConfiguration, input calculation.Input, ruleType types.RuleType, lines rule.Lines) decimal.Decimal {
	if cfg.Rules.HasRule(ruleType, types.RULE_NAME_BRIDGE_TOLL) {
		return lines.Get(types.RULE_NAME_BRIDGE_TOLL)
	}
	return types.DecimalFromCents(input.BridgeTollCents)
}

func driverTips(cfg *policy.ClientConfiguration, input calculation.Input, lines rule.Lines) decimal.Decimal {
	if cfg.Rules.HasRule(types.RULE_TYPE_DRIVER_PAYMENT, types.RULE_NAME_TIPS) {
		return lines.Get(types.RULE_NAME_TIPS)
	}
	// tips pass through at 100% even without an itemizing rule
	return types.DecimalFromCents(input.TipsCents)
}

func driverBonus(cfg *policy.ClientConfiguration, input calculation.Input, lines rule.Lines) decimal.Decimal {
	if cfg.Rules.HasRule(types.RULE_TYPE_DRIVER_PAYMENT, types.RULE_NAME_BONUS) {
		return lines.Get(types.RULE_NAME_BONUS)
	}
	if input.BonusQualified {
		return types.DecimalFromCents(cfg.Policy.BonusFlatCents)
	}
	return decimal.Zero
}

func driverMileagePay(cfg *policy.ClientConfiguration, input calculation.Input, lines rule.Lines) decimal.Decimal {
	var pay decimal.Decimal
	if cfg.Rules.HasRule(types.RULE_TYPE_DRIVER_PAYMENT, types.RULE_NAME_MILEAGE) {
		pay = lines.Get(types.RULE_NAME_MILEAGE)
	} else {
		rate := types.DecimalFromCents(cfg.Policy.DriverMileageRateCentsPerMile)
		pay = types.RoundToCents(rate.Mul(input.TotalMileage))
	}

	if cfg.Policy.DriverMinimumMileagePayCents > 0 {
		pay = types.MaxDecimal(pay, types.DecimalFromCents(cfg.Policy.DriverMinimumMileagePayCents))
	}
	return pay
}
