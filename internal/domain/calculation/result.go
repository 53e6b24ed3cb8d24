package calculation

import (
	"github.com/shopspring/decimal"
)

// CustomerCharges is the itemized customer side of a calculation.
// All amounts are in main currency units rounded to cents.
type CustomerCharges struct {
	BaseFee            decimal.Decimal `json:"base_fee"`
	LongDistanceCharge decimal.Decimal `json:"long_distance_charge"`
	BridgeToll         decimal.Decimal `json:"bridge_toll"`
	DailyDriveDiscount decimal.Decimal `json:"daily_drive_discount"`
	Total              decimal.Decimal `json:"total"`
}

// DriverPayments is the itemized driver side of a calculation.
// Bonus is tracked for reporting but never added into Total.
type DriverPayments struct {
	BasePay    decimal.Decimal `json:"base_pay"`
	MileagePay decimal.Decimal `json:"mileage_pay"`
	BridgeToll decimal.Decimal `json:"bridge_toll"`
	Tips       decimal.Decimal `json:"tips"`
	Bonus      decimal.Decimal `json:"bonus"`
	Total      decimal.Decimal `json:"total"`
}

// Result is the complete outcome of one calculation. It is a pure output
// value with no identity.
type Result struct {
	CustomerCharges CustomerCharges `json:"customer_charges"`
	DriverPayments  DriverPayments  `json:"driver_payments"`
	Profit          decimal.Decimal `json:"profit"`
}
