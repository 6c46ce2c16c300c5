package billing

import "github.com/shopspring/decimal"

// RentType names a pricing variant
type RentType string

const (
	RentTypeFixed RentType = "fixed"
	RentTypeHour  RentType = "hour"
	RentTypeDay   RentType = "day"
	RentTypeKm    RentType = "km"
)

// PricingModel is the rent basis of a trip. It is a closed set: only the
// variants declared in this package implement it.
type PricingModel interface {
	RentType() RentType
	isPricingModel()
}

// FixedPricing is a flat amount plus an optional per-km surcharge
type FixedPricing struct {
	Amount       decimal.Decimal `json:"amount"`
	ChargeableKm decimal.Decimal `json:"chargeable_km"`
	RatePerKm    decimal.Decimal `json:"rate_per_km"`
}

// HourlyPricing is hours × rate plus an optional per-km surcharge
type HourlyPricing struct {
	Hours        decimal.Decimal `json:"hours"`
	RatePerHour  decimal.Decimal `json:"rate_per_hour"`
	ChargeableKm decimal.Decimal `json:"chargeable_km"`
	RatePerKm    decimal.Decimal `json:"rate_per_km"`
}

// DailyPricing is days × rate plus an optional per-km fuel surcharge
type DailyPricing struct {
	Days          decimal.Decimal `json:"days"`
	RatePerDay    decimal.Decimal `json:"rate_per_day"`
	ChargeableKm  decimal.Decimal `json:"chargeable_km"`
	FuelRatePerKm decimal.Decimal `json:"fuel_rate_per_km"`
}

// PerKmPricing bills chargeable distance, optionally after a free-km allowance
type PerKmPricing struct {
	TotalKm      decimal.Decimal `json:"total_km"`
	FreeKm       decimal.Decimal `json:"free_km"`
	ChargeableKm decimal.Decimal `json:"chargeable_km"`
	RatePerKm    decimal.Decimal `json:"rate_per_km"`
}

func (FixedPricing) RentType() RentType  { return RentTypeFixed }
func (HourlyPricing) RentType() RentType { return RentTypeHour }
func (DailyPricing) RentType() RentType  { return RentTypeDay }
func (PerKmPricing) RentType() RentType  { return RentTypeKm }

func (FixedPricing) isPricingModel()  {}
func (HourlyPricing) isPricingModel() {}
func (DailyPricing) isPricingModel()  {}
func (PerKmPricing) isPricingModel()  {}
