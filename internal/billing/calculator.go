package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator prices trips. The zero value is not usable; use NewCalculator.
type Calculator struct {
	currencySymbol string
}

// Option configures a Calculator
type Option func(*Calculator)

// WithCurrencySymbol sets the symbol used inside line-item descriptions
func WithCurrencySymbol(symbol string) Option {
	return func(c *Calculator) {
		c.currencySymbol = symbol
	}
}

// NewCalculator creates a calculator
func NewCalculator(opts ...Option) Calculator {
	c := Calculator{currencySymbol: "Rs"}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Compute prices a trip with the default calculator
func Compute(trip TripInput, pricing PricingModel, adj AdjustmentSet) Result {
	return NewCalculator().Compute(trip, pricing, adj)
}

// Compute maps a trip, its pricing model and adjustments to ordered line
// items and totals. It performs no validation: a zero rate or quantity
// drops the corresponding line, and out-of-range values flow through.
func (c Calculator) Compute(trip TripInput, pricing PricingModel, adj AdjustmentSet) Result {
	items, mileage := c.rentItems(trip, pricing)

	for _, charge := range adj.Charges {
		items = append(items, LineItem{Description: charge.Label, Amount: charge.Amount})
	}

	return Result{
		Items:   items,
		Totals:  computeTotals(items, adj),
		Mileage: mileage,
	}
}

func (c Calculator) rentItems(trip TripInput, pricing PricingModel) ([]LineItem, MileageSummary) {
	items := []LineItem{}
	mileage := MileageSummary{TotalKm: trip.DistanceKm()}

	switch p := pricing.(type) {
	case FixedPricing:
		if p.Amount.IsPositive() {
			items = append(items, LineItem{Description: "Vehicle Rent (Fixed Amount)", Amount: p.Amount})
		}
		if item, ok := c.distanceItem("KM Charges", p.ChargeableKm, p.RatePerKm); ok {
			items = append(items, item)
		}
		mileage.ChargeableKm = p.ChargeableKm

	case HourlyPricing:
		if p.Hours.IsPositive() && p.RatePerHour.IsPositive() {
			items = append(items, LineItem{
				Description: fmt.Sprintf("Vehicle Rent (%s hrs @ %s%s/hr)", p.Hours, c.currencySymbol, p.RatePerHour),
				Amount:      money(p.Hours.Mul(p.RatePerHour)),
			})
		}
		if item, ok := c.distanceItem("KM Charges", p.ChargeableKm, p.RatePerKm); ok {
			items = append(items, item)
		}
		mileage.ChargeableKm = p.ChargeableKm

	case DailyPricing:
		if p.Days.IsPositive() && p.RatePerDay.IsPositive() {
			items = append(items, LineItem{
				Description: fmt.Sprintf("Vehicle Rent (%s days @ %s%s/day)", p.Days, c.currencySymbol, p.RatePerDay),
				Amount:      money(p.Days.Mul(p.RatePerDay)),
			})
		}
		if item, ok := c.distanceItem("Fuel Charges", p.ChargeableKm, p.FuelRatePerKm); ok {
			items = append(items, item)
		}
		mileage.ChargeableKm = p.ChargeableKm

	case PerKmPricing:
		total := p.TotalKm
		if total.IsZero() {
			total = mileage.TotalKm
		}
		chargeable := PerKmChargeable(p, total)

		var desc string
		if p.FreeKm.IsPositive() {
			desc = fmt.Sprintf("Vehicle Rent (%s km - %s free km = %s km @ %s%s/km)",
				total, p.FreeKm, chargeable, c.currencySymbol, p.RatePerKm)
		} else {
			desc = fmt.Sprintf("Vehicle Rent (%s km @ %s%s/km)", chargeable, c.currencySymbol, p.RatePerKm)
		}
		if amount := money(chargeable.Mul(p.RatePerKm)); amount.IsPositive() {
			items = append(items, LineItem{Description: desc, Amount: amount})
		}
		mileage = MileageSummary{TotalKm: total, FreeKm: p.FreeKm, ChargeableKm: chargeable}
	}

	return items, mileage
}

// distanceItem builds a per-km surcharge line, suppressed when either factor is not positive
func (c Calculator) distanceItem(label string, km, rate decimal.Decimal) (LineItem, bool) {
	if !km.IsPositive() || !rate.IsPositive() {
		return LineItem{}, false
	}
	return LineItem{
		Description: fmt.Sprintf("%s (%s km @ %s%s/km)", label, km, c.currencySymbol, rate),
		Amount:      money(km.Mul(rate)),
	}, true
}

// PerKmChargeable returns the billable distance of a per-km trip covering total km.
// A free-km allowance is subtracted (never below zero); without one the
// caller's chargeable figure wins, falling back to the total.
func PerKmChargeable(p PerKmPricing, total decimal.Decimal) decimal.Decimal {
	if p.FreeKm.IsPositive() {
		chargeable := total.Sub(p.FreeKm)
		if chargeable.IsNegative() {
			return decimal.Zero
		}
		return chargeable
	}
	if !p.ChargeableKm.IsZero() {
		return p.ChargeableKm
	}
	return total
}

// computeTotals derives discount and tax from the undiscounted subtotal
func computeTotals(items []LineItem, adj AdjustmentSet) Totals {
	t := Totals{Advance: adj.Advance}

	for _, item := range items {
		t.Subtotal = t.Subtotal.Add(item.Amount)
	}

	if adj.Discount != nil {
		t.DiscountApplied = true
		t.Discount = *adj.Discount
	}

	if adj.Tax != nil {
		t.TaxApplied = true
		t.TaxPercent = adj.Tax.Percent
		if adj.Tax.Amount != nil {
			t.Tax = *adj.Tax.Amount
		} else {
			t.Tax = money(t.Subtotal.Mul(adj.Tax.Percent).Div(hundred))
		}
	}

	t.GrandTotal = t.Subtotal.Sub(t.Discount).Add(t.Tax)
	t.NetPayable = t.GrandTotal.Sub(t.Advance)
	return t
}

// money rounds to two decimal places, half away from zero
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders an amount with exactly two decimals
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
