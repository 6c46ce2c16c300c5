package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer identifies who the invoice is billed to
type Customer struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	TaxNumber   string `json:"tax_number"`
}

// Vehicle identifies the rented vehicle
type Vehicle struct {
	Registration string `json:"registration"`
	Type         string `json:"type"`
}

// TripInput describes a single rental trip
type TripInput struct {
	Customer      Customer        `json:"customer"`
	Vehicle       Vehicle         `json:"vehicle"`
	DriverName    string          `json:"driver_name"`
	StartLocation string          `json:"start_location"`
	EndLocation   string          `json:"end_location"`
	StartTime     *time.Time      `json:"start_time,omitempty"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	StartKm       decimal.Decimal `json:"start_km"`
	EndKm         decimal.Decimal `json:"end_km"`
}

// DistanceKm returns the odometer difference, or zero when the closing
// reading is below the opening one.
func (t TripInput) DistanceKm() decimal.Decimal {
	if t.EndKm.LessThan(t.StartKm) {
		return decimal.Zero
	}
	return t.EndKm.Sub(t.StartKm)
}

// Charge is an extra named charge such as a toll or parking fee
type Charge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Tax describes the tax applied to an invoice. Amount, when set, is taken
// as-is instead of being derived from Percent.
type Tax struct {
	Percent decimal.Decimal  `json:"percent"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

// AdjustmentSet holds everything applied on top of the rent charges
type AdjustmentSet struct {
	Charges  []Charge         `json:"charges"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Tax      *Tax             `json:"tax,omitempty"`
	Advance  decimal.Decimal  `json:"advance"`
}

// LineItem is one priced row of the invoice
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Totals summarizes an invoice
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountApplied bool            `json:"discount_applied"`
	Discount        decimal.Decimal `json:"discount"`
	TaxApplied      bool            `json:"tax_applied"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	Tax             decimal.Decimal `json:"tax"`
	Advance         decimal.Decimal `json:"advance"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	NetPayable      decimal.Decimal `json:"net_payable"`
}

// TaxShare is one half of a split tax
type TaxShare struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// SplitTax returns the tax as two equal shares, each rounded to two places.
// The shares are for presentation; GrandTotal always uses the unsplit Tax.
func (t Totals) SplitTax() (TaxShare, TaxShare) {
	two := decimal.NewFromInt(2)
	share := TaxShare{
		Percent: t.TaxPercent.Div(two),
		Amount:  t.Tax.Div(two).Round(2),
	}
	return share, share
}

// MileageSummary is the distance breakdown printed in the trip summary
type MileageSummary struct {
	TotalKm      decimal.Decimal `json:"total_km"`
	FreeKm       decimal.Decimal `json:"free_km"`
	ChargeableKm decimal.Decimal `json:"chargeable_km"`
}

// Result is the output of a calculation
type Result struct {
	Items   []LineItem     `json:"items"`
	Totals  Totals         `json:"totals"`
	Mileage MileageSummary `json:"mileage"`
}
