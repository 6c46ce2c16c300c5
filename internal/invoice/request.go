package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/richxcame/trip-invoice/internal/billing"
	"github.com/richxcame/trip-invoice/pkg/validation"
	"github.com/shopspring/decimal"
)

// wall-clock trip timestamp layouts, read in the deployment timezone.
// time.RFC3339 values carry their own offset.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// AdditionalCost is an extra charge entered on the form
type AdditionalCost struct {
	Label  string  `json:"label" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// InvoiceRequest is the flat record collected by the invoice form
type InvoiceRequest struct {
	CustomerTitle       string `json:"customer_title" validate:"max=10"`
	CustomerName        string `json:"customer_name" validate:"required,max=120"`
	CustomerCompanyName string `json:"customer_company_name" validate:"max=200"`
	CustomerAddress     string `json:"customer_address" validate:"max=500"`
	CustomerGSTNo       string `json:"customer_gst_no" validate:"max=20"`

	DriverName        string `json:"driver_name" validate:"max=120"`
	VehicleNo         string `json:"vehicle_no" validate:"max=20"`
	VehicleType       string `json:"vehicle_type" validate:"max=60"`
	TripStartLocation string `json:"trip_start_location" validate:"max=200"`
	TripEndLocation   string `json:"trip_end_location" validate:"max=200"`

	StartKm   float64 `json:"start_km" validate:"gte=0"`
	EndKm     float64 `json:"end_km" validate:"gte=0,gtefield=StartKm"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`

	RentType         string  `json:"rent_type" validate:"required,rent_type"`
	FixedAmount      float64 `json:"fixed_amount" validate:"gte=0"`
	Hours            float64 `json:"hours" validate:"gte=0"`
	RatePerHour      float64 `json:"rate_per_hour" validate:"gte=0"`
	Days             float64 `json:"days" validate:"gte=0"`
	RatePerDay       float64 `json:"rate_per_day" validate:"gte=0"`
	TotalKm          float64 `json:"total_km" validate:"gte=0"`
	FreeKm           float64 `json:"free_km" validate:"gte=0"`
	ChargeableKm     float64 `json:"chargeable_km" validate:"gte=0"`
	RatePerKm        float64 `json:"rate_per_km" validate:"gte=0"`
	ChargePerKmFixed float64 `json:"charge_per_km_fixed" validate:"gte=0"`
	ChargePerKmHour  float64 `json:"charge_per_km_hour" validate:"gte=0"`
	FuelChargePerKm  float64 `json:"fuel_charge_per_km" validate:"gte=0"`

	AdditionalCosts []AdditionalCost `json:"additional_costs" validate:"max=50,dive"`

	EnableDiscount bool    `json:"enable_discount"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
	EnableGST      bool    `json:"enable_gst"`
	GSTPercentage  float64 `json:"gst_percentage" validate:"gte=0,lte=100"`
	// GSTAmount, when positive, is used as the tax instead of deriving it
	// from GSTPercentage.
	GSTAmount float64 `json:"gst_amount" validate:"gte=0"`
	Advance   float64 `json:"advance" validate:"gte=0"`
}

// Validate checks field rules and the cross-field rules the validator
// tags cannot express. Zone-less timestamps are read in loc.
func (r *InvoiceRequest) Validate(loc *time.Location) error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}

	verr := &validation.ValidationError{}
	start, err := parseTripTime(r.StartTime, loc)
	if err != nil {
		verr.AddError("start_time", err.Error())
	}
	end, err := parseTripTime(r.EndTime, loc)
	if err != nil {
		verr.AddError("end_time", err.Error())
	}
	if r.RentType == string(billing.RentTypeKm) && r.FreeKm > r.TotalKm && r.TotalKm > 0 {
		verr.AddError("free_km", "free_km must not exceed total_km")
	}
	if verr.HasErrors() {
		return verr
	}

	if start != nil && end != nil && end.Before(*start) {
		verr.AddError("end_time", "end_time must not be before start_time")
		return verr
	}
	return nil
}

// CheckAdvance rejects an advance larger than the computed grand total
func CheckAdvance(totals billing.Totals) error {
	if totals.Advance.GreaterThan(totals.GrandTotal) {
		verr := &validation.ValidationError{}
		verr.AddError("advance", fmt.Sprintf("advance must not exceed the grand total of %s", billing.FormatAmount(totals.GrandTotal)))
		return verr
	}
	return nil
}

// ToBillingInput converts the form record into calculator inputs. Only the
// fields of the selected rent type reach the pricing model. Zone-less
// timestamps are wall-clock times in loc.
func (r *InvoiceRequest) ToBillingInput(loc *time.Location) (billing.TripInput, billing.PricingModel, billing.AdjustmentSet, error) {
	start, err := parseTripTime(r.StartTime, loc)
	if err != nil {
		return billing.TripInput{}, nil, billing.AdjustmentSet{}, err
	}
	end, err := parseTripTime(r.EndTime, loc)
	if err != nil {
		return billing.TripInput{}, nil, billing.AdjustmentSet{}, err
	}

	trip := billing.TripInput{
		Customer: billing.Customer{
			Title:       strings.TrimSpace(r.CustomerTitle),
			Name:        strings.TrimSpace(r.CustomerName),
			CompanyName: strings.TrimSpace(r.CustomerCompanyName),
			Address:     strings.TrimSpace(r.CustomerAddress),
			TaxNumber:   strings.TrimSpace(r.CustomerGSTNo),
		},
		Vehicle: billing.Vehicle{
			Registration: strings.TrimSpace(r.VehicleNo),
			Type:         strings.TrimSpace(r.VehicleType),
		},
		DriverName:    strings.TrimSpace(r.DriverName),
		StartLocation: strings.TrimSpace(r.TripStartLocation),
		EndLocation:   strings.TrimSpace(r.TripEndLocation),
		StartTime:     start,
		EndTime:       end,
		StartKm:       dec(r.StartKm),
		EndKm:         dec(r.EndKm),
	}

	pricing, err := r.pricingModel()
	if err != nil {
		return billing.TripInput{}, nil, billing.AdjustmentSet{}, err
	}

	return trip, pricing, r.adjustments(), nil
}

func (r *InvoiceRequest) pricingModel() (billing.PricingModel, error) {
	switch billing.RentType(r.RentType) {
	case billing.RentTypeFixed:
		return billing.FixedPricing{
			Amount:       amt(r.FixedAmount),
			ChargeableKm: dec(r.ChargeableKm),
			RatePerKm:    dec(r.ChargePerKmFixed),
		}, nil
	case billing.RentTypeHour:
		return billing.HourlyPricing{
			Hours:        dec(r.Hours),
			RatePerHour:  dec(r.RatePerHour),
			ChargeableKm: dec(r.ChargeableKm),
			RatePerKm:    dec(r.ChargePerKmHour),
		}, nil
	case billing.RentTypeDay:
		return billing.DailyPricing{
			Days:          dec(r.Days),
			RatePerDay:    dec(r.RatePerDay),
			ChargeableKm:  dec(r.ChargeableKm),
			FuelRatePerKm: dec(r.FuelChargePerKm),
		}, nil
	case billing.RentTypeKm:
		return billing.PerKmPricing{
			TotalKm:      dec(r.TotalKm),
			FreeKm:       dec(r.FreeKm),
			ChargeableKm: dec(r.ChargeableKm),
			RatePerKm:    dec(r.RatePerKm),
		}, nil
	default:
		return nil, fmt.Errorf("unknown rent type %q", r.RentType)
	}
}

func (r *InvoiceRequest) adjustments() billing.AdjustmentSet {
	adj := billing.AdjustmentSet{
		Charges: make([]billing.Charge, 0, len(r.AdditionalCosts)),
		Advance: amt(r.Advance),
	}
	for _, cost := range r.AdditionalCosts {
		adj.Charges = append(adj.Charges, billing.Charge{Label: cost.Label, Amount: amt(cost.Amount)})
	}

	if r.EnableDiscount {
		discount := amt(r.DiscountAmount)
		adj.Discount = &discount
	}
	if r.EnableGST {
		tax := &billing.Tax{Percent: dec(r.GSTPercentage)}
		if r.GSTAmount > 0 {
			amount := amt(r.GSTAmount)
			tax.Amount = &amount
		}
		adj.Tax = tax
	}
	return adj
}

// parseTripTime accepts an empty string (no timestamp), an RFC 3339 value or
// one of timeLayouts interpreted in loc
func parseTripTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", s)
}

// dec converts a form quantity or rate as entered; rounding happens on the
// computed amounts
func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// amt converts a form money value into a two-decimal amount
func amt(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
