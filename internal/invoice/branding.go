package invoice

import (
	"time"

	"github.com/richxcame/trip-invoice/pkg/config"
)

// Branding holds the per-deployment constants printed on every invoice.
// One renderer serves every deployment; only this record differs.
type Branding struct {
	IssuerName   string
	TaxIDs       []string
	AddressLines []string
	ContactLines []string

	PayeeAddress   string
	MerchantName   string
	CurrencyCode   string
	CurrencySymbol string
	BillPrefix     string

	// SplitTax prints the tax as two equal halves under SplitTaxLabels
	// instead of one line under TaxLabel.
	SplitTax       bool
	TaxLabel       string
	SplitTaxLabels [2]string

	AccentColor [3]int
	ScanCaption string
	FooterLines []string
	Location    *time.Location
	Compress    bool
	Creator     string
}

// BrandingFromConfig builds a Branding from loaded configuration
func BrandingFromConfig(cfg config.InvoiceConfig, creator string) Branding {
	return Branding{
		IssuerName:     cfg.IssuerName,
		TaxIDs:         cfg.TaxIDs,
		AddressLines:   cfg.AddressLines,
		ContactLines:   cfg.ContactLines,
		PayeeAddress:   cfg.PayeeAddress,
		MerchantName:   cfg.MerchantName,
		CurrencyCode:   cfg.CurrencyCode,
		CurrencySymbol: cfg.CurrencySymbol,
		BillPrefix:     cfg.BillPrefix,
		SplitTax:       cfg.SplitTax,
		TaxLabel:       cfg.TaxLabel,
		SplitTaxLabels: cfg.SplitTaxLabels,
		AccentColor:    cfg.AccentColor,
		ScanCaption:    cfg.ScanCaption,
		FooterLines:    cfg.FooterLines,
		Location:       cfg.Location(),
		Compress:       cfg.Compress,
		Creator:        creator,
	}
}

func (b Branding) withDefaults() Branding {
	if b.CurrencyCode == "" {
		b.CurrencyCode = "INR"
	}
	if b.CurrencySymbol == "" {
		b.CurrencySymbol = "Rs"
	}
	if b.BillPrefix == "" {
		b.BillPrefix = "INV"
	}
	if b.MerchantName == "" {
		b.MerchantName = b.IssuerName
	}
	if b.TaxLabel == "" {
		b.TaxLabel = "Tax"
	}
	if b.SplitTaxLabels[0] == "" || b.SplitTaxLabels[1] == "" {
		b.SplitTaxLabels = [2]string{"CGST", "SGST"}
	}
	if b.AccentColor == [3]int{} {
		b.AccentColor = [3]int{41, 128, 185}
	}
	if b.Location == nil {
		b.Location = time.UTC
	}
	return b
}
