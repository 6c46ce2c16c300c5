package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INVOICE_PAYEE_ADDRESS", "acme@upi")
	t.Setenv("INVOICE_ISSUER_NAME", "Acme Travels")

	cfg, err := Load("invoice-api")
	require.NoError(t, err)

	assert.Equal(t, "invoice-api", cfg.Server.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeoutDuration())

	inv := cfg.Invoice
	assert.Equal(t, "acme@upi", inv.PayeeAddress)
	assert.Equal(t, "Acme Travels", inv.MerchantName, "merchant name falls back to the issuer")
	assert.Equal(t, "INR", inv.CurrencyCode)
	assert.Equal(t, "Rs", inv.CurrencySymbol)
	assert.Equal(t, "INV", inv.BillPrefix)
	assert.False(t, inv.SplitTax)
	assert.Equal(t, [2]string{"CGST", "SGST"}, inv.SplitTaxLabels)
	assert.Equal(t, [3]int{41, 128, 185}, inv.AccentColor)
	assert.Len(t, inv.FooterLines, 2)
	assert.True(t, inv.Compress)
	assert.Equal(t, "Asia/Kolkata", inv.Location().String())
}

func TestLoad_RequiresPayeeAddress(t *testing.T) {
	t.Setenv("INVOICE_PAYEE_ADDRESS", "")

	_, err := Load("invoice-api")
	assert.ErrorContains(t, err, "INVOICE_PAYEE_ADDRESS")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INVOICE_PAYEE_ADDRESS", "acme@upi")
	t.Setenv("INVOICE_MERCHANT_NAME", "Acme Tours Pvt Ltd")
	t.Setenv("INVOICE_ISSUER_ADDRESS", "12, MG Road | Bengaluru 560001 |")
	t.Setenv("INVOICE_ISSUER_TAX_IDS", "GSTIN: 29ABCDE1234F1Z5")
	t.Setenv("INVOICE_SPLIT_TAX", "true")
	t.Setenv("INVOICE_ACCENT_COLOR", "10, 20, 30")
	t.Setenv("INVOICE_TIMEZONE", "Not/AZone")
	t.Setenv("INVOICE_PDF_COMPRESS", "false")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load("invoice-api")
	require.NoError(t, err)

	inv := cfg.Invoice
	assert.Equal(t, "Acme Tours Pvt Ltd", inv.MerchantName)
	assert.Equal(t, []string{"12, MG Road", "Bengaluru 560001"}, inv.AddressLines)
	assert.Equal(t, []string{"GSTIN: 29ABCDE1234F1Z5"}, inv.TaxIDs)
	assert.True(t, inv.SplitTax)
	assert.Equal(t, [3]int{10, 20, 30}, inv.AccentColor)
	assert.Equal(t, time.UTC, inv.Location())
	assert.False(t, inv.Compress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeoutDuration())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins())
}

func TestGetEnvAsRGB_Invalid(t *testing.T) {
	def := [3]int{1, 2, 3}
	tests := []string{"", "1,2", "a,b,c", "0,0,256", "-1,0,0"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			t.Setenv("TEST_RGB", value)
			assert.Equal(t, def, getEnvAsRGB("TEST_RGB", def))
		})
	}
}
