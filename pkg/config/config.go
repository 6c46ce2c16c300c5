package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Invoice   InvoiceConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Environment    string
	ServiceName    string
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int    // seconds allowed for a single invoice request
	CORSOrigins    string // Comma-separated list of allowed origins
}

// InvoiceConfig holds the per-deployment constants printed on every invoice
type InvoiceConfig struct {
	IssuerName     string
	TaxIDs         []string
	AddressLines   []string
	ContactLines   []string
	PayeeAddress   string
	MerchantName   string
	CurrencyCode   string
	CurrencySymbol string
	BillPrefix     string
	SplitTax       bool
	TaxLabel       string
	SplitTaxLabels [2]string
	AccentColor    [3]int
	ScanCaption    string
	FooterLines    []string
	Timezone       string
	Compress       bool
}

// TelemetryConfig holds error reporting and tracing settings
type TelemetryConfig struct {
	SentryDSN    string
	OTLPEndpoint string
	SampleRatio  float64
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ServiceName:    serviceName,
			ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 30),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 20),
			CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:5173"),
		},
		Invoice: InvoiceConfig{
			IssuerName:     getEnv("INVOICE_ISSUER_NAME", "Travels"),
			TaxIDs:         getEnvAsList("INVOICE_ISSUER_TAX_IDS", nil),
			AddressLines:   getEnvAsList("INVOICE_ISSUER_ADDRESS", nil),
			ContactLines:   getEnvAsList("INVOICE_ISSUER_CONTACTS", nil),
			PayeeAddress:   getEnv("INVOICE_PAYEE_ADDRESS", ""),
			MerchantName:   getEnv("INVOICE_MERCHANT_NAME", ""),
			CurrencyCode:   getEnv("INVOICE_CURRENCY_CODE", "INR"),
			CurrencySymbol: getEnv("INVOICE_CURRENCY_SYMBOL", "Rs"),
			BillPrefix:     getEnv("INVOICE_BILL_PREFIX", "INV"),
			SplitTax:       getEnvAsBool("INVOICE_SPLIT_TAX", false),
			TaxLabel:       getEnv("INVOICE_TAX_LABEL", "GST"),
			SplitTaxLabels: [2]string{
				getEnv("INVOICE_SPLIT_TAX_LABEL_1", "CGST"),
				getEnv("INVOICE_SPLIT_TAX_LABEL_2", "SGST"),
			},
			AccentColor: getEnvAsRGB("INVOICE_ACCENT_COLOR", [3]int{41, 128, 185}),
			ScanCaption: getEnv("INVOICE_SCAN_CAPTION", "Open GPay/PhonePe and scan this QR code to pay"),
			FooterLines: getEnvAsList("INVOICE_FOOTER", []string{
				"Computer generated invoice, valid without signature.",
				"Thank you for travelling with us!",
			}),
			Timezone: getEnv("INVOICE_TIMEZONE", "Asia/Kolkata"),
			Compress: getEnvAsBool("INVOICE_PDF_COMPRESS", true),
		},
		Telemetry: TelemetryConfig{
			SentryDSN:    getEnv("SENTRY_DSN", ""),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			SampleRatio:  getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
	}

	if cfg.Invoice.PayeeAddress == "" {
		return nil, fmt.Errorf("INVOICE_PAYEE_ADDRESS is required")
	}
	if cfg.Invoice.MerchantName == "" {
		cfg.Invoice.MerchantName = cfg.Invoice.IssuerName
	}

	return cfg, nil
}

// Location resolves the configured invoice timezone, falling back to UTC
func (c *InvoiceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RequestTimeoutDuration returns the per-request timeout
func (c *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// AllowedOrigins splits CORSOrigins into a slice
func (c *ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits on "|" since address lines routinely contain commas
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsRGB parses "r,g,b"
func getEnvAsRGB(key string, defaultValue [3]int) [3]int {
	parts := strings.Split(getEnv(key, ""), ",")
	if len(parts) != 3 {
		return defaultValue
	}
	var rgb [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return defaultValue
		}
		rgb[i] = v
	}
	return rgb
}
