package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"rupee prefix", "2230", "INR", "₹2230.00"},
		{"dollar rounds", "15.505", "USD", "$15.51"},
		{"suffix currency", "150", "TMT", "150.00 TMT"},
		{"unknown code", "150", "XYZ", "150.00 XYZ"},
		{"negative prefix", "-12.5", "INR", "-₹12.50"},
		{"zero", "0", "INR", "₹0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "Rs", Symbol("LKR"))
	assert.Equal(t, "XYZ", Symbol("XYZ"))
}
