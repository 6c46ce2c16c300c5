package invoice

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillNumber(t *testing.T) {
	at := time.Date(2025, 3, 7, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "INV-20250307-090503-456", BillNumber("INV", at, 456))
	assert.Equal(t, "TRV-20250307-090503-100", BillNumber("TRV", at, 100))
}

func TestRandomSuffix_Range(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := RandomSuffix()
		assert.GreaterOrEqual(t, n, 100)
		assert.LessOrEqual(t, n, 999)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 100, "suffixes should vary")
}

func TestBillNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{8}-\d{6}-\d{3}$`)
	bill := BillNumber("INV", time.Now(), RandomSuffix())
	assert.Regexp(t, pattern, bill)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		want     string
	}{
		{"plain", "Ravi", "INV-1_Ravi.pdf"},
		{"space", "Ravi Kumar", "INV-1_Ravi_Kumar.pdf"},
		{"consecutive replacements kept", "Dr.  R. Kumar", "INV-1_Dr___R__Kumar.pdf"},
		{"non ascii", "Zoë", "INV-1_Zo_.pdf"},
		{"empty", "", "INV-1_Customer.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName("INV-1", tt.customer))
		})
	}
}
