package invoice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// BillNumber formats an invoice identifier: PREFIX-YYYYMMDD-HHMMSS-NNN.
// It is meant for display, not as a unique key.
func BillNumber(prefix string, at time.Time, suffix int) string {
	return fmt.Sprintf("%s-%s-%s-%03d", prefix, at.Format("20060102"), at.Format("150405"), suffix)
}

// RandomSuffix draws a number uniformly from [100, 999]
func RandomSuffix() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return 100
	}
	return int(n.Int64()) + 100
}

// FileName suggests a download name for an invoice. Every character of the
// customer name outside [A-Za-z0-9] becomes an underscore.
func FileName(billNumber, customerName string) string {
	clean := "Customer"
	if customerName != "" {
		clean = unsafeFileChars.ReplaceAllString(customerName, "_")
	}
	return fmt.Sprintf("%s_%s.pdf", billNumber, clean)
}
