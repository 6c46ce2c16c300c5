package invoice

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
)

// PaymentCodeEncoder turns a payment request URI into a PNG image
type PaymentCodeEncoder interface {
	Encode(content string) ([]byte, error)
}

// QREncoder renders QR codes at error-correction level H
type QREncoder struct {
	// Size is the edge length of the code itself in pixels
	Size int
	// QuietZone is the white border added on every side, in pixels
	QuietZone int
}

// NewQREncoder returns an encoder with print-friendly defaults
func NewQREncoder() QREncoder {
	return QREncoder{Size: 512, QuietZone: 32}
}

// Encode renders content as a PNG QR code
func (e QREncoder) Encode(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("payment code: empty content")
	}

	code, err := qr.Encode(content, qr.H, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("payment code: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, e.Size, e.Size)
	if err != nil {
		return nil, fmt.Errorf("payment code: scale: %w", err)
	}

	edge := e.Size + 2*e.QuietZone
	canvas := imaging.New(edge, edge, color.White)
	framed := imaging.Paste(canvas, scaled, image.Pt(e.QuietZone, e.QuietZone))

	var buf bytes.Buffer
	if err := png.Encode(&buf, framed); err != nil {
		return nil, fmt.Errorf("payment code: png: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentURI builds a UPI payment request for amount. Negative amounts are
// requested as zero.
func PaymentURI(payee, merchantName string, amount decimal.Decimal, currency string) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s",
		payee,
		encodeComponent(merchantName),
		amount.StringFixed(2),
		currency,
	)
}

// encodeComponent percent-encodes every UTF-8 byte of s outside the URI
// component unreserved set: letters, digits and -_.!~*'()
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
