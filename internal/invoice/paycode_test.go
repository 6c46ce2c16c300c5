package invoice

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURI(t *testing.T) {
	tests := []struct {
		name     string
		payee    string
		merchant string
		amount   string
		currency string
		want     string
	}{
		{
			name:     "two decimals",
			payee:    "acme@upi",
			merchant: "Acme",
			amount:   "2230",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Acme&am=2230.00&cu=INR",
		},
		{
			name:     "spaces encoded as %20",
			payee:    "acme@upi",
			merchant: "Acme Travels & Tours",
			amount:   "99.5",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Acme%20Travels%20%26%20Tours&am=99.50&cu=INR",
		},
		{
			name:     "punctuation left as in URI components",
			payee:    "acme@upi",
			merchant: "Gokilam (Travels)! *24x7* O'Neil~",
			amount:   "1",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Gokilam%20(Travels)!%20*24x7*%20O'Neil~&am=1.00&cu=INR",
		},
		{
			name:     "non-ASCII encoded per UTF-8 byte",
			payee:    "acme@upi",
			merchant: "Café/Tours+",
			amount:   "1",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Caf%C3%A9%2FTours%2B&am=1.00&cu=INR",
		},
		{
			name:     "rounds half away from zero",
			payee:    "acme@upi",
			merchant: "Acme",
			amount:   "10.005",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Acme&am=10.01&cu=INR",
		},
		{
			name:     "negative requested as zero",
			payee:    "acme@upi",
			merchant: "Acme",
			amount:   "-200",
			currency: "INR",
			want:     "upi://pay?pa=acme@upi&pn=Acme&am=0.00&cu=INR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaymentURI(tt.payee, tt.merchant, decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQREncoder_Encode(t *testing.T) {
	enc := NewQREncoder()

	data, err := enc.Encode("upi://pay?pa=acme@upi&pn=Acme&am=2230.00&cu=INR")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	edge := enc.Size + 2*enc.QuietZone
	assert.Equal(t, edge, img.Bounds().Dx())
	assert.Equal(t, edge, img.Bounds().Dy())

	// quiet zone is white
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	// the top-left finder pattern sits on the diagonal inside the quiet zone
	dark := false
	for i := enc.QuietZone; i < enc.QuietZone+enc.Size/4; i++ {
		if r, _, _, _ := img.At(i, i).RGBA(); r == 0 {
			dark = true
			break
		}
	}
	assert.True(t, dark, "expected dark modules inside the quiet zone")
}

func TestQREncoder_EmptyContent(t *testing.T) {
	_, err := NewQREncoder().Encode("")
	assert.Error(t, err)
}

func TestQREncoder_TooSmall(t *testing.T) {
	// a 1px target cannot hold the code's modules
	_, err := QREncoder{Size: 1}.Encode("upi://pay?pa=acme@upi")
	assert.Error(t, err)
}
