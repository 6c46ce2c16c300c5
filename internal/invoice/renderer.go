package invoice

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/richxcame/trip-invoice/internal/billing"
	"github.com/richxcame/trip-invoice/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Page geometry in millimetres (A4 portrait)
const (
	pageWidth    = 210.0
	marginX      = 15.0
	contentRight = pageWidth - marginX
	leftColWidth = 115.0
	rightColX    = 130.0
	lineHeight   = 5.0

	summaryHeight = 35.0
	tableGap      = 6.0

	totalsLabelX    = 130.0
	totalsValueX    = 190.0
	totalsStep      = 7.0
	totalsMaxY      = 240.0
	totalsResumeY   = 20.0
	paymentCodeSize = 35.0
	paymentCodeLift = 65.0

	qrCaptionError = "Error generating QR Code"
	placeholder    = "-"
)

var (
	textBlack  = [3]int{0, 0, 0}
	textGray   = [3]int{80, 80, 80}
	textMuted  = [3]int{100, 100, 100}
	textRed    = [3]int{200, 0, 0}
	textAlert  = [3]int{255, 0, 0}
	textAmber  = [3]int{220, 140, 0}
	panelFill  = [3]int{245, 247, 250}
	stripeFill = [3]int{245, 245, 245}
)

// RenderedDocument is a finished invoice
type RenderedDocument struct {
	Content     []byte
	BillNumber  string
	FileName    string
	Pages       int
	PaymentCode bool
	IssuedAt    time.Time
}

// ContentType is the media type of RenderedDocument.Content
const ContentType = "application/pdf"

// Renderer lays out invoices on fixed page coordinates. It holds only
// immutable configuration and may be shared between goroutines.
type Renderer struct {
	branding Branding
	encoder  PaymentCodeEncoder
	now      func() time.Time
	suffix   func() int
}

// RendererOption configures a Renderer
type RendererOption func(*Renderer)

// WithEncoder replaces the payment code encoder
func WithEncoder(enc PaymentCodeEncoder) RendererOption {
	return func(r *Renderer) {
		r.encoder = enc
	}
}

// WithClock replaces the clock used for the issue timestamp
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithSuffixSource replaces the random bill-number suffix source
func WithSuffixSource(suffix func() int) RendererOption {
	return func(r *Renderer) {
		r.suffix = suffix
	}
}

// NewRenderer creates a renderer for one deployment's branding
func NewRenderer(branding Branding, opts ...RendererOption) *Renderer {
	r := &Renderer{
		branding: branding.withDefaults(),
		encoder:  NewQREncoder(),
		now:      time.Now,
		suffix:   RandomSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Branding returns the renderer's effective branding
func (r *Renderer) Branding() Branding {
	return r.branding
}

// Render lays out an invoice for trip and its computed result. A payment
// code failure is not an error: a caption replaces the code and the rest of
// the document is still produced. Once started, a render runs to completion;
// ctx only carries request-scoped logging.
func (r *Renderer) Render(ctx context.Context, trip billing.TripInput, result billing.Result) (*RenderedDocument, error) {
	b := r.branding
	issued := r.now().In(b.Location)
	billNo := BillNumber(b.BillPrefix, issued, r.suffix())
	payURI := PaymentURI(b.PayeeAddress, b.MerchantName, result.Totals.NetPayable, b.CurrencyCode)

	// Encode the payment code while the pages are laid out
	var (
		qrPNG []byte
		qrErr error
		g     errgroup.Group
	)
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("payment code encoder panicked: %v", p)
			}
		}()
		qrPNG, err = r.encoder.Encode(payURI)
		return err
	})

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(b.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(marginX, totalsResumeY, marginX)
	pdf.SetTitle(billNo, true)
	pdf.SetAuthor(b.IssuerName, true)
	if b.Creator != "" {
		pdf.SetCreator(b.Creator, true)
	}
	pdf.SetCreationDate(issued)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	l := &layout{pdf: pdf, tr: tr}

	pdf.AddPage()
	contentY := r.drawMasthead(l)
	leftBottom := r.drawParties(l, trip, contentY, billNo, issued)
	summaryY := math.Max(leftBottom+5, contentY+24)
	r.drawTripSummary(l, trip, result.Mileage, summaryY)

	table := newChargeTable(pdf, tr, tableStyle{
		x:           marginX,
		width:       contentRight - marginX,
		amountWidth: 50,
		fontSize:    10,
		lineHeight:  lineHeight,
		padding:     3,
		topMargin:   totalsResumeY,
		bottomLimit: 282,
		headFill:    b.AccentColor,
		stripeFill:  stripeFill,
		borderGray:  200,
	}, [2]string{"Description", fmt.Sprintf("Amount (%s)", b.CurrencySymbol)}, summaryY+summaryHeight+tableGap)
	for _, item := range result.Items {
		table.AddRow(item.Description, billing.FormatAmount(item.Amount))
	}

	totalsBottom := r.drawTotals(l, result.Totals, table.Bottom()+10)

	qrErr = g.Wait()
	_, pageHeight := pdf.GetPageSize()
	qrY := pageHeight - paymentCodeLift
	if totalsBottom > qrY-4 {
		pdf.AddPage()
	}
	embedded := r.drawPaymentCode(ctx, l, payURI, qrPNG, qrErr, qrY)
	r.drawFooter(l, pageHeight)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write invoice pdf: %w", err)
	}

	return &RenderedDocument{
		Content:     buf.Bytes(),
		BillNumber:  billNo,
		FileName:    FileName(billNo, trip.Customer.Name),
		Pages:       pdf.PageCount(),
		PaymentCode: embedded,
		IssuedAt:    issued,
	}, nil
}

// drawMasthead prints the issuer block and returns the Y where content starts
func (r *Renderer) drawMasthead(l *layout) float64 {
	b := r.branding

	l.font("B", 22)
	l.color(b.AccentColor)
	l.center(20, b.IssuerName)

	l.font("", 10)
	l.color(textGray)
	y := 28.0
	lines := append(append(append([]string{}, b.TaxIDs...), b.AddressLines...), b.ContactLines...)
	for _, line := range lines {
		l.center(y, line)
		y += lineHeight
	}

	ruleY := y
	l.pdf.SetLineWidth(0.5)
	l.pdf.SetDrawColor(200, 200, 200)
	l.pdf.Line(marginX, ruleY, contentRight, ruleY)

	return ruleY + 10
}

// drawParties prints the bill-to column and the invoice-details column.
// It returns the Y below the bill-to column.
func (r *Renderer) drawParties(l *layout, trip billing.TripInput, top float64, billNo string, issued time.Time) float64 {
	c := trip.Customer

	l.color(textBlack)
	l.font("B", 10)
	l.text(marginX, top, "Bill To:")
	l.font("", 10)

	y := top + 6
	name := c.Name
	if c.Title != "" {
		name = fmt.Sprintf("%s. %s", c.Title, c.Name)
	}
	l.text(marginX, y, "Customer Name: "+orDash(name))
	y += lineHeight

	if c.CompanyName != "" {
		l.text(marginX, y, "Company: "+c.CompanyName)
		y += lineHeight
	}
	if c.Address != "" {
		for _, line := range l.wrap("Address: "+c.Address, leftColWidth) {
			l.pdf.Text(marginX, y, line)
			y += lineHeight
		}
	}
	if c.TaxNumber != "" {
		l.text(marginX, y, fmt.Sprintf("%s No: %s", r.branding.TaxLabel, c.TaxNumber))
		y += lineHeight
	}

	l.text(marginX, y, "Vehicle No: "+orDash(trip.Vehicle.Registration))
	y += lineHeight
	l.text(marginX, y, "Driver Name: "+orDash(trip.DriverName))
	y += lineHeight

	if trip.StartLocation != "" {
		l.text(marginX, y, "From: "+trip.StartLocation)
		y += lineHeight
	}
	if trip.EndLocation != "" {
		l.text(marginX, y, "To: "+trip.EndLocation)
		y += lineHeight
	}

	l.font("B", 10)
	l.text(rightColX, top, "Invoice Details:")
	l.font("", 10)
	l.text(rightColX, top+6, "Bill No: "+billNo)
	l.text(rightColX, top+12, "Date: "+issued.Format("02/01/2006"))
	l.text(rightColX, top+18, "Time: "+issued.Format("3:04:05 PM"))

	return y
}

func (r *Renderer) drawTripSummary(l *layout, trip billing.TripInput, mileage billing.MileageSummary, top float64) {
	l.pdf.SetFillColor(panelFill[0], panelFill[1], panelFill[2])
	l.pdf.Rect(marginX, top, contentRight-marginX, summaryHeight, "F")

	labelY, valueY := top+6, top+12
	labelY2, valueY2 := top+20, top+26

	l.color(textBlack)
	l.labelled(20, labelY, valueY, "Trip Start", r.formatTimestamp(trip.StartTime))
	l.labelled(70, labelY, valueY, "Trip End", r.formatTimestamp(trip.EndTime))
	l.labelled(120, labelY, valueY, "Vehicle Type", orDash(trip.Vehicle.Type))

	l.font("", 9)
	l.text(165, labelY, "KM Reading")
	l.font("", 7)
	l.text(165, valueY, fmt.Sprintf("Start: %s km", trip.StartKm))
	l.text(165, valueY+4, fmt.Sprintf("Closing: %s km", trip.EndKm))

	l.labelled(20, labelY2, valueY2, "Total KM", fmt.Sprintf("%s km", mileage.TotalKm))
	if mileage.FreeKm.IsPositive() {
		l.labelled(70, labelY2, valueY2, "Free KM", fmt.Sprintf("%s km", mileage.FreeKm))
		l.labelled(120, labelY2, valueY2, "Chargeable KM", fmt.Sprintf("%s km", mileage.ChargeableKm))
	}
}

// drawTotals prints the totals block starting at y and returns its bottom
func (r *Renderer) drawTotals(l *layout, t billing.Totals, y float64) float64 {
	b := r.branding
	if y > totalsMaxY {
		l.pdf.AddPage()
		y = totalsResumeY
	}

	amount := func(d decimal.Decimal) string {
		return b.CurrencySymbol + ":" + billing.FormatAmount(d)
	}

	l.font("", 10)
	l.color(textBlack)
	l.pair(y, "Subtotal:", amount(t.Subtotal))
	y += totalsStep

	if t.DiscountApplied {
		l.color(textRed)
		l.pair(y, "Discount:", "-"+amount(t.Discount))
		l.color(textBlack)
		y += totalsStep
	}

	if t.TaxApplied {
		if b.SplitTax {
			first, second := t.SplitTax()
			l.pair(y, fmt.Sprintf("%s (%s%%):", b.SplitTaxLabels[0], first.Percent), amount(first.Amount))
			y += totalsStep
			l.pair(y, fmt.Sprintf("%s (%s%%):", b.SplitTaxLabels[1], second.Percent), amount(second.Amount))
			y += totalsStep
		} else {
			l.pair(y, fmt.Sprintf("%s (%s%%):", b.TaxLabel, t.TaxPercent), amount(t.Tax))
			y += totalsStep
		}
	}

	if t.Advance.IsPositive() {
		l.color(textAmber)
		l.pair(y, "Advance:", "-"+amount(t.Advance))
		l.color(textBlack)
		y += totalsStep
	}

	l.pdf.SetLineWidth(0.5)
	l.pdf.SetDrawColor(0, 0, 0)
	l.pdf.Line(totalsLabelX-5, y-4, contentRight, y-4)

	l.font("B", 12)
	l.pair(y+2, "Grand Total:", amount(t.NetPayable))

	return y + 2
}

// drawPaymentCode places the QR image and its link, or an error caption.
// It reports whether the image was embedded.
func (r *Renderer) drawPaymentCode(ctx context.Context, l *layout, uri string, png []byte, encErr error, y float64) bool {
	x := (pageWidth - paymentCodeSize) / 2

	if encErr == nil {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		l.pdf.RegisterImageOptionsReader("payment-code", opts, bytes.NewReader(png))
		if l.pdf.Ok() {
			l.pdf.ImageOptions("payment-code", x, y, paymentCodeSize, paymentCodeSize, false, opts, 0, "")
			l.pdf.LinkString(x, y, paymentCodeSize, paymentCodeSize, uri)

			l.font("B", 9)
			l.color(r.branding.AccentColor)
			l.center(y+paymentCodeSize+5, r.branding.ScanCaption)
			return true
		}
		encErr = l.pdf.Error()
		l.pdf.ClearError()
	}

	logger.WithContext(ctx).Warn("Payment code unavailable, printing caption instead", zap.Error(encErr))
	l.font("", 8)
	l.color(textAlert)
	l.center(y+10, qrCaptionError)
	return false
}

func (r *Renderer) drawFooter(l *layout, pageHeight float64) {
	y := pageHeight - 20
	for i, line := range r.branding.FooterLines {
		if i == 0 {
			l.font("I", 10)
		} else {
			l.font("", 10)
		}
		l.color(textMuted)
		l.center(y, line)
		y += lineHeight
	}
}

func (r *Renderer) formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return placeholder
	}
	return t.In(r.branding.Location).Format("02/01/2006, 3:04 PM")
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
