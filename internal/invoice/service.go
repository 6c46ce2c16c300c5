package invoice

import (
	"context"
	"time"

	"github.com/richxcame/trip-invoice/internal/billing"
	"github.com/richxcame/trip-invoice/pkg/common"
	"github.com/richxcame/trip-invoice/pkg/logger"
	"github.com/richxcame/trip-invoice/pkg/tracing"
	"github.com/richxcame/trip-invoice/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "github.com/richxcame/trip-invoice/internal/invoice"

// DocumentRenderer turns a calculated invoice into a document
type DocumentRenderer interface {
	Render(ctx context.Context, trip billing.TripInput, result billing.Result) (*RenderedDocument, error)
}

// Service calculates and renders invoices
type Service struct {
	calculator billing.Calculator
	renderer   DocumentRenderer
	location   *time.Location
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLocation sets the timezone zone-less trip timestamps are entered in
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewService creates a new invoice service
func NewService(calculator billing.Calculator, renderer DocumentRenderer, opts ...ServiceOption) *Service {
	s := &Service{calculator: calculator, renderer: renderer, location: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview validates the request and returns the computed charges without
// rendering a document
func (s *Service) Preview(ctx context.Context, req *InvoiceRequest) (*billing.Result, error) {
	_, result, err := s.calculate(ctx, req)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Generate validates the request, computes the charges and renders the invoice
func (s *Service) Generate(ctx context.Context, req *InvoiceRequest) (*RenderedDocument, error) {
	start := time.Now()
	label := rentTypeLabel(req.RentType)

	trip, result, err := s.calculate(ctx, req)
	if err != nil {
		documentsTotal.WithLabelValues(label, "rejected").Inc()
		return nil, err
	}

	ctx, span := tracing.Tracer(tracerName).Start(ctx, "invoice.render")
	defer span.End()

	doc, err := s.renderer.Render(ctx, *trip, *result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		documentsTotal.WithLabelValues(label, "failed").Inc()
		logger.WithContext(ctx).Error("Failed to render invoice",
			zap.String("rent_type", req.RentType),
			zap.Error(err),
		)
		return nil, common.NewInternalError("failed to render invoice", err)
	}

	if !doc.PaymentCode {
		paymentCodeFailuresTotal.Inc()
	}
	documentsTotal.WithLabelValues(label, "rendered").Inc()
	renderDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.String("invoice.bill_number", doc.BillNumber),
		attribute.Int("invoice.pages", doc.Pages),
		attribute.Bool("invoice.payment_code", doc.PaymentCode),
	)

	logger.WithContext(ctx).Info("Invoice generated",
		zap.String("bill_number", doc.BillNumber),
		zap.String("rent_type", req.RentType),
		zap.Int("items", len(result.Items)),
		zap.String("net_payable", billing.FormatAmount(result.Totals.NetPayable)),
		zap.Int("pages", doc.Pages),
		zap.Int("bytes", len(doc.Content)),
	)

	return doc, nil
}

// calculate runs request validation and the billing calculator
func (s *Service) calculate(ctx context.Context, req *InvoiceRequest) (*billing.TripInput, *billing.Result, error) {
	_, span := tracing.Tracer(tracerName).Start(ctx, "invoice.calculate")
	defer span.End()
	span.SetAttributes(attribute.String("invoice.rent_type", req.RentType))

	if err := req.Validate(s.location); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, nil, err
	}

	trip, pricing, adj, err := req.ToBillingInput(s.location)
	if err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, nil, common.NewBadRequestError(err.Error(), err)
	}

	result := s.calculator.Compute(trip, pricing, adj)
	if err := CheckAdvance(result.Totals); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("invoice.items", len(result.Items)),
		attribute.String("invoice.net_payable", billing.FormatAmount(result.Totals.NetPayable)),
	)
	return &trip, &result, nil
}

// rentTypeLabel bounds the metric label to the known rent types
func rentTypeLabel(rentType string) string {
	for _, rt := range validation.RentTypes {
		if rt == rentType {
			return rentType
		}
	}
	return "unknown"
}
