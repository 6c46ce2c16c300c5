package invoice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/trip-invoice/internal/billing"
	"github.com/richxcame/trip-invoice/pkg/common"
	"github.com/richxcame/trip-invoice/pkg/currency"
	"github.com/richxcame/trip-invoice/pkg/logger"
	"github.com/richxcame/trip-invoice/pkg/validation"
	"go.uber.org/zap"
)

// ServiceInterface is what the handler needs from the invoice service
type ServiceInterface interface {
	Generate(ctx context.Context, req *InvoiceRequest) (*RenderedDocument, error)
	Preview(ctx context.Context, req *InvoiceRequest) (*billing.Result, error)
}

// Handler handles HTTP requests for invoices
type Handler struct {
	service      ServiceInterface
	currencyCode string
}

// NewHandler creates a new invoice handler
func NewHandler(service ServiceInterface, currencyCode string) *Handler {
	return &Handler{service: service, currencyCode: currencyCode}
}

// PreviewResponse is the JSON body of a preview request
type PreviewResponse struct {
	Items     []billing.LineItem     `json:"items"`
	Totals    billing.Totals         `json:"totals"`
	Mileage   billing.MileageSummary `json:"mileage"`
	Formatted FormattedTotals        `json:"formatted"`
}

// FormattedTotals carries display strings for the headline figures
type FormattedTotals struct {
	Subtotal   string `json:"subtotal"`
	GrandTotal string `json:"grand_total"`
	NetPayable string `json:"net_payable"`
}

// Generate renders an invoice and streams it back as a PDF download
// POST /api/v1/invoices
func (h *Handler) Generate(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "failed to generate invoice")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Header("X-Invoice-Number", doc.BillNumber)
	c.Data(http.StatusOK, ContentType, doc.Content)
}

// Preview returns the computed charges without rendering a document
// POST /api/v1/invoices/preview
func (h *Handler) Preview(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Preview(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, "failed to preview invoice")
		return
	}

	common.SuccessResponse(c, PreviewResponse{
		Items:   result.Items,
		Totals:  result.Totals,
		Mileage: result.Mileage,
		Formatted: FormattedTotals{
			Subtotal:   currency.FormatAmount(result.Totals.Subtotal, h.currencyCode),
			GrandTotal: currency.FormatAmount(result.Totals.GrandTotal, h.currencyCode),
			NetPayable: currency.FormatAmount(result.Totals.NetPayable, h.currencyCode),
		},
	})
}

func (h *Handler) handleError(c *gin.Context, err error, fallback string) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		common.ErrorResponseWithDetails(c, http.StatusBadRequest, "validation failed", verr.Errors)
		return
	}
	if appErr, ok := common.AsAppError(err); ok {
		if appErr.Code >= http.StatusInternalServerError {
			logger.WithContext(c.Request.Context()).Error(fallback, zap.Error(err))
		}
		common.AppErrorResponse(c, appErr)
		return
	}
	logger.WithContext(c.Request.Context()).Error(fallback, zap.Error(err))
	common.AppErrorResponse(c, common.NewInternalServerError(fallback))
}

// RegisterRoutes registers invoice routes
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	invoices := r.Group("/api/v1/invoices")
	{
		invoices.POST("", h.Generate)
		invoices.POST("/preview", h.Preview)
	}
}
