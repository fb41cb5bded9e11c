package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/udyamworks/billbook/internal/invoice/domain"
)

type invoiceItemRequest struct {
	ProductName    string  `json:"product_name"`
	Description    string  `json:"description"`
	HSN            string  `json:"hsn"`
	Qty            float64 `json:"qty" binding:"gt=0"`
	UOM            string  `json:"uom"`
	Rate           float64 `json:"rate" binding:"gte=0"`
	DiscountAmount float64 `json:"discount_amount" binding:"gte=0"`
	CGSTPercent    float64 `json:"cgst_percent" binding:"gte=0,lte=100"`
	SGSTPercent    float64 `json:"sgst_percent" binding:"gte=0,lte=100"`
	IGSTPercent    float64 `json:"igst_percent" binding:"gte=0,lte=100"`
}

type invoiceRequest struct {
	InvoiceDate     string               `json:"invoice_date"`
	CustomerID      string               `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	CustomerGSTIN   string               `json:"customer_gstin" binding:"omitempty,gstin"`
	CustomerAddress string               `json:"customer_address"`
	CustomerPhone   string               `json:"customer_phone"`
	Items           []invoiceItemRequest `json:"items" binding:"dive"`
	PaymentStatus   string               `json:"payment_status"`
	PaymentMethod   string               `json:"payment_method"`
	PaidAmount      *float64             `json:"paid_amount" binding:"omitempty,gte=0"`
	TransactionRef  string               `json:"transaction_ref"`
	Notes           string               `json:"notes"`
}

func (r invoiceRequest) toInput() (invoicedomain.InvoiceInput, error) {
	var invoiceDate *time.Time
	if strings.TrimSpace(r.InvoiceDate) != "" {
		parsed, err := parseOptionalTime(r.InvoiceDate, false)
		if err != nil {
			return invoicedomain.InvoiceInput{}, newValidationError("invoice_date", "invalid_invoice_date", "invalid invoice_date")
		}
		invoiceDate = parsed
	}

	items := make([]invoicedomain.ItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = invoicedomain.ItemInput{
			ProductName:    item.ProductName,
			Description:    item.Description,
			HSN:            item.HSN,
			Qty:            item.Qty,
			UOM:            item.UOM,
			Rate:           item.Rate,
			DiscountAmount: item.DiscountAmount,
			CGSTPercent:    item.CGSTPercent,
			SGSTPercent:    item.SGSTPercent,
			IGSTPercent:    item.IGSTPercent,
		}
	}

	return invoicedomain.InvoiceInput{
		InvoiceDate:     invoiceDate,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerGSTIN:   r.CustomerGSTIN,
		CustomerAddress: r.CustomerAddress,
		CustomerPhone:   r.CustomerPhone,
		Items:           items,
		PaymentStatus:   r.PaymentStatus,
		PaymentMethod:   r.PaymentMethod,
		PaidAmount:      r.PaidAmount,
		TransactionRef:  r.TransactionRef,
		Notes:           r.Notes,
	}, nil
}

type invoicePaymentRequest struct {
	Status         string   `json:"status" binding:"required"`
	Method         string   `json:"method"`
	PaidAmount     *float64 `json:"paid_amount" binding:"omitempty,gte=0"`
	TransactionRef string   `json:"transaction_ref"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input, err := req.toInput()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	startDate, err := parseOptionalTime(c.Query("start_date"), false)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalTime(c.Query("end_date"), true)
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}
	skip, err := parseOptionalInt(c.Query("skip"), 0)
	if err != nil {
		AbortWithError(c, newValidationError("skip", "invalid_skip", "invalid skip"))
		return
	}
	limit, err := parseOptionalInt(c.Query("limit"), 50)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}
	includeDeleted, err := parseOptionalBool(c.Query("include_deleted"))
	if err != nil {
		AbortWithError(c, newValidationError("include_deleted", "invalid_include_deleted", "invalid include_deleted"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		StartDate:      startDate,
		EndDate:        endDate,
		Skip:           skip,
		Limit:          limit,
		IncludeDeleted: includeDeleted,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	input, err := req.toInput()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoicePayment(c *gin.Context) {
	var req invoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdatePayment(c.Request.Context(), c.Param("id"), invoicedomain.PaymentInput{
		Status:         req.Status,
		Method:         req.Method,
		PaidAmount:     req.PaidAmount,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.SoftDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RestoreInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
