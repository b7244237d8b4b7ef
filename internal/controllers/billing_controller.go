package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// BillingController serves invoices, payments and stored payment methods.
type BillingController struct {
	billingService *services.BillingService
}

func NewBillingController(billingService *services.BillingService) *BillingController {
	return &BillingController{billingService: billingService}
}

/* ───────────── invoices ───────────── */

// CreateInvoiceHandler => POST /api/v1/invoices
func (c *BillingController) CreateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	inv, err := c.billingService.CreateInvoice(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.InvoiceResponse{Invoice: inv})
}

// ListInvoicesHandler => GET /api/v1/invoices
func (c *BillingController) ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	invoices, err := c.billingService.ListInvoices(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.InvoiceListResponse{Invoices: invoices})
}

// GetInvoiceHandler => GET /api/v1/invoices/{invoiceID}
func (c *BillingController) GetInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid invoice id", nil, err)
		return
	}

	inv, err := c.billingService.GetInvoice(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if inv == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.InvoiceResponse{Invoice: inv})
}

// UpdateInvoiceHandler => PATCH /api/v1/invoices/{invoiceID}
func (c *BillingController) UpdateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid invoice id", nil, err)
		return
	}

	var req dtos.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	inv, err := c.billingService.UpdateInvoice(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.InvoiceResponse{Invoice: inv})
}

// DeleteInvoiceHandler => DELETE /api/v1/invoices/{invoiceID}
func (c *BillingController) DeleteInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid invoice id", nil, err)
		return
	}

	if err := c.billingService.DeleteInvoice(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInvoicePaymentsHandler => GET /api/v1/invoices/{invoiceID}/payments
func (c *BillingController) ListInvoicePaymentsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid invoice id", nil, err)
		return
	}

	inv, err := c.billingService.GetInvoice(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if inv == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}

	payments, err := c.billingService.ListPaymentsByInvoice(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentListResponse{Payments: payments})
}

/* ───────────── payments ───────────── */

// CreatePaymentHandler => POST /api/v1/payments
func (c *BillingController) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	payment, invoice, err := c.billingService.RecordPayment(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.PaymentResponse{Payment: payment, Invoice: invoice})
}

// ListPaymentsHandler => GET /api/v1/payments
func (c *BillingController) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	payments, err := c.billingService.ListPayments(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentListResponse{Payments: payments})
}

// GetPaymentHandler => GET /api/v1/payments/{paymentID}
func (c *BillingController) GetPaymentHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "paymentID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payment id", nil, err)
		return
	}

	payment, err := c.billingService.GetPayment(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if payment == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentResponse{Payment: payment})
}

// UpdatePaymentStatusHandler => PATCH /api/v1/payments/{paymentID}/status
func (c *BillingController) UpdatePaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "paymentID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payment id", nil, err)
		return
	}

	var req dtos.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	payment, invoice, err := c.billingService.SetPaymentStatus(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentResponse{Payment: payment, Invoice: invoice})
}

/* ───────────── payment methods ───────────── */

// ListPaymentMethodsHandler => GET /api/v1/payment-methods
func (c *BillingController) ListPaymentMethodsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	methods, err := c.billingService.ListAllPaymentMethods(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentMethodListResponse{PaymentMethods: methods})
}

// CreatePaymentMethodHandler => POST /api/v1/payment-methods
func (c *BillingController) CreatePaymentMethodHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	m, err := c.billingService.CreatePaymentMethod(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.PaymentMethodResponse{PaymentMethod: m})
}

// DeletePaymentMethodHandler => DELETE /api/v1/payment-methods/{paymentMethodID}
func (c *BillingController) DeletePaymentMethodHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "paymentMethodID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payment method id", nil, err)
		return
	}

	if err := c.billingService.DeletePaymentMethod(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
