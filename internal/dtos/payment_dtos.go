package dtos

import (
	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreatePaymentRequest struct {
	InvoiceID       uuid.UUID  `json:"invoice_id" validate:"required"`
	PaymentMethodID *uuid.UUID `json:"payment_method_id,omitempty"`
	Amount          float64    `json:"amount" validate:"required,gt=0"`

	// When true the stored payment method is charged through the card
	// provider before the payment row is written.
	Charge bool `json:"charge"`
}

type UpdatePaymentStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=completed failed refunded"`
	RowVersion int64  `json:"row_version"`
}

// PaymentResponse carries the payment plus the invoice as recomputed in the
// same transaction, so clients see the new balance without a second fetch.
type PaymentResponse struct {
	Payment *models.Payment `json:"payment"`
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

type PaymentListResponse struct {
	Payments []*models.Payment `json:"payments"`
}

type CreatePaymentMethodRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	Kind       string    `json:"kind" validate:"required,oneof=card bank_account"`
	Label      string    `json:"label" validate:"required,min=1"`
	Last4      string    `json:"last4" validate:"required,len=4,numeric"`
	IsDefault  bool      `json:"is_default"`

	StripePaymentMethodID *string `json:"stripe_payment_method_id,omitempty"`
}

type PaymentMethodResponse struct {
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
}

type PaymentMethodListResponse struct {
	PaymentMethods []*models.PaymentMethod `json:"payment_methods"`
}
