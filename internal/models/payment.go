package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatusType string

const (
	PaymentStatusPending   PaymentStatusType = "pending"
	PaymentStatusCompleted PaymentStatusType = "completed"
	PaymentStatusFailed    PaymentStatusType = "failed"
	PaymentStatusRefunded  PaymentStatusType = "refunded"
)

func ValidPaymentStatus(s PaymentStatusType) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// ValidPaymentTransition lists the allowed payment status moves. Completed
// money can only be refunded; failed and refunded are terminal.
func ValidPaymentTransition(from, to PaymentStatusType) bool {
	switch from {
	case PaymentStatusPending:
		return to == PaymentStatusCompleted || to == PaymentStatusFailed
	case PaymentStatusCompleted:
		return to == PaymentStatusRefunded
	}
	return false
}

// Payment records money taken (or attempted) against an invoice. Writing a
// payment in or out of `completed` triggers the invoice recompute in the
// same transaction.
type Payment struct {
	Versioned

	ID              uuid.UUID  `json:"id"`
	InvoiceID       uuid.UUID  `json:"invoice_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	PaymentMethodID *uuid.UUID `json:"payment_method_id,omitempty"`

	Amount float64           `json:"amount"`
	Status PaymentStatusType `json:"status"`

	// Set when the charge went through Stripe.
	ProviderChargeID *string `json:"provider_charge_id,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Payment) GetID() string { return p.ID.String() }
