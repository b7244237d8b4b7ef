package models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatusType string

const (
	InvoiceStatusDraft     InvoiceStatusType = "draft"
	InvoiceStatusSent      InvoiceStatusType = "sent"
	InvoiceStatusPaid      InvoiceStatusType = "paid"
	InvoiceStatusOverdue   InvoiceStatusType = "overdue"
	InvoiceStatusCancelled InvoiceStatusType = "cancelled"
)

func ValidInvoiceStatus(s InvoiceStatusType) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceStatusAfterRecalc decides the invoice status once amount_paid has
// been recomputed from completed payments. A cancelled invoice never flips;
// full payment marks it paid; a paid invoice whose total drops below
// amount_due (refund) reverts to sent.
func InvoiceStatusAfterRecalc(current InvoiceStatusType, amountDue, amountPaid float64) InvoiceStatusType {
	if current == InvoiceStatusCancelled {
		return current
	}
	if amountPaid >= amountDue && amountDue > 0 {
		return InvoiceStatusPaid
	}
	if current == InvoiceStatusPaid {
		return InvoiceStatusSent
	}
	return current
}

// Invoice bills a customer, optionally against a specific rental.
// AmountPaid is denormalized: always the sum of the invoice's completed
// payments, recomputed inside the same transaction as any payment write.
type Invoice struct {
	Versioned

	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	RentalID      *uuid.UUID `json:"rental_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`

	AmountDue  float64           `json:"amount_due"`
	AmountPaid float64           `json:"amount_paid"`
	DueDate    time.Time         `json:"due_date"`
	Status     InvoiceStatusType `json:"status"`
	PaidAt     *time.Time        `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Invoice) GetID() string { return i.ID.String() }

// Balance is the remaining amount owed.
func (i *Invoice) Balance() float64 {
	b := i.AmountDue - i.AmountPaid
	if b < 0 {
		return 0
	}
	return b
}
