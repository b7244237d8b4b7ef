package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateInvoiceRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" validate:"required"`
	RentalID   *uuid.UUID `json:"rental_id,omitempty"`
	AmountDue  float64    `json:"amount_due" validate:"required,gt=0"`
	DueDate    time.Time  `json:"due_date" validate:"required"`
	Status     string     `json:"status" validate:"omitempty,oneof=draft sent"`
}

type UpdateInvoiceRequest struct {
	AmountDue *float64   `json:"amount_due,omitempty" validate:"omitempty,gt=0"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=draft sent cancelled"`

	RowVersion int64 `json:"row_version"`
}

type InvoiceResponse struct {
	Invoice *models.Invoice `json:"invoice"`
}

type InvoiceListResponse struct {
	Invoices []*models.Invoice `json:"invoices"`
}
