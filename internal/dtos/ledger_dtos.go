package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateLedgerEntryRequest struct {
	Kind       string    `json:"kind" validate:"required,oneof=income expense adjustment"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	Memo       string    `json:"memo,omitempty" validate:"omitempty,max=500"`
	OccurredOn time.Time `json:"occurred_on" validate:"required"`

	FacilityID *uuid.UUID `json:"facility_id,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	RentalID   *uuid.UUID `json:"rental_id,omitempty"`
}

type LedgerEntryResponse struct {
	LedgerEntry *models.LedgerEntry `json:"ledger_entry"`
}

type LedgerEntryListResponse struct {
	LedgerEntries []*models.LedgerEntry `json:"ledger_entries"`
}
