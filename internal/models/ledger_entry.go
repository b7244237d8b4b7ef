package models

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntryKind string

const (
	LedgerIncome     LedgerEntryKind = "income"
	LedgerExpense    LedgerEntryKind = "expense"
	LedgerAdjustment LedgerEntryKind = "adjustment"
)

func ValidLedgerEntryKind(k LedgerEntryKind) bool {
	switch k {
	case LedgerIncome, LedgerExpense, LedgerAdjustment:
		return true
	}
	return false
}

// LedgerEntry is an append-only money record. The API exposes create and
// list only; there is no update or delete path.
type LedgerEntry struct {
	ID      uuid.UUID       `json:"id"`
	OwnerID uuid.UUID       `json:"owner_id"`
	Kind    LedgerEntryKind `json:"kind"`
	Amount  float64         `json:"amount"`
	Memo    string          `json:"memo,omitempty"`

	OccurredOn time.Time `json:"occurred_on"`

	FacilityID *uuid.UUID `json:"facility_id,omitempty"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	RentalID   *uuid.UUID `json:"rental_id,omitempty"`
	PaymentID  *uuid.UUID `json:"payment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
