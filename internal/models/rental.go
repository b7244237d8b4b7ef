package models

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatusType string

const (
	RentalStatusDraft            RentalStatusType = "draft"
	RentalStatusPendingSignature RentalStatusType = "pending_signature"
	RentalStatusActive           RentalStatusType = "active"
	RentalStatusTerminated       RentalStatusType = "terminated"
	RentalStatusExpired          RentalStatusType = "expired"
)

func ValidRentalStatus(s RentalStatusType) bool {
	switch s {
	case RentalStatusDraft, RentalStatusPendingSignature, RentalStatusActive,
		RentalStatusTerminated, RentalStatusExpired:
		return true
	}
	return false
}

// Occupies reports whether a rental in this status holds its unit.
func (s RentalStatusType) Occupies() bool { return s == RentalStatusActive }

// Releases reports whether a rental in this status frees its unit.
func (s RentalStatusType) Releases() bool {
	return s == RentalStatusTerminated || s == RentalStatusExpired
}

// UnitStatusForRental maps a rental status onto the unit status the sync
// flow must write, or ("", false) when the rental status does not touch the
// unit (draft / pending_signature leave the unit as-is).
func UnitStatusForRental(s RentalStatusType) (UnitStatusType, bool) {
	switch {
	case s.Occupies():
		return UnitStatusOccupied, true
	case s.Releases():
		return UnitStatusAvailable, true
	}
	return "", false
}

// Rental links one customer to one unit for a date range.
type Rental struct {
	Versioned

	ID         uuid.UUID        `json:"id"`
	CustomerID uuid.UUID        `json:"customer_id"`
	UnitID     uuid.UUID        `json:"unit_id"`
	Status     RentalStatusType `json:"status"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	MonthlyRate     float64 `json:"monthly_rate"`
	SecurityDeposit float64 `json:"security_deposit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Rental) GetID() string { return r.ID.String() }
