package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateRentalRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" validate:"required"`
	UnitID     uuid.UUID  `json:"unit_id" validate:"required"`
	Status     string     `json:"status" validate:"required,oneof=draft pending_signature active"`
	StartDate  time.Time  `json:"start_date" validate:"required"`
	EndDate    *time.Time `json:"end_date,omitempty"`

	// Zero means "use the unit's current rate".
	MonthlyRate     float64 `json:"monthly_rate" validate:"gte=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"gte=0"`
}

type UpdateRentalRequest struct {
	UnitID    *uuid.UUID `json:"unit_id,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=draft pending_signature active terminated expired"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	MonthlyRate     *float64 `json:"monthly_rate,omitempty" validate:"omitempty,gt=0"`
	SecurityDeposit *float64 `json:"security_deposit,omitempty" validate:"omitempty,gte=0"`

	RowVersion int64 `json:"row_version"`
}

type RentalResponse struct {
	Rental *models.Rental `json:"rental"`
}

type RentalListResponse struct {
	Rentals []*models.Rental `json:"rentals"`
}
