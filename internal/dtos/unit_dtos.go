package dtos

import (
	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateUnitRequest struct {
	UnitNumber  string  `json:"unit_number" validate:"required,min=1"`
	UnitType    string  `json:"unit_type" validate:"required,oneof=small medium large drive_up climate_controlled"`
	SizeSqft    int     `json:"size_sqft" validate:"required,gt=0"`
	MonthlyRate float64 `json:"monthly_rate" validate:"required,gt=0"`
}

type UpdateUnitRequest struct {
	UnitNumber  *string  `json:"unit_number,omitempty" validate:"omitempty,min=1"`
	UnitType    *string  `json:"unit_type,omitempty" validate:"omitempty,oneof=small medium large drive_up climate_controlled"`
	SizeSqft    *int     `json:"size_sqft,omitempty" validate:"omitempty,gt=0"`
	MonthlyRate *float64 `json:"monthly_rate,omitempty" validate:"omitempty,gt=0"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=available occupied reserved maintenance out_of_service"`

	RowVersion int64 `json:"row_version"`
}

type UnitResponse struct {
	Unit *models.Unit `json:"unit"`
}

type UnitListResponse struct {
	Units []*models.Unit `json:"units"`
}
