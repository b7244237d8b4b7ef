package dtos

import (
	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateFacilityRequest struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Address   string   `json:"address" validate:"required"`
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state" validate:"required,len=2"`
	ZipCode   string   `json:"zip_code" validate:"required,min=5"`
	Latitude  float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Amenities []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1"`
}

type UpdateFacilityRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Address   *string  `json:"address,omitempty" validate:"omitempty,min=1"`
	City      *string  `json:"city,omitempty" validate:"omitempty,min=1"`
	State     *string  `json:"state,omitempty" validate:"omitempty,len=2"`
	ZipCode   *string  `json:"zip_code,omitempty" validate:"omitempty,min=5"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Amenities []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1"`

	RowVersion int64 `json:"row_version"`
}

type FacilityResponse struct {
	Facility *models.Facility `json:"facility"`
}

type FacilityListResponse struct {
	Facilities []*models.Facility `json:"facilities"`
}
