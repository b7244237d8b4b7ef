package models

import (
	"time"

	"github.com/google/uuid"
)

type UnitStatusType string

const (
	UnitStatusAvailable    UnitStatusType = "available"
	UnitStatusOccupied     UnitStatusType = "occupied"
	UnitStatusReserved     UnitStatusType = "reserved"
	UnitStatusMaintenance  UnitStatusType = "maintenance"
	UnitStatusOutOfService UnitStatusType = "out_of_service"
)

func ValidUnitStatus(s UnitStatusType) bool {
	switch s {
	case UnitStatusAvailable, UnitStatusOccupied, UnitStatusReserved,
		UnitStatusMaintenance, UnitStatusOutOfService:
		return true
	}
	return false
}

type UnitType string

const (
	UnitTypeSmall             UnitType = "small"
	UnitTypeMedium            UnitType = "medium"
	UnitTypeLarge             UnitType = "large"
	UnitTypeDriveUp           UnitType = "drive_up"
	UnitTypeClimateControlled UnitType = "climate_controlled"
)

func ValidUnitType(t UnitType) bool {
	switch t {
	case UnitTypeSmall, UnitTypeMedium, UnitTypeLarge,
		UnitTypeDriveUp, UnitTypeClimateControlled:
		return true
	}
	return false
}

// Unit is a rentable space inside a facility.
//
// Invariant: Status is "occupied" iff an active rental references the unit.
// Rental mutations maintain this inside a single transaction that locks the
// unit row, so the two can no longer drift apart when one write fails.
type Unit struct {
	Versioned

	ID          uuid.UUID      `json:"id"`
	FacilityID  uuid.UUID      `json:"facility_id"`
	UnitNumber  string         `json:"unit_number"`
	SizeSqft    int            `json:"size_sqft"`
	UnitType    UnitType       `json:"unit_type"`
	MonthlyRate float64        `json:"monthly_rate"`
	Status      UnitStatusType `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unit) GetID() string { return u.ID.String() }
