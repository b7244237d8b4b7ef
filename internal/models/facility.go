package models

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a storage site owned by a profile. TotalUnits is denormalized
// and recomputed in the same transaction as every unit insert/delete.
type Facility struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	TimeZone  string    `json:"time_zone"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Amenities []string  `json:"amenities"`

	TotalUnits int `json:"total_units"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Facility) GetID() string { return f.ID.String() }
