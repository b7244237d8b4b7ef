package models

import (
	"time"

	"github.com/google/uuid"
)

type BackgroundCheckStatus string

const (
	BackgroundCheckPending BackgroundCheckStatus = "pending"
	BackgroundCheckClear   BackgroundCheckStatus = "clear"
	BackgroundCheckFlagged BackgroundCheckStatus = "flagged"
)

func ValidBackgroundCheckStatus(s BackgroundCheckStatus) bool {
	switch s {
	case BackgroundCheckPending, BackgroundCheckClear, BackgroundCheckFlagged:
		return true
	}
	return false
}

type Customer struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"` // E.164

	BackgroundCheck BackgroundCheckStatus `json:"background_check"`
	CreditScore     *int                  `json:"credit_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) GetID() string { return c.ID.String() }
