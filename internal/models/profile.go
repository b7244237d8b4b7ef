package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionTier string

const (
	TierStarter    SubscriptionTier = "starter"
	TierGrowth     SubscriptionTier = "growth"
	TierEnterprise SubscriptionTier = "enterprise"
)

// ValidSubscriptionTier reports whether s is one of the sellable tiers.
func ValidSubscriptionTier(s SubscriptionTier) bool {
	switch s {
	case TierStarter, TierGrowth, TierEnterprise:
		return true
	}
	return false
}

// Profile is the account-level identity. Every facility, customer and
// ledger entry is scoped beneath exactly one profile via owner_id.
type Profile struct {
	Versioned

	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	CompanyName  string           `json:"company_name,omitempty"`
	Tier         SubscriptionTier `json:"tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) GetID() string { return p.ID.String() }
