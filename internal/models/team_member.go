package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole string

const (
	RoleAdmin   TeamRole = "admin"
	RoleManager TeamRole = "manager"
	RoleViewer  TeamRole = "viewer"
)

type TeamMemberStatus string

const (
	TeamMemberInvited TeamMemberStatus = "invited"
	TeamMemberActive  TeamMemberStatus = "active"
)

// TeamMember is an invited collaborator on a profile's account. Team members
// never interact with the rental/billing flow beyond ownership checks.
type TeamMember struct {
	ID        uuid.UUID        `json:"id"`
	ProfileID uuid.UUID        `json:"profile_id"`
	Email     string           `json:"email"`
	Role      TeamRole         `json:"role"`
	Status    TeamMemberStatus `json:"status"`

	InvitedAt  time.Time  `json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
