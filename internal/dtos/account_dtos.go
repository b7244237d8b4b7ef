package dtos

import (
	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=10"`
	FirstName   string `json:"first_name" validate:"required,min=1"`
	LastName    string `json:"last_name" validate:"required,min=1"`
	CompanyName string `json:"company_name,omitempty" validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

type LoginResponse struct {
	Profile     *models.Profile `json:"profile"`
	AccessToken string          `json:"access_token"`
}

// InviteTeamMemberRequest arrives on a service-token route, so the target
// profile comes from the body rather than a session.
type InviteTeamMemberRequest struct {
	ProfileID uuid.UUID `json:"profile_id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Role      string    `json:"role" validate:"required,oneof=admin manager viewer"`
}

type TeamMemberResponse struct {
	TeamMember *models.TeamMember `json:"team_member"`
}

type TeamMemberListResponse struct {
	TeamMembers []*models.TeamMember `json:"team_members"`
}

type UpdateSubscriptionRequest struct {
	ProfileID uuid.UUID `json:"profile_id" validate:"required"`
	Tier      string    `json:"tier" validate:"required,oneof=starter growth enterprise"`
}
