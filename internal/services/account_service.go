package services

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/middleware"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// AccountService handles registration, login and team management for the
// profile that owns everything else.
type AccountService struct {
	profiles    repositories.ProfileRepository
	teamMembers repositories.TeamMemberRepository
	email       *EmailService

	signingKey *rsa.PrivateKey
	tokenTTL   time.Duration
}

func NewAccountService(
	profiles repositories.ProfileRepository,
	teamMembers repositories.TeamMemberRepository,
	email *EmailService,
	signingKey *rsa.PrivateKey,
	tokenTTL time.Duration,
) *AccountService {
	return &AccountService{
		profiles:    profiles,
		teamMembers: teamMembers,
		email:       email,
		signingKey:  signingKey,
		tokenTTL:    tokenTTL,
	}
}

func (s *AccountService) Register(ctx context.Context, email, password, firstName, lastName, companyName string) (*models.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmailSyntax(email) {
		return nil, "", utils.ErrInvalidEmail
	}

	existing, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", utils.ErrEmailExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	p := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CompanyName:  companyName,
		Tier:         models.TierStarter,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, "", err
	}

	if err := s.email.SendWelcome(p.FirstName, p.Email); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send welcome email to %s", p.Email)
	}

	token, err := s.IssueAccessToken(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if p == nil || !utils.CheckPasswordHash(password, p.PasswordHash) {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := s.IssueAccessToken(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func (s *AccountService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *AccountService) UpdateSubscription(ctx context.Context, id uuid.UUID, tier models.SubscriptionTier) (*models.Profile, error) {
	if !models.ValidSubscriptionTier(tier) {
		return nil, utils.ErrInvalidStatusTransition
	}
	if err := s.profiles.SetTier(ctx, id, tier); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, id)
}

func (s *AccountService) InviteTeamMember(ctx context.Context, profileID uuid.UUID, email, role string) (*models.TeamMember, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmailSyntax(email) {
		return nil, utils.ErrInvalidEmail
	}

	existing, err := s.teamMembers.GetByProfileAndEmail(ctx, profileID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	inviter, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, utils.ErrNotOwned
	}

	m := &models.TeamMember{
		ID:        uuid.New(),
		ProfileID: profileID,
		Email:     email,
		Role:      models.TeamRole(role),
		Status:    models.TeamMemberInvited,
	}
	if err := s.teamMembers.Create(ctx, m); err != nil {
		return nil, err
	}

	inviterName := fmt.Sprintf("%s %s", inviter.FirstName, inviter.LastName)
	if err := s.email.SendTeamInvite(email, inviterName, role); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send team invite email to %s", email)
	}
	return m, nil
}

func (s *AccountService) ListTeamMembers(ctx context.Context, profileID uuid.UUID) ([]*models.TeamMember, error) {
	return s.teamMembers.ListByProfileID(ctx, profileID)
}

// IssueAccessToken signs an RS256 access token for the profile.
func (s *AccountService) IssueAccessToken(profileID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    middleware.TokenIssuer,
		Subject:   profileID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.signingKey)
}
