package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/middleware"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// AccountController handles registration, login and team management.
type AccountController struct {
	accountService *services.AccountService
	cookieTTL      time.Duration
	secureCookies  bool
}

func NewAccountController(accountService *services.AccountService, cookieTTL time.Duration, secureCookies bool) *AccountController {
	return &AccountController{
		accountService: accountService,
		cookieTTL:      cookieTTL,
		secureCookies:  secureCookies,
	}
}

// RegisterHandler => POST /api/v1/account/register
func (c *AccountController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	profile, token, err := c.accountService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.CompanyName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	c.setSessionCookie(w, token)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.LoginResponse{Profile: profile, AccessToken: token})
}

// LoginHandler => POST /api/v1/account/login
func (c *AccountController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	profile, token, err := c.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	c.setSessionCookie(w, token)
	utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{Profile: profile, AccessToken: token})
}

// LogoutHandler => POST /api/v1/account/logout
func (c *AccountController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// GetProfileHandler => GET /api/v1/account/profile
func (c *AccountController) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	profile, err := c.accountService.GetProfile(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if profile == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ProfileResponse{Profile: profile})
}

// UpdateSubscriptionHandler => POST /api/v1/account/subscription
//
// Service-token route: the target profile comes from the body.
func (c *AccountController) UpdateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	profile, err := c.accountService.UpdateSubscription(r.Context(), req.ProfileID, models.SubscriptionTier(req.Tier))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ProfileResponse{Profile: profile})
}

// InviteTeamMemberHandler => POST /api/v1/account/team/invite
//
// Service-token route: the target profile comes from the body.
func (c *AccountController) InviteTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.InviteTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	member, err := c.accountService.InviteTeamMember(r.Context(), req.ProfileID, req.Email, req.Role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.TeamMemberResponse{TeamMember: member})
}

// ListTeamMembersHandler => GET /api/v1/account/team
func (c *AccountController) ListTeamMembersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	members, err := c.accountService.ListTeamMembers(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.TeamMemberListResponse{TeamMembers: members})
}

func (c *AccountController) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
