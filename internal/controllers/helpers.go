package controllers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/middleware"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

var validate = validator.New()

// ownerID pulls the authenticated profile id out of the request context.
// The auth middleware guarantees it is present on protected routes.
func ownerID(r *http.Request) (uuid.UUID, bool) {
	v := r.Context().Value(middleware.ContextKeyUserID)
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func requireOwnerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ownerID(r)
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil,
		)
	}
	return id, ok
}

// pathUUID parses a {var} from the route as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// respondServiceError maps service-layer sentinel errors onto HTTP answers.
// Anything not owned by the caller answers 404, indistinguishable from
// absent.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrNotOwned), errors.Is(err, pgx.ErrNoRows):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil,
		)
	case errors.Is(err, utils.ErrUnitUnavailable):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeUnitUnavailable, "Unit already has an active rental", nil,
		)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Resource was modified concurrently, re-fetch and retry", nil,
		)
	case errors.Is(err, utils.ErrInvoiceCancelled):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeConflict, "Invoice is cancelled", nil,
		)
	case errors.Is(err, utils.ErrEmailExists):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeEmailExists, "Email already in use", nil,
		)
	case errors.Is(err, utils.ErrInvalidStatusTransition):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid status transition", nil,
		)
	case errors.Is(err, utils.ErrInvalidEmail):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid email address", nil,
		)
	case errors.Is(err, utils.ErrInvalidPhone):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid phone number", nil,
		)
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid email or password", nil,
		)
	case errors.Is(err, utils.ErrExternalServiceFailure):
		utils.RespondErrorWithCode(
			w, http.StatusFailedDependency, utils.ErrCodeExternalService, "An external service call failed", nil, err,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "An unexpected error occurred", nil, err,
		)
	}
}
