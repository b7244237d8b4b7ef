package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

type RentalsController struct {
	rentalService *services.RentalService
}

func NewRentalsController(rentalService *services.RentalService) *RentalsController {
	return &RentalsController{rentalService: rentalService}
}

// CreateHandler => POST /api/v1/rentals
func (c *RentalsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	rental, err := c.rentalService.Create(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.RentalResponse{Rental: rental})
}

// ListHandler => GET /api/v1/rentals
func (c *RentalsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	rentals, err := c.rentalService.List(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RentalListResponse{Rentals: rentals})
}

// GetHandler => GET /api/v1/rentals/{rentalID}
func (c *RentalsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "rentalID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid rental id", nil, err)
		return
	}

	rental, err := c.rentalService.Get(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rental == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RentalResponse{Rental: rental})
}

// UpdateHandler => PATCH /api/v1/rentals/{rentalID}
func (c *RentalsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "rentalID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid rental id", nil, err)
		return
	}

	var req dtos.UpdateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	rental, err := c.rentalService.Update(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RentalResponse{Rental: rental})
}

// DeleteHandler => DELETE /api/v1/rentals/{rentalID}
func (c *RentalsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "rentalID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid rental id", nil, err)
		return
	}

	if err := c.rentalService.Delete(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
