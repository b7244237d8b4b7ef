package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// FacilitiesController serves facilities and their nested units.
type FacilitiesController struct {
	facilityService *services.FacilityService
}

func NewFacilitiesController(facilityService *services.FacilityService) *FacilitiesController {
	return &FacilitiesController{facilityService: facilityService}
}

// CreateHandler => POST /api/v1/facilities
func (c *FacilitiesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	f, err := c.facilityService.Create(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.FacilityResponse{Facility: f})
}

// ListHandler => GET /api/v1/facilities
func (c *FacilitiesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	fs, err := c.facilityService.List(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FacilityListResponse{Facilities: fs})
}

// GetHandler => GET /api/v1/facilities/{facilityID}
func (c *FacilitiesController) GetHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "facilityID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid facility id", nil, err)
		return
	}

	f, err := c.facilityService.Get(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if f == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FacilityResponse{Facility: f})
}

// UpdateHandler => PATCH /api/v1/facilities/{facilityID}
func (c *FacilitiesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "facilityID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid facility id", nil, err)
		return
	}

	var req dtos.UpdateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	f, err := c.facilityService.Update(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FacilityResponse{Facility: f})
}

// DeleteHandler => DELETE /api/v1/facilities/{facilityID}
func (c *FacilitiesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "facilityID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid facility id", nil, err)
		return
	}

	if err := c.facilityService.Delete(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ───────────── units ───────────── */

// CreateUnitHandler => POST /api/v1/facilities/{facilityID}/units
func (c *FacilitiesController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	facilityID, err := pathUUID(r, "facilityID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid facility id", nil, err)
		return
	}

	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	u, err := c.facilityService.CreateUnit(r.Context(), facilityID, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.UnitResponse{Unit: u})
}

// ListUnitsHandler => GET /api/v1/facilities/{facilityID}/units
func (c *FacilitiesController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	facilityID, err := pathUUID(r, "facilityID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid facility id", nil, err)
		return
	}

	units, err := c.facilityService.ListUnits(r.Context(), facilityID, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnitListResponse{Units: units})
}

// GetUnitHandler => GET /api/v1/units/{unitID}
func (c *FacilitiesController) GetUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit id", nil, err)
		return
	}

	u, err := c.facilityService.GetUnit(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if u == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnitResponse{Unit: u})
}

// UpdateUnitHandler => PATCH /api/v1/units/{unitID}
func (c *FacilitiesController) UpdateUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit id", nil, err)
		return
	}

	var req dtos.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	u, err := c.facilityService.UpdateUnit(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnitResponse{Unit: u})
}

// DeleteUnitHandler => DELETE /api/v1/units/{unitID}
func (c *FacilitiesController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "unitID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid unit id", nil, err)
		return
	}

	if err := c.facilityService.DeleteUnit(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
