package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

type LedgerController struct {
	ledgerService *services.LedgerService
}

func NewLedgerController(ledgerService *services.LedgerService) *LedgerController {
	return &LedgerController{ledgerService: ledgerService}
}

// CreateHandler => POST /api/v1/ledger
func (c *LedgerController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateLedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	entry, err := c.ledgerService.Create(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.LedgerEntryResponse{LedgerEntry: entry})
}

// ListHandler => GET /api/v1/ledger?from=RFC3339&to=RFC3339
func (c *LedgerController) ListHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'from' timestamp", nil, err)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'to' timestamp", nil, err)
		return
	}

	entries, err := c.ledgerService.List(r.Context(), owner, from, to)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LedgerEntryListResponse{LedgerEntries: entries})
}

// GetHandler => GET /api/v1/ledger/{entryID}
func (c *LedgerController) GetHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "entryID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid entry id", nil, err)
		return
	}

	entry, err := c.ledgerService.Get(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entry == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LedgerEntryResponse{LedgerEntry: entry})
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
