package controllers

import (
	"net/http"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

type ReportsController struct {
	reportService *services.ReportService
}

func NewReportsController(reportService *services.ReportService) *ReportsController {
	return &ReportsController{reportService: reportService}
}

// SummaryHandler => GET /api/v1/reports/summary
func (c *ReportsController) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	summary, err := c.reportService.OwnerSummary(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OwnerSummaryResponse{Summary: summary})
}
