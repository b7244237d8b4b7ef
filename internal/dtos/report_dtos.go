package dtos

import (
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
)

type OwnerSummaryResponse struct {
	Summary *repositories.OwnerSummary `json:"summary"`
}
