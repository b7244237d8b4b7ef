package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/repositories"
)

type ReportService struct {
	reports repositories.ReportRepository
}

func NewReportService(reports repositories.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) OwnerSummary(ctx context.Context, ownerID uuid.UUID) (*repositories.OwnerSummary, error) {
	return s.reports.OwnerSummary(ctx, ownerID)
}
