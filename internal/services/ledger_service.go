package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// LedgerService exposes the append-only money ledger. Entries created through
// the API carry no payment link; payment-driven entries are posted by the
// billing flow.
type LedgerService struct {
	ledger     repositories.LedgerRepository
	facilities repositories.FacilityRepository
	customers  repositories.CustomerRepository
	rentals    repositories.RentalRepository
}

func NewLedgerService(
	ledger repositories.LedgerRepository,
	facilities repositories.FacilityRepository,
	customers repositories.CustomerRepository,
	rentals repositories.RentalRepository,
) *LedgerService {
	return &LedgerService{
		ledger:     ledger,
		facilities: facilities,
		customers:  customers,
		rentals:    rentals,
	}
}

func (s *LedgerService) Create(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateLedgerEntryRequest) (*models.LedgerEntry, error) {
	if err := s.checkReferences(ctx, ownerID, req); err != nil {
		return nil, err
	}

	e := &models.LedgerEntry{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Kind:       models.LedgerEntryKind(req.Kind),
		Amount:     req.Amount,
		Memo:       req.Memo,
		OccurredOn: req.OccurredOn,
		FacilityID: req.FacilityID,
		CustomerID: req.CustomerID,
		RentalID:   req.RentalID,
	}
	if err := s.ledger.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// checkReferences resolves every linked entity through its owner-scoped
// repository, so a reference to a foreign row fails like a missing one.
func (s *LedgerService) checkReferences(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateLedgerEntryRequest) error {
	if req.FacilityID != nil {
		f, err := s.facilities.GetByID(ctx, *req.FacilityID, ownerID)
		if err != nil {
			return err
		}
		if f == nil {
			return utils.ErrNotOwned
		}
	}
	if req.CustomerID != nil {
		c, err := s.customers.GetByID(ctx, *req.CustomerID, ownerID)
		if err != nil {
			return err
		}
		if c == nil {
			return utils.ErrNotOwned
		}
	}
	if req.RentalID != nil {
		r, err := s.rentals.GetByID(ctx, *req.RentalID, ownerID)
		if err != nil {
			return err
		}
		if r == nil {
			return utils.ErrNotOwned
		}
	}
	return nil
}

func (s *LedgerService) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.LedgerEntry, error) {
	return s.ledger.GetByID(ctx, id, ownerID)
}

func (s *LedgerService) List(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*models.LedgerEntry, error) {
	return s.ledger.ListByOwnerID(ctx, ownerID, from, to)
}
