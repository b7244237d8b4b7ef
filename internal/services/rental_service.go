package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// RentalService sits on top of the transactional rental repository. The
// repository owns atomicity (unit locking, status sync); this layer owns
// input-shaping and defaults.
type RentalService struct {
	rentals repositories.RentalRepository
	units   repositories.UnitRepository
}

func NewRentalService(rentals repositories.RentalRepository, units repositories.UnitRepository) *RentalService {
	return &RentalService{rentals: rentals, units: units}
}

func (s *RentalService) Create(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateRentalRequest) (*models.Rental, error) {
	rate := req.MonthlyRate
	if rate == 0 {
		u, err := s.units.GetByID(ctx, req.UnitID, ownerID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, utils.ErrNotOwned
		}
		rate = u.MonthlyRate
	}

	r := &models.Rental{
		ID:              uuid.New(),
		CustomerID:      req.CustomerID,
		UnitID:          req.UnitID,
		Status:          models.RentalStatusType(req.Status),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MonthlyRate:     rate,
		SecurityDeposit: req.SecurityDeposit,
	}
	if err := s.rentals.CreateWithUnitSync(ctx, r, ownerID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RentalService) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Rental, error) {
	return s.rentals.GetByID(ctx, id, ownerID)
}

func (s *RentalService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error) {
	return s.rentals.ListByOwnerID(ctx, ownerID)
}

func (s *RentalService) ListByCustomer(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Rental, error) {
	return s.rentals.ListByCustomerID(ctx, customerID, ownerID)
}

func (s *RentalService) Update(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdateRentalRequest) (*models.Rental, error) {
	r, err := s.rentals.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, utils.ErrNotOwned
	}

	if req.Status != nil {
		next := models.RentalStatusType(*req.Status)
		if !validRentalTransition(r.Status, next) {
			return nil, utils.ErrInvalidStatusTransition
		}
		r.Status = next
	}
	if req.UnitID != nil {
		r.UnitID = *req.UnitID
	}
	if req.StartDate != nil {
		r.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		r.EndDate = req.EndDate
	}
	if req.MonthlyRate != nil {
		r.MonthlyRate = *req.MonthlyRate
	}
	if req.SecurityDeposit != nil {
		r.SecurityDeposit = *req.SecurityDeposit
	}

	return s.rentals.UpdateWithUnitSync(ctx, r, ownerID, req.RowVersion)
}

func (s *RentalService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.rentals.DeleteWithUnitSync(ctx, id, ownerID)
}

// validRentalTransition encodes the agreement life cycle. Terminated and
// expired are terminal; everything before active can still be walked back to
// draft.
func validRentalTransition(from, to models.RentalStatusType) bool {
	if from == to {
		return true
	}
	switch from {
	case models.RentalStatusDraft:
		return to == models.RentalStatusPendingSignature || to == models.RentalStatusActive
	case models.RentalStatusPendingSignature:
		return to == models.RentalStatusDraft || to == models.RentalStatusActive
	case models.RentalStatusActive:
		return to == models.RentalStatusTerminated || to == models.RentalStatusExpired
	}
	return false
}
