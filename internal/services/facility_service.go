package services

import (
	"context"
	"errors"

	"github.com/bradfitz/latlong"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

const defaultTimeZone = "America/Chicago"

// FacilityService owns facilities and the units inside them.
type FacilityService struct {
	facilities repositories.FacilityRepository
	units      repositories.UnitRepository
}

func NewFacilityService(facilities repositories.FacilityRepository, units repositories.UnitRepository) *FacilityService {
	return &FacilityService{facilities: facilities, units: units}
}

func (s *FacilityService) Create(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateFacilityRequest) (*models.Facility, error) {
	f := &models.Facility{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		TimeZone:  timeZoneFor(req.Latitude, req.Longitude),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Amenities: req.Amenities,
	}
	if f.Amenities == nil {
		f.Amenities = []string{}
	}
	if err := s.facilities.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FacilityService) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Facility, error) {
	return s.facilities.GetByID(ctx, id, ownerID)
}

func (s *FacilityService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Facility, error) {
	return s.facilities.ListByOwnerID(ctx, ownerID)
}

// Update applies the patch. A row_version in the request is a strict
// precondition; without one the write runs through the repository's bounded
// retry loop.
func (s *FacilityService) Update(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdateFacilityRequest) (*models.Facility, error) {
	apply := func(f *models.Facility) error {
		relocated := false
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Address != nil {
			f.Address = *req.Address
		}
		if req.City != nil {
			f.City = *req.City
		}
		if req.State != nil {
			f.State = *req.State
		}
		if req.ZipCode != nil {
			f.ZipCode = *req.ZipCode
		}
		if req.Latitude != nil {
			f.Latitude = *req.Latitude
			relocated = true
		}
		if req.Longitude != nil {
			f.Longitude = *req.Longitude
			relocated = true
		}
		if req.Amenities != nil {
			f.Amenities = req.Amenities
		}
		if relocated {
			f.TimeZone = timeZoneFor(f.Latitude, f.Longitude)
		}
		return nil
	}

	if req.RowVersion > 0 {
		f, err := s.facilities.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, utils.ErrNotOwned
		}
		if err := apply(f); err != nil {
			return nil, err
		}
		tag, err := s.facilities.UpdateIfVersion(ctx, f, req.RowVersion)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, utils.ErrRowVersionConflict
		}
	} else if err := s.facilities.UpdateWithRetry(ctx, id, ownerID, apply); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotOwned
		}
		return nil, err
	}
	return s.facilities.GetByID(ctx, id, ownerID)
}

func (s *FacilityService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.facilities.Delete(ctx, id, ownerID)
}

/* ───────────── units ───────────── */

func (s *FacilityService) CreateUnit(ctx context.Context, facilityID, ownerID uuid.UUID, req *dtos.CreateUnitRequest) (*models.Unit, error) {
	f, err := s.facilities.GetByID(ctx, facilityID, ownerID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.ErrNotOwned
	}

	u := &models.Unit{
		ID:          uuid.New(),
		FacilityID:  facilityID,
		UnitNumber:  req.UnitNumber,
		SizeSqft:    req.SizeSqft,
		UnitType:    models.UnitType(req.UnitType),
		MonthlyRate: req.MonthlyRate,
		Status:      models.UnitStatusAvailable,
	}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *FacilityService) GetUnit(ctx context.Context, id, ownerID uuid.UUID) (*models.Unit, error) {
	return s.units.GetByID(ctx, id, ownerID)
}

func (s *FacilityService) ListUnits(ctx context.Context, facilityID, ownerID uuid.UUID) ([]*models.Unit, error) {
	f, err := s.facilities.GetByID(ctx, facilityID, ownerID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.ErrNotOwned
	}
	return s.units.ListByFacilityID(ctx, facilityID, ownerID)
}

func (s *FacilityService) UpdateUnit(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdateUnitRequest) (*models.Unit, error) {
	apply := func(u *models.Unit) error {
		if req.UnitNumber != nil {
			u.UnitNumber = *req.UnitNumber
		}
		if req.UnitType != nil {
			u.UnitType = models.UnitType(*req.UnitType)
		}
		if req.SizeSqft != nil {
			u.SizeSqft = *req.SizeSqft
		}
		if req.MonthlyRate != nil {
			u.MonthlyRate = *req.MonthlyRate
		}
		if req.Status != nil {
			next := models.UnitStatusType(*req.Status)
			// occupied is derived from rentals, never set by hand
			if next == models.UnitStatusOccupied && u.Status != models.UnitStatusOccupied {
				return utils.ErrInvalidStatusTransition
			}
			u.Status = next
		}
		return nil
	}

	if req.RowVersion > 0 {
		u, err := s.units.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, utils.ErrNotOwned
		}
		if err := apply(u); err != nil {
			return nil, err
		}
		tag, err := s.units.UpdateIfVersion(ctx, u, req.RowVersion)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, utils.ErrRowVersionConflict
		}
	} else if err := s.units.UpdateWithRetry(ctx, id, ownerID, apply); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotOwned
		}
		return nil, err
	}
	return s.units.GetByID(ctx, id, ownerID)
}

func (s *FacilityService) DeleteUnit(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.units.Delete(ctx, id, ownerID)
}

// timeZoneFor resolves an IANA zone from coordinates, falling back when the
// point is over water or otherwise unresolvable.
func timeZoneFor(lat, lng float64) string {
	if tz := latlong.LookupZoneName(lat, lng); tz != "" {
		return tz
	}
	return defaultTimeZone
}
