package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

func TestTimeZoneFor(t *testing.T) {
	require.Equal(t, "America/Chicago", timeZoneFor(30.2672, -97.7431)) // Austin
	require.Equal(t, "America/New_York", timeZoneFor(40.7128, -74.0060))

	// Open ocean resolves to nothing; fall back to the default.
	require.Equal(t, defaultTimeZone, timeZoneFor(0, -140))
}

func newFacilityFixture(t *testing.T) (*FacilityService, uuid.UUID, *models.Facility) {
	t.Helper()
	facilities := newFakeFacilityRepo()
	units := newFakeUnitRepo(facilities)
	svc := NewFacilityService(facilities, units)

	ownerID := uuid.New()
	f, err := svc.Create(context.Background(), ownerID, &dtos.CreateFacilityRequest{
		Name:      "Lakeline Storage",
		Address:   "100 Storage Way",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78717",
		Latitude:  30.2672,
		Longitude: -97.7431,
	})
	require.NoError(t, err)
	return svc, ownerID, f
}

func TestFacilityCreateResolvesTimeZone(t *testing.T) {
	_, _, f := newFacilityFixture(t)
	require.Equal(t, "America/Chicago", f.TimeZone)
	require.NotNil(t, f.Amenities)
}

func TestFacilityRelocationRefreshesTimeZone(t *testing.T) {
	svc, ownerID, f := newFacilityFixture(t)

	lat, lng := 40.7128, -74.0060
	updated, err := svc.Update(context.Background(), f.ID, ownerID, &dtos.UpdateFacilityRequest{
		Latitude:   &lat,
		Longitude:  &lng,
		RowVersion: f.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, "America/New_York", updated.TimeZone)
}

func TestFacilityUpdateVersionConflict(t *testing.T) {
	svc, ownerID, f := newFacilityFixture(t)

	name := "Lakeline Self Storage"
	_, err := svc.Update(context.Background(), f.ID, ownerID, &dtos.UpdateFacilityRequest{
		Name:       &name,
		RowVersion: f.RowVersion,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), f.ID, ownerID, &dtos.UpdateFacilityRequest{
		Name:       &name,
		RowVersion: f.RowVersion,
	})
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)
}

func TestFacilityUpdateWithoutVersionRetriesThrough(t *testing.T) {
	svc, ownerID, f := newFacilityFixture(t)

	name := "Lakeline Self Storage"
	updated, err := svc.Update(context.Background(), f.ID, ownerID, &dtos.UpdateFacilityRequest{
		Name: &name,
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Greater(t, updated.RowVersion, f.RowVersion)

	_, err = svc.Update(context.Background(), f.ID, uuid.New(), &dtos.UpdateFacilityRequest{
		Name: &name,
	})
	require.ErrorIs(t, err, utils.ErrNotOwned)
}

func TestCreateUnitRequiresOwnedFacility(t *testing.T) {
	svc, _, f := newFacilityFixture(t)

	_, err := svc.CreateUnit(context.Background(), f.ID, uuid.New(), &dtos.CreateUnitRequest{
		UnitNumber:  "A-101",
		UnitType:    "small",
		SizeSqft:    50,
		MonthlyRate: 89.50,
	})
	require.ErrorIs(t, err, utils.ErrNotOwned)
}

func TestUnitStatusCannotBeSetOccupiedByHand(t *testing.T) {
	svc, ownerID, f := newFacilityFixture(t)

	u, err := svc.CreateUnit(context.Background(), f.ID, ownerID, &dtos.CreateUnitRequest{
		UnitNumber:  "A-101",
		UnitType:    "small",
		SizeSqft:    50,
		MonthlyRate: 89.50,
	})
	require.NoError(t, err)
	require.Equal(t, models.UnitStatusAvailable, u.Status)

	occupied := "occupied"
	_, err = svc.UpdateUnit(context.Background(), u.ID, ownerID, &dtos.UpdateUnitRequest{
		Status:     &occupied,
		RowVersion: u.RowVersion,
	})
	require.ErrorIs(t, err, utils.ErrInvalidStatusTransition)

	maintenance := "maintenance"
	updated, err := svc.UpdateUnit(context.Background(), u.ID, ownerID, &dtos.UpdateUnitRequest{
		Status:     &maintenance,
		RowVersion: u.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, models.UnitStatusMaintenance, updated.Status)
}
