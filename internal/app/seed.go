package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// Sentinel ids keep seeding idempotent: if the demo profile exists the whole
// run is skipped.
var (
	seedProfileID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedFacilityID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedCustomerID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

// SeedDemoData loads a small demo tenant for local development: one profile,
// one facility with a handful of units, a customer, an active rental and an
// open invoice.
func SeedDemoData(
	ctx context.Context,
	profileRepo repositories.ProfileRepository,
	facilityRepo repositories.FacilityRepository,
	unitRepo repositories.UnitRepository,
	customerRepo repositories.CustomerRepository,
	rentalRepo repositories.RentalRepository,
	invoiceRepo repositories.InvoiceRepository,
) error {
	if existing, err := profileRepo.GetByID(ctx, seedProfileID); err != nil {
		return fmt.Errorf("check existing seed profile: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding")
		return nil
	}

	hash, err := utils.HashPassword("demo-password-1234")
	if err != nil {
		return err
	}
	profile := &models.Profile{
		ID:           seedProfileID,
		Email:        "demo@stowpilot.dev",
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     "Owner",
		CompanyName:  "Demo Storage Co",
		Tier:         models.TierStarter,
	}
	if err := profileRepo.Create(ctx, profile); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}

	facility := &models.Facility{
		ID:        seedFacilityID,
		OwnerID:   seedProfileID,
		Name:      "Demo Self Storage",
		Address:   "4251 Industrial Blvd",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78744",
		TimeZone:  "America/Chicago",
		Latitude:  30.1975,
		Longitude: -97.7258,
		Amenities: []string{"gated", "cameras", "drive_up"},
	}
	if err := facilityRepo.Create(ctx, facility); err != nil {
		return fmt.Errorf("seed facility: %w", err)
	}

	unitIDs := make([]uuid.UUID, 0, 4)
	for i, spec := range []struct {
		number string
		utype  models.UnitType
		sqft   int
		rate   float64
	}{
		{"A-101", models.UnitTypeSmall, 25, 45},
		{"A-102", models.UnitTypeMedium, 100, 95},
		{"B-201", models.UnitTypeLarge, 200, 160},
		{"D-001", models.UnitTypeDriveUp, 300, 220},
	} {
		u := &models.Unit{
			ID:          uuid.New(),
			FacilityID:  seedFacilityID,
			UnitNumber:  spec.number,
			SizeSqft:    spec.sqft,
			UnitType:    spec.utype,
			MonthlyRate: spec.rate,
			Status:      models.UnitStatusAvailable,
		}
		if err := unitRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed unit %d: %w", i, err)
		}
		unitIDs = append(unitIDs, u.ID)
	}

	customer := &models.Customer{
		ID:              seedCustomerID,
		OwnerID:         seedProfileID,
		FirstName:       "Pat",
		LastName:        "Renter",
		Email:           "pat.renter@example.com",
		BackgroundCheck: models.BackgroundCheckClear,
	}
	if err := customerRepo.Create(ctx, customer); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	rental := &models.Rental{
		ID:          uuid.New(),
		CustomerID:  seedCustomerID,
		UnitID:      unitIDs[1],
		Status:      models.RentalStatusActive,
		StartDate:   time.Now().UTC().AddDate(0, -1, 0),
		MonthlyRate: 95,
	}
	if err := rentalRepo.CreateWithUnitSync(ctx, rental, seedProfileID); err != nil {
		return fmt.Errorf("seed rental: %w", err)
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		OwnerID:       seedProfileID,
		CustomerID:    seedCustomerID,
		RentalID:      &rental.ID,
		InvoiceNumber: fmt.Sprintf("INV-%s", utils.RandomNumericString(8)),
		AmountDue:     95,
		DueDate:       time.Now().UTC().AddDate(0, 0, 14),
		Status:        models.InvoiceStatusSent,
	}
	if err := invoiceRepo.Create(ctx, invoice); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}

	utils.Logger.Info("Demo tenant seeded")
	return nil
}
