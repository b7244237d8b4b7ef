package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/twilio/twilio-go"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// CustomerService manages an owner's customer book. Phone numbers are checked
// against Twilio Lookups when a client is configured, shape-only otherwise.
type CustomerService struct {
	customers repositories.CustomerRepository

	twilioClient *twilio.RestClient
	verifyPhones bool

	// lookupPhone runs the provider-backed validation.
	lookupPhone func(ctx context.Context, number string) (bool, error)
}

func NewCustomerService(customers repositories.CustomerRepository, twilioClient *twilio.RestClient, verifyPhones bool) *CustomerService {
	s := &CustomerService{
		customers:    customers,
		twilioClient: twilioClient,
		verifyPhones: verifyPhones,
	}
	s.lookupPhone = func(ctx context.Context, number string) (bool, error) {
		return utils.ValidatePhoneNumber(ctx, number, nil, s.verifyPhones, s.twilioClient)
	}
	return s
}

func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateCustomerRequest) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmailSyntax(email) {
		return nil, utils.ErrInvalidEmail
	}
	if err := s.checkPhone(ctx, req.Phone); err != nil {
		return nil, err
	}

	c := &models.Customer{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           email,
		Phone:           req.Phone,
		BackgroundCheck: models.BackgroundCheckPending,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id, ownerID)
}

func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Customer, error) {
	return s.customers.ListByOwnerID(ctx, ownerID)
}

// Update applies the patch. A row_version in the request is a strict
// precondition (one try, conflict on mismatch); without one the write runs
// through the repository's bounded read-mutate-update retry loop.
func (s *CustomerService) Update(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdateCustomerRequest) (*models.Customer, error) {
	apply := func(c *models.Customer) error {
		if req.FirstName != nil {
			c.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			c.LastName = *req.LastName
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if !utils.IsValidEmailSyntax(email) {
				return utils.ErrInvalidEmail
			}
			c.Email = email
		}
		if req.Phone != nil {
			if err := s.checkPhone(ctx, req.Phone); err != nil {
				return err
			}
			c.Phone = req.Phone
		}
		if req.BackgroundCheck != nil {
			c.BackgroundCheck = models.BackgroundCheckStatus(*req.BackgroundCheck)
		}
		if req.CreditScore != nil {
			c.CreditScore = req.CreditScore
		}
		return nil
	}

	if req.RowVersion > 0 {
		c, err := s.customers.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, utils.ErrNotOwned
		}
		if err := apply(c); err != nil {
			return nil, err
		}
		tag, err := s.customers.UpdateIfVersion(ctx, c, req.RowVersion)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, utils.ErrRowVersionConflict
		}
	} else if err := s.customers.UpdateWithRetry(ctx, id, ownerID, apply); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotOwned
		}
		return nil, err
	}
	return s.customers.GetByID(ctx, id, ownerID)
}

func (s *CustomerService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.customers.Delete(ctx, id, ownerID)
}

func (s *CustomerService) checkPhone(ctx context.Context, phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	ok, err := s.lookupPhone(ctx, *phone)
	if err != nil {
		// Lookup outages must not block customer writes; fall back to the
		// local E.164 shape check.
		utils.Logger.WithError(err).Warn("Phone lookup failed, validating shape only")
		if !utils.IsE164(*phone) {
			return utils.ErrInvalidPhone
		}
		return nil
	}
	if !ok {
		return utils.ErrInvalidPhone
	}
	return nil
}
