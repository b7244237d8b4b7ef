package dtos

import (
	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1"`
	LastName  string  `json:"last_name" validate:"required,min=1"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

type UpdateCustomerRequest struct {
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,e164"`
	BackgroundCheck *string `json:"background_check,omitempty" validate:"omitempty,oneof=pending clear flagged"`
	CreditScore     *int    `json:"credit_score,omitempty" validate:"omitempty,gte=300,lte=850"`

	RowVersion int64 `json:"row_version"`
}

type CustomerResponse struct {
	Customer *models.Customer `json:"customer"`
}

type CustomerListResponse struct {
	Customers []*models.Customer `json:"customers"`
}
