package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

type CustomersController struct {
	customerService *services.CustomerService
	rentalService   *services.RentalService
	billingService  *services.BillingService
}

func NewCustomersController(
	customerService *services.CustomerService,
	rentalService *services.RentalService,
	billingService *services.BillingService,
) *CustomersController {
	return &CustomersController{
		customerService: customerService,
		rentalService:   rentalService,
		billingService:  billingService,
	}
}

// CreateHandler => POST /api/v1/customers
func (c *CustomersController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	cust, err := c.customerService.Create(r.Context(), owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.CustomerResponse{Customer: cust})
}

// ListHandler => GET /api/v1/customers
func (c *CustomersController) ListHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}

	customers, err := c.customerService.List(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CustomerListResponse{Customers: customers})
}

// GetHandler => GET /api/v1/customers/{customerID}
func (c *CustomersController) GetHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	cust, err := c.customerService.Get(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if cust == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CustomerResponse{Customer: cust})
}

// UpdateHandler => PATCH /api/v1/customers/{customerID}
func (c *CustomersController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	var req dtos.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	cust, err := c.customerService.Update(r.Context(), id, owner, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CustomerResponse{Customer: cust})
}

// DeleteHandler => DELETE /api/v1/customers/{customerID}
func (c *CustomersController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	if err := c.customerService.Delete(r.Context(), id, owner); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRentalsHandler => GET /api/v1/customers/{customerID}/rentals
func (c *CustomersController) ListRentalsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	if ok, err := c.customerExists(r, id); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}

	rentals, err := c.rentalService.ListByCustomer(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RentalListResponse{Rentals: rentals})
}

// ListInvoicesHandler => GET /api/v1/customers/{customerID}/invoices
func (c *CustomersController) ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	if ok, err := c.customerExists(r, id); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
		return
	}

	invoices, err := c.billingService.ListInvoicesByCustomer(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.InvoiceListResponse{Invoices: invoices})
}

// ListPaymentMethodsHandler => GET /api/v1/customers/{customerID}/payment-methods
func (c *CustomersController) ListPaymentMethodsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwnerID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "customerID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer id", nil, err)
		return
	}

	methods, err := c.billingService.ListPaymentMethods(r.Context(), id, owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaymentMethodListResponse{PaymentMethods: methods})
}

func (c *CustomersController) customerExists(r *http.Request, id uuid.UUID) (bool, error) {
	owner, _ := ownerID(r)
	cust, err := c.customerService.Get(r.Context(), id, owner)
	if err != nil {
		return false, err
	}
	return cust != nil, nil
}
