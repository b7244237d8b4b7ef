package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// BillingService covers invoices, payments and stored payment methods.
// Everything that must be atomic (payment write + invoice recompute) lives in
// the repositories; this layer adds charging, ledger postings and receipts.
type BillingService struct {
	invoices       repositories.InvoiceRepository
	payments       repositories.PaymentRepository
	paymentMethods repositories.PaymentMethodRepository
	customers      repositories.CustomerRepository
	ledger         repositories.LedgerRepository
	email          *EmailService

	stripeEnabled bool
}

func NewBillingService(
	invoices repositories.InvoiceRepository,
	payments repositories.PaymentRepository,
	paymentMethods repositories.PaymentMethodRepository,
	customers repositories.CustomerRepository,
	ledger repositories.LedgerRepository,
	email *EmailService,
	stripeEnabled bool,
) *BillingService {
	return &BillingService{
		invoices:       invoices,
		payments:       payments,
		paymentMethods: paymentMethods,
		customers:      customers,
		ledger:         ledger,
		email:          email,
		stripeEnabled:  stripeEnabled,
	}
}

/* ───────────── invoices ───────────── */

func (s *BillingService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, req *dtos.CreateInvoiceRequest) (*models.Invoice, error) {
	c, err := s.customers.GetByID(ctx, req.CustomerID, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrNotOwned
	}

	status := models.InvoiceStatusDraft
	if req.Status != "" {
		status = models.InvoiceStatusType(req.Status)
	}

	inv := &models.Invoice{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		CustomerID:    req.CustomerID,
		RentalID:      req.RentalID,
		InvoiceNumber: fmt.Sprintf("INV-%s", utils.RandomNumericString(8)),
		AmountDue:     req.AmountDue,
		DueDate:       req.DueDate,
		Status:        status,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, id, ownerID uuid.UUID) (*models.Invoice, error) {
	return s.invoices.GetByID(ctx, id, ownerID)
}

func (s *BillingService) ListInvoices(ctx context.Context, ownerID uuid.UUID) ([]*models.Invoice, error) {
	return s.invoices.ListByOwnerID(ctx, ownerID)
}

func (s *BillingService) ListInvoicesByCustomer(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Invoice, error) {
	return s.invoices.ListByCustomerID(ctx, customerID, ownerID)
}

// UpdateInvoice applies the patch. A row_version in the request is a strict
// precondition; without one the write runs through the repository's bounded
// retry loop. Cancelled invoices are frozen either way.
func (s *BillingService) UpdateInvoice(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdateInvoiceRequest) (*models.Invoice, error) {
	apply := func(inv *models.Invoice) error {
		if inv.Status == models.InvoiceStatusCancelled {
			return utils.ErrInvoiceCancelled
		}
		if req.AmountDue != nil {
			inv.AmountDue = *req.AmountDue
		}
		if req.DueDate != nil {
			inv.DueDate = *req.DueDate
		}
		if req.Status != nil {
			next := models.InvoiceStatusType(*req.Status)
			if inv.Status == models.InvoiceStatusPaid && next != models.InvoiceStatusCancelled {
				return utils.ErrInvalidStatusTransition
			}
			inv.Status = next
		}
		return nil
	}

	if req.RowVersion > 0 {
		inv, err := s.invoices.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, utils.ErrNotOwned
		}
		if err := apply(inv); err != nil {
			return nil, err
		}
		tag, err := s.invoices.UpdateIfVersion(ctx, inv, req.RowVersion)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, utils.ErrRowVersionConflict
		}
	} else if err := s.invoices.UpdateWithRetry(ctx, id, ownerID, apply); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotOwned
		}
		return nil, err
	}
	return s.invoices.GetByID(ctx, id, ownerID)
}

func (s *BillingService) DeleteInvoice(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.invoices.Delete(ctx, id, ownerID)
}

// MarkOverdueInvoices is the cron entry point. It flips every sent invoice
// past its due date, across all owners.
func (s *BillingService) MarkOverdueInvoices(ctx context.Context) error {
	n, err := s.invoices.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Logger.Infof("Overdue sweep flipped %d invoice(s)", n)
	}
	return nil
}

/* ───────────── payments ───────────── */

// RecordPayment writes a payment against an invoice. With req.Charge set the
// stored payment method is charged through Stripe first; the payment row then
// lands as completed (or failed) with the provider charge id attached.
func (s *BillingService) RecordPayment(ctx context.Context, ownerID uuid.UUID, req *dtos.CreatePaymentRequest) (*models.Payment, *models.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, req.InvoiceID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, utils.ErrNotOwned
	}

	p := &models.Payment{
		ID:              uuid.New(),
		InvoiceID:       inv.ID,
		CustomerID:      inv.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Status:          models.PaymentStatusPending,
	}

	if req.Charge {
		chargeID, chargeErr := s.chargeStoredMethod(ctx, ownerID, req)
		if chargeErr != nil {
			if errors.Is(chargeErr, utils.ErrNotOwned) {
				return nil, nil, chargeErr
			}
			utils.Logger.WithError(chargeErr).Warnf("Charge failed for invoice %s", inv.ID)
			p.Status = models.PaymentStatusFailed
		} else {
			now := time.Now().UTC()
			p.Status = models.PaymentStatusCompleted
			p.CompletedAt = &now
			p.ProviderChargeID = &chargeID
		}
	}

	updatedInv, err := s.payments.CreateWithRecalc(ctx, p, ownerID)
	if err != nil {
		return nil, nil, err
	}

	if p.Status == models.PaymentStatusCompleted {
		s.postPaymentIncome(ctx, ownerID, p)
		s.sendReceipt(ctx, ownerID, p, updatedInv)
	}
	return p, updatedInv, nil
}

func (s *BillingService) GetPayment(ctx context.Context, id, ownerID uuid.UUID) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id, ownerID)
}

func (s *BillingService) ListPayments(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error) {
	return s.payments.ListByOwnerID(ctx, ownerID)
}

func (s *BillingService) ListPaymentsByInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]*models.Payment, error) {
	return s.payments.ListByInvoiceID(ctx, invoiceID, ownerID)
}

func (s *BillingService) SetPaymentStatus(ctx context.Context, id, ownerID uuid.UUID, req *dtos.UpdatePaymentStatusRequest) (*models.Payment, *models.Invoice, error) {
	next := models.PaymentStatusType(req.Status)

	p, inv, err := s.payments.SetStatusWithRecalc(ctx, id, ownerID, next, req.RowVersion)
	if err != nil {
		return nil, nil, err
	}

	switch next {
	case models.PaymentStatusCompleted:
		s.postPaymentIncome(ctx, ownerID, p)
		s.sendReceipt(ctx, ownerID, p, inv)
	case models.PaymentStatusRefunded:
		s.postPaymentRefund(ctx, ownerID, p)
	}
	return p, inv, nil
}

/* ───────────── payment methods ───────────── */

func (s *BillingService) CreatePaymentMethod(ctx context.Context, ownerID uuid.UUID, req *dtos.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	c, err := s.customers.GetByID(ctx, req.CustomerID, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrNotOwned
	}

	m := &models.PaymentMethod{
		ID:                    uuid.New(),
		CustomerID:            req.CustomerID,
		Kind:                  models.PaymentMethodKind(req.Kind),
		Label:                 req.Label,
		Last4:                 req.Last4,
		IsDefault:             req.IsDefault,
		StripePaymentMethodID: req.StripePaymentMethodID,
	}
	if err := s.paymentMethods.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *BillingService) ListPaymentMethods(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	c, err := s.customers.GetByID(ctx, customerID, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.ErrNotOwned
	}
	return s.paymentMethods.ListByCustomerID(ctx, customerID, ownerID)
}

func (s *BillingService) ListAllPaymentMethods(ctx context.Context, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	return s.paymentMethods.ListByOwnerID(ctx, ownerID)
}

func (s *BillingService) DeletePaymentMethod(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.paymentMethods.Delete(ctx, id, ownerID)
}

/* ───────────── internals ───────────── */

// chargeStoredMethod runs the Stripe charge for a payment request. Returns
// the provider charge id on success.
func (s *BillingService) chargeStoredMethod(ctx context.Context, ownerID uuid.UUID, req *dtos.CreatePaymentRequest) (string, error) {
	if req.PaymentMethodID == nil {
		return "", fmt.Errorf("charge requested without a payment method: %w", utils.ErrExternalServiceFailure)
	}

	m, err := s.paymentMethods.GetByID(ctx, *req.PaymentMethodID, ownerID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", utils.ErrNotOwned
	}
	if m.StripePaymentMethodID == nil {
		return "", fmt.Errorf("payment method %s is not vaulted with the card provider: %w", m.ID, utils.ErrExternalServiceFailure)
	}
	if !s.stripeEnabled {
		return "", fmt.Errorf("card charging is disabled: %w", utils.ErrExternalServiceFailure)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod: m.StripePaymentMethodID,
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("stripe charge ended in status %s", pi.Status)
	}
	return pi.ID, nil
}

func (s *BillingService) postPaymentIncome(ctx context.Context, ownerID uuid.UUID, p *models.Payment) {
	entry := &models.LedgerEntry{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Kind:       models.LedgerIncome,
		Amount:     p.Amount,
		Memo:       fmt.Sprintf("Payment %s", p.ID),
		OccurredOn: time.Now().UTC(),
		CustomerID: &p.CustomerID,
		PaymentID:  &p.ID,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to post ledger income for payment %s", p.ID)
	}
}

func (s *BillingService) postPaymentRefund(ctx context.Context, ownerID uuid.UUID, p *models.Payment) {
	entry := &models.LedgerEntry{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Kind:       models.LedgerAdjustment,
		Amount:     -p.Amount,
		Memo:       fmt.Sprintf("Refund of payment %s", p.ID),
		OccurredOn: time.Now().UTC(),
		CustomerID: &p.CustomerID,
		PaymentID:  &p.ID,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to post ledger refund for payment %s", p.ID)
	}
}

func (s *BillingService) sendReceipt(ctx context.Context, ownerID uuid.UUID, p *models.Payment, inv *models.Invoice) {
	if inv == nil {
		return
	}
	c, err := s.customers.GetByID(ctx, p.CustomerID, ownerID)
	if err != nil || c == nil {
		utils.Logger.Warnf("Skipping receipt for payment %s: customer lookup failed", p.ID)
		return
	}
	if err := s.email.SendPaymentReceipt(c.FirstName, c.Email, inv.InvoiceNumber, p.Amount, inv.Balance()); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send receipt for payment %s", p.ID)
	}
}
