package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/twinguy/stowpilot-sub000/internal/dtos"
	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

type billingFixture struct {
	svc       *BillingService
	customers *fakeCustomerRepo
	invoices  *fakeInvoiceRepo
	payments  *fakePaymentRepo
	methods   *fakePaymentMethodRepo
	ledger    *fakeLedgerRepo

	ownerID  uuid.UUID
	customer *models.Customer
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	customers := newFakeCustomerRepo()
	invoices := newFakeInvoiceRepo()
	payments := newFakePaymentRepo(invoices)
	methods := newFakePaymentMethodRepo(customers)
	ledger := newFakeLedgerRepo()
	email := NewEmailService(nil, "StowPilot", "no-reply@stowpilot.dev", true)

	svc := NewBillingService(invoices, payments, methods, customers, ledger, email, false)

	ownerID := uuid.New()
	customer := &models.Customer{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	return &billingFixture{
		svc:       svc,
		customers: customers,
		invoices:  invoices,
		payments:  payments,
		methods:   methods,
		ledger:    ledger,
		ownerID:   ownerID,
		customer:  customer,
	}
}

func (fx *billingFixture) sentInvoice(t *testing.T, amount float64) *models.Invoice {
	t.Helper()
	inv, err := fx.svc.CreateInvoice(context.Background(), fx.ownerID, &dtos.CreateInvoiceRequest{
		CustomerID: fx.customer.ID,
		AmountDue:  amount,
		DueDate:    time.Now().UTC().Add(14 * 24 * time.Hour),
		Status:     "sent",
	})
	require.NoError(t, err)
	return inv
}

func TestCreateInvoiceDefaults(t *testing.T) {
	fx := newBillingFixture(t)

	inv, err := fx.svc.CreateInvoice(context.Background(), fx.ownerID, &dtos.CreateInvoiceRequest{
		CustomerID: fx.customer.ID,
		AmountDue:  150,
		DueDate:    time.Now().UTC().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusDraft, inv.Status)
	require.True(t, strings.HasPrefix(inv.InvoiceNumber, "INV-"))
	require.Len(t, inv.InvoiceNumber, len("INV-")+8)
	require.Zero(t, inv.AmountPaid)
}

func TestCreateInvoiceForeignCustomer(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.svc.CreateInvoice(context.Background(), uuid.New(), &dtos.CreateInvoiceRequest{
		CustomerID: fx.customer.ID,
		AmountDue:  150,
		DueDate:    time.Now().UTC(),
	})
	require.ErrorIs(t, err, utils.ErrNotOwned)
}

func TestUpdateInvoiceCancelledIsFrozen(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	cancelled := "cancelled"
	inv, err := fx.svc.UpdateInvoice(context.Background(), inv.ID, fx.ownerID, &dtos.UpdateInvoiceRequest{
		Status:     &cancelled,
		RowVersion: inv.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusCancelled, inv.Status)

	amount := 200.0
	_, err = fx.svc.UpdateInvoice(context.Background(), inv.ID, fx.ownerID, &dtos.UpdateInvoiceRequest{
		AmountDue:  &amount,
		RowVersion: inv.RowVersion,
	})
	require.ErrorIs(t, err, utils.ErrInvoiceCancelled)
}

func TestPaymentCompletionPaysInvoiceAndPostsIncome(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	p, _, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, p.Status)
	require.Empty(t, fx.ledger.entries, "pending payments must not hit the ledger")

	p, updatedInv, err := fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "completed",
		RowVersion: p.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
	require.Equal(t, models.InvoiceStatusPaid, updatedInv.Status)
	require.Equal(t, 100.0, updatedInv.AmountPaid)
	require.NotNil(t, updatedInv.PaidAt)

	require.Len(t, fx.ledger.entries, 1)
	entry := fx.ledger.entries[0]
	require.Equal(t, models.LedgerIncome, entry.Kind)
	require.Equal(t, 100.0, entry.Amount)
	require.Equal(t, fx.ownerID, entry.OwnerID)
	require.NotNil(t, entry.PaymentID)
	require.Equal(t, p.ID, *entry.PaymentID)
}

func TestPartialPaymentLeavesInvoiceSent(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	p, _, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    40,
	})
	require.NoError(t, err)

	_, updatedInv, err := fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "completed",
		RowVersion: p.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusSent, updatedInv.Status)
	require.Equal(t, 40.0, updatedInv.AmountPaid)
	require.Equal(t, 60.0, updatedInv.Balance())
}

func TestRefundRevertsInvoiceAndPostsAdjustment(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	p, _, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
	})
	require.NoError(t, err)

	p, _, err = fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "completed",
		RowVersion: p.RowVersion,
	})
	require.NoError(t, err)

	p, updatedInv, err := fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "refunded",
		RowVersion: p.RowVersion,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusRefunded, p.Status)
	require.Equal(t, models.InvoiceStatusSent, updatedInv.Status)
	require.Zero(t, updatedInv.AmountPaid)

	require.Len(t, fx.ledger.entries, 2)
	refund := fx.ledger.entries[1]
	require.Equal(t, models.LedgerAdjustment, refund.Kind)
	require.Equal(t, -100.0, refund.Amount)
}

func TestPaymentInvalidTransitionRejected(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	p, _, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
	})
	require.NoError(t, err)

	// pending can't be refunded
	_, _, err = fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "refunded",
		RowVersion: p.RowVersion,
	})
	require.ErrorIs(t, err, utils.ErrInvalidStatusTransition)
}

func TestPaymentAgainstCancelledInvoiceRejected(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	cancelled := "cancelled"
	inv, err := fx.svc.UpdateInvoice(context.Background(), inv.ID, fx.ownerID, &dtos.UpdateInvoiceRequest{
		Status:     &cancelled,
		RowVersion: inv.RowVersion,
	})
	require.NoError(t, err)

	_, _, err = fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
	})
	require.ErrorIs(t, err, utils.ErrInvoiceCancelled)
}

func TestCompletingPaymentOnCancelledInvoiceRejected(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	p, _, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID: inv.ID,
		Amount:    100,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, p.Status)

	cancelled := "cancelled"
	inv, err = fx.svc.UpdateInvoice(context.Background(), inv.ID, fx.ownerID, &dtos.UpdateInvoiceRequest{
		Status:     &cancelled,
		RowVersion: inv.RowVersion,
	})
	require.NoError(t, err)

	// The pending payment predates the cancellation; completing it now must
	// fail the same way recording a fresh payment would.
	_, _, err = fx.svc.SetPaymentStatus(context.Background(), p.ID, fx.ownerID, &dtos.UpdatePaymentStatusRequest{
		Status:     "completed",
		RowVersion: p.RowVersion,
	})
	require.ErrorIs(t, err, utils.ErrInvoiceCancelled)

	frozen, err := fx.svc.GetInvoice(context.Background(), inv.ID, fx.ownerID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusCancelled, frozen.Status)
	require.Equal(t, 0.0, frozen.AmountPaid)
	require.Empty(t, fx.ledger.entries)
}

func TestChargeWithoutProviderLandsFailed(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	m, err := fx.svc.CreatePaymentMethod(context.Background(), fx.ownerID, &dtos.CreatePaymentMethodRequest{
		CustomerID: fx.customer.ID,
		Kind:       "card",
		Label:      "Visa",
		Last4:      "4242",
	})
	require.NoError(t, err)

	// No vaulted provider id and charging disabled: the charge fails but the
	// attempt is still recorded as a failed payment, not an error.
	p, updatedInv, err := fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID:       inv.ID,
		PaymentMethodID: &m.ID,
		Amount:          100,
		Charge:          true,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusFailed, p.Status)
	require.Equal(t, models.InvoiceStatusSent, updatedInv.Status)
	require.Zero(t, updatedInv.AmountPaid)
	require.Empty(t, fx.ledger.entries)
}

func TestChargeWithForeignPaymentMethodRejected(t *testing.T) {
	fx := newBillingFixture(t)
	inv := fx.sentInvoice(t, 100)

	// Payment method belonging to a different owner's customer.
	otherOwner := uuid.New()
	otherCustomer := &models.Customer{ID: uuid.New(), OwnerID: otherOwner, Email: "x@example.com"}
	require.NoError(t, fx.customers.Create(context.Background(), otherCustomer))
	foreign, err := fx.svc.CreatePaymentMethod(context.Background(), otherOwner, &dtos.CreatePaymentMethodRequest{
		CustomerID: otherCustomer.ID,
		Kind:       "card",
		Label:      "Amex",
		Last4:      "0005",
	})
	require.NoError(t, err)

	_, _, err = fx.svc.RecordPayment(context.Background(), fx.ownerID, &dtos.CreatePaymentRequest{
		InvoiceID:       inv.ID,
		PaymentMethodID: &foreign.ID,
		Amount:          100,
		Charge:          true,
	})
	require.ErrorIs(t, err, utils.ErrNotOwned)
}

func TestMarkOverdueInvoices(t *testing.T) {
	fx := newBillingFixture(t)

	mk := func(status string, due time.Time) *models.Invoice {
		inv, err := fx.svc.CreateInvoice(context.Background(), fx.ownerID, &dtos.CreateInvoiceRequest{
			CustomerID: fx.customer.ID,
			AmountDue:  100,
			DueDate:    due,
			Status:     status,
		})
		require.NoError(t, err)
		return inv
	}

	pastSent := mk("sent", time.Now().UTC().Add(-48*time.Hour))
	futureSent := mk("sent", time.Now().UTC().Add(48*time.Hour))
	pastDraft := mk("draft", time.Now().UTC().Add(-48*time.Hour))

	require.NoError(t, fx.svc.MarkOverdueInvoices(context.Background()))

	get := func(id uuid.UUID) *models.Invoice {
		inv, err := fx.svc.GetInvoice(context.Background(), id, fx.ownerID)
		require.NoError(t, err)
		require.NotNil(t, inv)
		return inv
	}
	require.Equal(t, models.InvoiceStatusOverdue, get(pastSent.ID).Status)
	require.Equal(t, models.InvoiceStatusSent, get(futureSent.ID).Status)
	require.Equal(t, models.InvoiceStatusDraft, get(pastDraft.ID).Status)
}

func TestListPaymentMethodsForeignCustomer(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.svc.ListPaymentMethods(context.Background(), fx.customer.ID, uuid.New())
	require.ErrorIs(t, err, utils.ErrNotOwned)
}
