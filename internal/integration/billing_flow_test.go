//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

func pendingPayment(t *testing.T, ownerID uuid.UUID, inv *models.Invoice, amount float64) *models.Payment {
	t.Helper()
	p := &models.Payment{
		ID:         uuid.New(),
		InvoiceID:  inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     amount,
		Status:     models.PaymentStatusPending,
	}
	_, err := paymentRepo.CreateWithRecalc(context.Background(), p, ownerID)
	require.NoError(t, err)
	return p
}

func TestPaymentCompletionRecomputesInvoice(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	c := newCustomer(t, ownerID)
	inv := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(7*24*time.Hour))

	p := pendingPayment(t, ownerID, inv, 100)

	updated, recalced, err := paymentRepo.SetStatusWithRecalc(ctx, p.ID, ownerID, models.PaymentStatusCompleted, p.RowVersion)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.Equal(t, 100.0, recalced.AmountPaid)
	require.Equal(t, models.InvoiceStatusPaid, recalced.Status)
	require.NotNil(t, recalced.PaidAt)
}

// Two writers completing different payments on the same invoice at the same
// time must both land in amount_paid.
func TestConcurrentCompletionsBothCount(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	c := newCustomer(t, ownerID)
	inv := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(7*24*time.Hour))

	p1 := pendingPayment(t, ownerID, inv, 60)
	p2 := pendingPayment(t, ownerID, inv, 40)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, p := range []*models.Payment{p1, p2} {
		wg.Add(1)
		go func(i int, p *models.Payment) {
			defer wg.Done()
			_, _, errs[i] = paymentRepo.SetStatusWithRecalc(ctx, p.ID, ownerID, models.PaymentStatusCompleted, p.RowVersion)
		}(i, p)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	final, err := invoiceRepo.GetByID(ctx, inv.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, 100.0, final.AmountPaid)
	require.Equal(t, models.InvoiceStatusPaid, final.Status)
}

func TestRefundRevertsPaidInvoice(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	c := newCustomer(t, ownerID)
	inv := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(7*24*time.Hour))

	p := pendingPayment(t, ownerID, inv, 100)
	p, _, err := paymentRepo.SetStatusWithRecalc(ctx, p.ID, ownerID, models.PaymentStatusCompleted, p.RowVersion)
	require.NoError(t, err)

	_, recalced, err := paymentRepo.SetStatusWithRecalc(ctx, p.ID, ownerID, models.PaymentStatusRefunded, p.RowVersion)
	require.NoError(t, err)
	require.Zero(t, recalced.AmountPaid)
	require.Equal(t, models.InvoiceStatusSent, recalced.Status)
	require.Nil(t, recalced.PaidAt)
}

func TestPaymentAgainstCancelledInvoice(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	c := newCustomer(t, ownerID)
	inv := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(7*24*time.Hour))

	inv.Status = models.InvoiceStatusCancelled
	tag, err := invoiceRepo.UpdateIfVersion(ctx, inv, inv.RowVersion)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	p := &models.Payment{
		ID:         uuid.New(),
		InvoiceID:  inv.ID,
		CustomerID: c.ID,
		Amount:     100,
		Status:     models.PaymentStatusPending,
	}
	_, err = paymentRepo.CreateWithRecalc(ctx, p, ownerID)
	require.ErrorIs(t, err, utils.ErrInvoiceCancelled)
}

func TestOverdueSweep(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	c := newCustomer(t, ownerID)

	pastDue := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(-48*time.Hour))
	current := newSentInvoice(t, ownerID, c.ID, 100, time.Now().UTC().Add(48*time.Hour))

	n, err := invoiceRepo.MarkOverdue(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))

	got, err := invoiceRepo.GetByID(ctx, pastDue.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusOverdue, got.Status)

	got, err = invoiceRepo.GetByID(ctx, current.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusSent, got.Status)
}

func TestOwnerSummaryReport(t *testing.T) {
	ctx := context.Background()
	ownerID := newOwner(t)
	f := newFacility(t, ownerID)
	u := newUnit(t, f.ID)
	c := newCustomer(t, ownerID)

	require.NoError(t, rentalRepo.CreateWithUnitSync(ctx, activeRental(c.ID, u.ID), ownerID))
	newSentInvoice(t, ownerID, c.ID, 250, time.Now().UTC().Add(7*24*time.Hour))

	s, err := reportRepo.OwnerSummary(ctx, ownerID)
	require.NoError(t, err)
	require.Equal(t, 1, s.FacilityCount)
	require.Equal(t, 1, s.CustomerCount)
	require.Equal(t, 1, s.ActiveRentals)
	require.Equal(t, 1, s.UnitCountsByStatus[models.UnitStatusOccupied])
	require.Equal(t, 1.0, s.OccupancyRate)
	require.Equal(t, 250.0, s.OutstandingReceivables)
}
