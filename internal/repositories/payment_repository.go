package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

/* ───────────── public interface ───────────── */

type PaymentRepository interface {
	// CreateWithRecalc inserts the payment and, when it lands as completed,
	// recomputes the invoice's amount_paid/status under a row lock in the
	// same transaction. Two concurrent completions on one invoice serialize
	// on the invoice lock, so neither contribution can be lost.
	CreateWithRecalc(ctx context.Context, p *models.Payment, ownerID uuid.UUID) (*models.Invoice, error)

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Payment, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]*models.Payment, error)

	// SetStatusWithRecalc transitions the payment's status (pending →
	// completed/failed, completed → refunded) and recomputes the invoice in
	// the same transaction. A cancelled invoice is frozen: its payments
	// cannot change status, same as CreateWithRecalc.
	SetStatusWithRecalc(ctx context.Context, id, ownerID uuid.UUID, newStatus models.PaymentStatusType, expectedVersion int64) (*models.Payment, *models.Invoice, error)
}

/* ───────────── implementation ───────────── */

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreateWithRecalc(ctx context.Context, p *models.Payment, ownerID uuid.UUID) (inv *models.Invoice, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	inv, err = lockInvoice(ctx, tx, p.InvoiceID, ownerID)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, utils.ErrInvoiceCancelled
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO payments (
            id, invoice_id, customer_id, payment_method_id, amount, status,
            provider_charge_id, completed_at,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		p.ID, p.InvoiceID, p.CustomerID, p.PaymentMethodID, p.Amount, p.Status,
		p.ProviderChargeID, p.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.RowVersion = 1

	if p.Status == models.PaymentStatusCompleted {
		inv, err = recalcInvoice(ctx, tx, inv)
	}
	return inv, err
}

func (r *paymentRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+ownerScopedPaymentClause()+" AND p.id=$2", ownerID, id)
	return scanPayment(row)
}

func (r *paymentRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error) {
	return r.list(ctx, baseSelectPayment()+ownerScopedPaymentClause()+" ORDER BY p.created_at DESC", ownerID)
}

func (r *paymentRepo) ListByInvoiceID(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]*models.Payment, error) {
	return r.list(ctx, baseSelectPayment()+ownerScopedPaymentClause()+
		" AND p.invoice_id=$2 ORDER BY p.created_at", ownerID, invoiceID)
}

func (r *paymentRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) SetStatusWithRecalc(ctx context.Context, id, ownerID uuid.UUID, newStatus models.PaymentStatusType, expectedVersion int64) (updated *models.Payment, inv *models.Invoice, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// Resolve the invoice first and lock it before the payment row; every
	// writer takes the locks in that order.
	var invoiceID uuid.UUID
	err = tx.QueryRow(ctx, `
        SELECT p.invoice_id FROM payments p
        JOIN invoices i ON i.id = p.invoice_id
        WHERE p.id=$1 AND i.owner_id=$2
    `, id, ownerID).Scan(&invoiceID)
	if err != nil {
		return nil, nil, err
	}

	inv, err = lockInvoice(ctx, tx, invoiceID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, nil, utils.ErrInvoiceCancelled
	}

	row := tx.QueryRow(ctx, baseSelectPayment()+" WHERE p.id=$1 FOR UPDATE", id)
	current, err := scanPayment(row)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		return nil, nil, pgx.ErrNoRows
	}
	if current.RowVersion != expectedVersion {
		return nil, nil, utils.ErrRowVersionConflict
	}
	if !models.ValidPaymentTransition(current.Status, newStatus) {
		return nil, nil, utils.ErrInvalidStatusTransition
	}

	completedAt := current.CompletedAt
	if newStatus == models.PaymentStatusCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}
	_, err = tx.Exec(ctx, `
        UPDATE payments
        SET status=$1, completed_at=$2, row_version=row_version+1, updated_at=NOW()
        WHERE id=$3
    `, newStatus, completedAt, id)
	if err != nil {
		return nil, nil, err
	}

	// Money moved in or out of `completed`; resync the denormalized total.
	if newStatus == models.PaymentStatusCompleted || current.Status == models.PaymentStatusCompleted {
		inv, err = recalcInvoice(ctx, tx, inv)
		if err != nil {
			return nil, nil, err
		}
	}

	newRow := tx.QueryRow(ctx, baseSelectPayment()+" WHERE p.id=$1", id)
	updated, err = scanPayment(newRow)
	return updated, inv, err
}

/* ───────────── helpers ───────────── */

func lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID, ownerID uuid.UUID) (*models.Invoice, error) {
	row := tx.QueryRow(ctx, baseSelectInvoice()+" WHERE id=$1 AND owner_id=$2 FOR UPDATE", invoiceID, ownerID)
	inv, err := scanInvoice(row)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, pgx.ErrNoRows
	}
	return inv, nil
}

// recalcInvoice rewrites amount_paid as the sum of the invoice's completed
// payments and derives the status from the fresh total. The invoice row is
// already locked by the caller.
func recalcInvoice(ctx context.Context, tx pgx.Tx, inv *models.Invoice) (*models.Invoice, error) {
	var total float64
	err := tx.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0) FROM payments
        WHERE invoice_id=$1 AND status=$2
    `, inv.ID, models.PaymentStatusCompleted).Scan(&total)
	if err != nil {
		return nil, err
	}

	newStatus := models.InvoiceStatusAfterRecalc(inv.Status, inv.AmountDue, total)

	_, err = tx.Exec(ctx, `
        UPDATE invoices
        SET amount_paid=$1,
            status=$2,
            paid_at=CASE
                WHEN $2=$3 AND paid_at IS NULL THEN NOW()
                WHEN $2<>$3 THEN NULL
                ELSE paid_at
            END,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$4
    `, total, newStatus, models.InvoiceStatusPaid, inv.ID)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectInvoice()+" WHERE id=$1", inv.ID)
	return scanInvoice(row)
}

// $1 is always the owner in the scoped clause; extra args start at $2.
func ownerScopedPaymentClause() string {
	return `
        JOIN invoices i ON i.id = p.invoice_id
        WHERE i.owner_id=$1`
}

func baseSelectPayment() string {
	return `
        SELECT
            p.id, p.invoice_id, p.customer_id, p.payment_method_id, p.amount,
            p.status, p.provider_charge_id, p.completed_at,
            p.created_at, p.updated_at, p.row_version
        FROM payments p
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.InvoiceID,
		&p.CustomerID,
		&p.PaymentMethodID,
		&p.Amount,
		&p.Status,
		&p.ProviderChargeID,
		&p.CompletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
