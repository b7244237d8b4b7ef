package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Invoice, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Invoice, error)
	ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Invoice, error)

	UpdateIfVersion(ctx context.Context, inv *models.Invoice, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Invoice) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// MarkOverdue flips every sent invoice whose due date has passed to
	// overdue, across all owners. Returns the number of rows flipped.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type invoiceRepo struct {
	*BaseVersionedRepo[*models.Invoice]
	db DB
}

func NewInvoiceRepository(db DB) InvoiceRepository {
	r := &invoiceRepo{db: db}
	selectStmt := baseSelectInvoice() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanInvoice)
	return r
}

func (r *invoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO invoices (
            id, owner_id, customer_id, rental_id, invoice_number,
            amount_due, amount_paid, due_date, status, paid_at,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,0,$7,$8,NULL, NOW(), NOW(), 1)
    `,
		inv.ID, inv.OwnerID, inv.CustomerID, inv.RentalID, inv.InvoiceNumber,
		inv.AmountDue, inv.DueDate, inv.Status,
	)
	if err == nil {
		inv.RowVersion = 1
	}
	return err
}

func (r *invoiceRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Invoice, error) {
	return r.list(ctx, baseSelectInvoice()+
		" WHERE owner_id=$1 ORDER BY due_date DESC", ownerID)
}

func (r *invoiceRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Invoice, error) {
	return r.list(ctx, baseSelectInvoice()+
		" WHERE owner_id=$1 AND customer_id=$2 ORDER BY due_date DESC", ownerID, customerID)
}

func (r *invoiceRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpdateIfVersion rewrites the billable fields. amount_paid and paid_at are
// owned by the payment recompute (payment_repository) and never written here.
func (r *invoiceRepo) UpdateIfVersion(ctx context.Context, inv *models.Invoice, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE invoices SET
            rental_id=$1, amount_due=$2, due_date=$3, status=$4,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$5 AND owner_id=$6 AND row_version=$7
    `, inv.RentalID, inv.AmountDue, inv.DueDate, inv.Status, inv.ID, inv.OwnerID, expected)
}

func (r *invoiceRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Invoice) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, ownerID, mutate, r.UpdateIfVersion)
}

func (r *invoiceRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE invoices
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE status=$2 AND due_date < $3
    `, models.InvoiceStatusOverdue, models.InvoiceStatusSent, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectInvoice() string {
	return `
        SELECT
            id, owner_id, customer_id, rental_id, invoice_number,
            amount_due, amount_paid, due_date, status, paid_at,
            created_at, updated_at, row_version
        FROM invoices
    `
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.CustomerID,
		&inv.RentalID,
		&inv.InvoiceNumber,
		&inv.AmountDue,
		&inv.AmountPaid,
		&inv.DueDate,
		&inv.Status,
		&inv.PaidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}
