package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

// LedgerRepository is deliberately append-only: no update or delete.
type LedgerRepository interface {
	Create(ctx context.Context, e *models.LedgerEntry) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.LedgerEntry, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*models.LedgerEntry, error)
}

type ledgerRepo struct {
	db DB
}

func NewLedgerRepository(db DB) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Create(ctx context.Context, e *models.LedgerEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO ledger_entries (
            id, owner_id, kind, amount, memo, occurred_on,
            facility_id, customer_id, rental_id, payment_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW())
    `,
		e.ID, e.OwnerID, e.Kind, e.Amount, e.Memo, e.OccurredOn,
		e.FacilityID, e.CustomerID, e.RentalID, e.PaymentID,
	)
	return err
}

func (r *ledgerRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.LedgerEntry, error) {
	row := r.db.QueryRow(ctx, baseSelectLedgerEntry()+" WHERE id=$1 AND owner_id=$2", id, ownerID)
	return scanLedgerEntry(row)
}

func (r *ledgerRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*models.LedgerEntry, error) {
	sql := baseSelectLedgerEntry() + " WHERE owner_id=$1"
	args := []any{ownerID}
	if from != nil {
		args = append(args, *from)
		sql += " AND occurred_on >= $2"
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			sql += " AND occurred_on <= $3"
		} else {
			sql += " AND occurred_on <= $2"
		}
	}
	sql += " ORDER BY occurred_on DESC, created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func baseSelectLedgerEntry() string {
	return `
        SELECT
            id, owner_id, kind, amount, memo, occurred_on,
            facility_id, customer_id, rental_id, payment_id, created_at
        FROM ledger_entries
    `
}

func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Kind,
		&e.Amount,
		&e.Memo,
		&e.OccurredOn,
		&e.FacilityID,
		&e.CustomerID,
		&e.RentalID,
		&e.PaymentID,
		&e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
