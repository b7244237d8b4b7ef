package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

/* ───────────── public interface ───────────── */

type RentalRepository interface {
	// CreateWithUnitSync inserts the rental and applies the unit status the
	// rental implies (active → occupied) in one transaction. The unit row is
	// locked first, so a unit can never end up with two active rentals.
	CreateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Rental, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error)
	ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Rental, error)

	// UpdateWithUnitSync rewrites the rental, checks the caller's row_version,
	// and syncs unit status — including freeing the previous unit when the
	// rental moved — all in one transaction.
	UpdateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID, expectedVersion int64) (*models.Rental, error)

	// DeleteWithUnitSync removes the rental and frees its unit if the rental
	// was the one occupying it.
	DeleteWithUnitSync(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type rentalRepo struct {
	db DB
}

func NewRentalRepository(db DB) RentalRepository {
	return &rentalRepo{db: db}
}

func (r *rentalRepo) CreateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// Lock the unit row; missing row means absent or not owned.
	var unitID uuid.UUID
	err = tx.QueryRow(ctx, `
        SELECT u.id FROM units u
        JOIN facilities f ON f.id = u.facility_id
        WHERE u.id=$1 AND f.owner_id=$2
        FOR UPDATE OF u
    `, rental.UnitID, ownerID).Scan(&unitID)
	if err != nil {
		return err
	}

	// The customer must belong to the same owner.
	var one int
	err = tx.QueryRow(ctx, `
        SELECT 1 FROM customers WHERE id=$1 AND owner_id=$2
    `, rental.CustomerID, ownerID).Scan(&one)
	if err != nil {
		return err
	}

	if rental.Status.Occupies() {
		if err = ensureNoOtherActiveRental(ctx, tx, rental.UnitID, uuid.Nil); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO rentals (
            id, customer_id, unit_id, status, start_date, end_date,
            monthly_rate, security_deposit,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		rental.ID, rental.CustomerID, rental.UnitID, rental.Status,
		rental.StartDate, rental.EndDate, rental.MonthlyRate, rental.SecurityDeposit,
	)
	if err != nil {
		return err
	}

	if err = applyUnitStatus(ctx, tx, rental.UnitID, rental.Status); err == nil {
		rental.RowVersion = 1
	}
	return err
}

func (r *rentalRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Rental, error) {
	row := r.db.QueryRow(ctx, baseSelectRental()+ownerScopedRentalClause()+" AND r.id=$2", ownerID, id)
	return scanRental(row)
}

func (r *rentalRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error) {
	return r.list(ctx, baseSelectRental()+ownerScopedRentalClause()+" ORDER BY r.created_at DESC", ownerID)
}

func (r *rentalRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Rental, error) {
	return r.list(ctx, baseSelectRental()+ownerScopedRentalClause()+
		" AND r.customer_id=$2 ORDER BY r.created_at DESC", ownerID, customerID)
}

func (r *rentalRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Rental, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rental)
	}
	return out, rows.Err()
}

func (r *rentalRepo) UpdateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID, expectedVersion int64) (updated *models.Rental, err error) {
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

	row := tx.QueryRow(ctx, baseSelectRental()+ownerScopedRentalClause()+" AND r.id=$2 FOR UPDATE OF r", ownerID, rental.ID)
	prev, err := scanRental(row)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, pgx.ErrNoRows
	}
	if prev.RowVersion != expectedVersion {
		return nil, utils.ErrRowVersionConflict
	}

	// Lock the target unit (and the previous one when the rental moved).
	var locked uuid.UUID
	err = tx.QueryRow(ctx, `
        SELECT u.id FROM units u
        JOIN facilities f ON f.id = u.facility_id
        WHERE u.id=$1 AND f.owner_id=$2
        FOR UPDATE OF u
    `, rental.UnitID, ownerID).Scan(&locked)
	if err != nil {
		return nil, err
	}
	unitChanged := prev.UnitID != rental.UnitID
	if unitChanged {
		var prevLocked uuid.UUID
		err = tx.QueryRow(ctx, `SELECT id FROM units WHERE id=$1 FOR UPDATE`, prev.UnitID).Scan(&prevLocked)
		if err != nil {
			return nil, err
		}
	}

	if rental.Status.Occupies() {
		if err = ensureNoOtherActiveRental(ctx, tx, rental.UnitID, rental.ID); err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx, `
        UPDATE rentals SET
            customer_id=$1, unit_id=$2, status=$3, start_date=$4, end_date=$5,
            monthly_rate=$6, security_deposit=$7,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$8
    `,
		rental.CustomerID, rental.UnitID, rental.Status, rental.StartDate, rental.EndDate,
		rental.MonthlyRate, rental.SecurityDeposit, rental.ID,
	)
	if err != nil {
		return nil, err
	}

	// Sync unit statuses: the vacated unit reverts to available, the current
	// unit follows the rental's status.
	if unitChanged && prev.Status.Occupies() {
		if err = setUnitStatus(ctx, tx, prev.UnitID, models.UnitStatusAvailable); err != nil {
			return nil, err
		}
	}
	if err = applyUnitStatus(ctx, tx, rental.UnitID, rental.Status); err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectRental()+ownerScopedRentalClause()+" AND r.id=$2", ownerID, rental.ID)
	updated, err = scanRental(newRow)
	return updated, err
}

func (r *rentalRepo) DeleteWithUnitSync(ctx context.Context, id, ownerID uuid.UUID) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectRental()+ownerScopedRentalClause()+" AND r.id=$2 FOR UPDATE OF r", ownerID, id)
	rental, err := scanRental(row)
	if err != nil {
		return err
	}
	if rental == nil {
		return pgx.ErrNoRows
	}

	if _, err = tx.Exec(ctx, `DELETE FROM rentals WHERE id=$1`, id); err != nil {
		return err
	}

	if rental.Status.Occupies() {
		err = setUnitStatus(ctx, tx, rental.UnitID, models.UnitStatusAvailable)
	}
	return err
}

/* ───────────── helpers ───────────── */

// ensureNoOtherActiveRental guards the unit invariant: at most one active
// rental per unit. excludeID skips the rental being edited.
func ensureNoOtherActiveRental(ctx context.Context, tx pgx.Tx, unitID, excludeID uuid.UUID) error {
	var n int
	err := tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM rentals
        WHERE unit_id=$1 AND status=$2 AND id<>$3
    `, unitID, models.RentalStatusActive, excludeID).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.ErrUnitUnavailable
	}
	return nil
}

func applyUnitStatus(ctx context.Context, tx pgx.Tx, unitID uuid.UUID, rentalStatus models.RentalStatusType) error {
	target, ok := models.UnitStatusForRental(rentalStatus)
	if !ok {
		return nil
	}
	return setUnitStatus(ctx, tx, unitID, target)
}

func setUnitStatus(ctx context.Context, tx pgx.Tx, unitID uuid.UUID, status models.UnitStatusType) error {
	_, err := tx.Exec(ctx, `
        UPDATE units
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, status, unitID)
	return err
}

// $1 is always the owner in the scoped clause; extra args start at $2.
func ownerScopedRentalClause() string {
	return `
        JOIN units u ON u.id = r.unit_id
        JOIN facilities f ON f.id = u.facility_id
        WHERE f.owner_id=$1`
}

func baseSelectRental() string {
	return `
        SELECT
            r.id, r.customer_id, r.unit_id, r.status, r.start_date, r.end_date,
            r.monthly_rate, r.security_deposit,
            r.created_at, r.updated_at, r.row_version
        FROM rentals r
    `
}

func scanRental(row pgx.Row) (*models.Rental, error) {
	var r models.Rental
	err := row.Scan(
		&r.ID,
		&r.CustomerID,
		&r.UnitID,
		&r.Status,
		&r.StartDate,
		&r.EndDate,
		&r.MonthlyRate,
		&r.SecurityDeposit,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}
