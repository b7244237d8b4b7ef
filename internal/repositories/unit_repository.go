package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	// Create inserts the unit and recomputes the facility's denormalized
	// total_units in the same transaction.
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Unit, error)
	ListByFacilityID(ctx context.Context, facilityID, ownerID uuid.UUID) ([]*models.Unit, error)

	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Unit) error) error

	// Delete removes the unit and recomputes total_units transactionally.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	selectStmt := baseSelectUnit() + `
        JOIN facilities f ON f.id = u.facility_id
        WHERE u.id=$1 AND f.owner_id=$2`
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanUnit)
	return r
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) (err error) {
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

	_, err = tx.Exec(ctx, `
        INSERT INTO units (
            id, facility_id, unit_number, size_sqft, unit_type, monthly_rate, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `, u.ID, u.FacilityID, u.UnitNumber, u.SizeSqft, u.UnitType, u.MonthlyRate, u.Status)
	if err != nil {
		return err
	}

	if err = recountFacilityUnits(ctx, tx, u.FacilityID); err == nil {
		u.RowVersion = 1
	}
	return err
}

func (r *unitRepo) ListByFacilityID(ctx context.Context, facilityID, ownerID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+`
        JOIN facilities f ON f.id = u.facility_id
        WHERE u.facility_id=$1 AND f.owner_id=$2
        ORDER BY u.unit_number`, facilityID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE units SET
            unit_number=$1, size_sqft=$2, unit_type=$3, monthly_rate=$4, status=$5,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$6 AND row_version=$7
    `, u.UnitNumber, u.SizeSqft, u.UnitType, u.MonthlyRate, u.Status, u.ID, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, ownerID, mutate, r.UpdateIfVersion)
}

func (r *unitRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (err error) {
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

	var facilityID uuid.UUID
	err = tx.QueryRow(ctx, `
        SELECT u.facility_id FROM units u
        JOIN facilities f ON f.id = u.facility_id
        WHERE u.id=$1 AND f.owner_id=$2
        FOR UPDATE OF u
    `, id, ownerID).Scan(&facilityID)
	if err != nil {
		return err // pgx.ErrNoRows when absent or not owned
	}

	if _, err = tx.Exec(ctx, `DELETE FROM units WHERE id=$1`, id); err != nil {
		return err
	}

	err = recountFacilityUnits(ctx, tx, facilityID)
	return err
}

// recountFacilityUnits refreshes facilities.total_units from the units table.
func recountFacilityUnits(ctx context.Context, tx pgx.Tx, facilityID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
        UPDATE facilities
        SET total_units = (SELECT COUNT(*) FROM units WHERE facility_id=$1),
            updated_at = NOW()
        WHERE id=$1
    `, facilityID)
	return err
}

func baseSelectUnit() string {
	return `
        SELECT
            u.id, u.facility_id, u.unit_number, u.size_sqft, u.unit_type,
            u.monthly_rate, u.status,
            u.created_at, u.updated_at, u.row_version
        FROM units u
    `
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(
		&u.ID,
		&u.FacilityID,
		&u.UnitNumber,
		&u.SizeSqft,
		&u.UnitType,
		&u.MonthlyRate,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
