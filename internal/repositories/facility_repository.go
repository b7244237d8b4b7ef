package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type FacilityRepository interface {
	Create(ctx context.Context, f *models.Facility) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Facility, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Facility, error)

	UpdateIfVersion(ctx context.Context, f *models.Facility, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Facility) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type facilityRepo struct {
	*BaseVersionedRepo[*models.Facility]
	db DB
}

func NewFacilityRepository(db DB) FacilityRepository {
	r := &facilityRepo{db: db}
	selectStmt := baseSelectFacility() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanFacility)
	return r
}

func (r *facilityRepo) Create(ctx context.Context, f *models.Facility) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO facilities (
            id, owner_id, name, address, city, state, zip_code, time_zone,
            latitude, longitude, amenities, total_units,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,0, NOW(), NOW(), 1)
    `,
		f.ID,
		f.OwnerID,
		f.Name,
		f.Address,
		f.City,
		f.State,
		f.ZipCode,
		f.TimeZone,
		f.Latitude,
		f.Longitude,
		f.Amenities,
	)
	if err == nil {
		f.RowVersion = 1
	}
	return err
}

func (r *facilityRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Facility, error) {
	rows, err := r.db.Query(ctx, baseSelectFacility()+" WHERE owner_id=$1 ORDER BY created_at", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *facilityRepo) UpdateIfVersion(ctx context.Context, f *models.Facility, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE facilities SET
            name=$1, address=$2, city=$3, state=$4, zip_code=$5,
            time_zone=$6, latitude=$7, longitude=$8, amenities=$9,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$10 AND owner_id=$11 AND row_version=$12
    `,
		f.Name, f.Address, f.City, f.State, f.ZipCode,
		f.TimeZone, f.Latitude, f.Longitude, f.Amenities,
		f.ID, f.OwnerID, expected)
}

func (r *facilityRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Facility) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, ownerID, mutate, r.UpdateIfVersion)
}

func (r *facilityRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM facilities WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectFacility() string {
	return `
        SELECT
            id, owner_id, name,
            address, city, state, zip_code, time_zone,
            latitude, longitude, amenities, total_units,
            created_at, updated_at, row_version
        FROM facilities
    `
}

func scanFacility(row pgx.Row) (*models.Facility, error) {
	var f models.Facility
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Name,
		&f.Address,
		&f.City,
		&f.State,
		&f.ZipCode,
		&f.TimeZone,
		&f.Latitude,
		&f.Longitude,
		&f.Amenities,
		&f.TotalUnits,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
