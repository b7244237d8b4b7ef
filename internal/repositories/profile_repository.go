package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	SetTier(ctx context.Context, id uuid.UUID, tier models.SubscriptionTier) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type profileRepo struct {
	db DB
}

func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO profiles (
            id, email, password_hash, first_name, last_name, company_name, tier,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		p.ID, p.Email, p.PasswordHash, p.FirstName, p.LastName, p.CompanyName, p.Tier,
	)
	if err == nil {
		p.RowVersion = 1
	}
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE id=$1", id)
	return scanProfile(row)
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE LOWER(email)=LOWER($1)", email)
	return scanProfile(row)
}

func (r *profileRepo) SetTier(ctx context.Context, id uuid.UUID, tier models.SubscriptionTier) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE profiles
        SET tier=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, tier, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProfile() string {
	return `
        SELECT
            id, email, password_hash, first_name, last_name, company_name, tier,
            created_at, updated_at, row_version
        FROM profiles
    `
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.CompanyName,
		&p.Tier,
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
