package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error

	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Customer, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Customer, error)

	UpdateIfVersion(ctx context.Context, c *models.Customer, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Customer) error) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type customerRepo struct {
	*BaseVersionedRepo[*models.Customer]
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	r := &customerRepo{db: db}
	selectStmt := baseSelectCustomer() + " WHERE id=$1 AND owner_id=$2"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanCustomer)
	return r
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO customers (
            id, owner_id, first_name, last_name, email, phone,
            background_check, credit_score,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		c.ID, c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.BackgroundCheck, c.CreditScore,
	)
	if err == nil {
		c.RowVersion = 1
	}
	return err
}

func (r *customerRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Customer, error) {
	rows, err := r.db.Query(ctx, baseSelectCustomer()+
		" WHERE owner_id=$1 ORDER BY last_name, first_name", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customerRepo) UpdateIfVersion(ctx context.Context, c *models.Customer, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE customers SET
            first_name=$1, last_name=$2, email=$3, phone=$4,
            background_check=$5, credit_score=$6,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$7 AND owner_id=$8 AND row_version=$9
    `,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.BackgroundCheck, c.CreditScore,
		c.ID, c.OwnerID, expected)
}

func (r *customerRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Customer) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, ownerID, mutate, r.UpdateIfVersion)
}

func (r *customerRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectCustomer() string {
	return `
        SELECT
            id, owner_id, first_name, last_name, email, phone,
            background_check, credit_score,
            created_at, updated_at, row_version
        FROM customers
    `
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.BackgroundCheck,
		&c.CreditScore,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
