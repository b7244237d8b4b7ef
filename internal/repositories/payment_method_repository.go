package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, m *models.PaymentMethod) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error)
	ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.PaymentMethod, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.PaymentMethod, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type paymentMethodRepo struct {
	db DB
}

func NewPaymentMethodRepository(db DB) PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) Create(ctx context.Context, m *models.PaymentMethod) (err error) {
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

	// Only one default method per customer.
	if m.IsDefault {
		_, err = tx.Exec(ctx, `
            UPDATE payment_methods SET is_default=FALSE WHERE customer_id=$1
        `, m.CustomerID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO payment_methods (
            id, customer_id, kind, label, last4, is_default,
            stripe_payment_method_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
    `, m.ID, m.CustomerID, m.Kind, m.Label, m.Last4, m.IsDefault, m.StripePaymentMethodID)
	return err
}

func (r *paymentMethodRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	row := r.db.QueryRow(ctx, baseSelectPaymentMethod()+ownerScopedMethodClause()+" AND m.id=$2", ownerID, id)
	return scanPaymentMethod(row)
}

func (r *paymentMethodRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	return r.list(ctx, baseSelectPaymentMethod()+ownerScopedMethodClause()+
		" AND m.customer_id=$2 ORDER BY m.created_at", ownerID, customerID)
}

func (r *paymentMethodRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	return r.list(ctx, baseSelectPaymentMethod()+ownerScopedMethodClause()+
		" ORDER BY m.created_at", ownerID)
}

func (r *paymentMethodRepo) list(ctx context.Context, sql string, args ...any) ([]*models.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PaymentMethod
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *paymentMethodRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM payment_methods m
        USING customers c
        WHERE m.id=$1 AND c.id=m.customer_id AND c.owner_id=$2
    `, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// $1 is always the owner in the scoped clause; extra args start at $2.
func ownerScopedMethodClause() string {
	return `
        JOIN customers c ON c.id = m.customer_id
        WHERE c.owner_id=$1`
}

func baseSelectPaymentMethod() string {
	return `
        SELECT
            m.id, m.customer_id, m.kind, m.label, m.last4, m.is_default,
            m.stripe_payment_method_id, m.created_at
        FROM payment_methods m
    `
}

func scanPaymentMethod(row pgx.Row) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.ID,
		&m.CustomerID,
		&m.Kind,
		&m.Label,
		&m.Last4,
		&m.IsDefault,
		&m.StripePaymentMethodID,
		&m.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
