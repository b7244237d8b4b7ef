package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

/*
BaseVersionedRepo holds the DB connection, an owner-scoped SELECT-by-ID
statement ($1=id, $2=owner), and a scanner for a single entity type T.
It gives you:

	• GetByID(ctx, id, ownerID) (T, error)
	• UpdateWithRetry(ctx, id, ownerID, mutate, updateIfVersion)
*/
type BaseVersionedRepo[T EntityWithVersion] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
}

// NewBaseRepo is called by concrete repositories.
func NewBaseRepo[T EntityWithVersion](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{db: db, selectByID: selectByID, scan: scan}
}

func (b *BaseVersionedRepo[T]) GetByID(ctx context.Context, id, ownerID uuid.UUID) (T, error) {
	row := b.db.QueryRow(ctx, b.selectByID, id, ownerID)
	return b.scan(row)
}

// UpdateWithRetry wires the generic optimistic-locking loop.
func (b *BaseVersionedRepo[T]) UpdateWithRetry(
	ctx context.Context,
	id, ownerID uuid.UUID,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
) error {
	return WithRetry(
		ctx,
		3, // maxRetries
		id,
		ownerID,
		b.GetByID,
		updateIfVersion,
		mutate,
	)
}
