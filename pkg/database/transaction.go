package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/shared"
)

// WithTransaction function:
//     Begin transaction từ pool
//     Defer rollback - Sẽ tự động rollback nếu:
//         Function fn return error
//         Có panic xảy ra
//     Execute function fn với transaction context
//     Commit nếu không có error
//
// Lỗi begin/commit được wrap với shared.ErrTransactionFailure.

// TxFunc là function type được execute trong transaction
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// Transactor chạy một TxFunc trong một transaction duy nhất.
// Service layer phụ thuộc interface này thay vì *pgxpool.Pool
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

// PoolTransactor implements Transactor on top of a pgx pool
type PoolTransactor struct {
	pool *pgxpool.Pool
}

func NewPoolTransactor(pool *pgxpool.Pool) *PoolTransactor {
	return &PoolTransactor{pool: pool}
}

func (t *PoolTransactor) WithinTransaction(ctx context.Context, fn TxFunc) error {
	return WithTransaction(ctx, t.pool, fn)
}

// WithTransaction wraps một function trong transaction
// Auto rollback nếu có error, auto commit nếu success
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", shared.ErrTransactionFailure, err)
	}

	// Defer rollback (sẽ bị ignore nếu đã commit)
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p) // Re-throw panic
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err // Defer sẽ rollback
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %w", shared.ErrTransactionFailure, err)
	}

	return nil
}

// WithTransactionResult wraps function có return value trong transaction
func WithTransactionResult[T any](ctx context.Context, t Transactor, fn func(ctx context.Context, tx pgx.Tx) (T, error)) (T, error) {
	var result T

	err := t.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(ctx, tx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
