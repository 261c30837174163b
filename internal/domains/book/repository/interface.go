package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface - Catalog Store.
// Các method *Tx chạy trong transaction của Loan Service
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, query string) ([]model.Book, error)

	// GetByIDForUpdateTx khoá row (SELECT ... FOR UPDATE) đến khi tx kết thúc
	GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Book, error)
	DecrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	IncrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
