package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface - Loan Ledger. Không có delete
type RepositoryInterface interface {
	CreateTx(ctx context.Context, tx pgx.Tx, loan *model.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	// GetByIDForUpdateTx khoá loan row: hai lần trả cùng loan không thể cùng thành công
	GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Loan, error)
	// MarkReturnedTx chỉ update khi return_date IS NULL
	MarkReturnedTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, returnDate time.Time) error

	List(ctx context.Context, filter model.ListFilter) ([]model.LoanDetail, error)
	ListOverdue(ctx context.Context, today time.Time) ([]model.LoanDetail, error)
	CountOpenOverdue(ctx context.Context, memberID uuid.UUID, today time.Time) (int, error)
}
