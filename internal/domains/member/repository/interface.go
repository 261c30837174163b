package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"library-backend/internal/domains/member/model"
)

// RepositoryInterface - Member Directory
type RepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetByUsername(ctx context.Context, username string) (*model.Member, error)
	List(ctx context.Context, query string) ([]model.Member, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error

	GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Member, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) error
}
