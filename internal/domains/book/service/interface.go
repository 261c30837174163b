package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error)
}
