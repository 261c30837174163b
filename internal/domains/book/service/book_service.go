package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/pkg/logger"
)

type BookService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{repo: repo}
}

// CreateBook: available copies bắt đầu bằng total copies
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:           strings.TrimSpace(req.Title),
		Author:          strings.TrimSpace(req.Author),
		Year:            req.Year,
		Category:        strings.TrimSpace(req.Category),
		TotalCopies:     req.Copies,
		AvailableCopies: req.Copies,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": book.ID.String(),
		"title":   book.Title,
		"copies":  book.TotalCopies,
	})

	return book, nil
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error) {
	return s.repo.List(ctx, req.Query)
}
