package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

type captureRepo struct {
	created []model.Book
	query   string
}

func (r *captureRepo) Create(_ context.Context, b *model.Book) error {
	b.ID = uuid.New()
	r.created = append(r.created, *b)
	return nil
}

func (r *captureRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	for i := range r.created {
		if r.created[i].ID == id {
			return &r.created[i], nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (r *captureRepo) List(_ context.Context, query string) ([]model.Book, error) {
	r.query = query
	return r.created, nil
}

func (r *captureRepo) GetByIDForUpdateTx(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*model.Book, error) {
	return r.GetByID(ctx, id)
}

func (r *captureRepo) DecrementAvailableTx(context.Context, pgx.Tx, uuid.UUID) error { return nil }
func (r *captureRepo) IncrementAvailableTx(context.Context, pgx.Tx, uuid.UUID) error { return nil }

func Test_CreateBook_StartsFullyAvailable(t *testing.T) {
	// arrange
	repo := &captureRepo{}
	svc := NewService(repo)

	// act
	book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title:    "  Germinal ",
		Author:   "Emile Zola",
		Year:     1885,
		Category: "Roman",
		Copies:   3,
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Germinal", book.Title)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
	assert.True(t, book.IsAvailable())
	assert.Len(t, repo.created, 1)
}

func Test_CreateBook_ZeroCopiesIsAllowedButUnavailable(t *testing.T) {
	book, err := NewService(&captureRepo{}).CreateBook(context.Background(), model.CreateBookRequest{
		Title:  "Nana",
		Author: "Emile Zola",
	})

	require.NoError(t, err)
	assert.False(t, book.IsAvailable())
}

func Test_CreateBook_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		req   model.CreateBookRequest
		field string
	}{
		{"missing title", model.CreateBookRequest{Author: "A", Copies: 1}, "title"},
		{"missing author", model.CreateBookRequest{Title: "T", Copies: 1}, "author"},
		{"negative copies", model.CreateBookRequest{Title: "T", Author: "A", Copies: -1}, "copies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &captureRepo{}

			_, err := NewService(repo).CreateBook(context.Background(), tt.req)

			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
			assert.Empty(t, repo.created)
		})
	}
}

func Test_ListBooks_ForwardsSearchTerm(t *testing.T) {
	repo := &captureRepo{}

	_, err := NewService(repo).ListBooks(context.Background(), model.ListBooksRequest{Query: "zola"})

	require.NoError(t, err)
	assert.Equal(t, "zola", repo.query)
}
