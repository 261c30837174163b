package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/search"
)

const tableBooks = "books"

// searchFields: title, author, category, year
var searchFields = []search.Field{
	search.Text("title"),
	search.Text("author"),
	search.Text("category"),
	search.Cast("year"),
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}

	query := `
		INSERT INTO books (id, title, author, year, category, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.ID, book.Title, book.Author, book.Year, book.Category,
		book.TotalCopies, book.AvailableCopies,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if database.IsCheckViolation(err) {
			return model.ErrInvalidCopies
		}
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdateTx - Get book với SELECT FOR UPDATE (lock row)
func (r *postgresRepository) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Book, error) {
	return r.getByID(ctx, tx, id, "FOR UPDATE")
}

func (r *postgresRepository) getByID(ctx context.Context, q database.Querier, id uuid.UUID, lock string) (*model.Book, error) {
	query := `
		SELECT id, title, author, year, category, total_copies, available_copies, created_at, updated_at
		FROM books
		WHERE id = $1
	` + lock

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query book: %w", err)
	}

	book, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Book])
	if database.IsNoRows(err) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}

	return &book, nil
}

func (r *postgresRepository) List(ctx context.Context, term string) ([]model.Book, error) {
	query, args, err := BuildListQuery(term)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}

	return books, nil
}

// BuildListQuery renders the catalog listing, optionally filtered by term
func BuildListQuery(term string) (string, []interface{}, error) {
	ds := search.Dialect.
		From(tableBooks).
		Select(model.Columns...).
		Order(goqu.I("title").Asc(), goqu.I("id").Asc())

	if where := search.AnyFieldContains(term, searchFields...); where != nil {
		ds = ds.Where(where)
	}

	return search.ToSQL(ds)
}

// DecrementAvailableTx: điều kiện available_copies > 0 nằm trong WHERE,
// 0 row affected nghĩa là hết sách
func (r *postgresRepository) DecrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE id = $1 AND available_copies > 0
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("decrement available copies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoCopiesAvailable
	}

	return nil
}

func (r *postgresRepository) IncrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE id = $1 AND available_copies < total_copies
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment available copies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCopiesAtCapacity
	}

	return nil
}
