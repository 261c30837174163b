package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/search"
)

// searchFields: member id, book id, borrow/due/return date
var searchFields = []search.Field{
	search.Cast("l.member_id"),
	search.Cast("l.book_id"),
	search.Cast("l.borrow_date"),
	search.Cast("l.due_date"),
	search.Cast("l.return_date"),
}

var detailColumns = []interface{}{
	goqu.I("l.id"),
	goqu.I("l.member_id"),
	goqu.I("l.book_id"),
	goqu.I("l.borrow_date"),
	goqu.I("l.due_date"),
	goqu.I("l.return_date"),
	goqu.I("l.created_at"),
	goqu.I("b.title").As("book_title"),
	goqu.I("m.username").As("member_username"),
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateTx(ctx context.Context, tx pgx.Tx, loan *model.Loan) error {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}

	query := `
		INSERT INTO loans (id, book_id, member_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		loan.ID, loan.BookID, loan.MemberID, loan.BorrowDate, loan.DueDate,
	).Scan(&loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	return r.getByID(ctx, r.pool, id, "")
}

func (r *postgresRepository) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Loan, error) {
	return r.getByID(ctx, tx, id, "FOR UPDATE")
}

func (r *postgresRepository) getByID(ctx context.Context, q database.Querier, id uuid.UUID, lock string) (*model.Loan, error) {
	query := `
		SELECT id, member_id, book_id, borrow_date, due_date, return_date, created_at
		FROM loans
		WHERE id = $1
	` + lock

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query loan: %w", err)
	}

	loan, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Loan])
	if database.IsNoRows(err) {
		return nil, model.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan loan: %w", err)
	}

	return &loan, nil
}

func (r *postgresRepository) MarkReturnedTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, returnDate time.Time) error {
	query := `UPDATE loans SET return_date = $2 WHERE id = $1 AND return_date IS NULL`

	tag, err := tx.Exec(ctx, query, id, returnDate)
	if err != nil {
		return fmt.Errorf("mark loan returned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyReturned
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.LoanDetail, error) {
	query, args, err := BuildListQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.queryDetails(ctx, query, args)
}

// ListOverdue: loan đang mở có due_date < today
func (r *postgresRepository) ListOverdue(ctx context.Context, today time.Time) ([]model.LoanDetail, error) {
	ds := detailDataset().
		Where(
			goqu.I("l.return_date").IsNull(),
			goqu.I("l.due_date").Lt(today),
		).
		Order(goqu.I("l.due_date").Asc())

	query, args, err := search.ToSQL(ds)
	if err != nil {
		return nil, err
	}
	return r.queryDetails(ctx, query, args)
}

func (r *postgresRepository) CountOpenOverdue(ctx context.Context, memberID uuid.UUID, today time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM loans
		WHERE member_id = $1 AND return_date IS NULL AND due_date < $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, memberID, today).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overdue loans: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) queryDetails(ctx context.Context, query string, args []interface{}) ([]model.LoanDetail, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	details, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanDetail])
	if err != nil {
		return nil, fmt.Errorf("scan loans: %w", err)
	}
	return details, nil
}

func detailDataset() *goqu.SelectDataset {
	return search.Dialect.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("l.member_id")))).
		Select(detailColumns...)
}

// BuildListQuery renders the ledger listing for filter
func BuildListQuery(filter model.ListFilter) (string, []interface{}, error) {
	conditions := make([]exp.Expression, 0, 3)

	if filter.MemberID != nil {
		conditions = append(conditions, goqu.I("l.member_id").Eq(filter.MemberID.String()))
	}
	if filter.OpenOnly {
		conditions = append(conditions, goqu.I("l.return_date").IsNull())
	}
	if where := search.AnyFieldContains(filter.Query, searchFields...); where != nil {
		conditions = append(conditions, where)
	}

	ds := detailDataset().Order(goqu.I("l.borrow_date").Desc(), goqu.I("l.created_at").Desc())
	if len(conditions) > 0 {
		ds = ds.Where(conditions...)
	}

	return search.ToSQL(ds)
}
