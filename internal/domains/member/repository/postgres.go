package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/search"
)

const (
	tableMembers = "members"

	constraintUsername = "members_username_key"
	constraintEmail    = "members_email_key"
)

// searchFields: username, full name, email, status
var searchFields = []search.Field{
	search.Text("username"),
	search.Text("full_name"),
	search.Text("email"),
	search.Text("status"),
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, member *model.Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	query := `
		INSERT INTO members (id, username, full_name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		member.ID, member.Username, member.FullName, member.Email,
		member.PasswordHash, member.Role, member.Status,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			switch constraint {
			case constraintEmail:
				return model.ErrEmailAlreadyExists
			default:
				return model.ErrUsernameAlreadyExists
			}
		}
		return fmt.Errorf("insert member: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	return r.getOne(ctx, r.pool, "id = $1", id)
}

func (r *postgresRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Member, error) {
	return r.getOne(ctx, tx, "id = $1", id)
}

// GetByUsername so khớp không phân biệt hoa thường
func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	return r.getOne(ctx, r.pool, "LOWER(username) = $1", strings.ToLower(username))
}

func (r *postgresRepository) getOne(ctx context.Context, q database.Querier, where string, arg interface{}) (*model.Member, error) {
	query := `
		SELECT id, username, full_name, email, password_hash, role, status, created_at, updated_at
		FROM members
		WHERE ` + where

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}

	member, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Member])
	if database.IsNoRows(err) {
		return nil, model.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}

	return &member, nil
}

func (r *postgresRepository) List(ctx context.Context, term string) ([]model.Member, error) {
	query, args, err := BuildListQuery(term)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Member])
	if err != nil {
		return nil, fmt.Errorf("scan members: %w", err)
	}

	return members, nil
}

// BuildListQuery renders the member listing, optionally filtered by term
func BuildListQuery(term string) (string, []interface{}, error) {
	ds := search.Dialect.
		From(tableMembers).
		Select(model.Columns...).
		Order(goqu.I("username").Asc())

	if where := search.AnyFieldContains(term, searchFields...); where != nil {
		ds = ds.Where(where)
	}

	return search.ToSQL(ds)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	return r.updateStatus(ctx, r.pool, id, status)
}

func (r *postgresRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) error {
	return r.updateStatus(ctx, tx, id, status)
}

func (r *postgresRepository) updateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status model.Status) error {
	query := `UPDATE members SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update member status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}

	return nil
}
