package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/shared"
)

const librarianBcryptCost = 12

type librarianSeed struct {
	Username string
	FullName string
	Email    string
	Password string
}

type memberRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Status       string    `db:"status"`
}

// seedLibrarianAccount inserts the librarian; an existing username is left untouched
func seedLibrarianAccount(ctx context.Context, db *sqlx.DB, seed librarianSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		return false, errors.New("LIBRARIAN_USERNAME and LIBRARIAN_PASSWORD are required")
	}
	if seed.Email == "" {
		seed.Email = strings.ToLower(seed.Username) + "@library.local"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), librarianBcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	row := memberRow{
		ID:           uuid.New(),
		Username:     seed.Username,
		FullName:     seed.FullName,
		Email:        strings.ToLower(seed.Email),
		PasswordHash: string(hash),
		Role:         shared.RoleLibrarian.String(),
		Status:       "active",
	}

	res, err := db.NamedExecContext(ctx, `
		INSERT INTO members (id, username, full_name, email, password_hash, role, status)
		VALUES (:id, :username, :full_name, :email, :password_hash, :role, :status)
		ON CONFLICT DO NOTHING
	`, row)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
