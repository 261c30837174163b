package model

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/shared"
)

// Status - trạng thái tài khoản.
// suspended chỉ chặn mượn sách mới, không ảnh hưởng các loan đang mở
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusSuspended
}

type Member struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	FullName     string      `db:"full_name" json:"full_name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         shared.Role `db:"role" json:"role"`
	Status       Status      `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

func (m *Member) IsSuspended() bool {
	return m.Status == StatusSuspended
}

func (m *Member) IsLibrarian() bool {
	return m.Role == shared.RoleLibrarian
}

var Columns = []interface{}{
	"id", "username", "full_name", "email", "password_hash",
	"role", "status", "created_at", "updated_at",
}
