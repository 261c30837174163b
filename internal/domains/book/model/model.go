package model

import (
	"time"

	"github.com/google/uuid"
)

// Book - một đầu sách trong catalog.
// AvailableCopies chỉ thay đổi qua Loan Service (mượn -1, trả +1)
type Book struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Author          string    `db:"author" json:"author"`
	Year            int       `db:"year" json:"year"`
	Category        string    `db:"category" json:"category"`
	TotalCopies     int       `db:"total_copies" json:"total_copies"`
	AvailableCopies int       `db:"available_copies" json:"available_copies"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// Columns used by every SELECT on books
var Columns = []interface{}{
	"id", "title", "author", "year", "category",
	"total_copies", "available_copies", "created_at", "updated_at",
}
