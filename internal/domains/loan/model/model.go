package model

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/shared/utils"
)

// Loan - một lần mượn: member mượn một bản sách trong một khoảng thời gian.
// BorrowDate, DueDate, ReturnDate là ngày lịch (00:00 UTC).
// DueDate cố định khi tạo; ReturnDate chỉ được set một lần
type Loan struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	MemberID   uuid.UUID  `db:"member_id" json:"member_id"`
	BookID     uuid.UUID  `db:"book_id" json:"book_id"`
	BorrowDate time.Time  `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

func (l *Loan) IsReturned() bool {
	return l.ReturnDate != nil
}

// OverdueDays: số ngày trễ tính tới asOf (0 nếu chưa quá hạn)
func (l *Loan) OverdueDays(asOf time.Time) int {
	days := utils.DaysBetween(l.DueDate, asOf)
	if days < 0 {
		return 0
	}
	return days
}

// LoanDetail - loan kèm tên sách và username cho listing/export
type LoanDetail struct {
	ID             uuid.UUID  `db:"id"`
	MemberID       uuid.UUID  `db:"member_id"`
	BookID         uuid.UUID  `db:"book_id"`
	BorrowDate     time.Time  `db:"borrow_date"`
	DueDate        time.Time  `db:"due_date"`
	ReturnDate     *time.Time `db:"return_date"`
	CreatedAt      time.Time  `db:"created_at"`
	BookTitle      string     `db:"book_title"`
	MemberUsername string     `db:"member_username"`
}

func (d *LoanDetail) Loan() Loan {
	return Loan{
		ID:         d.ID,
		MemberID:   d.MemberID,
		BookID:     d.BookID,
		BorrowDate: d.BorrowDate,
		DueDate:    d.DueDate,
		ReturnDate: d.ReturnDate,
		CreatedAt:  d.CreatedAt,
	}
}

// ListFilter - điều kiện cho Loan Ledger listing
type ListFilter struct {
	Query    string
	MemberID *uuid.UUID
	OpenOnly bool
}
