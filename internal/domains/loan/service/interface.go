package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

type ServiceInterface interface {
	BorrowBook(ctx context.Context, memberID, bookID uuid.UUID) (*model.Loan, error)
	ReturnBook(ctx context.Context, loanID uuid.UUID) (*model.ReturnResult, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ListLoans(ctx context.Context, filter model.ListFilter) ([]model.LoanDetail, error)
	ListOverdue(ctx context.Context) ([]model.LoanDetail, error)
}

// Notifier gửi thông báo suspension sau khi transaction trả sách đã commit
type Notifier interface {
	NotifySuspension(ctx context.Context, payload model.SuspensionNoticePayload) error
}
