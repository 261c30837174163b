package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
	memberModel "library-backend/internal/domains/member/model"
	memberRepo "library-backend/internal/domains/member/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/principal"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/database"
)

// LoanService điều phối mượn/trả trên Catalog Store, Member Directory và Loan Ledger.
// Mỗi BorrowBook/ReturnBook là một transaction
type LoanService struct {
	tx       database.Transactor
	loans    repository.RepositoryInterface
	books    bookRepo.RepositoryInterface
	members  memberRepo.RepositoryInterface
	notifier Notifier
	policy   model.Policy

	now func() time.Time
}

var _ ServiceInterface = (*LoanService)(nil)

func NewService(
	tx database.Transactor,
	loans repository.RepositoryInterface,
	books bookRepo.RepositoryInterface,
	members memberRepo.RepositoryInterface,
	notifier Notifier,
	policy model.Policy,
) *LoanService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &LoanService{
		tx:       tx,
		loans:    loans,
		books:    books,
		members:  members,
		notifier: notifier,
		policy:   policy,
		now:      time.Now,
	}
}

// BorrowBook tạo loan mới cho memberID.
// Thứ tự kiểm tra: member/book tồn tại, member không bị suspend, còn bản sách
func (s *LoanService) BorrowBook(ctx context.Context, memberID, bookID uuid.UUID) (*model.Loan, error) {
	actor, ok := principal.FromContext(ctx)
	if !ok || !actor.CanActFor(memberID) {
		return nil, shared.ErrForbidden
	}

	loan, err := database.WithTransactionResult(ctx, s.tx, func(ctx context.Context, tx pgx.Tx) (*model.Loan, error) {
		member, err := s.members.GetByIDTx(ctx, tx, memberID)
		if err != nil {
			return nil, err
		}

		// Lock book row tới khi commit: các borrow đồng thời trên cùng book chạy tuần tự
		book, err := s.books.GetByIDForUpdateTx(ctx, tx, bookID)
		if err != nil {
			return nil, err
		}

		if member.IsSuspended() {
			return nil, model.ErrMemberSuspended
		}
		if !book.IsAvailable() {
			return nil, model.ErrNoCopiesAvailable
		}

		if err := s.books.DecrementAvailableTx(ctx, tx, bookID); err != nil {
			return nil, err
		}

		today := s.policy.Today(s.now())
		loan := &model.Loan{
			ID:         uuid.New(),
			MemberID:   memberID,
			BookID:     bookID,
			BorrowDate: today,
			DueDate:    s.policy.DueDate(today),
		}
		if err := s.loans.CreateTx(ctx, tx, loan); err != nil {
			return nil, err
		}

		return loan, nil
	})
	if err != nil {
		err = classify(err)
		log.Warn().Err(err).
			Str("actor_id", actor.MemberID.String()).
			Str("member_id", memberID.String()).
			Str("book_id", bookID.String()).
			Msg("borrow rejected")
		return nil, err
	}

	log.Info().
		Str("actor_id", actor.MemberID.String()).
		Str("loan_id", loan.ID.String()).
		Str("member_id", memberID.String()).
		Str("book_id", bookID.String()).
		Str("due_date", utils.FormatDate(loan.DueDate)).
		Msg("book borrowed")

	return loan, nil
}

// ReturnBook đóng loan, trả lại bản sách vào catalog.
// Trả trễ (so sánh theo ngày): member bị suspend, kết quả kèm số ngày trễ
func (s *LoanService) ReturnBook(ctx context.Context, loanID uuid.UUID) (*model.ReturnResult, error) {
	actor, ok := principal.FromContext(ctx)
	if !ok || !actor.IsLibrarian() {
		return nil, shared.ErrForbidden
	}

	result, err := database.WithTransactionResult(ctx, s.tx, func(ctx context.Context, tx pgx.Tx) (*model.ReturnResult, error) {
		loan, err := s.loans.GetByIDForUpdateTx(ctx, tx, loanID)
		if err != nil {
			return nil, err
		}
		if loan.IsReturned() {
			return nil, model.ErrAlreadyReturned
		}

		today := s.policy.Today(s.now())
		if err := s.loans.MarkReturnedTx(ctx, tx, loanID, today); err != nil {
			return nil, err
		}
		if err := s.books.IncrementAvailableTx(ctx, tx, loan.BookID); err != nil {
			return nil, err
		}
		loan.ReturnDate = &today

		result := &model.ReturnResult{
			Loan:    *loan,
			Message: model.MsgReturnedOnTime,
		}

		if today.After(loan.DueDate) {
			if err := s.members.UpdateStatusTx(ctx, tx, loan.MemberID, memberModel.StatusSuspended); err != nil {
				return nil, err
			}
			result.Late = true
			result.OverdueDays = loan.OverdueDays(today)
			result.Fine = s.policy.Fine(result.OverdueDays)
			result.MemberSuspended = true
			result.Message = model.ReturnedLateMessage(result.OverdueDays)
		}

		return result, nil
	})
	if err != nil {
		err = classify(err)
		log.Warn().Err(err).
			Str("actor_id", actor.MemberID.String()).
			Str("loan_id", loanID.String()).
			Msg("return rejected")
		return nil, err
	}

	log.Info().
		Str("actor_id", actor.MemberID.String()).
		Str("loan_id", loanID.String()).
		Str("member_id", result.Loan.MemberID.String()).
		Bool("late", result.Late).
		Int("overdue_days", result.OverdueDays).
		Msg("book returned")

	if result.Late {
		s.notifySuspension(ctx, result)
	}

	return result, nil
}

// notifySuspension: lỗi enqueue chỉ log, không ảnh hưởng kết quả trả sách
func (s *LoanService) notifySuspension(ctx context.Context, result *model.ReturnResult) {
	if s.notifier == nil {
		return
	}

	payload := model.SuspensionNoticePayload{
		MemberID:    result.Loan.MemberID.String(),
		LoanID:      result.Loan.ID.String(),
		BookID:      result.Loan.BookID.String(),
		DueDate:     utils.FormatDate(result.Loan.DueDate),
		ReturnDate:  utils.FormatDate(*result.Loan.ReturnDate),
		OverdueDays: result.OverdueDays,
		Fine:        result.Fine.StringFixed(2),
	}
	if err := s.notifier.NotifySuspension(ctx, payload); err != nil {
		log.Warn().Err(err).Str("loan_id", payload.LoanID).Msg("failed to enqueue suspension notice")
	}
}

// GetLoan: member chỉ xem được loan của chính mình
func (s *LoanService) GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	actor, ok := principal.FromContext(ctx)
	if !ok {
		return nil, shared.ErrForbidden
	}

	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// loan của member khác: trả về not found, không lộ id tồn tại
	if !actor.CanActFor(loan.MemberID) {
		return nil, model.ErrLoanNotFound
	}

	return loan, nil
}

// ListLoans: với member, filter luôn bị giới hạn về member đó
func (s *LoanService) ListLoans(ctx context.Context, filter model.ListFilter) ([]model.LoanDetail, error) {
	actor, ok := principal.FromContext(ctx)
	if !ok {
		return nil, shared.ErrForbidden
	}
	if !actor.IsLibrarian() {
		own := actor.MemberID
		filter.MemberID = &own
	}

	return s.loans.List(ctx, filter)
}

// ListOverdue trả về loan đang mở đã quá hạn tính tới hôm nay
func (s *LoanService) ListOverdue(ctx context.Context) ([]model.LoanDetail, error) {
	return s.loans.ListOverdue(ctx, s.policy.Today(s.now()))
}

// Policy returns the loan rules in effect
func (s *LoanService) Policy() model.Policy {
	return s.policy
}

// classify: lỗi nghiệp vụ giữ nguyên, lỗi storage còn lại wrap ErrTransactionFailure
func classify(err error) error {
	switch {
	case errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrTransactionFailure),
		errors.Is(err, model.ErrMemberSuspended),
		errors.Is(err, model.ErrNoCopiesAvailable),
		errors.Is(err, model.ErrAlreadyReturned):
		return err
	default:
		return fmt.Errorf("%w: %w", shared.ErrTransactionFailure, err)
	}
}
