package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/logger"
)

// OverdueLister - phần Loan Service mà scan cần
type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]model.LoanDetail, error)
	Policy() model.Policy
}

type OverdueScanHandler struct {
	loans OverdueLister
	now   func() time.Time
}

func NewOverdueScanHandler(loans OverdueLister) *OverdueScanHandler {
	return &OverdueScanHandler{loans: loans, now: time.Now}
}

// ProcessTask log từng loan quá hạn và tổng số
func (h *OverdueScanHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	start := h.now()

	overdue, err := h.loans.ListOverdue(ctx)
	if err != nil {
		logger.Error("Overdue scan failed", err)
		return err
	}

	today := h.loans.Policy().Today(start)
	for i := range overdue {
		l := overdue[i]
		loan := l.Loan()
		log.Warn().
			Str("loan_id", l.ID.String()).
			Str("member_id", l.MemberID.String()).
			Str("username", l.MemberUsername).
			Str("book_title", l.BookTitle).
			Str("due_date", utils.FormatDate(l.DueDate)).
			Int("overdue_days", loan.OverdueDays(today)).
			Msg("loan overdue")
	}

	log.Info().
		Int("overdue_count", len(overdue)).
		Dur("duration", h.now().Sub(start)).
		Msg("overdue scan completed")

	return nil
}
