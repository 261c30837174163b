package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/loan/model"
	memberModel "library-backend/internal/domains/member/model"
	"library-backend/pkg/logger"
)

// MemberLookup - phần Member Directory mà handler cần
type MemberLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*memberModel.Member, error)
}

type SuspensionNoticeHandler struct {
	members MemberLookup
}

func NewSuspensionNoticeHandler(members MemberLookup) *SuspensionNoticeHandler {
	return &SuspensionNoticeHandler{members: members}
}

// ProcessTask ghi structured notice cho member bị suspend do trả trễ.
// Payload lỗi hoặc member không tồn tại: không retry
func (h *SuspensionNoticeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.SuspensionNoticePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal suspension notice failed", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	memberID, err := uuid.Parse(payload.MemberID)
	if err != nil {
		return fmt.Errorf("%w: invalid member id %q", asynq.SkipRetry, payload.MemberID)
	}

	member, err := h.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, memberModel.ErrMemberNotFound) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}

	log.Info().
		Str("member_id", payload.MemberID).
		Str("username", member.Username).
		Str("email", member.Email).
		Str("loan_id", payload.LoanID).
		Str("book_id", payload.BookID).
		Str("due_date", payload.DueDate).
		Str("return_date", payload.ReturnDate).
		Int("overdue_days", payload.OverdueDays).
		Str("fine", payload.Fine).
		Str("message", model.ReturnedLateMessage(payload.OverdueDays)).
		Msg("suspension notice")

	return nil
}
