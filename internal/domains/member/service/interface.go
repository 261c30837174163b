package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/member/model"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Member, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetMember(ctx context.Context, id uuid.UUID) (*model.Member, error)
	ListMembers(ctx context.Context, req model.ListMembersRequest) ([]model.Member, error)
	LiftSuspension(ctx context.Context, id uuid.UUID) (*model.Member, error)
}

// OverdueChecker đếm loan đang mở đã quá hạn của một member.
// Loan Ledger implement interface này
type OverdueChecker interface {
	CountOpenOverdue(ctx context.Context, memberID uuid.UUID, today time.Time) (int, error)
}
