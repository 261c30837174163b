package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/config"
	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/principal"
	"library-backend/internal/shared/utils"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

const (
	bcryptCost           = 12
	failedLoginKeyPrefix = "auth:failed_login:"
)

type Options struct {
	LiftPolicy      config.SuspensionLiftPolicy
	MaxFailedLogins int
	LockoutWindow   time.Duration
	Location        *time.Location
}

type memberService struct {
	repo       repository.RepositoryInterface
	cache      cache.Cache
	jwtManager *jwt.Manager
	overdue    OverdueChecker
	opts       Options

	hashCost int
	now      func() time.Time

	comparePassword func(hash, password []byte) error
	dummyOnce       sync.Once
	dummy           []byte
}

func NewService(
	repo repository.RepositoryInterface,
	cache cache.Cache,
	jwtManager *jwt.Manager,
	overdue OverdueChecker,
	opts Options,
) ServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &memberService{
		repo:       repo,
		cache:      cache,
		jwtManager: jwtManager,
		overdue:    overdue,
		opts:       opts,
		hashCost:   bcryptCost,
		now:        time.Now,

		comparePassword: bcrypt.CompareHashAndPassword,
	}
}

// Register tạo member mới (role member, status active)
func (s *memberService) Register(ctx context.Context, req model.RegisterRequest) (*model.Member, error) {
	// 1. NORMALIZE + VALIDATE INPUT
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE MEMBER
	// Duplicate username/email được phát hiện qua unique constraint
	member := &model.Member{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         shared.RoleMember,
		Status:       model.StatusActive,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	logger.Info("member registered", map[string]interface{}{
		"member_id": member.ID.String(),
		"username":  member.Username,
	})

	return member, nil
}

// Login xác thực username/password và cấp access token.
// Sai username hay sai password đều trả về ErrInvalidCredentials
func (s *memberService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := failedLoginKey(req.Username)

	// 1. CHECK THROTTLE
	throttled := s.cache != nil
	if throttled {
		attempts, err := s.cache.Count(ctx, key)
		if err != nil {
			logger.Warn("login throttle unavailable, skipping", map[string]interface{}{
				"error": err.Error(),
			})
			throttled = false
		} else if attempts >= int64(s.opts.MaxFailedLogins) {
			return nil, model.ErrTooManyAttempts
		}
	}

	// 2. FIND MEMBER
	member, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			// vẫn chạy bcrypt để thời gian phản hồi không lộ username tồn tại
			_ = s.comparePassword(s.dummyHash(), []byte(req.Password))
			s.recordFailure(ctx, key, throttled)
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. VERIFY PASSWORD
	if err := s.comparePassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, key, throttled)
		return nil, model.ErrInvalidCredentials
	}

	// 4. RESET COUNTER
	if throttled {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Warn("failed to reset login counter", map[string]interface{}{
				"username": member.Username,
				"error":    err.Error(),
			})
		}
	}

	// 5. GENERATE TOKEN
	token, expiresAt, err := s.jwtManager.GenerateAccessToken(member.ID.String(), member.Username, member.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Member:      member.ToResponse(),
	}, nil
}

// recordFailure: INCR, counter mới (== 1) được gắn TTL = lockout window
func (s *memberService) recordFailure(ctx context.Context, key string, throttled bool) {
	if !throttled {
		return
	}

	n, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("failed to record login failure", map[string]interface{}{"error": err.Error()})
		return
	}
	if n == 1 {
		if err := s.cache.Expire(ctx, key, s.opts.LockoutWindow); err != nil {
			logger.Warn("failed to set login counter ttl", map[string]interface{}{"error": err.Error()})
		}
	}
}

// dummyHash: hash cố định cùng cost, dùng khi username không tồn tại
func (s *memberService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("library-dummy-password-1"), s.hashCost)
		if err != nil {
			logger.Warn("failed to build dummy password hash", map[string]interface{}{"error": err.Error()})
			return
		}
		s.dummy = hash
	})
	return s.dummy
}

func failedLoginKey(username string) string {
	return failedLoginKeyPrefix + strings.ToLower(strings.TrimSpace(username))
}

func (s *memberService) GetMember(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *memberService) ListMembers(ctx context.Context, req model.ListMembersRequest) ([]model.Member, error) {
	return s.repo.List(ctx, req.Query)
}

// LiftSuspension đưa member về active theo SUSPENSION_LIFT_POLICY.
// Member đang active: no-op
func (s *memberService) LiftSuspension(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	actor, ok := principal.FromContext(ctx)
	if !ok || !actor.IsLibrarian() {
		return nil, shared.ErrForbidden
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !member.IsSuspended() {
		return member, nil
	}

	switch s.opts.LiftPolicy {
	case config.LiftPolicyDisabled:
		return nil, model.ErrSuspensionLiftDisabled
	case config.LiftPolicyNoOpenOverdue:
		today := utils.DateOf(s.now(), s.opts.Location)
		count, err := s.overdue.CountOpenOverdue(ctx, id, today)
		if err != nil {
			return nil, fmt.Errorf("count overdue loans: %w", err)
		}
		if count > 0 {
			return nil, model.ErrOpenOverdueLoans
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusActive); err != nil {
		return nil, err
	}
	member.Status = model.StatusActive

	fields := map[string]interface{}{
		"member_id": id.String(),
		"policy":    string(s.opts.LiftPolicy),
		"actor_id":  actor.MemberID.String(),
	}
	logger.Info("member suspension lifted", fields)

	return member, nil
}
