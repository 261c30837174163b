package model

import (
	"errors"
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrMemberNotFound        = fmt.Errorf("member %w", shared.ErrNotFound)
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")

	// Auth
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")

	// Suspension lift
	ErrOpenOverdueLoans       = errors.New("member still holds overdue loans")
	ErrSuspensionLiftDisabled = errors.New("suspension lifting is disabled")
)
