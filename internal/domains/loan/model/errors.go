package model

import (
	"errors"
	"fmt"

	bookModel "library-backend/internal/domains/book/model"
	"library-backend/internal/shared"
)

var (
	ErrLoanNotFound    = fmt.Errorf("loan %w", shared.ErrNotFound)
	ErrMemberSuspended = errors.New("member is suspended")
	ErrAlreadyReturned = errors.New("loan already returned")

	// ErrNoCopiesAvailable do Catalog Store trả về khi decrement thất bại
	ErrNoCopiesAvailable = bookModel.ErrNoCopiesAvailable
)
