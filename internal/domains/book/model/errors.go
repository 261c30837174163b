package model

import (
	"errors"
	"fmt"

	"library-backend/internal/shared"
)

var (
	ErrBookNotFound      = fmt.Errorf("book %w", shared.ErrNotFound)
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrCopiesAtCapacity  = errors.New("available copies already equal total copies")
	ErrInvalidCopies     = errors.New("copies must satisfy 0 <= available <= total")
)
