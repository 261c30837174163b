package shared

import "errors"

// Cross-domain error kinds. Domain sentinels wrap these so callers can
// classify with errors.Is without importing every domain package.
var (
	// ErrNotFound: member/book/loan lookup miss
	ErrNotFound = errors.New("not found")

	// ErrForbidden: principal thiếu hoặc không có quyền trên resource
	ErrForbidden = errors.New("forbidden")

	// ErrTransactionFailure: storage unavailable hoặc commit conflict
	ErrTransactionFailure = errors.New("transaction failure")
)
