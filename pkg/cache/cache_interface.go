package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho key-value store (Redis)
// Chỉ dùng cho counters (failed login tracking), không cache entity
type Cache interface {
	// Delete xóa các keys
	Delete(ctx context.Context, keys ...string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error

	// Count đọc giá trị counter (0 nếu key không tồn tại)
	Count(ctx context.Context, key string) (int64, error)

	// Increment tăng counter và trả về giá trị mới
	Increment(ctx context.Context, key string) (int64, error)

	// Expire đặt TTL cho key
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
