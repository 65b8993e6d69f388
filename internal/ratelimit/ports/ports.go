// Package ports defines the storage contract of the ratelimit module.
package ports

import (
	"context"
	"time"

	"medtrust/internal/ratelimit/models"
)

// BucketStore keeps one sliding window of request timestamps per key.
// Implementations must make the check-and-record step atomic per key.
type BucketStore interface {
	// Allow records one request when the window has room.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)

	// AllowN records cost requests at once, or none.
	AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error)

	// Reset drops the window for key.
	Reset(ctx context.Context, key string) error

	// GetCurrentCount reports how many requests the window currently holds.
	GetCurrentCount(ctx context.Context, key string) (int, error)
}
