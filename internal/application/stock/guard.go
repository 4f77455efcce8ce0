package stock

import (
	"context"

	"github.com/google/uuid"
)

// ApprovalGuard serializes concurrent approval attempts on one stocktake.
// Acquire returns false when another approval already holds the guard; the
// caller surfaces a concurrency conflict instead of racing the first writer.
type ApprovalGuard interface {
	Acquire(ctx context.Context, stocktakeID uuid.UUID) (bool, error)
	Release(ctx context.Context, stocktakeID uuid.UUID)
}
