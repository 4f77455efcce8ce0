package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	appstock "github.com/hotelstock/backend/internal/application/stock"
	"github.com/redis/go-redis/v9"
)

// InMemoryApprovalGuard serializes approvals within a single process.
// Suitable for single-instance deployments and testing. Held guards expire
// after the TTL so a crashed approval cannot block the stocktake forever.
type InMemoryApprovalGuard struct {
	mu   sync.Mutex
	held map[uuid.UUID]time.Time
	ttl  time.Duration
}

// NewInMemoryApprovalGuard creates a new in-memory approval guard
func NewInMemoryApprovalGuard(ttl time.Duration) *InMemoryApprovalGuard {
	return &InMemoryApprovalGuard{
		held: make(map[uuid.UUID]time.Time),
		ttl:  ttl,
	}
}

// Acquire attempts to take the guard for a stocktake.
// Returns false if another approval currently holds it.
func (g *InMemoryApprovalGuard) Acquire(_ context.Context, stocktakeID uuid.UUID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if expiresAt, exists := g.held[stocktakeID]; exists && time.Now().Before(expiresAt) {
		return false, nil
	}
	g.held[stocktakeID] = time.Now().Add(g.ttl)
	return true, nil
}

// Release frees the guard for a stocktake
func (g *InMemoryApprovalGuard) Release(_ context.Context, stocktakeID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, stocktakeID)
}

// RedisApprovalGuard serializes approvals across instances using SETNX.
// The TTL bounds how long a crashed instance can hold the guard.
type RedisApprovalGuard struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisApprovalGuard creates a Redis-backed approval guard
func NewRedisApprovalGuard(client *redis.Client, ttl time.Duration) *RedisApprovalGuard {
	return &RedisApprovalGuard{
		client:    client,
		keyPrefix: "stocktake:approval:",
		ttl:       ttl,
	}
}

// Acquire attempts to take the guard via an atomic SETNX with TTL
func (g *RedisApprovalGuard) Acquire(ctx context.Context, stocktakeID uuid.UUID) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.keyPrefix+stocktakeID.String(), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire approval guard: %w", err)
	}
	return acquired, nil
}

// Release frees the guard. Failure is tolerable: the TTL expires it.
func (g *RedisApprovalGuard) Release(ctx context.Context, stocktakeID uuid.UUID) {
	_ = g.client.Del(ctx, g.keyPrefix+stocktakeID.String()).Err()
}

var _ appstock.ApprovalGuard = (*InMemoryApprovalGuard)(nil)
var _ appstock.ApprovalGuard = (*RedisApprovalGuard)(nil)
