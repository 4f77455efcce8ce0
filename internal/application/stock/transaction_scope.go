package stock

import (
	"context"

	"github.com/hotelstock/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all stock repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
//
// Aggregate boundary notes:
//   - StocktakeRepo: the Stocktake aggregate owns its lines; lines are
//     persisted through SaveWithLines and never independently.
//   - SnapshotRepo: snapshots are written exclusively inside the approval
//     and period-close transactions, via idempotent upserts.
type TransactionalRepositories interface {
	// ItemRepo returns the stock item repository scoped to the current transaction
	ItemRepo() stock.StockItemRepository
	// PeriodRepo returns the stock period repository scoped to the current transaction
	PeriodRepo() stock.StockPeriodRepository
	// StocktakeRepo returns the stocktake repository scoped to the current transaction
	StocktakeRepo() stock.StocktakeRepository
	// SnapshotRepo returns the stock snapshot repository scoped to the current transaction
	SnapshotRepo() stock.StockSnapshotRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	itemRepo      stock.StockItemRepository
	periodRepo    stock.StockPeriodRepository
	stocktakeRepo stock.StocktakeRepository
	snapshotRepo  stock.StockSnapshotRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo stock.StockItemRepository,
	periodRepo stock.StockPeriodRepository,
	stocktakeRepo stock.StocktakeRepository,
	snapshotRepo stock.StockSnapshotRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:      itemRepo,
		periodRepo:    periodRepo,
		stocktakeRepo: stocktakeRepo,
		snapshotRepo:  snapshotRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the stock item repository.
func (s *NoOpTransactionScope) ItemRepo() stock.StockItemRepository {
	return s.itemRepo
}

// PeriodRepo returns the stock period repository.
func (s *NoOpTransactionScope) PeriodRepo() stock.StockPeriodRepository {
	return s.periodRepo
}

// StocktakeRepo returns the stocktake repository.
func (s *NoOpTransactionScope) StocktakeRepo() stock.StocktakeRepository {
	return s.stocktakeRepo
}

// SnapshotRepo returns the stock snapshot repository.
func (s *NoOpTransactionScope) SnapshotRepo() stock.StockSnapshotRepository {
	return s.snapshotRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
