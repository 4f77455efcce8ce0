package persistence

import (
	"context"

	appstock "github.com/hotelstock/backend/internal/application/stock"
	"github.com/hotelstock/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the stock item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ItemRepo() stock.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// PeriodRepo returns the stock period repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PeriodRepo() stock.StockPeriodRepository {
	return NewGormStockPeriodRepository(r.tx)
}

// StocktakeRepo returns the stocktake repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StocktakeRepo() stock.StocktakeRepository {
	return NewGormStocktakeRepository(r.tx)
}

// SnapshotRepo returns the stock snapshot repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SnapshotRepo() stock.StockSnapshotRepository {
	return NewGormStockSnapshotRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appstock.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appstock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
