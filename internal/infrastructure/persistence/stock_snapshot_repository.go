package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/hotelstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockSnapshotRepository implements StockSnapshotRepository using GORM
type GormStockSnapshotRepository struct {
	db *gorm.DB
}

// NewGormStockSnapshotRepository creates a new GormStockSnapshotRepository
func NewGormStockSnapshotRepository(db *gorm.DB) *GormStockSnapshotRepository {
	return &GormStockSnapshotRepository{db: db}
}

// FindByItemAndPeriod finds the snapshot for one item in one period
func (r *GormStockSnapshotRepository) FindByItemAndPeriod(ctx context.Context, hotelID, itemID, periodID uuid.UUID) (*stock.StockSnapshot, error) {
	var model models.StockSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND item_id = ? AND period_id = ?", hotelID, itemID, periodID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds all snapshots for a period
func (r *GormStockSnapshotRepository) FindByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) ([]stock.StockSnapshot, error) {
	var snapshotModels []models.StockSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND period_id = ?", hotelID, periodID).
		Order("created_at ASC").
		Find(&snapshotModels).Error; err != nil {
		return nil, err
	}
	snapshots := make([]stock.StockSnapshot, len(snapshotModels))
	for i, model := range snapshotModels {
		snapshots[i] = *model.ToDomain()
	}
	return snapshots, nil
}

// CountByPeriod counts the snapshots for a period
func (r *GormStockSnapshotRepository) CountByPeriod(ctx context.Context, hotelID, periodID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StockSnapshotModel{}).
		Where("hotel_id = ? AND period_id = ?", hotelID, periodID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Upsert writes the snapshot, replacing any existing row for the same
// (hotel, period, item). Approval retries land on the same row instead
// of doubling it.
func (r *GormStockSnapshotRepository) Upsert(ctx context.Context, snapshot *stock.StockSnapshot) error {
	model := models.StockSnapshotModelFromDomain(snapshot)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hotel_id"}, {Name: "period_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"closing_full_units",
				"closing_partial_units",
				"unit_cost",
				"closing_stock_value",
				"updated_at",
			}),
		}).
		Create(model).Error
}

// Ensure GormStockSnapshotRepository implements StockSnapshotRepository
var _ stock.StockSnapshotRepository = (*GormStockSnapshotRepository)(nil)
