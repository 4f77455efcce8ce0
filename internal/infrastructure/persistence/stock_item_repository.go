package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/hotelstock/backend/internal/domain/stock"
	"github.com/hotelstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForHotel finds a stock item by ID within a hotel
func (r *GormStockItemRepository) FindByIDForHotel(ctx context.Context, hotelID, id uuid.UUID) (*stock.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a stock item by its SKU within a hotel
func (r *GormStockItemRepository) FindBySKU(ctx context.Context, hotelID uuid.UUID, sku string) (*stock.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND sku = ?", hotelID, sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveForHotel finds all active stock items for a hotel
func (r *GormStockItemRepository) FindActiveForHotel(ctx context.Context, hotelID uuid.UUID) ([]stock.StockItem, error) {
	var itemModels []models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND active = ?", hotelID, true).
		Order("sku ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]stock.StockItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindAllForHotel finds all stock items for a hotel
func (r *GormStockItemRepository) FindAllForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) ([]stock.StockItem, error) {
	var itemModels []models.StockItemModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockItemModel{}).
			Where("hotel_id = ?", hotelID),
		filter,
	)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]stock.StockItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// CountForHotel counts stock items matching the filter
func (r *GormStockItemRepository) CountForHotel(ctx context.Context, hotelID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StockItemModel{}).
		Where("hotel_id = ?", hotelID)

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(sku) LIKE ? OR LOWER(name) LIKE ? OR LOWER(category) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *stock.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyFilter applies common filter options to a query
func (r *GormStockItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(sku) LIKE ? OR LOWER(name) LIKE ? OR LOWER(category) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "sku"
	if filter.OrderBy != "" {
		// Validate order by field to prevent SQL injection
		validFields := map[string]bool{
			"sku":        true,
			"name":       true,
			"category":   true,
			"unit_cost":  true,
			"created_at": true,
			"updated_at": true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}

	orderDir := "ASC"
	if filter.OrderDir == "desc" || filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ stock.StockItemRepository = (*GormStockItemRepository)(nil)
